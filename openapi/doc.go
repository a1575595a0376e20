// Package openapi builds OpenAPI 3 documents whose request bodies are
// derived from [fieldschema.Schema] values and whose 400 responses describe
// the validation report.
//
// Use [DocBase] to create a base document and register endpoints with [Get],
// [Post], [Put], [Patch], or [Delete]:
//
//	doc := openapi.DocBase("signup", "Signup API", "1.0")
//	openapi.Post(doc, "/users", "createUser", openapi.Endpoint{
//	    Request: signupSchema,
//	})
package openapi
