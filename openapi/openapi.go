package openapi

import (
	"errors"
	"net/http"

	"github.com/Gobd/fieldschema"
	"github.com/getkin/kin-openapi/openapi3"
)

// Response describes an HTTP response with a description and body schemas.
type Response struct {
	Desc   string
	Bodies []*openapi3.SchemaRef
}

// Endpoint describes a single API operation for the convenience helpers
// [Get], [Post], [Put], [Patch], and [Delete]. When a request schema is set
// a 400 response carrying the validation report is added unless Responses
// already declares one.
type Endpoint struct {
	Summary     string
	Description string
	Request     *fieldschema.Schema   // single request body schema (convenience)
	Requests    []*fieldschema.Schema // multiple request body schemas (oneOf)
	Response    *openapi3.SchemaRef   // single 200 response body (convenience)
	Responses   map[string]Response   // full response map (overrides Response if both set)
}

// ErrorBody is the schema of the body served with a failed validation:
// {"errors": <report>}.
func ErrorBody() *openapi3.SchemaRef {
	return openapi3.NewObjectSchema().
		WithProperty("errors", fieldschema.ReportSchema().Value).
		WithRequired([]string{"errors"}).
		NewRef()
}

// NewRequestMust is like [NewRequest] but panics on error.
func NewRequestMust(ss ...*fieldschema.Schema) *openapi3.RequestBodyRef {
	o, err := NewRequest(ss...)
	if err != nil {
		panic(err)
	}
	return o
}

// NewRequest builds an OpenAPI request body from the given schemas. More
// than one schema yields a oneOf.
func NewRequest(ss ...*fieldschema.Schema) (*openapi3.RequestBodyRef, error) {
	if len(ss) == 0 {
		return nil, errors.New("no schemas given")
	}

	refs := make(openapi3.SchemaRefs, 0, len(ss))
	for _, s := range ss {
		if s == nil {
			return nil, errors.New("nil schema")
		}
		refs = append(refs, s.OpenAPI())
	}

	return &openapi3.RequestBodyRef{
		Value: &openapi3.RequestBody{
			Required: true,
			Content:  jsonContent(refs),
		},
	}, nil
}

// NewResponseMust is like [NewResponse] but panics on error.
// Map key is status code (e.g. "200", "4xx").
func NewResponseMust(vs map[string]Response) *openapi3.Responses {
	o, err := NewResponse(vs)
	if err != nil {
		panic(err)
	}
	return o
}

// NewResponse creates an OpenAPI responses object.
// Map key is status code (e.g. "200", "4xx").
func NewResponse(vs map[string]Response) (*openapi3.Responses, error) {
	if len(vs) == 0 {
		return nil, errors.New("no values given")
	}

	opts := make([]openapi3.NewResponsesOption, 0, len(vs))
	for statusCode, r := range vs {
		desc := r.Desc
		resp := &openapi3.Response{Description: &desc}
		if len(r.Bodies) > 0 {
			resp.Content = jsonContent(r.Bodies)
		}
		opts = append(opts, openapi3.WithName(statusCode, resp))
	}

	return openapi3.NewResponses(opts...), nil
}

func jsonContent(refs openapi3.SchemaRefs) openapi3.Content {
	schema := refs[0]
	if len(refs) > 1 {
		schema = &openapi3.SchemaRef{Value: &openapi3.Schema{OneOf: refs}}
	}
	return openapi3.Content{
		"application/json": &openapi3.MediaType{Schema: schema},
	}
}

// DocBase returns a basic OpenAPI 3.0.3 document structure.
func DocBase(serviceName, description, version string) *openapi3.T {
	return &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       serviceName,
			Description: description,
			Version:     version,
		},
		Paths: &openapi3.Paths{},
	}
}

// AddPath adds an operation to the OpenAPI spec at the given path and method.
func AddPath(path, method string, s *openapi3.T, op *openapi3.Operation) {
	p := s.Paths.Value(path)
	if p == nil {
		p = &openapi3.PathItem{}
	}

	switch method {
	case http.MethodGet:
		p.Get = op
	case http.MethodPost:
		p.Post = op
	case http.MethodPut:
		p.Put = op
	case http.MethodPatch:
		p.Patch = op
	case http.MethodDelete:
		p.Delete = op
	}

	s.Paths.Set(path, p)
}

// addEndpoint builds an [openapi3.Operation] from ep and registers it at path+method.
func addEndpoint(doc *openapi3.T, path, method, operationID string, ep Endpoint) {
	op := &openapi3.Operation{
		OperationID: operationID,
		Summary:     ep.Summary,
		Description: ep.Description,
	}

	requests := ep.Requests
	if len(requests) == 0 && ep.Request != nil {
		requests = []*fieldschema.Schema{ep.Request}
	}
	if len(requests) > 0 {
		op.RequestBody = NewRequestMust(requests...)
	}

	responses := make(map[string]Response, len(ep.Responses)+2)
	for k, r := range ep.Responses {
		responses[k] = r
	}
	if len(ep.Responses) == 0 && ep.Response != nil {
		responses["200"] = Response{Desc: "OK", Bodies: []*openapi3.SchemaRef{ep.Response}}
	}
	if _, ok := responses["400"]; !ok && len(requests) > 0 {
		responses["400"] = Response{Desc: "Validation failed", Bodies: []*openapi3.SchemaRef{ErrorBody()}}
	}
	if len(responses) > 0 {
		op.Responses = NewResponseMust(responses)
	} else {
		op.Responses = openapi3.NewResponses()
	}

	AddPath(path, method, doc, op)
}

// Get registers a GET endpoint on doc.
func Get(doc *openapi3.T, path, operationID string, ep Endpoint) {
	addEndpoint(doc, path, http.MethodGet, operationID, ep)
}

// Post registers a POST endpoint on doc.
func Post(doc *openapi3.T, path, operationID string, ep Endpoint) {
	addEndpoint(doc, path, http.MethodPost, operationID, ep)
}

// Put registers a PUT endpoint on doc.
func Put(doc *openapi3.T, path, operationID string, ep Endpoint) {
	addEndpoint(doc, path, http.MethodPut, operationID, ep)
}

// Patch registers a PATCH endpoint on doc.
func Patch(doc *openapi3.T, path, operationID string, ep Endpoint) {
	addEndpoint(doc, path, http.MethodPatch, operationID, ep)
}

// Delete registers a DELETE endpoint on doc.
func Delete(doc *openapi3.T, path, operationID string, ep Endpoint) {
	addEndpoint(doc, path, http.MethodDelete, operationID, ep)
}
