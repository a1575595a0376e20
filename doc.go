// Package fieldschema validates decoded records against declarative,
// ordered field schemas and reports failures per field.
//
// Build a schema once from fields, each with a type, a required flag and
// named rules:
//
//	schema, err := fieldschema.NewSchema([]*fieldschema.FieldRules{
//	    fieldschema.Field("email", fieldschema.TypeString, fieldschema.Required,
//	        fieldschema.Use("email", "Invalid email."),
//	        fieldschema.Use("check_unique", "").With("entity", "users")),
//	    fieldschema.Field("age", fieldschema.TypeInteger, fieldschema.Use("age", "", 18, 65)),
//	})
//
// Then evaluate records, injecting the store and classifier that resource
// and language rules need:
//
//	report := schema.Evaluate(ctx, rec, fieldschema.WithStore(st))
//	if !report.Valid() {
//	    json.NewEncoder(w).Encode(map[string]any{"errors": report})
//	}
//
// Schemas can also be loaded from YAML or JSON documents with [LoadSchema],
// and described as OpenAPI schemas with [Schema.OpenAPI].
//
// Sub-packages:
//   - store – in-memory store and a Redis cache for declared types
//   - store/pgstore, store/mongostore, store/gormstore, store/osstore – store adapters
//   - classifier – language classifiers backed by OpenAI and Gemini
//   - s3file – file descriptors for uploads staged in S3
//   - openapi – OpenAPI document and endpoint helpers
//   - transform – record string canonicalisation
package fieldschema
