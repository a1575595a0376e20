package fieldschema

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// describer is implemented by validators that can express their constraint
// in an OpenAPI property schema.
type describer interface {
	Describe(prop *openapi3.Schema)
}

type describe struct {
	desc string
}

// Describe returns a documentation-only option that appends desc to the
// field's description.
func Describe(desc string) FieldOption {
	return describe{desc: desc}
}

func (r describe) apply(f *FieldRules) {
	if f.spec.doc.description != "" {
		f.spec.doc.description += " "
	}
	f.spec.doc.description += r.desc
}

func appendDescription(prop *openapi3.Schema, desc string) {
	if prop.Description != "" && !strings.HasSuffix(prop.Description, " ") {
		prop.Description += " "
	}
	prop.Description += desc
}

func propertyFor(t Type) *openapi3.Schema {
	switch t {
	case TypeString:
		return openapi3.NewStringSchema()
	case TypeInteger:
		return openapi3.NewIntegerSchema()
	case TypeFloat:
		return openapi3.NewFloat64Schema()
	case TypeBoolean:
		return openapi3.NewBoolSchema()
	case TypeFile:
		return openapi3.NewStringSchema().WithFormat("binary")
	}
	return openapi3.NewSchema()
}

// OpenAPI describes the records the schema accepts as an OpenAPI object
// schema. Validators that know their constraint add it to the property;
// documentation options set descriptions, examples and defaults.
func (s *Schema) OpenAPI() *openapi3.SchemaRef {
	obj := openapi3.NewObjectSchema()
	for _, f := range s.fields {
		prop := propertyFor(f.spec.Type)
		for _, br := range f.rules {
			if d, ok := br.validator.(describer); ok {
				d.Describe(prop)
			}
		}
		f.spec.doc.applyTo(prop)
		obj.WithProperty(f.name, prop)
		if f.spec.Required {
			obj.Required = append(obj.Required, f.name)
		}
	}
	return openapi3.NewSchemaRef("", obj)
}

// ReportSchema describes the JSON form of a [Report]: an object whose values
// are a message or a list of messages.
func ReportSchema() *openapi3.SchemaRef {
	messages := openapi3.NewOneOfSchema(
		openapi3.NewStringSchema(),
		openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema()),
	)
	return openapi3.NewSchemaRef("", openapi3.NewObjectSchema().WithAdditionalProperties(messages))
}

func (d fieldDoc) applyTo(prop *openapi3.Schema) {
	if d.description != "" {
		appendDescription(prop, d.description)
	}
	if d.example != nil {
		prop.Example = d.example
	}
	if d.def != nil {
		prop.Default = d.def
	}
	if d.deprecated {
		prop.Deprecated = true
	}
}
