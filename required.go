package fieldschema

import (
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type requiredOption struct{}

// Required marks a field as mandatory. A field is absent when its key is
// missing or its value is nil; an empty string is present.
var Required FieldOption = requiredOption{}

func (requiredOption) apply(f *FieldRules) {
	f.spec.Required = true
}

// absent reports whether the record holds no usable value for the field.
func absent(rec Record, name string) (any, bool) {
	value, ok := rec[name]
	if !ok {
		return nil, true
	}
	return value, validation.NotNil.Validate(value) != nil
}
