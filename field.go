package fieldschema

import (
	"encoding/json"
	"fmt"
	"reflect"
)

// Type is the value type a field declares. The zero value accepts any type.
type Type string

// Declared field types.
const (
	TypeAny     Type = ""
	TypeString  Type = "string"
	TypeInteger Type = "integer"
	TypeFloat   Type = "float"
	TypeBoolean Type = "boolean"
	TypeFile    Type = "file"
)

type (
	// FieldSpec is the immutable description of one field: whether it must be
	// present, the type it must have, and the rules it runs in order.
	FieldSpec struct {
		Required bool
		Type     Type
		Rules    []Rule

		doc fieldDoc
	}

	// FieldRules binds a field name to its declaration while a schema is
	// being assembled.
	FieldRules struct {
		name string
		spec FieldSpec
	}

	fieldDoc struct {
		description string
		example     any
		def         any
		deprecated  bool
	}
)

// Field creates a FieldRules for name configured by opts. Options are types,
// [Required], rules returned by [Use], and documentation options such as
// [Describe].
func Field(name string, opts ...FieldOption) *FieldRules {
	f := &FieldRules{name: name}
	for _, o := range opts {
		o.apply(f)
	}
	return f
}

// Name returns the field name.
func (f *FieldRules) Name() string {
	return f.name
}

// Spec returns the field declaration assembled so far.
func (f *FieldRules) Spec() FieldSpec {
	return f.spec
}

func (t Type) apply(f *FieldRules) {
	f.spec.Type = t
}

// Valid reports whether t is one of the declared types.
func (t Type) Valid() bool {
	switch t {
	case TypeAny, TypeString, TypeInteger, TypeFloat, TypeBoolean, TypeFile:
		return true
	}
	return false
}

// Matches reports whether value has the runtime type t declares.
// json.Number values count as integers when they have no fraction or
// exponent, and as floats whenever they parse.
func (t Type) Matches(value any) bool {
	switch t {
	case TypeAny:
		return true
	case TypeString:
		_, ok := value.(string)
		return ok
	case TypeBoolean:
		_, ok := value.(bool)
		return ok
	case TypeFile:
		switch f := value.(type) {
		case File:
			return true
		case *File:
			return f != nil
		}
		return false
	case TypeInteger:
		_, ok := asInt64(value)
		return ok
	case TypeFloat:
		if n, ok := value.(json.Number); ok {
			_, err := n.Float64()
			return err == nil
		}
		k := reflect.ValueOf(value).Kind()
		return k == reflect.Float32 || k == reflect.Float64
	}
	return false
}

func (t Type) mismatch() string {
	return fmt.Sprintf("Expected a %s.", t)
}

// asInt64 converts Go integer kinds and integral json.Number values.
func asInt64(value any) (int64, bool) {
	if n, ok := value.(json.Number); ok {
		i, err := n.Int64()
		return i, err == nil
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u := rv.Uint()
		if u > 1<<63-1 {
			return 0, false
		}
		return int64(u), true
	}
	return 0, false
}
