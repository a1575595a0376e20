package fieldschema

type deprecate struct{}

// Deprecate returns a documentation-only option that marks the field as deprecated.
func Deprecate() FieldOption {
	return deprecate{}
}

func (deprecate) apply(f *FieldRules) {
	f.spec.doc.deprecated = true
}
