package fieldschema

type defaulter struct {
	a any
}

// Default returns a documentation-only option that sets the field's default
// value. Evaluation does not fill in defaults.
func Default(a any) FieldOption {
	return defaulter{a: a}
}

func (r defaulter) apply(f *FieldRules) {
	f.spec.doc.def = r.a
}
