package fieldschema

type example struct {
	ex any
}

// Example returns a documentation-only option that sets the field's example value.
func Example(ex any) FieldOption {
	return example{ex: ex}
}

func (r example) apply(f *FieldRules) {
	f.spec.doc.example = r.ex
}
