package fieldschema

import "slices"

// UnexpectedFields returns the keys of rec the schema does not declare,
// sorted. Evaluation ignores such keys; callers that want to reject them can
// check this first.
//
// Use in tests to catch fields a client sends that no rule covers:
//
//	assert.Empty(t, schema.UnexpectedFields(rec, "csrf_token"))
func (s *Schema) UnexpectedFields(rec Record, exclude ...string) []string {
	var extra []string
	for k := range rec {
		if _, ok := s.index[k]; ok || slices.Contains(exclude, k) {
			continue
		}
		extra = append(extra, k)
	}
	slices.Sort(extra)
	return extra
}
