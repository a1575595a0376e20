package transform

import (
	"slices"
	"strings"
)

// RecordTrimSpace runs [strings.TrimSpace] on every string value in the record,
// including strings nested in maps and lists.
func RecordTrimSpace(rec map[string]any) {
	RecordStringFunc(rec, strings.TrimSpace)
}

// RecordToLower runs [strings.ToLower] on the named fields, or on every string
// value when no fields are given.
func RecordToLower(rec map[string]any, fields ...string) {
	if len(fields) == 0 {
		RecordStringFunc(rec, strings.ToLower)
		return
	}
	for k, v := range rec {
		if slices.Contains(fields, k) {
			rec[k] = apply(v, strings.ToLower)
		}
	}
}

// RecordStringFunc applies f to every string value in the record recursively.
func RecordStringFunc(rec map[string]any, f func(string) string) {
	for k, v := range rec {
		rec[k] = apply(v, f)
	}
}

// RecordMulti runs all given functions on the record sequentially.
func RecordMulti(rec map[string]any, fns ...func(map[string]any)) {
	for _, f := range fns {
		f(rec)
	}
}

func apply(v any, f func(string) string) any {
	switch t := v.(type) {
	case string:
		return f(t)
	case map[string]any:
		RecordStringFunc(t, f)
		return t
	case []any:
		for i := range t {
			t[i] = apply(t[i], f)
		}
		return t
	case []string:
		for i := range t {
			t[i] = f(t[i])
		}
		return t
	}
	return v
}
