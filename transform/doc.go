// Package transform provides canonicalisation helpers that rewrite string
// values of a decoded record in place. They are commonly wrapped with
// [fieldschema.NormalizeFunc] and run before evaluation.
package transform
