package fieldschema

import "context"

// Normalizer rewrites a freshly decoded record before it is evaluated, for
// example trimming strings with the transform package.
type Normalizer func(ctx context.Context, rec Record)

// NormalizeFunc adapts a context-free record function, such as those in the
// transform package, into a Normalizer.
func NormalizeFunc(f func(map[string]any)) Normalizer {
	return func(_ context.Context, rec Record) {
		f(rec)
	}
}

func normalize(ctx context.Context, rec Record, ns []Normalizer) {
	for _, n := range ns {
		n(ctx, rec)
	}
}
