package fieldschema

import (
	"context"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Func adapts a plain predicate into a Validator. An empty message on failure
// falls back to the rule's configured message.
type Func func(value any) (bool, string)

// Validate implements Validator.
func (f Func) Validate(_ context.Context, value any, _ *Env) error {
	ok, msg := f(value)
	if ok {
		return nil
	}
	return validation.NewError("validation_custom_invalid", msg)
}

// EnvFunc is like Func for predicates that consult the record or the
// injected store and classifier.
type EnvFunc func(ctx context.Context, value any, env *Env) (bool, string)

// Validate implements Validator.
func (f EnvFunc) Validate(ctx context.Context, value any, env *Env) error {
	ok, msg := f(ctx, value, env)
	if ok {
		return nil
	}
	return validation.NewError("validation_custom_invalid", msg)
}

// Custom returns a factory for a predicate that takes no arguments, for use
// with [Registry.Register].
func Custom(f EnvFunc) Factory {
	return func(a Args) (Validator, error) {
		if err := a.Expect(0); err != nil {
			return nil, err
		}
		return f, nil
	}
}
