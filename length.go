package fieldschema

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type lengthRule struct {
	min, max int
	err      validation.Error
}

// newCheckRange binds check_range(min, max), an inclusive character count range.
func newCheckRange(a Args) (Validator, error) {
	if err := a.Expect(2, "min", "max"); err != nil {
		return nil, err
	}
	lo, err := a.Int(0, "min", 0)
	if err != nil {
		return nil, err
	}
	hi, err := a.Int(1, "max", -1)
	if err != nil {
		return nil, err
	}
	if hi < lo {
		return nil, fmt.Errorf("%w: check_range needs min <= max, got %d..%d", ErrInvalidArguments, lo, hi)
	}
	return lengthRule{min: lo, max: hi, err: validation.NewError("validation_check_range", "")}, nil
}

// newCheckLength binds check_length(max).
func newCheckLength(a Args) (Validator, error) {
	if err := a.Expect(1, "max"); err != nil {
		return nil, err
	}
	hi, err := a.Int(0, "max", -1)
	if err != nil {
		return nil, err
	}
	if hi < 0 {
		return nil, fmt.Errorf("%w: check_length needs a non-negative max", ErrInvalidArguments)
	}
	return lengthRule{min: -1, max: hi, err: validation.NewError("validation_check_length", "")}, nil
}

func (r lengthRule) Validate(_ context.Context, value any, env *Env) error {
	s, ok := value.(string)
	n := utf8.RuneCountInString(s)
	if ok && n >= r.min && n <= r.max {
		return nil
	}
	if r.min < 0 {
		return r.err.SetMessage(fmt.Sprintf("%s must be at most %d characters long.", title(env.Field), r.max))
	}
	return r.err.SetMessage(fmt.Sprintf("%s must be between %d and %d characters long.", title(env.Field), r.min, r.max))
}

func (r lengthRule) Describe(prop *openapi3.Schema) {
	if r.min > 0 {
		prop.WithMinLength(int64(r.min))
	}
	prop.WithMaxLength(int64(r.max))
}
