package fieldschema

import (
	"context"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type ageRule struct {
	min, max int64
}

// newAge binds age(min_age=0, max_age=120). Both bounds are inclusive.
func newAge(a Args) (Validator, error) {
	if err := a.Expect(2, "min_age", "max_age"); err != nil {
		return nil, err
	}
	minAge, err := a.Int(0, "min_age", 0)
	if err != nil {
		return nil, err
	}
	maxAge, err := a.Int(1, "max_age", 120)
	if err != nil {
		return nil, err
	}
	if maxAge < minAge {
		return nil, fmt.Errorf("%w: min_age %d exceeds max_age %d", ErrInvalidArguments, minAge, maxAge)
	}
	return ageRule{min: int64(minAge), max: int64(maxAge)}, nil
}

func (r ageRule) Validate(_ context.Context, value any, _ *Env) error {
	age, ok := asInt64(value)
	if !ok {
		return validation.NewError("validation_age_not_integer", "Age must be an integer.")
	}
	if age < r.min {
		return validation.NewError("validation_age_too_low", fmt.Sprintf("Age must be at least %d.", r.min))
	}
	if age > r.max {
		return validation.NewError("validation_age_too_high", fmt.Sprintf("Age must be at most %d.", r.max))
	}
	return nil
}

func (r ageRule) Describe(prop *openapi3.Schema) {
	prop.WithMin(float64(r.min)).WithMax(float64(r.max))
}
