package fieldschema

import (
	"context"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// enumRule accepts values equal to one of its allowed values. Values that
// differ only in representation, such as 2 and json.Number("2"), match.
type enumRule struct {
	values []any
	keys   map[string]struct{}
}

// newCheckEnum binds check_enum(values).
func newCheckEnum(a Args) (Validator, error) {
	if err := a.Expect(1, "values"); err != nil {
		return nil, err
	}
	raw, ok := a.lookup(0, "values")
	if !ok {
		return nil, fmt.Errorf("%w: %q is required", ErrInvalidArguments, "values")
	}
	var values []any
	switch l := raw.(type) {
	case []any:
		values = l
	case []string:
		for _, s := range l {
			values = append(values, s)
		}
	default:
		return nil, fmt.Errorf("%w: %q must be a list, got %T", ErrInvalidArguments, "values", raw)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: %q is empty", ErrInvalidArguments, "values")
	}
	keys := make(map[string]struct{}, len(values))
	for _, v := range values {
		keys[fmt.Sprint(v)] = struct{}{}
	}
	return enumRule{values: values, keys: keys}, nil
}

func (r enumRule) Validate(_ context.Context, value any, env *Env) error {
	if _, ok := r.keys[fmt.Sprint(value)]; ok {
		return nil
	}
	want := make([]string, len(r.values))
	for i := range r.values {
		want[i] = fmt.Sprint(r.values[i])
	}
	return validation.NewError("validation_check_enum",
		fmt.Sprintf("%s must be one of: %s.", title(env.Field), strings.Join(want, ", ")))
}

func (r enumRule) Describe(prop *openapi3.Schema) {
	prop.Enum = r.values
}
