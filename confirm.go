package fieldschema

import (
	"context"
	"reflect"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type confirmRule struct {
	field string
}

// newConfirmPassword binds confirm_password(password_field="password").
func newConfirmPassword(a Args) (Validator, error) {
	if err := a.Expect(1, "password_field"); err != nil {
		return nil, err
	}
	field, err := a.String(0, "password_field", "password")
	if err != nil {
		return nil, err
	}
	return confirmRule{field: field}, nil
}

func (r confirmRule) Validate(_ context.Context, value any, env *Env) error {
	other, ok := env.Sibling(r.field)
	if !ok || !reflect.DeepEqual(value, other) {
		return validation.NewError("validation_confirm_mismatch", "Passwords must match.")
	}
	return nil
}
