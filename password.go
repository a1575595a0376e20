package fieldschema

import (
	"context"
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var specialCharRegexp = regexp.MustCompile(`[^\p{L}\p{N}]`)

type passwordRule struct {
	min, max    int
	special     bool
	lengthError validation.Error
}

// newPassword binds password(min_length=8, max_length=16, require_special_char=true).
func newPassword(a Args) (Validator, error) {
	if err := a.Expect(3, "min_length", "max_length", "require_special_char"); err != nil {
		return nil, err
	}
	minLen, err := a.Int(0, "min_length", 8)
	if err != nil {
		return nil, err
	}
	maxLen, err := a.Int(1, "max_length", 16)
	if err != nil {
		return nil, err
	}
	special, err := a.Bool(2, "require_special_char", true)
	if err != nil {
		return nil, err
	}
	if minLen < 0 || maxLen < minLen {
		return nil, fmt.Errorf("%w: password length range %d..%d", ErrInvalidArguments, minLen, maxLen)
	}
	return passwordRule{
		min:     minLen,
		max:     maxLen,
		special: special,
		lengthError: validation.NewError("validation_password_length",
			fmt.Sprintf("Password must be between %d and %d characters long.", minLen, maxLen)),
	}, nil
}

func (r passwordRule) Validate(_ context.Context, value any, _ *Env) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_password_not_string", "Password must be a string.")
	}
	if n := utf8.RuneCountInString(s); n < r.min || n > r.max {
		return r.lengthError
	}
	if r.special && !specialCharRegexp.MatchString(s) {
		return validation.NewError("validation_password_special_char",
			"Password must contain at least one special character.")
	}
	return nil
}

func (r passwordRule) Describe(prop *openapi3.Schema) {
	prop.WithMinLength(int64(r.min)).WithMaxLength(int64(r.max))
	prop.Format = "password"
	if r.special {
		appendDescription(prop, "Must contain at least one special character.")
	}
}
