package fieldschema

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func bind(t *testing.T, name string, args ...any) Validator {
	t.Helper()
	k := KindOf(name)
	require.NotEqual(t, KindCustom, k, name)
	val, err := kinds[k].factory(Args{Positional: args})
	require.NoError(t, err)
	return val
}

func check(v Validator, value any) string {
	err := v.Validate(context.Background(), value, &Env{Field: "field"})
	if err == nil {
		return ""
	}
	return err.Error()
}

func TestStringValidators(t *testing.T) {
	tests := []struct {
		rule  string
		value any
		want  string
	}{
		{"email", "alice@example.com", ""},
		{"email", "first.last-x@sub.example.co", ""},
		{"email", "not-an-email", "Invalid email address."},
		{"email", "a@b", "Invalid email address."},
		{"email", "", "Invalid email address."},
		{"email", 42, "Invalid email address."},

		{"name", "Alice", ""},
		{"name", "   ", "Invalid name."},
		{"name", "", "Invalid name."},
		{"name", nil, "Invalid name."},

		{"phone", "+14155552671", ""},
		{"phone", "123456789", ""},
		{"phone", "12345", "Invalid phone number."},
		{"phone", "555-1234-567", "Invalid phone number."},

		{"zipcode", "12345", ""},
		{"zipcode", "12345-6789", ""},
		{"zipcode", "1234", "Invalid zipcode."},
		{"zipcode", "12345-", "Invalid zipcode."},

		{"date", "2024-02-29", ""},
		{"date", "2023-02-30", "Invalid date."},
		{"date", "2024/01/01", "Invalid date."},
		{"date", "", "Invalid date."},

		{"credit_card", "4111 1111 1111 1111", ""},
		{"credit_card", "4111-1111-1111-1111", ""},
		{"credit_card", "4111111111111111", ""},
		{"credit_card", "4111", "Invalid credit card number."},

		{"ssn", "123-45-6789", ""},
		{"ssn", "123456789", "Invalid social security number."},

		{"url", "https://example.com/path?q=1", ""},
		{"url", "example.com", "Invalid URL."},
		{"url", "mailto:someone@example.com", "Invalid URL."},

		{"ip_address", "192.168.0.1", ""},
		{"ip_address", "1.2.3", "Invalid IP address."},
		{"ip_address", "a.b.c.d", "Invalid IP address."},

		{"hex_color", "#fff", ""},
		{"hex_color", "#A1B2C3", ""},
		{"hex_color", "fff", "Invalid hexadecimal color code."},
		{"hex_color", "#ggg", "Invalid hexadecimal color code."},

		{"latitude", "45.5", ""},
		{"latitude", "-90", ""},
		{"latitude", "91", "Invalid latitude."},
		{"latitude", "north", "Invalid latitude."},

		{"longitude", "-122.4194", ""},
		{"longitude", "180", ""},
		{"longitude", "181", "Invalid longitude."},

		{"json", `{"a":[1,2]}`, ""},
		{"json", "asdad", "Invalid JSON."},
		{"json", "", "Invalid JSON."},
		{"json", 5, "JSON input must be a string."},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s/%v", tt.rule, tt.value), func(t *testing.T) {
			require.Equal(t, tt.want, check(bind(t, tt.rule), tt.value))
		})
	}
}

func TestDateRange(t *testing.T) {
	val, err := newDate(Args{Keyword: map[string]any{"min": "2020-01-01", "max": "2020-12-31"}})
	require.NoError(t, err)
	require.Equal(t, "", check(val, "2020-06-01"))
	require.Equal(t, "Date is out of range.", check(val, "2021-01-01"))

	val, err = newDate(Args{Positional: []any{"02/01/2006"}})
	require.NoError(t, err)
	require.Equal(t, "", check(val, "31/12/2024"))
	require.Equal(t, "Invalid date.", check(val, "2024-12-31"))

	_, err = newDate(Args{Keyword: map[string]any{"min": "yesterday"}})
	require.ErrorIs(t, err, ErrInvalidArguments)
}

func TestConfirmPassword(t *testing.T) {
	val := bind(t, "confirm_password")
	env := &Env{Field: "confirm", Record: Record{"password": "s3cret!", "confirm": "s3cret!"}}
	require.NoError(t, val.Validate(context.Background(), "s3cret!", env))
	require.EqualError(t, val.Validate(context.Background(), "other", env), "Passwords must match.")

	val = bind(t, "confirm", "pw")
	env = &Env{Field: "confirm", Record: Record{"confirm": "x"}}
	require.EqualError(t, val.Validate(context.Background(), "x", env), "Passwords must match.")
}
