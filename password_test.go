package fieldschema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPassword(t *testing.T) {
	tests := []struct {
		name  string
		args  Args
		value any
		want  string
	}{
		{"defaults ok", Args{}, "abcdefg!", ""},
		{"no special char", Args{}, "12345678", "Password must contain at least one special character."},
		{"too short", Args{}, "a!b", "Password must be between 8 and 16 characters long."},
		{"too long", Args{}, "abcdefghijklmnop!", "Password must be between 8 and 16 characters long."},
		{"empty", Args{}, "", "Password must be between 8 and 16 characters long."},
		{"not a string", Args{}, 12345678, "Password must be a string."},
		{"counts runes", Args{}, "пароль-пароль", ""},
		{"special not required", Args{Keyword: map[string]any{"require_special_char": false}}, "12345678", ""},
		{"positional bounds", Args{Positional: []any{4, 6}}, "ab#d", ""},
		{"positional bounds too long", Args{Positional: []any{4, 6}}, "ab#defg", "Password must be between 4 and 6 characters long."},
		{"space is special", Args{}, "pass word", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			val, err := newPassword(tt.args)
			require.NoError(t, err)
			require.Equal(t, tt.want, check(val, tt.value))
		})
	}
}

func TestPassword_BadArgs(t *testing.T) {
	_, err := newPassword(Args{Positional: []any{10, 5}})
	require.ErrorIs(t, err, ErrInvalidArguments)

	_, err = newPassword(Args{Keyword: map[string]any{"require_special_char": "sometimes"}})
	require.ErrorIs(t, err, ErrInvalidArguments)
}
