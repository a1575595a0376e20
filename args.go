package fieldschema

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
)

// ErrInvalidArguments is returned when a rule's arguments do not fit its validator.
var ErrInvalidArguments = errors.New("invalid validator arguments")

// Args are the positional and keyword arguments of one rule. Factories read
// them by position with a keyword fallback, so `age(18, 65)` and
// `age(min_age=18, max_age=65)` bind the same way.
type Args struct {
	Positional []any
	Keyword    map[string]any
}

func argsOf(r Rule) Args {
	return Args{Positional: r.Args, Keyword: r.Kwargs}
}

// Expect rejects more than maxPositional positional arguments and any keyword
// not listed in keys.
func (a Args) Expect(maxPositional int, keys ...string) error {
	if len(a.Positional) > maxPositional {
		return fmt.Errorf("%w: takes at most %d positional arguments, got %d",
			ErrInvalidArguments, maxPositional, len(a.Positional))
	}
	for k := range a.Keyword {
		if !slices.Contains(keys, k) {
			return fmt.Errorf("%w: unexpected keyword %q", ErrInvalidArguments, k)
		}
	}
	for i, k := range keys {
		if _, ok := a.Keyword[k]; ok && i < len(a.Positional) {
			return fmt.Errorf("%w: %q given both by position and keyword", ErrInvalidArguments, k)
		}
	}
	return nil
}

func (a Args) lookup(pos int, key string) (any, bool) {
	if pos >= 0 && pos < len(a.Positional) {
		return a.Positional[pos], true
	}
	v, ok := a.Keyword[key]
	return v, ok
}

// Int binds an integer argument at pos or key, defaulting to def.
func (a Args) Int(pos int, key string, def int) (int, error) {
	v, ok := a.lookup(pos, key)
	if !ok {
		return def, nil
	}
	i, ok := toInt(v)
	if !ok {
		return 0, fmt.Errorf("%w: %q must be an integer, got %T", ErrInvalidArguments, key, v)
	}
	return i, nil
}

// Int64 is like Int for 64-bit quantities such as byte sizes.
func (a Args) Int64(pos int, key string, def int64) (int64, error) {
	v, ok := a.lookup(pos, key)
	if !ok {
		return def, nil
	}
	if i, ok := asInt64(v); ok {
		return i, nil
	}
	if f, ok := v.(float64); ok && f == math.Trunc(f) {
		return int64(f), nil
	}
	return 0, fmt.Errorf("%w: %q must be an integer, got %T", ErrInvalidArguments, key, v)
}

// String binds a string argument at pos or key, defaulting to def.
func (a Args) String(pos int, key, def string) (string, error) {
	v, ok := a.lookup(pos, key)
	if !ok {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: %q must be a string, got %T", ErrInvalidArguments, key, v)
	}
	return s, nil
}

// Bool binds a boolean argument at pos or key, defaulting to def.
func (a Args) Bool(pos int, key string, def bool) (bool, error) {
	v, ok := a.lookup(pos, key)
	if !ok {
		return def, nil
	}
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		if p, err := strconv.ParseBool(b); err == nil {
			return p, nil
		}
	}
	return false, fmt.Errorf("%w: %q must be a boolean, got %T", ErrInvalidArguments, key, v)
}

// Strings binds a list of strings at pos or key. A single string is treated
// as a one-element list.
func (a Args) Strings(pos int, key string) ([]string, error) {
	v, ok := a.lookup(pos, key)
	if !ok {
		return nil, nil
	}
	switch l := v.(type) {
	case string:
		return []string{l}, nil
	case []string:
		return slices.Clone(l), nil
	case []any:
		out := make([]string, 0, len(l))
		for _, e := range l {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %q must hold strings, got %T", ErrInvalidArguments, key, e)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %q must be a list of strings, got %T", ErrInvalidArguments, key, v)
}

// RequireString is like String but fails when the argument is missing or empty.
func (a Args) RequireString(pos int, key string) (string, error) {
	s, err := a.String(pos, key, "")
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", fmt.Errorf("%w: %q is required", ErrInvalidArguments, key)
	}
	return s, nil
}

// toInt accepts integer kinds, json.Number and the integral float64 values
// JSON schema documents decode to.
func toInt(v any) (int, bool) {
	if i, ok := asInt64(v); ok {
		return int(i), true
	}
	if f, ok := v.(float64); ok && f == math.Trunc(f) {
		return int(f), true
	}
	return 0, false
}
