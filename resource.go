package fieldschema

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// StoreType is the storage-level type a store declares for a field.
type StoreType string

// Store types the type check understands. Adapters map their native type
// names onto these and pass anything else through unchanged.
const (
	StoreText    StoreType = "text"
	StoreInteger StoreType = "integer"
)

// Store is the read-only persistence handle resource validators consult.
// Implementations live in the store packages.
type Store interface {
	// LookupByField returns the identity of a record in entity whose field
	// equals value, and whether one was found.
	LookupByField(ctx context.Context, entity, field string, value any) (id any, found bool, err error)
	// DeclaredType returns the storage type of field in entity.
	DeclaredType(ctx context.Context, entity, field string) (StoreType, error)
}

// ErrNoStore is the cause recorded when a resource validator runs without an
// injected store.
var ErrNoStore = errors.New("no store configured")

var upperFirst = cases.Upper(language.Und)

// title upper-cases the first letter of a field name for messages.
func title(field string) string {
	r, size := utf8.DecodeRuneInString(field)
	if r == utf8.RuneError {
		return field
	}
	return upperFirst.String(string(r)) + field[size:]
}

// storeCall runs fn against the injected store with the evaluation's
// timeout, converting every failure into the lookup-unavailable error.
func storeCall[T any](ctx context.Context, env *Env, fn func(context.Context, Store) (T, error)) (T, error) {
	var zero T
	if env == nil || env.Store == nil {
		return zero, lookupUnavailable(ErrNoStore)
	}
	v, err := guarded(ctx, env.timeout, func(ctx context.Context) (T, error) {
		return fn(ctx, env.Store)
	})
	if err != nil {
		if env.logger != nil {
			env.logger.WarnContext(ctx, "store lookup failed",
				slog.String("field", env.Field), slog.String("error", err.Error()))
		}
		return zero, lookupUnavailable(err)
	}
	return v, nil
}

type entityArgs struct {
	entity string
	column string
	idField string
}

func bindEntity(a Args) (entityArgs, error) {
	var (
		e   entityArgs
		err error
	)
	if e.entity, err = a.RequireString(0, "entity"); err != nil {
		return e, err
	}
	if e.column, err = a.String(-1, "column", ""); err != nil {
		return e, err
	}
	if e.idField, err = a.String(-1, "id_field", "id"); err != nil {
		return e, err
	}
	return e, nil
}

func (e entityArgs) columnFor(env *Env) string {
	if e.column != "" {
		return e.column
	}
	return env.Field
}

type checkTypeRule struct {
	entityArgs
}

// newCheckType binds check_type(entity, column=<field>).
func newCheckType(a Args) (Validator, error) {
	if err := a.Expect(1, "entity", "column"); err != nil {
		return nil, err
	}
	e, err := bindEntity(a)
	if err != nil {
		return nil, err
	}
	return checkTypeRule{e}, nil
}

func (r checkTypeRule) Validate(ctx context.Context, value any, env *Env) error {
	declared, err := storeCall(ctx, env, func(ctx context.Context, s Store) (StoreType, error) {
		return s.DeclaredType(ctx, r.entity, r.columnFor(env))
	})
	if err != nil {
		return err
	}
	var ok bool
	switch declared {
	case StoreText:
		_, ok = value.(string)
	case StoreInteger:
		_, ok = asInt64(value)
	default:
		return validation.NewError("validation_check_type_unknown",
			fmt.Sprintf("Unknown type for %s.", env.Field))
	}
	if !ok {
		return validation.NewError("validation_check_type_mismatch",
			fmt.Sprintf("%s must be of type %s.", title(env.Field), declared))
	}
	return nil
}

type checkNullRule struct{}

// newCheckNull binds check_null(). Absent, null, empty and whitespace-only
// values fail.
func newCheckNull(a Args) (Validator, error) {
	if err := a.Expect(0); err != nil {
		return nil, err
	}
	return checkNullRule{}, nil
}

func (checkNullRule) Validate(_ context.Context, value any, env *Env) error {
	empty := validation.NotNil.Validate(value) != nil
	if s, ok := value.(string); ok {
		empty = strings.TrimSpace(s) == ""
	}
	if empty {
		return validation.NewError("validation_check_null", fmt.Sprintf("%s cannot be empty.", title(env.Field)))
	}
	return nil
}
