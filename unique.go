package fieldschema

import (
	"context"
	"fmt"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type lookup struct {
	id    any
	found bool
}

func lookupField(ctx context.Context, env *Env, entity, column string, value any) (lookup, error) {
	return storeCall(ctx, env, func(ctx context.Context, s Store) (lookup, error) {
		id, found, err := s.LookupByField(ctx, entity, column, value)
		return lookup{id: id, found: found}, err
	})
}

type uniqueRule struct {
	entityArgs
}

// newCheckUnique binds check_unique(entity, column=<field>, id_field="id").
// The record being validated may hold the value itself: a match whose
// identity equals the record's id_field value is not a conflict.
func newCheckUnique(a Args) (Validator, error) {
	if err := a.Expect(1, "entity", "column", "id_field"); err != nil {
		return nil, err
	}
	e, err := bindEntity(a)
	if err != nil {
		return nil, err
	}
	return uniqueRule{e}, nil
}

func (r uniqueRule) Validate(ctx context.Context, value any, env *Env) error {
	l, err := lookupField(ctx, env, r.entity, r.columnFor(env), value)
	if err != nil {
		return err
	}
	if !l.found {
		return nil
	}
	if self, ok := env.Sibling(r.idField); ok && sameIdentity(l.id, self) {
		return nil
	}
	return validation.NewError("validation_check_unique", fmt.Sprintf("%s already exists.", title(env.Field)))
}

func (r uniqueRule) Describe(prop *openapi3.Schema) {
	appendDescription(prop, fmt.Sprintf("Unique in %s.", r.entity))
}

type existenceRule struct {
	entityArgs
}

// newCheckExistence binds check_existence(entity, id_field="id"): the value
// must be the identity of a record in entity.
func newCheckExistence(a Args) (Validator, error) {
	if err := a.Expect(1, "entity", "id_field"); err != nil {
		return nil, err
	}
	e, err := bindEntity(a)
	if err != nil {
		return nil, err
	}
	return existenceRule{e}, nil
}

func (r existenceRule) Validate(ctx context.Context, value any, env *Env) error {
	l, err := lookupField(ctx, env, r.entity, r.idField, value)
	if err != nil {
		return err
	}
	if !l.found {
		return validation.NewError("validation_check_existence", fmt.Sprintf("%s does not exist.", title(env.Field)))
	}
	return nil
}
