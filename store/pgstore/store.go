// Package pgstore implements [fieldschema.Store] on PostgreSQL through pgx.
// Entities are table names, optionally schema-qualified ("billing.invoices").
// Declared types come from information_schema.columns.
package pgstore

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Gobd/fieldschema"
	"github.com/Gobd/fieldschema/store"
	"github.com/jackc/pgx/v5"
)

// Querier is the subset of *pgxpool.Pool, *pgx.Conn and pgx.Tx the store
// needs.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store looks records up with single-row queries.
type Store struct {
	q        Querier
	schema   string
	idColumn string
}

// Option configures a [Store].
type Option func(*Store)

// WithSchema sets the schema for unqualified entities. The default is "public".
func WithSchema(schema string) Option {
	return func(s *Store) { s.schema = schema }
}

// WithIDColumn sets the column returned as a row's identity. The default is "id".
func WithIDColumn(col string) Option {
	return func(s *Store) { s.idColumn = col }
}

// FromConfig returns the options carried by cfg.
func FromConfig(cfg Config) []Option {
	var opts []Option
	if cfg.Schema != "" {
		opts = append(opts, WithSchema(cfg.Schema))
	}
	if cfg.IDColumn != "" {
		opts = append(opts, WithIDColumn(cfg.IDColumn))
	}
	return opts
}

// New returns a store querying through q.
func New(q Querier, opts ...Option) *Store {
	s := &Store{q: q, schema: "public", idColumn: "id"}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Store) split(entity string) (string, string) {
	if schema, table, ok := strings.Cut(entity, "."); ok {
		return schema, table
	}
	return s.schema, entity
}

// LookupByField implements [fieldschema.Store].
func (s *Store) LookupByField(ctx context.Context, entity, field string, value any) (any, bool, error) {
	schema, table := s.split(entity)
	sql := fmt.Sprintf("SELECT %s FROM %s WHERE %s = $1 LIMIT 1",
		pgx.Identifier{s.idColumn}.Sanitize(),
		pgx.Identifier{schema, table}.Sanitize(),
		pgx.Identifier{field}.Sanitize())

	var id any
	err := s.q.QueryRow(ctx, sql, store.Param(value)).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("pgstore: lookup %s.%s: %w", entity, field, err)
	}
	return id, true, nil
}

const declaredTypeSQL = `SELECT data_type FROM information_schema.columns
WHERE table_schema = $1 AND table_name = $2 AND column_name = $3`

// DeclaredType implements [fieldschema.Store]. Unknown columns have an
// empty type.
func (s *Store) DeclaredType(ctx context.Context, entity, field string) (fieldschema.StoreType, error) {
	schema, table := s.split(entity)
	var dataType string
	err := s.q.QueryRow(ctx, declaredTypeSQL, schema, table, field).Scan(&dataType)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("pgstore: declared type %s.%s: %w", entity, field, err)
	}
	return store.NativeType(dataType), nil
}
