// Package gormstore implements [fieldschema.Store] over any database gorm
// can open. Entities are table names; declared types come from the
// migrator's column types.
package gormstore

import (
	"context"
	"fmt"

	"github.com/Gobd/fieldschema"
	"github.com/Gobd/fieldschema/store"
	"gorm.io/gorm"
)

// Store looks rows up through gorm.
type Store struct {
	db       *gorm.DB
	idColumn string
}

// New returns a store over db. Rows are identified by idColumn, "id" when
// empty.
func New(db *gorm.DB, idColumn string) *Store {
	if idColumn == "" {
		idColumn = "id"
	}
	return &Store{db: db, idColumn: idColumn}
}

// LookupByField implements [fieldschema.Store].
func (s *Store) LookupByField(ctx context.Context, entity, field string, value any) (any, bool, error) {
	var rows []map[string]any
	err := s.db.WithContext(ctx).
		Table(entity).
		Select(s.idColumn).
		Where(map[string]any{field: store.Param(value)}).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, false, fmt.Errorf("gormstore: lookup %s.%s: %w", entity, field, err)
	}
	if len(rows) == 0 {
		return nil, false, nil
	}
	return rows[0][s.idColumn], true, nil
}

// DeclaredType implements [fieldschema.Store]. Unknown columns have an
// empty type.
func (s *Store) DeclaredType(ctx context.Context, entity, field string) (fieldschema.StoreType, error) {
	cols, err := s.db.WithContext(ctx).Migrator().ColumnTypes(entity)
	if err != nil {
		return "", fmt.Errorf("gormstore: column types of %s: %w", entity, err)
	}
	for _, c := range cols {
		if c.Name() == field {
			return store.NativeType(c.DatabaseTypeName()), nil
		}
	}
	return "", nil
}
