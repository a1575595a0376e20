package store

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/Gobd/fieldschema"
)

// Memory is an in-process store. Rows are matched by the textual form of
// their values so an int 7 and a json.Number "7" find the same row.
type Memory struct {
	mu     sync.RWMutex
	idKey  string
	tables map[string]*memTable
}

type memTable struct {
	types map[string]fieldschema.StoreType
	rows  []map[string]any
}

// NewMemory returns an empty store whose rows are identified by their "id"
// key.
func NewMemory() *Memory {
	return &Memory{idKey: "id", tables: map[string]*memTable{}}
}

func (m *Memory) table(entity string) *memTable {
	t, ok := m.tables[entity]
	if !ok {
		t = &memTable{types: map[string]fieldschema.StoreType{}}
		m.tables[entity] = t
	}
	return t
}

// Declare sets the storage type of field in entity.
func (m *Memory) Declare(entity, field string, t fieldschema.StoreType) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.table(entity).types[field] = t
}

// Insert appends a copy of row to entity.
func (m *Memory) Insert(entity string, row map[string]any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := m.table(entity)
	t.rows = append(t.rows, maps.Clone(row))
}

// LookupByField implements [fieldschema.Store].
func (m *Memory) LookupByField(ctx context.Context, entity, field string, value any) (any, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tables[entity]
	if !ok {
		return nil, false, nil
	}
	want := fmt.Sprint(value)
	for _, row := range t.rows {
		v, ok := row[field]
		if ok && v != nil && fmt.Sprint(v) == want {
			return row[m.idKey], true, nil
		}
	}
	return nil, false, nil
}

// DeclaredType implements [fieldschema.Store]. Undeclared fields have an
// empty type.
func (m *Memory) DeclaredType(ctx context.Context, entity, field string) (fieldschema.StoreType, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.tables[entity]; ok {
		return t.types[field], nil
	}
	return "", nil
}
