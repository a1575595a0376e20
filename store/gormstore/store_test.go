package gormstore

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/Gobd/fieldschema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type user struct {
	ID    int64 `gorm:"primaryKey"`
	Email string
	Age   int
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := Open(Config{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "test.db")})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&user{}))
	require.NoError(t, db.Create(&user{ID: 7, Email: "taken@example.com", Age: 40}).Error)
	return New(db, "")
}

func TestLookupByField(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	id, found, err := s.LookupByField(ctx, "users", "email", "taken@example.com")
	require.NoError(t, err)
	assert.True(t, found)
	assert.EqualValues(t, 7, id)

	_, found, err = s.LookupByField(ctx, "users", "age", json.Number("40"))
	require.NoError(t, err)
	assert.True(t, found)

	_, found, err = s.LookupByField(ctx, "users", "email", "free@example.com")
	require.NoError(t, err)
	assert.False(t, found)

	_, _, err = s.LookupByField(ctx, "no_such_table", "email", "x")
	require.Error(t, err)
}

func TestDeclaredType(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	typ, err := s.DeclaredType(ctx, "users", "email")
	require.NoError(t, err)
	assert.Equal(t, fieldschema.StoreText, typ)

	typ, err = s.DeclaredType(ctx, "users", "age")
	require.NoError(t, err)
	assert.Equal(t, fieldschema.StoreInteger, typ)

	typ, err = s.DeclaredType(ctx, "users", "nickname")
	require.NoError(t, err)
	assert.Empty(t, typ)
}

func TestWithSchema(t *testing.T) {
	s := fieldschema.MustSchema([]*fieldschema.FieldRules{
		fieldschema.Field("email", fieldschema.TypeString, fieldschema.Use("unique", "").With("entity", "users")),
		fieldschema.Field("owner_id", fieldschema.Use("check_existence", "").With("entity", "users")),
	}, fieldschema.WithMode(fieldschema.CollectAll))
	st := fieldschema.WithStore(newTestStore(t))

	r := s.Evaluate(context.Background(), fieldschema.Record{"email": "taken@example.com", "owner_id": 8}, st)
	assert.Equal(t, []string{"Email already exists."}, r.Messages("email"))
	assert.Equal(t, []string{"Owner_id does not exist."}, r.Messages("owner_id"))

	r = s.Evaluate(context.Background(), fieldschema.Record{"id": 7, "email": "taken@example.com", "owner_id": 7}, st)
	assert.True(t, r.Valid())
}

func TestDialector(t *testing.T) {
	for _, d := range []string{"sqlite", "mysql", "postgres", ""} {
		_, err := Dialector(Config{Driver: d, DSN: "x"})
		require.NoError(t, err, d)
	}
	_, err := Dialector(Config{Driver: "oracle"})
	require.ErrorIs(t, err, ErrUnknownDriver)
}
