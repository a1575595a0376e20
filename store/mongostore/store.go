// Package mongostore implements [fieldschema.Store] on MongoDB. Entities are
// collection names. MongoDB has no declared column types, so the declared
// type of a field is the BSON type it holds in a document that has it.
package mongostore

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gobd/fieldschema"
	"github.com/Gobd/fieldschema/store"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

type finder interface {
	findOne(ctx context.Context, collection string, filter, projection bson.D) (bson.Raw, error)
}

type dbFinder struct {
	db *mongo.Database
}

func (f dbFinder) findOne(ctx context.Context, collection string, filter, projection bson.D) (bson.Raw, error) {
	raw, err := f.db.Collection(collection).
		FindOne(ctx, filter, options.FindOne().SetProjection(projection)).
		Raw()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	return raw, err
}

// Store looks documents up with FindOne.
type Store struct {
	f       finder
	idField string
}

// Option configures a [Store].
type Option func(*Store)

// WithIDField sets the field returned as a document's identity. The default
// is "_id".
func WithIDField(name string) Option {
	return func(s *Store) { s.idField = name }
}

// New returns a store over db.
func New(db *mongo.Database, opts ...Option) *Store {
	return newStore(dbFinder{db: db}, opts...)
}

func newStore(f finder, opts ...Option) *Store {
	s := &Store{f: f, idField: "_id"}
	for _, o := range opts {
		o(s)
	}
	return s
}

// LookupByField implements [fieldschema.Store]. Hex strings looked up by the
// identity field match ObjectIDs.
func (s *Store) LookupByField(ctx context.Context, entity, field string, value any) (any, bool, error) {
	v := store.Param(value)
	if str, ok := v.(string); ok && field == s.idField {
		if oid, err := bson.ObjectIDFromHex(str); err == nil {
			v = oid
		}
	}
	raw, err := s.f.findOne(ctx, entity, bson.D{{Key: field, Value: v}}, bson.D{{Key: s.idField, Value: 1}})
	if err != nil {
		return nil, false, fmt.Errorf("mongostore: lookup %s.%s: %w", entity, field, err)
	}
	if raw == nil {
		return nil, false, nil
	}
	return identity(raw.Lookup(s.idField)), true, nil
}

// DeclaredType implements [fieldschema.Store]. Fields no document holds
// have an empty type.
func (s *Store) DeclaredType(ctx context.Context, entity, field string) (fieldschema.StoreType, error) {
	raw, err := s.f.findOne(ctx, entity,
		bson.D{{Key: field, Value: bson.D{{Key: "$exists", Value: true}}}},
		bson.D{{Key: field, Value: 1}})
	if err != nil {
		return "", fmt.Errorf("mongostore: declared type %s.%s: %w", entity, field, err)
	}
	if raw == nil {
		return "", nil
	}
	return bsonType(raw.Lookup(field).Type), nil
}

func bsonType(t bson.Type) fieldschema.StoreType {
	switch t {
	case 0:
		return ""
	case bson.TypeString:
		return fieldschema.StoreText
	case bson.TypeInt32, bson.TypeInt64:
		return fieldschema.StoreInteger
	}
	return fieldschema.StoreType(t.String())
}

func identity(rv bson.RawValue) any {
	switch rv.Type {
	case bson.TypeObjectID:
		return rv.ObjectID().Hex()
	case bson.TypeString:
		return rv.StringValue()
	case bson.TypeInt32, bson.TypeInt64:
		i, _ := rv.AsInt64OK()
		return i
	case 0:
		return nil
	}
	return rv.String()
}
