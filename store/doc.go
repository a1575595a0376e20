// Package store holds the [fieldschema.Store] implementations resource
// validators consult, plus helpers shared by the database-backed adapters in
// its sub-packages.
//
// [Memory] is a process-local store for tests and small deployments.
// [TypeCache] wraps any store and keeps declared column types in Redis:
//
//	pg, _ := pgstore.New(pool)
//	st := store.NewTypeCache(pg, rdb, store.WithTTL(time.Hour))
//	report := schema.Evaluate(ctx, rec, fieldschema.WithStore(st))
//
// Sub-packages:
//
//   - pgstore: PostgreSQL through pgx
//   - mongostore: MongoDB collections
//   - gormstore: any database gorm can open
//   - osstore: OpenSearch indices
package store
