// Package journal persists batch runs and per-file outcomes in SQLite so
// operators can review what a run renamed and tagged after the fact.
//
// The schema is embedded and versioned through a schema_version table; a
// database written by an incompatible version is rejected with
// ErrSchemaMismatch rather than migrated in place.
package journal
