// Package store loads cleaned records into a SQLite database file. The
// sales table is dropped and recreated on every run: the database is a
// per-run artifact, not an evolving store.
package store
