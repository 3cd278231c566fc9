// Package ingest reads raw transaction rows from a delimited file into an
// in-memory table. The source data may be Latin-1 encoded; fields that are
// not valid UTF-8 are transparently decoded rather than rejected.
package ingest
