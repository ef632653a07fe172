// Package models defines the three entity kinds of the pagestack document
// model (Workspace, Page and Block) together with their typed identifiers
// and the partial-update types.
//
// The hierarchy is logical, not structural: a Page records the identifier of
// its Workspace and a Block records the identifier of its Page as plain
// strings. Nothing in the store enforces those edges; the service layer
// checks parent existence at creation time and reconstructs containment by
// filtering on the reference fields.
//
// Typed IDs wrap a UUID and marshal differently per surface: plain strings in
// JSON, tag-8 RecordIDs in CBOR for SurrealDB, and uuid columns through
// database/sql for PostgreSQL. Their Parse functions are the single gate that
// rejects malformed client-supplied identifiers before any store access.
package models
