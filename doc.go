// Package pagestack is a hierarchical note-taking backend with a three-level
// data model: workspaces contain pages, pages contain ordered blocks.
//
// The hierarchy is held together by soft references. A page carries its
// workspace's identifier as a plain string and a block carries its page's
// identifier the same way; nothing at the storage level enforces the edges.
// Parent existence is checked once at creation time, page deletion cascades
// to the page's blocks, and sibling blocks are ordered by a client-managed
// position number with insertion order breaking ties.
//
// # Architecture
//
//   - [github.com/pagestack/pagestack/pkg/models]: entities and typed identifiers
//   - [github.com/pagestack/pagestack/pkg/store]: the persistence interface with
//     SurrealDB and PostgreSQL backends
//   - [github.com/pagestack/pagestack/pkg/notes]: the hierarchy rules, applied
//     on top of whatever store is injected
//   - [github.com/pagestack/pagestack/pkg/pagestack]: configuration, commands,
//     and the HTTP server
//   - [github.com/pagestack/pagestack/pkg/client]: a typed client for the API
//
// The binary lives in cmd/pagestack and supports two commands: "run" starts
// the server and "migrate" prepares the database schema.
package pagestack
