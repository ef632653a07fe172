// Package pagestack is the application layer: configuration parsing, store
// selection, the HTTP server, and its JSON handlers.
//
// The binary in cmd/pagestack is a thin shim over [Main], which parses the
// command line into a [Command] and a [Config], connects the selected store
// backend, and dispatches. Two commands exist: "run" serves the API and
// "migrate" prepares the database schema.
package pagestack
