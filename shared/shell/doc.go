// Package shell provides the observability plumbing shared by all query handlers.
//
// Query handlers are the "imperative shell" around the pure projection functions:
// they fetch from the author store, hand the rows to a pure Project function,
// and instrument both phases for observability.
// Every collaborator is optional, nil collectors and loggers are skipped.
package shell
