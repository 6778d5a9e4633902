// Package runs persists resolution run history backed by SQLite.
//
// Every qualify or discover invocation records one run row plus one item row
// per identifier, so past outcomes can be listed and re-inspected without
// re-querying any service.
package runs
