// Package preflight verifies the environment before a resolution run: data
// directories are writable, the broker gateway bridge answers on one of its
// candidate ports, and the quote-search endpoint is reachable.
package preflight
