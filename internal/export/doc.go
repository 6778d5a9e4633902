// Package export writes resolution reports to disk in the formats downstream
// tooling consumes: a full JSON report, a contracts CSV, a plain-text list of
// unresolved identifiers, and a minimal import CSV suitable for pasting into
// trading platform watchlist importers.
package export
