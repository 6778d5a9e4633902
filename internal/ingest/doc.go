// Package ingest loads identifier lists from watchlist files.
//
// Three formats are supported, selected by file extension: plain text with one
// identifier per line, CSV with a ticker or symbol column, and JSON carrying
// either a flat list of identifiers or a mapping of display names to
// identifiers. Loading only collects raw entries; normalization happens
// downstream.
package ingest
