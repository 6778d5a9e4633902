// Package main hosts the tickerforge CLI entrypoint and command graph.
//
// The Cobra-based command tree translates terminal invocations into the two
// resolution flows (batch ticker qualification against the broker gateway
// bridge and concurrent company-name discovery), environment probing, run
// history inspection, and configuration scaffolding. It centralizes
// configuration resolution, logging setup, and the single-run data lock so
// subcommands can focus on user experience instead of wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
