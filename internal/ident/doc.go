// Package ident implements the identifier resolution pipeline.
//
// Raw ticker strings and free-text company names are canonicalized by
// NormalizeIdentifiers, then resolved by one of two strategies sharing a
// request/result model: BatchResolver confirms tradable instruments against a
// stateful gateway session in paced fixed-size windows with composite-key
// candidate matching, while PoolResolver maps names to symbols through a
// bounded worker pool over a stateless quote-search endpoint, walking an
// ordered fallback-term chain per name. Aggregate turns either resolver's
// results into an exportable report.
//
// Every input identifier yields exactly one result. Per-window and per-task
// failures degrade to Unresolved and never abort a run; only failures to
// establish the external session are fatal.
package ident
