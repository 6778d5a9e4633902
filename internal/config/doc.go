// Package config loads, normalizes, and validates tickerforge configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes every knob the
// CLI needs: gateway connection details, quote-search endpoint, resolver
// sizing and pacing, and log output settings.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical uppercase contract context, and clear validation
// errors.
package config
