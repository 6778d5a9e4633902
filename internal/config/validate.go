package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateGateway(); err != nil {
		return err
	}
	if err := c.validateQuoteSearch(); err != nil {
		return err
	}
	if err := c.validateResolver(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateGateway() error {
	if c.Gateway.Port <= 0 || c.Gateway.Port > 65535 {
		return errors.New("gateway.port must be between 1 and 65535")
	}
	if c.Gateway.ClientID <= 0 {
		return errors.New("gateway.client_id must be positive")
	}
	if c.Gateway.RequestTimeout <= 0 {
		return errors.New("gateway.request_timeout must be positive (seconds)")
	}
	for _, port := range c.Gateway.ProbePorts {
		if port <= 0 || port > 65535 {
			return fmt.Errorf("gateway.probe_ports contains invalid port %d", port)
		}
	}
	return nil
}

func (c *Config) validateQuoteSearch() error {
	if c.QuoteSearch.RequestTimeout <= 0 {
		return errors.New("quote_search.request_timeout must be positive (seconds)")
	}
	return nil
}

func (c *Config) validateResolver() error {
	if err := ensurePositiveMap(map[string]int{
		"resolver.batch_size":         c.Resolver.BatchSize,
		"resolver.batch_pace_ms":      c.Resolver.BatchPaceMS,
		"resolver.workers":            c.Resolver.Workers,
		"resolver.search_throttle_ms": c.Resolver.SearchThrottleMS,
	}); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be debug, info, warn, or error, got %q", c.Logging.Level)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
