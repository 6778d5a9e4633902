package config

import (
	"fmt"
	"strings"
)

func (c *Config) normalize() error {
	var err error
	if strings.TrimSpace(c.Paths.DataDir) == "" {
		c.Paths.DataDir = defaultDataDir
	}
	if c.Paths.DataDir, err = expandPath(c.Paths.DataDir); err != nil {
		return fmt.Errorf("paths.data_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		c.Paths.LogDir = defaultLogDir
	}
	if c.Paths.LogDir, err = expandPath(c.Paths.LogDir); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}

	c.Gateway.Host = strings.TrimSpace(c.Gateway.Host)
	if c.Gateway.Host == "" {
		c.Gateway.Host = defaultGatewayHost
	}
	if len(c.Gateway.ProbePorts) == 0 {
		c.Gateway.ProbePorts = append([]int{}, defaultProbePorts...)
	}

	c.QuoteSearch.BaseURL = strings.TrimRight(strings.TrimSpace(c.QuoteSearch.BaseURL), "/")
	if c.QuoteSearch.BaseURL == "" {
		c.QuoteSearch.BaseURL = defaultQuoteSearchBaseURL
	}

	c.Resolver.SecurityType = strings.ToUpper(strings.TrimSpace(c.Resolver.SecurityType))
	if c.Resolver.SecurityType == "" {
		c.Resolver.SecurityType = defaultSecurityType
	}
	c.Resolver.Exchange = strings.ToUpper(strings.TrimSpace(c.Resolver.Exchange))
	if c.Resolver.Exchange == "" {
		c.Resolver.Exchange = defaultExchange
	}
	c.Resolver.Currency = strings.ToUpper(strings.TrimSpace(c.Resolver.Currency))
	if c.Resolver.Currency == "" {
		c.Resolver.Currency = defaultCurrency
	}

	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	return nil
}
