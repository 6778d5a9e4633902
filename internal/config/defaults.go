package config

const (
	defaultDataDir             = "~/.local/share/tickerforge/data"
	defaultLogDir              = "~/.local/share/tickerforge/logs"
	defaultGatewayHost         = "127.0.0.1"
	defaultGatewayPort         = 7497
	defaultGatewayClientID     = 1
	defaultGatewayTimeout      = 20
	defaultQuoteSearchBaseURL  = "https://query2.finance.yahoo.com"
	defaultQuoteSearchTimeout  = 10
	defaultBatchSize           = 50
	defaultBatchPaceMS         = 100
	defaultWorkers             = 10
	defaultSearchThrottleMS    = 100
	defaultSecurityType        = "STK"
	defaultExchange            = "SMART"
	defaultCurrency            = "USD"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
)

// Gateway and TWS workstations listen on different ports depending on
// live/paper mode; these are probed in order.
var defaultProbePorts = []int{7497, 7496, 4002, 4001}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			DataDir: defaultDataDir,
			LogDir:  defaultLogDir,
		},
		Gateway: Gateway{
			Host:           defaultGatewayHost,
			Port:           defaultGatewayPort,
			ClientID:       defaultGatewayClientID,
			RequestTimeout: defaultGatewayTimeout,
			ProbePorts:     append([]int{}, defaultProbePorts...),
		},
		QuoteSearch: QuoteSearch{
			BaseURL:        defaultQuoteSearchBaseURL,
			RequestTimeout: defaultQuoteSearchTimeout,
		},
		Resolver: Resolver{
			BatchSize:        defaultBatchSize,
			BatchPaceMS:      defaultBatchPaceMS,
			Workers:          defaultWorkers,
			SearchThrottleMS: defaultSearchThrottleMS,
			SecurityType:     defaultSecurityType,
			Exchange:         defaultExchange,
			Currency:         defaultCurrency,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
