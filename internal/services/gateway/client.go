package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tickerforge/internal/ident"
	"tickerforge/internal/services"
)

// contractDescriptor is the request shape the bridge expects per contract.
type contractDescriptor struct {
	Symbol   string `json:"symbol"`
	SecType  string `json:"sec_type"`
	Exchange string `json:"exchange"`
	Currency string `json:"currency"`
}

type qualifyRequest struct {
	ClientID  int                  `json:"client_id"`
	Contracts []contractDescriptor `json:"contracts"`
}

type qualifiedContract struct {
	Symbol          string `json:"symbol"`
	Exchange        string `json:"exchange"`
	PrimaryExchange string `json:"primary_exchange"`
	Currency        string `json:"currency"`
	SecType         string `json:"sec_type"`
	ContractID      string `json:"contract_id"`
}

type qualifyResponse struct {
	Contracts []qualifiedContract `json:"contracts"`
}

type statusResponse struct {
	Connected bool   `json:"connected"`
	Account   string `json:"account"`
}

// Client is a session over the broker gateway bridge. The session is stateful:
// Connect must succeed before QualifyContracts is usable, and the client is
// intended for a single caller thread, matching the batch resolver's model.
type Client struct {
	baseURL    string
	clientID   int
	httpClient *http.Client
	connected  bool
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout overrides the default request timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// New creates a gateway client. The session is not established until Connect.
func New(baseURL string, clientID int, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, services.Wrap(services.ErrConfiguration, "gateway", "new", "base url required", nil)
	}
	if _, err := url.Parse(baseURL); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "gateway", "new", "invalid base url", err)
	}
	if clientID <= 0 {
		return nil, services.Wrap(services.ErrConfiguration, "gateway", "new", "client id must be positive", nil)
	}
	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		clientID:   clientID,
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Connect verifies the bridge is reachable and reports a live broker
// connection. Failure here is fatal to the whole run.
func (c *Client) Connect(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/status", nil)
	if err != nil {
		return services.Wrap(services.ErrConnection, "gateway", "connect", "build request", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return services.Wrap(services.ErrConnection, "gateway", "connect", "bridge unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return services.Wrap(services.ErrConnection, "gateway", "connect", fmt.Sprintf("status endpoint returned %d", resp.StatusCode), nil)
	}

	var payload statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return services.Wrap(services.ErrConnection, "gateway", "connect", "decode status response", err)
	}
	if !payload.Connected {
		return services.Wrap(services.ErrConnection, "gateway", "connect", "bridge reports no broker session", nil)
	}

	c.connected = true
	return nil
}

// Connected reports whether Connect has succeeded.
func (c *Client) Connected() bool {
	return c.connected
}

// Disconnect releases the session on a best-effort basis.
func (c *Client) Disconnect(ctx context.Context) {
	if !c.connected {
		return
	}
	c.connected = false

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/disconnect", nil)
	if err != nil {
		return
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return
	}
	_ = resp.Body.Close()
}

// QualifyContracts submits one window of contract descriptors and returns the
// candidates the broker confirmed. Candidate order carries no meaning.
func (c *Client) QualifyContracts(ctx context.Context, requests []ident.ResolutionRequest) ([]ident.CandidateRecord, error) {
	if !c.connected {
		return nil, services.Wrap(services.ErrConnection, "gateway", "qualify", "session not established", nil)
	}
	if len(requests) == 0 {
		return nil, nil
	}

	payload := qualifyRequest{ClientID: c.clientID, Contracts: make([]contractDescriptor, 0, len(requests))}
	for _, req := range requests {
		payload.Contracts = append(payload.Contracts, contractDescriptor{
			Symbol:   req.RawIdentifier,
			SecType:  req.Context.SecurityType,
			Exchange: req.Context.Exchange,
			Currency: req.Context.Currency,
		})
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal qualify request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/contracts/qualify", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	requestStart := time.Now()
	resp, err := c.httpClient.Do(req)
	latency := time.Since(requestStart)
	if err != nil {
		return nil, fmt.Errorf("execute request (latency=%v): %w", latency, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("qualify returned %d (latency=%v)", resp.StatusCode, latency)
	}

	var decoded qualifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode qualify response: %w", err)
	}

	candidates := make([]ident.CandidateRecord, 0, len(decoded.Contracts))
	for _, contract := range decoded.Contracts {
		candidates = append(candidates, ident.CandidateRecord{
			Symbol:          contract.Symbol,
			Exchange:        contract.Exchange,
			PrimaryExchange: contract.PrimaryExchange,
			Currency:        contract.Currency,
			SecurityType:    contract.SecType,
			ExternalID:      contract.ContractID,
		})
	}
	return candidates, nil
}
