package ident

import "strings"

// SecurityContext is the shared contract context applied to every request in
// one qualification run.
type SecurityContext struct {
	SecurityType string
	Exchange     string
	Currency     string
}

// ResolutionRequest describes one identifier awaiting resolution. Index
// preserves the original input position; the request is read-only after
// construction.
type ResolutionRequest struct {
	Index         int
	RawIdentifier string
	Context       SecurityContext
}

// CandidateRecord is one possible match returned by an external service. The
// service does not guarantee positional correspondence with requests, so
// binding a candidate to its request is the resolver's job.
type CandidateRecord struct {
	Symbol          string
	Exchange        string
	Currency        string
	SecurityType    string
	ExternalID      string
	PrimaryExchange string
}

// DisplayExchange returns the primary exchange when the service reported one,
// falling back to the requested exchange.
func (c CandidateRecord) DisplayExchange() string {
	if strings.TrimSpace(c.PrimaryExchange) != "" {
		return c.PrimaryExchange
	}
	return c.Exchange
}

// Status is the terminal state of a resolution result.
type Status string

const (
	StatusResolved   Status = "resolved"
	StatusUnresolved Status = "unresolved"
)

// ResolutionResult binds a request to at most one candidate. Exactly one
// result exists per distinct normalized identifier; it is written once by the
// resolver and never revisited.
type ResolutionResult struct {
	Request   ResolutionRequest
	Candidate *CandidateRecord
	Status    Status
}

// BuildRequests creates read-only requests from normalized identifiers,
// preserving input order.
func BuildRequests(identifiers []string, sctx SecurityContext) []ResolutionRequest {
	requests := make([]ResolutionRequest, len(identifiers))
	for i, identifier := range identifiers {
		requests[i] = ResolutionRequest{Index: i, RawIdentifier: identifier, Context: sctx}
	}
	return requests
}

// matchKey is the composite key binding a candidate to its request.
type matchKey struct {
	symbol       string
	currency     string
	securityType string
}

func requestKey(req ResolutionRequest) matchKey {
	return matchKey{
		symbol:       strings.ToUpper(strings.TrimSpace(req.RawIdentifier)),
		currency:     strings.ToUpper(strings.TrimSpace(req.Context.Currency)),
		securityType: strings.ToUpper(strings.TrimSpace(req.Context.SecurityType)),
	}
}

func candidateKey(candidate CandidateRecord) matchKey {
	return matchKey{
		symbol:       strings.ToUpper(strings.TrimSpace(candidate.Symbol)),
		currency:     strings.ToUpper(strings.TrimSpace(candidate.Currency)),
		securityType: strings.ToUpper(strings.TrimSpace(candidate.SecurityType)),
	}
}
