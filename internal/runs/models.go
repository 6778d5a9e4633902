package runs

import "time"

// Kind distinguishes the two resolution flows.
type Kind string

const (
	KindQualify  Kind = "qualify"
	KindDiscover Kind = "discover"
)

// Run is one recorded resolution invocation.
type Run struct {
	ID              string    `json:"id"`
	Kind            Kind      `json:"kind"`
	Label           string    `json:"label"`
	CreatedAt       time.Time `json:"created_at"`
	TotalRequested  int       `json:"total_requested"`
	ResolvedCount   int       `json:"resolved_count"`
	UnresolvedCount int       `json:"unresolved_count"`
	SuccessRate     float64   `json:"success_rate"`
	ResultsPath     string    `json:"results_path,omitempty"`
}

// Item is one identifier outcome within a run.
type Item struct {
	RunID      string `json:"run_id"`
	Identifier string `json:"identifier"`
	Symbol     string `json:"symbol,omitempty"`
	Resolved   bool   `json:"resolved"`
}
