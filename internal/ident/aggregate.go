package ident

import (
	"sort"
	"time"
)

// ResolvedRecord is one exportable resolved entry.
type ResolvedRecord struct {
	Identifier   string `json:"identifier"`
	Symbol       string `json:"symbol"`
	Exchange     string `json:"exchange,omitempty"`
	Currency     string `json:"currency,omitempty"`
	ExternalID   string `json:"external_id,omitempty"`
	SecurityType string `json:"security_type,omitempty"`
}

// Report is the aggregate outcome of one resolution run.
type Report struct {
	Success        bool             `json:"success"`
	TotalRequested int              `json:"total_requested"`
	Resolved       []ResolvedRecord `json:"resolved"`
	Unresolved     []string         `json:"unresolved"`
	CreatedAt      time.Time        `json:"created_at"`
}

// SuccessRate returns resolved/(resolved+unresolved), defined as 0 for an
// empty run rather than a division error.
func (r Report) SuccessRate() float64 {
	total := len(r.Resolved) + len(r.Unresolved)
	if total == 0 {
		return 0
	}
	return float64(len(r.Resolved)) / float64(total)
}

// Aggregate partitions results into resolved and unresolved entries, ordered
// by the original input index so downstream exports are reproducible.
func Aggregate(results []ResolutionResult, now time.Time) Report {
	ordered := make([]ResolutionResult, len(results))
	copy(ordered, results)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Request.Index < ordered[j].Request.Index
	})

	report := Report{
		TotalRequested: len(ordered),
		Resolved:       make([]ResolvedRecord, 0, len(ordered)),
		Unresolved:     make([]string, 0),
		CreatedAt:      now.UTC(),
	}

	for _, result := range ordered {
		if result.Status != StatusResolved || result.Candidate == nil {
			report.Unresolved = append(report.Unresolved, result.Request.RawIdentifier)
			continue
		}
		candidate := result.Candidate
		report.Resolved = append(report.Resolved, ResolvedRecord{
			Identifier:   result.Request.RawIdentifier,
			Symbol:       candidate.Symbol,
			Exchange:     candidate.DisplayExchange(),
			Currency:     candidate.Currency,
			ExternalID:   candidate.ExternalID,
			SecurityType: candidate.SecurityType,
		})
	}

	report.Success = len(report.Resolved) > 0
	return report
}
