package ident

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"tickerforge/internal/logging"
)

const (
	// DefaultBatchSize is the number of requests sent per gateway call.
	DefaultBatchSize = 50
	// DefaultBatchPace is the fixed pause between consecutive window calls.
	// Coarse backpressure against the gateway's rate limits, not error backoff.
	DefaultBatchPace = 100 * time.Millisecond
)

// ContractQualifier is the subset of the gateway session used by the batch
// resolver. Implementations receive every descriptor in one window and return
// zero or more candidates in arbitrary order.
type ContractQualifier interface {
	QualifyContracts(ctx context.Context, requests []ResolutionRequest) ([]CandidateRecord, error)
}

// BatchResolver resolves normalized identifiers against a stateful session in
// fixed-size windows. It is single-threaded: one caller issues all window
// calls in sequence and shares one session for the resolver's lifetime.
type BatchResolver struct {
	session   ContractQualifier
	batchSize int
	pace      time.Duration
	logger    *slog.Logger
}

// BatchOption configures a BatchResolver.
type BatchOption func(*BatchResolver)

// WithBatchSize overrides the window size.
func WithBatchSize(size int) BatchOption {
	return func(r *BatchResolver) {
		if size > 0 {
			r.batchSize = size
		}
	}
}

// WithBatchPace overrides the inter-window pause.
func WithBatchPace(pace time.Duration) BatchOption {
	return func(r *BatchResolver) {
		if pace >= 0 {
			r.pace = pace
		}
	}
}

// WithBatchLogger attaches a logger.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(r *BatchResolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewBatchResolver creates a resolver over an established session.
func NewBatchResolver(session ContractQualifier, opts ...BatchOption) (*BatchResolver, error) {
	if session == nil {
		return nil, errors.New("session is required")
	}
	resolver := &BatchResolver{
		session:   session,
		batchSize: DefaultBatchSize,
		pace:      DefaultBatchPace,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(resolver)
	}
	return resolver, nil
}

// Resolve qualifies every identifier and returns exactly one result per input,
// in input order. A failed window call degrades that window's requests to
// Unresolved and the remaining windows proceed; only context cancellation
// surfaces as an error.
func (r *BatchResolver) Resolve(ctx context.Context, identifiers []string, sctx SecurityContext) ([]ResolutionResult, error) {
	requests := BuildRequests(identifiers, sctx)
	results := make([]ResolutionResult, len(requests))

	for start := 0; start < len(requests); start += r.batchSize {
		end := min(start+r.batchSize, len(requests))
		window := requests[start:end]

		candidates, err := r.session.QualifyContracts(ctx, window)
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			// Degrade the whole window; downstream cannot distinguish
			// "not found" from "call failed" at this layer.
			r.logger.Warn("window qualification failed",
				logging.Error(err),
				logging.Int("window_start", start),
				logging.Int("window_size", len(window)),
				logging.String(logging.FieldEventType, "qualify_window_failed"),
			)
			for i, req := range window {
				results[start+i] = ResolutionResult{Request: req, Status: StatusUnresolved}
			}
			continue
		}

		matchWindow(window, candidates, results[start:end])

		r.logger.Debug("window resolved",
			logging.Int("window_start", start),
			logging.Int("window_size", len(window)),
			logging.Int("candidates", len(candidates)),
		)

		if end < len(requests) && r.pace > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(r.pace):
			}
		}
	}

	return results, nil
}

// matchWindow binds candidates to requests by composite key. The scan is
// linear with first-match-wins; a claimed candidate is never bound to a second
// request in the same window.
func matchWindow(window []ResolutionRequest, candidates []CandidateRecord, out []ResolutionResult) {
	claimed := make([]bool, len(candidates))
	for i, req := range window {
		key := requestKey(req)
		var match *CandidateRecord
		for j := range candidates {
			if claimed[j] {
				continue
			}
			if candidateKey(candidates[j]) == key {
				claimed[j] = true
				candidate := candidates[j]
				match = &candidate
				break
			}
		}
		status := StatusUnresolved
		if match != nil {
			status = StatusResolved
		}
		out[i] = ResolutionResult{Request: req, Candidate: match, Status: status}
	}
}
