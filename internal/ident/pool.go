package ident

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"tickerforge/internal/logging"
	"tickerforge/internal/services/quotesearch"
)

const (
	// DefaultWorkers is the bounded worker-pool size for name discovery.
	DefaultWorkers = 10
	// DefaultSearchThrottle is the fixed per-task delay before querying.
	// A self-throttle against the search endpoint, not adaptive backoff.
	DefaultSearchThrottle = 100 * time.Millisecond
)

// QuoteSearcher is the subset of the quote-search client used by the pool
// resolver. The implementation must be safe for use by all workers
// concurrently.
type QuoteSearcher interface {
	Search(ctx context.Context, term string) ([]quotesearch.Quote, error)
}

// PoolResolver resolves free-text company names to ticker symbols with a
// bounded worker pool over a stateless search service. Tasks for every name
// are submitted up front and drained as they complete, not in submission
// order.
type PoolResolver struct {
	searcher QuoteSearcher
	workers  int
	throttle time.Duration
	logger   *slog.Logger

	completed atomic.Int64
	found     atomic.Int64
}

// PoolOption configures a PoolResolver.
type PoolOption func(*PoolResolver)

// WithWorkers overrides the worker-pool size.
func WithWorkers(workers int) PoolOption {
	return func(r *PoolResolver) {
		if workers > 0 {
			r.workers = workers
		}
	}
}

// WithSearchThrottle overrides the per-task self-throttle delay.
func WithSearchThrottle(throttle time.Duration) PoolOption {
	return func(r *PoolResolver) {
		if throttle >= 0 {
			r.throttle = throttle
		}
	}
}

// WithPoolLogger attaches a logger.
func WithPoolLogger(logger *slog.Logger) PoolOption {
	return func(r *PoolResolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewPoolResolver creates a resolver over a concurrency-safe searcher.
func NewPoolResolver(searcher QuoteSearcher, opts ...PoolOption) (*PoolResolver, error) {
	if searcher == nil {
		return nil, errors.New("searcher is required")
	}
	resolver := &PoolResolver{
		searcher: searcher,
		workers:  DefaultWorkers,
		throttle: DefaultSearchThrottle,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(resolver)
	}
	return resolver, nil
}

// Progress is a point-in-time snapshot of the pool's completion counters. It
// may be read concurrently with Resolve; reads never block task completion.
type Progress struct {
	Completed int64
	Found     int64
}

// Progress returns the current completion counters.
func (r *PoolResolver) Progress() Progress {
	return Progress{Completed: r.completed.Load(), Found: r.found.Load()}
}

// Resolve maps every name to a symbol or the empty string. Task failures are
// absorbed as empty results and never abort the pool. Should the same name
// appear twice in the input, the surviving map entry is whichever task writes
// last; nothing orders completions, so the outcome is unspecified.
func (r *PoolResolver) Resolve(ctx context.Context, names []string) map[string]string {
	r.completed.Store(0)
	r.found.Store(0)

	results := make(map[string]string, len(names))
	var mu sync.Mutex

	group := new(errgroup.Group)
	group.SetLimit(r.workers)

	for _, name := range names {
		name := name
		group.Go(func() error {
			symbol := r.searchOne(ctx, name)

			mu.Lock()
			results[name] = symbol
			mu.Unlock()

			r.completed.Add(1)
			if symbol != "" {
				r.found.Add(1)
			}
			return nil
		})
	}

	// Workers always return nil; all tasks run to completion.
	_ = group.Wait()
	return results
}

// searchOne walks the fallback-term chain and accepts the first quote that is
// equity-flagged or carries no type flag at all. Errors along the way resolve
// to the empty string.
func (r *PoolResolver) searchOne(ctx context.Context, name string) string {
	if r.throttle > 0 {
		select {
		case <-ctx.Done():
			return ""
		case <-time.After(r.throttle):
		}
	}

	for _, term := range FallbackTerms(name) {
		quotes, err := r.searcher.Search(ctx, term)
		if err != nil {
			r.logger.Debug("search term failed",
				logging.Error(err),
				logging.String("name", name),
				logging.String("term", term),
			)
			continue
		}
		if len(quotes) == 0 {
			continue
		}
		first := quotes[0]
		if strings.TrimSpace(first.Symbol) == "" {
			continue
		}
		quoteType := strings.ToUpper(strings.TrimSpace(first.QuoteType))
		if quoteType == "" || quoteType == "EQUITY" {
			return first.Symbol
		}
	}
	return ""
}

// ResultsFromNames converts a pool result map into the shared result model,
// preserving the input order of names.
func ResultsFromNames(names []string, symbols map[string]string) []ResolutionResult {
	results := make([]ResolutionResult, len(names))
	for i, name := range names {
		req := ResolutionRequest{Index: i, RawIdentifier: name}
		symbol := symbols[name]
		if symbol == "" {
			results[i] = ResolutionResult{Request: req, Status: StatusUnresolved}
			continue
		}
		results[i] = ResolutionResult{
			Request:   req,
			Candidate: &CandidateRecord{Symbol: symbol},
			Status:    StatusResolved,
		}
	}
	return results
}
