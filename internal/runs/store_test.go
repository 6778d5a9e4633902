package runs_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"tickerforge/internal/runs"
)

func openStore(t *testing.T) *runs.Store {
	t.Helper()
	store, err := runs.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open returned error: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return store
}

func TestSaveRunRoundTrip(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	saved, err := store.SaveRun(ctx, runs.Run{
		Kind:            runs.KindQualify,
		Label:           "tech picks",
		TotalRequested:  3,
		ResolvedCount:   2,
		UnresolvedCount: 1,
		SuccessRate:     2.0 / 3.0,
		ResultsPath:     "/tmp/watchlist_tech_picks_results.json",
	}, []runs.Item{
		{Identifier: "AAPL", Symbol: "AAPL", Resolved: true},
		{Identifier: "MSFT", Symbol: "MSFT", Resolved: true},
		{Identifier: "ZZZZ", Resolved: false},
	})
	if err != nil {
		t.Fatalf("SaveRun returned error: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("SaveRun must assign an id")
	}
	if saved.CreatedAt.IsZero() {
		t.Fatal("SaveRun must assign a timestamp")
	}

	run, items, err := store.GetByID(ctx, saved.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if run.Kind != runs.KindQualify || run.Label != "tech picks" || run.ResolvedCount != 2 {
		t.Fatalf("unexpected run: %+v", run)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(items))
	}
	if items[0].Identifier != "AAPL" || !items[0].Resolved {
		t.Fatalf("unexpected first item: %+v", items[0])
	}
	if items[2].Resolved {
		t.Fatalf("unresolved item stored as resolved: %+v", items[2])
	}
}

func TestGetByIDMissingRun(t *testing.T) {
	store := openStore(t)
	_, _, err := store.GetByID(context.Background(), "no-such-run")
	if !errors.Is(err, runs.ErrRunNotFound) {
		t.Fatalf("expected ErrRunNotFound, got %v", err)
	}
}

func TestRecentOrdersNewestFirst(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		_, err := store.SaveRun(ctx, runs.Run{
			Kind:      runs.KindDiscover,
			Label:     "batch",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}, nil)
		if err != nil {
			t.Fatalf("SaveRun returned error: %v", err)
		}
	}

	recent, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent returned error: %v", err)
	}
	if len(recent) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(recent))
	}
	if !recent[0].CreatedAt.After(recent[1].CreatedAt) {
		t.Fatalf("runs not newest first: %v then %v", recent[0].CreatedAt, recent[1].CreatedAt)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	first, err := runs.Open(dir)
	if err != nil {
		t.Fatalf("first Open returned error: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close first store: %v", err)
	}

	second, err := runs.Open(dir)
	if err != nil {
		t.Fatalf("reopen returned error: %v", err)
	}
	defer second.Close()

	if _, err := second.Recent(context.Background(), 0); err != nil {
		t.Fatalf("Recent after reopen returned error: %v", err)
	}
}
