package main

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"tickerforge/internal/export"
	"tickerforge/internal/ident"
	"tickerforge/internal/runs"
)

func defaultLabel(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// dedupeNames trims and deduplicates free-text names, keeping the first
// occurrence's position. Names are not ticker identifiers, so no further
// normalization applies.
func dedupeNames(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	deduped := make([]string, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		deduped = append(deduped, name)
	}
	return deduped
}

func runItemsFromResults(results []ident.ResolutionResult) []runs.Item {
	items := make([]runs.Item, 0, len(results))
	for _, result := range results {
		item := runs.Item{
			Identifier: result.Request.RawIdentifier,
			Resolved:   result.Status == ident.StatusResolved,
		}
		if result.Candidate != nil {
			item.Symbol = result.Candidate.Symbol
		}
		items = append(items, item)
	}
	return items
}

// saveRun records the run in history, logging but tolerating persistence
// problems so a finished resolution is never discarded over bookkeeping.
func saveRun(ctx context.Context, dataDir string, run runs.Run, items []runs.Item) (runs.Run, error) {
	store, err := runs.Open(dataDir)
	if err != nil {
		return runs.Run{}, err
	}
	defer store.Close()
	return store.SaveRun(ctx, run, items)
}

func runFromReport(kind runs.Kind, label string, report ident.Report, paths export.Paths) runs.Run {
	return runs.Run{
		Kind:            kind,
		Label:           label,
		CreatedAt:       report.CreatedAt,
		TotalRequested:  report.TotalRequested,
		ResolvedCount:   len(report.Resolved),
		UnresolvedCount: len(report.Unresolved),
		SuccessRate:     report.SuccessRate(),
		ResultsPath:     paths.ResultsJSON,
	}
}

func printReportTable(out io.Writer, report ident.Report) {
	if len(report.Resolved) > 0 {
		rows := make([][]string, 0, len(report.Resolved))
		for _, record := range report.Resolved {
			rows = append(rows, []string{record.Identifier, record.Symbol, record.Exchange, record.Currency, record.SecurityType, record.ExternalID})
		}
		fmt.Fprintln(out, renderTable([]string{"Identifier", "Symbol", "Exchange", "Currency", "Type", "Contract ID"}, rows, 6))
	}
	if len(report.Unresolved) > 0 {
		fmt.Fprintf(out, "Unresolved: %s\n", strings.Join(report.Unresolved, ", "))
	}
	fmt.Fprintf(out, "Resolved %d of %d (%.1f%%)\n", len(report.Resolved), report.TotalRequested, report.SuccessRate()*100)
}

func printExportPaths(out io.Writer, paths export.Paths) {
	fmt.Fprintf(out, "Results:   %s\n", paths.ResultsJSON)
	fmt.Fprintf(out, "Contracts: %s\n", paths.ContractsCSV)
	fmt.Fprintf(out, "Import:    %s\n", paths.ImportCSV)
	if paths.UnresolvedTXT != "" {
		fmt.Fprintf(out, "Failed:    %s\n", paths.UnresolvedTXT)
	}
}

func formatRunTimestamp(created time.Time) string {
	return created.Local().Format("2006-01-02 15:04:05")
}
