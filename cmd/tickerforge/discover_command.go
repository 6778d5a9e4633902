package main

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tickerforge/internal/export"
	"tickerforge/internal/ident"
	"tickerforge/internal/ingest"
	"tickerforge/internal/logging"
	"tickerforge/internal/runs"
	"tickerforge/internal/services/quotesearch"
)

func newDiscoverCommand(ctx *commandContext) *cobra.Command {
	var label string
	var workers int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "discover <names-file>",
		Short: "Discover ticker symbols for free-text company names",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}
			logger = logging.NewComponentLogger(logger, "discover")

			entries, err := ingest.Load(args[0])
			if err != nil {
				return err
			}
			names := dedupeNames(entries)
			logger.Info("loaded names",
				logging.String("path", args[0]),
				logging.Int("entries", len(entries)),
				logging.Int("names", len(names)),
			)

			release, err := ctx.acquireRunLock()
			if err != nil {
				return err
			}
			defer release()

			searcher, err := quotesearch.New(
				cfg.QuoteSearch.BaseURL,
				quotesearch.WithTimeout(time.Duration(cfg.QuoteSearch.RequestTimeout)*time.Second),
			)
			if err != nil {
				return err
			}

			poolSize := workers
			if poolSize <= 0 {
				poolSize = cfg.Resolver.Workers
			}
			resolver, err := ident.NewPoolResolver(
				searcher,
				ident.WithWorkers(poolSize),
				ident.WithSearchThrottle(time.Duration(cfg.Resolver.SearchThrottleMS)*time.Millisecond),
				ident.WithPoolLogger(logger),
			)
			if err != nil {
				return err
			}

			stopProgress := reportProgress(logger, resolver, len(names))
			started := time.Now()
			symbols := resolver.Resolve(cmd.Context(), names)
			stopProgress()

			results := ident.ResultsFromNames(names, symbols)
			report := ident.Aggregate(results, time.Now())
			logger.Info("discovery finished",
				logging.Int("found", len(report.Resolved)),
				logging.Int("missed", len(report.Unresolved)),
				logging.Duration("elapsed", time.Since(started)),
			)

			runLabel := strings.TrimSpace(label)
			if runLabel == "" {
				runLabel = defaultLabel(args[0])
			}
			paths, err := export.WriteReport(cfg.ExportDir(), runLabel, report)
			if err != nil {
				return err
			}

			saved, err := saveRun(cmd.Context(), cfg.Paths.DataDir, runFromReport(runs.KindDiscover, runLabel, report, paths), runItemsFromResults(results))
			if err != nil {
				logger.Warn("record run history", logging.Error(err))
			} else {
				logger.Info("run recorded", logging.String(logging.FieldRunID, saved.ID))
			}

			if jsonOutput {
				return writeJSON(cmd, report)
			}
			out := cmd.OutOrStdout()
			if len(report.Resolved) > 0 {
				rows := make([][]string, 0, len(report.Resolved))
				for _, record := range report.Resolved {
					rows = append(rows, []string{record.Identifier, record.Symbol})
				}
				fmt.Fprintln(out, renderTable([]string{"Company", "Symbol"}, rows))
			}
			if len(report.Unresolved) > 0 {
				fmt.Fprintf(out, "No symbol found: %s\n", strings.Join(report.Unresolved, ", "))
			}
			fmt.Fprintf(out, "Found %d of %d (%.1f%%)\n", len(report.Resolved), report.TotalRequested, report.SuccessRate()*100)
			printExportPaths(out, paths)
			return nil
		},
	}

	cmd.Flags().StringVarP(&label, "label", "l", "", "Label for exports and run history (defaults to the file name)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Concurrent search workers (default from config)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the report as JSON")
	return cmd
}

// reportProgress logs pool counters every few seconds until the returned stop
// function is called.
func reportProgress(logger *slog.Logger, resolver *ident.PoolResolver, total int) func() {
	done := make(chan struct{})
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		ticker := time.NewTicker(2 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				progress := resolver.Progress()
				logger.Info("discovery progress",
					logging.Int64("completed", progress.Completed),
					logging.Int64("found", progress.Found),
					logging.Int("total", total),
				)
			}
		}
	}()
	return func() {
		close(done)
		<-finished
	}
}
