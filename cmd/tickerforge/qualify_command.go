package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tickerforge/internal/export"
	"tickerforge/internal/ident"
	"tickerforge/internal/ingest"
	"tickerforge/internal/logging"
	"tickerforge/internal/preflight"
	"tickerforge/internal/runs"
	"tickerforge/internal/services/gateway"
)

func newQualifyCommand(ctx *commandContext) *cobra.Command {
	var label string
	var securityType string
	var exchange string
	var currency string
	var batchSize int
	var skipPreflight bool
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "qualify <watchlist>",
		Short: "Resolve watchlist identifiers to qualified broker contracts",
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
			logger = logging.NewComponentLogger(logger, "qualify")

			entries, err := ingest.Load(args[0])
			if err != nil {
				return err
			}
			identifiers := ident.NormalizeIdentifiers(entries)
			if len(identifiers) == 0 {
				return fmt.Errorf("watchlist %s has no usable identifiers", args[0])
			}
			logger.Info("loaded watchlist",
				logging.String("path", args[0]),
				logging.Int("entries", len(entries)),
				logging.Int("identifiers", len(identifiers)),
			)

			release, err := ctx.acquireRunLock()
			if err != nil {
				return err
			}
			defer release()

			if !skipPreflight {
				checks := []preflight.Result{
					preflight.CheckDirectoryAccess("Data directory", cfg.Paths.DataDir),
					preflight.CheckGatewayPorts(cfg.Gateway.Host, append([]int{cfg.Gateway.Port}, cfg.Gateway.ProbePorts...)),
				}
				for _, check := range checks {
					if !check.Passed {
						return fmt.Errorf("preflight failed: %s: %s", check.Name, check.Detail)
					}
				}
			}

			session, err := gateway.New(
				cfg.GatewayBaseURL(),
				cfg.Gateway.ClientID,
				gateway.WithTimeout(time.Duration(cfg.Gateway.RequestTimeout)*time.Second),
			)
			if err != nil {
				return err
			}
			if err := session.Connect(cmd.Context()); err != nil {
				return fmt.Errorf("establish gateway session: %w", err)
			}
			defer session.Disconnect(cmd.Context())

			windowSize := batchSize
			if windowSize <= 0 {
				windowSize = cfg.Resolver.BatchSize
			}
			resolver, err := ident.NewBatchResolver(
				session,
				ident.WithBatchSize(windowSize),
				ident.WithBatchPace(time.Duration(cfg.Resolver.BatchPaceMS)*time.Millisecond),
				ident.WithBatchLogger(logger),
			)
			if err != nil {
				return err
			}

			sctx := ident.SecurityContext{
				SecurityType: firstNonEmpty(securityType, cfg.Resolver.SecurityType),
				Exchange:     firstNonEmpty(exchange, cfg.Resolver.Exchange),
				Currency:     firstNonEmpty(currency, cfg.Resolver.Currency),
			}

			started := time.Now()
			results, err := resolver.Resolve(cmd.Context(), identifiers, sctx)
			if err != nil {
				return err
			}
			report := ident.Aggregate(results, time.Now())
			logger.Info("qualification finished",
				logging.Int("resolved", len(report.Resolved)),
				logging.Int("unresolved", len(report.Unresolved)),
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

			saved, err := saveRun(cmd.Context(), cfg.Paths.DataDir, runFromReport(runs.KindQualify, runLabel, report, paths), runItemsFromResults(results))
			if err != nil {
				logger.Warn("record run history", logging.Error(err))
			} else {
				logger.Info("run recorded", logging.String(logging.FieldRunID, saved.ID))
			}

			if jsonOutput {
				return writeJSON(cmd, report)
			}
			out := cmd.OutOrStdout()
			printReportTable(out, report)
			printExportPaths(out, paths)
			return nil
		},
	}

	cmd.Flags().StringVarP(&label, "label", "l", "", "Label for exports and run history (defaults to the watchlist name)")
	cmd.Flags().StringVar(&securityType, "sec-type", "", "Security type for all contracts (default from config)")
	cmd.Flags().StringVar(&exchange, "exchange", "", "Exchange routing for all contracts (default from config)")
	cmd.Flags().StringVar(&currency, "currency", "", "Currency for all contracts (default from config)")
	cmd.Flags().IntVar(&batchSize, "batch-size", 0, "Identifiers per qualification window (default from config)")
	cmd.Flags().BoolVar(&skipPreflight, "skip-preflight", false, "Skip environment checks before connecting")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the report as JSON")
	return cmd
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}
