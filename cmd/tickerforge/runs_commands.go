package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tickerforge/internal/runs"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect resolution run history",
	}

	runsCmd.AddCommand(newRunsListCommand(ctx))
	runsCmd.AddCommand(newRunsShowCommand(ctx))

	return runsCmd
}

func newRunsListCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := runs.Open(cfg.Paths.DataDir)
			if err != nil {
				return err
			}
			defer store.Close()

			recent, err := store.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, recent)
			}
			if len(recent) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded")
				return nil
			}

			rows := make([][]string, 0, len(recent))
			for _, run := range recent {
				rows = append(rows, []string{
					run.ID,
					string(run.Kind),
					run.Label,
					formatRunTimestamp(run.CreatedAt),
					strconv.Itoa(run.ResolvedCount),
					strconv.Itoa(run.UnresolvedCount),
					fmt.Sprintf("%.1f%%", run.SuccessRate*100),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Run", "Kind", "Label", "Created", "Resolved", "Unresolved", "Rate"},
				rows, 5, 6, 7,
			))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum runs to list (0 for all)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit runs as JSON")
	return cmd
}

func newRunsShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show one run and its per-identifier outcomes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := runs.Open(cfg.Paths.DataDir)
			if err != nil {
				return err
			}
			defer store.Close()

			run, items, err := store.GetByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if jsonOutput {
				return writeJSON(cmd, struct {
					Run   runs.Run    `json:"run"`
					Items []runs.Item `json:"items"`
				}{Run: run, Items: items})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Run:     %s (%s)\n", run.ID, run.Kind)
			fmt.Fprintf(out, "Label:   %s\n", run.Label)
			fmt.Fprintf(out, "Created: %s\n", formatRunTimestamp(run.CreatedAt))
			fmt.Fprintf(out, "Outcome: %d resolved, %d unresolved (%.1f%%)\n", run.ResolvedCount, run.UnresolvedCount, run.SuccessRate*100)
			if run.ResultsPath != "" {
				fmt.Fprintf(out, "Results: %s\n", run.ResultsPath)
			}

			if len(items) > 0 {
				rows := make([][]string, 0, len(items))
				for _, item := range items {
					status := "unresolved"
					if item.Resolved {
						status = "resolved"
					}
					rows = append(rows, []string{item.Identifier, item.Symbol, status})
				}
				fmt.Fprintln(out, renderTable([]string{"Identifier", "Symbol", "Status"}, rows))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit the run as JSON")
	return cmd
}
