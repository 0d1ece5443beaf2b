package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ndewijer/Trading-Journal-Backend/internal/app"
	"github.com/ndewijer/Trading-Journal-Backend/internal/config"
	"github.com/ndewijer/Trading-Journal-Backend/internal/database"
	"github.com/ndewijer/Trading-Journal-Backend/internal/logging"
	"github.com/ndewijer/Trading-Journal-Backend/internal/metrics"
	"github.com/ndewijer/Trading-Journal-Backend/internal/service"
	"github.com/ndewijer/Trading-Journal-Backend/internal/version"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "journal",
		Short:         "Trading journal maintenance commands",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(newMigrateCmd(), newSummaryCmd(), newSnapshotCmd())
	return root
}

// setup loads configuration and a logger for a command.
func setup() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	return cfg, logging.New(cfg.Log), nil
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := setup()
			if err != nil {
				return err
			}

			db, err := database.Open(cfg.Database.Path)
			if err != nil {
				return err
			}
			defer db.Close()

			applied, err := database.Migrate(cmd.Context(), db)
			if err != nil {
				return err
			}
			current, _, err := database.SchemaVersion(cmd.Context(), db)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s), schema version %d\n", applied, current)
			return nil
		},
	}
}

func newSummaryCmd() *cobra.Command {
	var status string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the portfolio summary for active, closed or all trades",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}

			application, err := app.New(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer application.Close()

			summary, err := application.Services.Metrics.Summary(cmd.Context(), status)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}
			return printSummary(cmd.OutOrStdout(), summary)
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "trade status to summarise: active or closed (default all)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the full summary as JSON")
	return cmd
}

func newSnapshotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot",
		Short: "Capture today's metrics snapshots",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := setup()
			if err != nil {
				return err
			}

			application, err := app.New(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer application.Close()

			snapshots, err := application.Services.Snapshot.CaptureSnapshots(cmd.Context())
			if err != nil {
				return err
			}
			for _, s := range snapshots {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %-6s trades=%d pnl=%.2f return=%s\n",
					s.Date.Format("2006-01-02"), s.View, s.TradeCount, s.TotalPnL, metrics.FormatPercent(s.PercentageReturn))
			}
			return nil
		},
	}
}

func printSummary(out io.Writer, summary *service.Summary) error {
	s := summary.Snapshot
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	view := summary.View
	if view == "" {
		view = "all"
	}
	fmt.Fprintf(w, "View\t%s\n", view)
	fmt.Fprintf(w, "Trades\t%d (won %d, lost %d, win rate %s)\n", s.TradeCount, s.WinCount, s.LossCount, metrics.FormatPercent(s.WinRate))
	fmt.Fprintf(w, "Total P&L\t%.2f (%s)\n", s.TotalPnL, metrics.FormatPercent(s.PercentageReturn))
	fmt.Fprintf(w, "Capital\t%.2f\n", s.TotalCapital)
	fmt.Fprintf(w, "Max profit / loss\t%.2f / %.2f\n", s.TotalMaxProfit, s.TotalMaxLoss)
	fmt.Fprintf(w, "Buying power used\t%s\n", metrics.FormatPercent(s.BuyingPowerPercentage))
	fmt.Fprintf(w, "Risk\t%s\n", metrics.FormatPercent(s.TotalRisk))
	if summary.CumulativeReturn != nil {
		fmt.Fprintf(w, "Cumulative return\t%s\n", metrics.FormatPercent(summary.CumulativeReturn.CumulativeReturn))
		fmt.Fprintf(w, "Final capital\t%.2f\n", summary.CumulativeReturn.FinalCapital)
	}

	return w.Flush()
}
