package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/cambio/internal/config"
	"github.com/roach88/cambio/internal/sim"
	"github.com/roach88/cambio/internal/store"
)

// ExportOptions holds flags for the export command.
type ExportOptions struct {
	*RootOptions
	Out      string
	Database string
	RunID    string
}

// NewExportCommand creates the export command.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "export [config.yaml]",
		Short: "Export a run's time series as CSV",
		Long: `Export the full time series of a run as CSV in canonical field
order. Either run a configuration file fresh, or reload an archived run
with --db and --run.

Example:
  cambio export scenarios/baseline.yaml --out baseline.csv
  cambio export --db runs.db --run 0193b2a0-... --out archived.csv`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return exportSeries(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.Out, "out", "", "output CSV path (required)")
	cmd.Flags().StringVar(&opts.Database, "db", "", "run archive database")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "archived run ID to export")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func exportSeries(cmd *cobra.Command, opts *ExportOptions, args []string) error {
	ts, err := resolveSeries(cmd, opts.Database, opts.RunID, args)
	if err != nil {
		return err
	}

	f, err := os.Create(opts.Out)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to create output file", err)
	}
	defer f.Close()

	if err := ts.WriteCSV(f); err != nil {
		return WrapExitError(ExitCommandError, "failed to write CSV", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d steps to %s\n", ts.Len(), opts.Out)
	return nil
}

// resolveSeries produces a time series either by re-running a config
// file or by loading an archived run. Shared by export and plot.
func resolveSeries(cmd *cobra.Command, dbPath, runID string, args []string) (*sim.TimeSeries, error) {
	switch {
	case runID != "":
		if dbPath == "" {
			return nil, WrapExitError(ExitCommandError, "--run requires --db", nil)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer st.Close()

		ts, err := st.LoadSeries(cmd.Context(), runID)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "failed to load archived run", err)
		}
		return ts, nil

	case len(args) == 1:
		cfg, err := config.Load(args[0])
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "invalid configuration", err)
		}
		res, err := sim.Run(cmd.Context(), cfg.SimConfig())
		if err != nil {
			return nil, WrapExitError(ExitFailure, "run failed", err)
		}
		return res.Series, nil

	default:
		return nil, WrapExitError(ExitCommandError, "need a config file or --db with --run", nil)
	}
}
