// Package cli implements the cambio command line: running scenarios,
// validating configuration, exporting and plotting series, Monte Carlo
// ensembles, and the run archive. It consumes the core's in-memory
// output; no model logic lives here.
package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
}

// NewRootCommand creates the root command for the cambio CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "cambio",
		Short: "CAMBIO - a carbon-cycle climate box model",
		Long: `CAMBIO simulates the year-by-year exchange of carbon between the
atmosphere, ocean and land under a synthetic anthropogenic-emissions
scenario, with optional temperature, albedo and stochastic feedbacks.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if opts.Verbose {
				level = slog.LevelDebug
			}
			handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
			slog.SetDefault(slog.New(handler))
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(NewRunCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewPlotCommand(opts))
	cmd.AddCommand(NewEnsembleCommand(opts))
	cmd.AddCommand(NewRunsCommand(opts))

	return cmd
}
