package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"

	"github.com/roach88/cambio/internal/config"
	"github.com/roach88/cambio/internal/sim"
	"github.com/roach88/cambio/internal/store"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Database string
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <config.yaml>",
		Short: "Run a scenario and print a summary of the final state",
		Long: `Run the box model over the emissions scenario described by the
configuration file and print a summary of the final climate state.

With --db, the completed run is archived to the given SQLite database
together with its configuration snapshot, for later export or plotting.

Example:
  cambio run scenarios/baseline.yaml
  cambio run scenarios/feedbacks.yaml --db runs.db --verbose`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "archive the run to this SQLite database")

	return cmd
}

func runScenario(cmd *cobra.Command, opts *RunOptions, path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	res, err := sim.Run(cmd.Context(), cfg.SimConfig())
	if err != nil {
		if sim.IsConfigError(err) {
			return WrapExitError(ExitCommandError, "invalid configuration", err)
		}
		return WrapExitError(ExitFailure, "run failed", err)
	}

	printSummary(cmd.OutOrStdout(), res)

	if opts.Database != "" {
		if err := archiveRun(cmd.Context(), opts.Database, res, cfg); err != nil {
			return WrapExitError(ExitCommandError, "failed to archive run", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "archived as %s in %s\n", res.ID, opts.Database)
	}

	return nil
}

func archiveRun(ctx context.Context, dbPath string, res *sim.Result, cfg *config.Run) error {
	snapshot, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config snapshot: %w", err)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	return st.SaveRun(ctx, res, string(snapshot))
}

func printSummary(w io.Writer, res *sim.Result) {
	p := message.NewPrinter(language.English)
	final, ok := res.Series.Last()
	if !ok {
		return
	}

	p.Fprintf(w, "run %s: %d steps, %g to %g\n",
		res.ID, res.Series.Len(), res.Series.Year[0], final.Year)
	p.Fprintf(w, "  final C_atm      %.1f GtC (%.1f ppm)\n", final.CAtm, gtcToPPM(final.CAtm))
	p.Fprintf(w, "  final C_ocean    %.1f GtC\n", final.COcean)
	p.Fprintf(w, "  final F_ha       %.2f GtC/yr (%.2f GtCO2/yr)\n", final.FHa, gtcToGtCO2(final.FHa))
	p.Fprintf(w, "  final T_anomaly  %+.2f K\n", final.TAnomaly)
	p.Fprintf(w, "  final pH         %.3f\n", final.PH)
	p.Fprintf(w, "  final albedo     %.4f\n", final.Albedo)
}
