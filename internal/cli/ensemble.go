package cli

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/roach88/cambio/internal/config"
	"github.com/roach88/cambio/internal/sim"
)

// EnsembleOptions holds flags for the ensemble command.
type EnsembleOptions struct {
	*RootOptions
	Members int
	Seed    int64
	Workers int
}

// NewEnsembleCommand creates the ensemble command.
func NewEnsembleCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &EnsembleOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "ensemble <config.yaml>",
		Short: "Run a Monte Carlo ensemble and summarize the spread",
		Long: `Run the same configuration many times with different noise seeds
and report the spread of the final climate state. Only useful when the
stochastic carbon feedback is enabled; with it off every member is
identical.

Example:
  cambio ensemble scenarios/stochastic.yaml --members 100 --seed 42`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEnsemble(cmd, opts, args[0])
		},
	}

	cmd.Flags().IntVar(&opts.Members, "members", 50, "number of ensemble members")
	cmd.Flags().Int64Var(&opts.Seed, "seed", 1, "base seed; member i uses seed+i")
	cmd.Flags().IntVar(&opts.Workers, "workers", 0, "concurrent members (0 = all CPUs)")

	return cmd
}

func runEnsemble(cmd *cobra.Command, opts *EnsembleOptions, path string) error {
	cfg, err := config.Load(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid configuration", err)
	}

	stats, err := sim.RunEnsemble(cmd.Context(), sim.EnsembleConfig{
		Run:      cfg.SimConfig(),
		Members:  opts.Members,
		BaseSeed: opts.Seed,
		Workers:  opts.Workers,
		// The bar draws to the real stdout, so only show it on a TTY.
		Progress: isatty.IsTerminal(os.Stdout.Fd()),
	})
	if err != nil {
		if sim.IsConfigError(err) {
			return WrapExitError(ExitCommandError, "invalid configuration", err)
		}
		return WrapExitError(ExitFailure, "ensemble failed", err)
	}

	printEnsembleStats(cmd.OutOrStdout(), stats)
	return nil
}

func printEnsembleStats(w io.Writer, stats *sim.EnsembleStats) {
	p := message.NewPrinter(language.English)
	p.Fprintf(w, "ensemble of %d members, final state:\n", stats.Members)
	p.Fprintf(w, "  T_anomaly  mean %+.3f K   [%+.3f, %+.3f]\n",
		stats.FinalTAnomaly.Mean, stats.FinalTAnomaly.Min, stats.FinalTAnomaly.Max)
	p.Fprintf(w, "  C_atm      mean %.1f GtC  [%.1f, %.1f]\n",
		stats.FinalCAtm.Mean, stats.FinalCAtm.Min, stats.FinalCAtm.Max)
	p.Fprintf(w, "  pH         mean %.4f     [%.4f, %.4f]\n",
		stats.FinalPH.Mean, stats.FinalPH.Min, stats.FinalPH.Max)
}
