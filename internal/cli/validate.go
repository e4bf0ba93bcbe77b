package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/cambio/internal/config"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <config.yaml>",
		Short: "Validate a run configuration file",
		Long: `Validate a run configuration file against the schema and the
scenario's physical constraints without running anything.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "validation failed", err)
			}

			spec := cfg.ScenarioSpec()
			steps := int((spec.StopYear - spec.StartYear) / spec.Dtime)
			fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%d steps, %g to %g)\n",
				args[0], steps, spec.StartYear, spec.StopYear)
			return nil
		},
	}
	return cmd
}
