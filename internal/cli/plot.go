package cli

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wcharczuk/go-chart/v2"

	"github.com/roach88/cambio/internal/sim"
)

// PlotOptions holds flags for the plot command.
type PlotOptions struct {
	*RootOptions
	Out      string
	What     string
	Database string
	RunID    string
}

// plotSpec names the columns drawn for one --what choice.
type plotSpec struct {
	title  string
	yLabel string
	series []plotSeries
}

type plotSeries struct {
	label string
	// column is a canonical field name, or empty when value is set.
	column string
	// value derives the y value from a state when a single column
	// is not enough (unit conversions, flux differences).
	value func(s *sim.TimeSeries, i int) float64
}

var plotSpecs = map[string]plotSpec{
	"emissions": {
		title:  "Anthropogenic emissions",
		yLabel: "GtC/year",
		series: []plotSeries{{label: "F_ha", column: "F_ha"}},
	},
	"reservoirs": {
		title:  "Carbon reservoirs",
		yLabel: "GtC",
		series: []plotSeries{
			{label: "C_atm", column: "C_atm"},
			{label: "C_ocean", column: "C_ocean"},
		},
	},
	"ppm": {
		title:  "Atmospheric CO2",
		yLabel: "ppm",
		series: []plotSeries{{
			label: "C_atm",
			value: func(s *sim.TimeSeries, i int) float64 { return gtcToPPM(s.CAtm[i]) },
		}},
	},
	"temperature": {
		title:  "Global temperature",
		yLabel: "degrees",
		series: []plotSeries{
			{label: "T_C", column: "T_C"},
			{label: "T_F", column: "T_F"},
		},
	},
	"albedo": {
		title:  "Planetary albedo",
		yLabel: "albedo",
		series: []plotSeries{{label: "albedo", column: "albedo"}},
	},
	"ph": {
		title:  "Ocean pH",
		yLabel: "pH",
		series: []plotSeries{{label: "pH", column: "pH"}},
	},
	"fluxes": {
		title:  "Net carbon fluxes into the atmosphere",
		yLabel: "GtC/year",
		series: []plotSeries{
			{
				label: "ocean net",
				value: func(s *sim.TimeSeries, i int) float64 { return s.FOa[i] - s.FAo[i] },
			},
			{
				label: "land net",
				value: func(s *sim.TimeSeries, i int) float64 { return s.FLa[i] - s.FAl[i] },
			},
			{label: "human", column: "F_ha"},
		},
	},
}

// NewPlotCommand creates the plot command.
func NewPlotCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &PlotOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "plot [config.yaml]",
		Short: "Render a run's time series as a PNG chart",
		Long: `Render one aspect of a run as a PNG chart. Either run a
configuration file fresh, or reload an archived run with --db and --run.

The --what flag selects the plotted quantity:
  emissions, reservoirs, ppm, temperature, albedo, ph, fluxes

Example:
  cambio plot scenarios/baseline.yaml --what temperature --out temp.png`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return renderPlot(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.Out, "out", "", "output PNG path (required)")
	cmd.Flags().StringVar(&opts.What, "what", "reservoirs", "quantity to plot")
	cmd.Flags().StringVar(&opts.Database, "db", "", "run archive database")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "archived run ID to plot")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func renderPlot(cmd *cobra.Command, opts *PlotOptions, args []string) error {
	spec, ok := plotSpecs[opts.What]
	if !ok {
		return WrapExitError(ExitCommandError,
			fmt.Sprintf("unknown plot %q (choose from %s)", opts.What, strings.Join(plotChoices(), ", ")), nil)
	}

	ts, err := resolveSeries(cmd, opts.Database, opts.RunID, args)
	if err != nil {
		return err
	}
	if ts.Len() == 0 {
		return WrapExitError(ExitFailure, "run produced no samples", nil)
	}

	graph := chart.Chart{
		Title: spec.title,
		XAxis: chart.XAxis{Name: "year"},
		YAxis: chart.YAxis{Name: spec.yLabel},
	}
	for _, s := range spec.series {
		var ys []float64
		if s.column != "" {
			col, ok := ts.Column(s.column)
			if !ok {
				return WrapExitError(ExitFailure, fmt.Sprintf("unknown column %q", s.column), nil)
			}
			ys = col
		} else {
			ys = make([]float64, ts.Len())
			for i := range ys {
				ys[i] = s.value(ts, i)
			}
		}
		graph.Series = append(graph.Series, chart.ContinuousSeries{
			Name:    s.label,
			XValues: ts.Year,
			YValues: ys,
		})
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	f, err := os.Create(opts.Out)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to create output file", err)
	}
	defer f.Close()

	if err := graph.Render(chart.PNG, f); err != nil {
		return WrapExitError(ExitFailure, "failed to render chart", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s plot to %s\n", opts.What, opts.Out)
	return nil
}

func plotChoices() []string {
	names := make([]string, 0, len(plotSpecs))
	for name := range plotSpecs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
