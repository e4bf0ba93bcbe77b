// Package config loads run configuration files: YAML decoded into a
// Run, validated structurally against an embedded CUE schema and then
// semantically against the scenario's own rules. All validation is
// fail-fast, before any propagation begins.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"gopkg.in/yaml.v3"

	"github.com/roach88/cambio/internal/model"
	"github.com/roach88/cambio/internal/scenario"
	"github.com/roach88/cambio/internal/sim"
)

//go:embed schema.cue
var schemaCUE string

// Run is the decoded contents of a run configuration file.
//
// StochasticStdDev is a pointer so that an explicit zero (no randomness
// in the carbon draw) stays distinguishable from an absent key (use the
// model default).
type Run struct {
	Scenario         ScenarioConfig  `yaml:"scenario"`
	Feedbacks        FeedbacksConfig `yaml:"feedbacks"`
	StochasticStdDev *float64        `yaml:"stochastic_std_dev,omitempty"`
	Seed             int64           `yaml:"seed"`
}

// ScenarioConfig mirrors scenario.Spec in file form.
type ScenarioConfig struct {
	StartYear          float64 `yaml:"start_year"`
	StopYear           float64 `yaml:"stop_year"`
	Dtime              float64 `yaml:"dtime"`
	GrowthRate         float64 `yaml:"growth_rate"`
	TransitionYear     float64 `yaml:"transition_year"`
	TransitionDuration float64 `yaml:"transition_duration"`
	LongTermEmissions  float64 `yaml:"long_term_emissions"`
}

// FeedbacksConfig enumerates the recognized feedback toggles.
type FeedbacksConfig struct {
	Temperature       bool `yaml:"temperature"`
	Albedo            bool `yaml:"albedo"`
	RateLimitedAlbedo bool `yaml:"rate_limited_albedo"`
	StochasticCarbon  bool `yaml:"stochastic_carbon"`
}

// Load reads, schema-checks and validates a run configuration file.
func Load(path string) (*Run, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data, path)
}

// Parse decodes and validates raw YAML. name is used in error messages.
func Parse(data []byte, name string) (*Run, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	if err := validateSchema(raw); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	var run Run
	if err := yaml.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	if err := run.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &run, nil
}

// validateSchema unifies the decoded document with the #Run definition.
func validateSchema(raw map[string]any) error {
	ctx := cuecontext.New()
	schema := ctx.CompileString(schemaCUE)
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	def := schema.LookupPath(cue.MakePath(cue.Def("#Run")))
	if err := def.Err(); err != nil {
		return fmt.Errorf("lookup schema definition: %w", err)
	}

	unified := def.Unify(ctx.Encode(raw))
	// Concrete(true) also rejects documents that omit required fields.
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return fmt.Errorf("config schema: %w", err)
	}
	return nil
}

// Validate applies the cross-field rules the schema cannot express.
func (r *Run) Validate() error {
	if err := r.ScenarioSpec().Validate(); err != nil {
		return err
	}
	if r.StochasticStdDev != nil && *r.StochasticStdDev < 0 {
		return fmt.Errorf("stochastic std dev must be non-negative, got %g", *r.StochasticStdDev)
	}
	return nil
}

// ScenarioSpec converts the file form to the generator's spec.
func (r *Run) ScenarioSpec() scenario.Spec {
	return scenario.Spec{
		StartYear:          r.Scenario.StartYear,
		StopYear:           r.Scenario.StopYear,
		Dtime:              r.Scenario.Dtime,
		GrowthRate:         r.Scenario.GrowthRate,
		TransitionYear:     r.Scenario.TransitionYear,
		TransitionDuration: r.Scenario.TransitionDuration,
		LongTermEmissions:  r.Scenario.LongTermEmissions,
	}
}

// ModelFeedbacks converts the file form to the propagator's toggles.
func (r *Run) ModelFeedbacks() model.Feedbacks {
	return model.Feedbacks{
		Temperature:       r.Feedbacks.Temperature,
		Albedo:            r.Feedbacks.Albedo,
		RateLimitedAlbedo: r.Feedbacks.RateLimitedAlbedo,
		StochasticCarbon:  r.Feedbacks.StochasticCarbon,
	}
}

// SimConfig assembles the driver configuration for this run file.
func (r *Run) SimConfig() sim.Config {
	return sim.Config{
		Scenario:         r.ScenarioSpec(),
		Feedbacks:        r.ModelFeedbacks(),
		StochasticStdDev: r.StochasticStdDev,
		Seed:             r.Seed,
	}
}
