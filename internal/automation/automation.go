package automation

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/san-kum/particlesim/internal/config"
	"github.com/san-kum/particlesim/internal/dynamo"
	"github.com/san-kum/particlesim/internal/metrics"
	"github.com/san-kum/particlesim/internal/physics"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted sequence of phases run against one
// simulation. Each phase may change dt or surface tension before it steps.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Setup       config.Config  `yaml:"setup"`
	Phases      []ScenarioStep `yaml:"phases"`
}

// ScenarioStep is a single phase in a scenario. Nil parameters keep the
// current value.
type ScenarioStep struct {
	Name           string   `yaml:"name"`
	Steps          int      `yaml:"steps"`
	Dt             *float64 `yaml:"dt"`
	SurfaceTension *float64 `yaml:"surface_tension"`
}

type PhaseResult struct {
	Name           string
	Steps          int
	Dt             float64
	SurfaceTension float64
	Final          dynamo.Snapshot
	Energy         float64
	Metrics        map[string]float64
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	scenario := Scenario{Setup: *config.DefaultConfig()}
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if len(scenario.Phases) == 0 {
		return nil, fmt.Errorf("scenario %s has no phases", path)
	}

	return &scenario, nil
}

// RunScenario builds the simulation from the scenario setup and runs
// every phase in order. Progress goes to out.
func RunScenario(ctx context.Context, scenario *Scenario, out io.Writer, opts ...physics.Option) ([]PhaseResult, error) {
	if out == nil {
		out = io.Discard
	}
	sim := scenario.Setup.NewSimulation(opts...)
	results := make([]PhaseResult, 0, len(scenario.Phases))

	for i, phase := range scenario.Phases {
		if phase.Dt != nil {
			sim.SetDt(*phase.Dt)
		}
		if phase.SurfaceTension != nil {
			sim.SetSurfaceTension(*phase.SurfaceTension)
		}

		fmt.Fprintf(out, "phase %d/%d: %s (%d steps, dt=%.4f, surface_tension=%.2f)\n",
			i+1, len(scenario.Phases), phase.Name, phase.Steps, sim.Dt(), sim.SurfaceTension())

		runner := dynamo.New(sim)
		for _, m := range metrics.Default(sim) {
			runner.AddMetric(m)
		}

		result, err := runner.Run(ctx, dynamo.Config{Steps: phase.Steps, RecordEvery: phase.Steps, ValidateState: true})
		if err != nil {
			return results, fmt.Errorf("phase %d (%s): %w", i+1, phase.Name, err)
		}

		final := result.Frames[len(result.Frames)-1]
		results = append(results, PhaseResult{
			Name:           phase.Name,
			Steps:          result.StepsTaken,
			Dt:             sim.Dt(),
			SurfaceTension: sim.SurfaceTension(),
			Final:          final,
			Energy:         physics.Energy(final),
			Metrics:        result.Metrics,
		})
	}

	return results, nil
}

// ParameterSweep runs a fresh simulation from the same seed for each
// value of a single kernel parameter.
type ParameterSweep struct {
	Setup     config.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

// SweepResult holds results from a parameter sweep
type SweepResult struct {
	ParamValue  float64
	FinalEnergy float64
	MaxSpeed    float64
	WallContact float64
	StepsTaken  int
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *ParameterSweep, out io.Writer) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("%w: sweep needs at least one value", dynamo.ErrParameterBounds)
	}
	if out == nil {
		out = io.Discard
	}
	results := make([]SweepResult, 0, sweep.NumSteps)

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep

		sim := sweep.Setup.NewSimulation()
		if err := sim.SetParam(sweep.ParamName, paramVal); err != nil {
			return nil, err
		}

		runner := dynamo.New(sim)
		maxSpeed := metrics.NewMaxSpeed()
		contact := metrics.NewWallContact(physics.WorldWidth, physics.WorldHeight)
		runner.AddMetric(maxSpeed)
		runner.AddMetric(contact)

		result, err := runner.Run(ctx, sweep.Setup.RunConfig())
		if err != nil {
			return nil, err
		}

		final := result.Frames[len(result.Frames)-1]
		results = append(results, SweepResult{
			ParamValue:  paramVal,
			FinalEnergy: physics.Energy(final),
			MaxSpeed:    maxSpeed.Value(),
			WallContact: contact.Value(),
			StepsTaken:  result.StepsTaken,
		})

		fmt.Fprintf(out, "sweep %d/%d: %s=%.4f\n", i+1, sweep.NumSteps, sweep.ParamName, paramVal)
	}

	return results, nil
}
