package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/particlesim/internal/analysis"
	"github.com/san-kum/particlesim/internal/automation"
	"github.com/san-kum/particlesim/internal/bridge"
	"github.com/san-kum/particlesim/internal/config"
	"github.com/san-kum/particlesim/internal/dynamo"
	"github.com/san-kum/particlesim/internal/export"
	"github.com/san-kum/particlesim/internal/metrics"
	"github.com/san-kum/particlesim/internal/physics"
	"github.com/san-kum/particlesim/internal/viz"
	"github.com/spf13/cobra"
)

var (
	count          int
	width          float64
	height         float64
	seed           int64
	dt             float64
	surfaceTension float64
	steps          int
	recordEvery    int
	frameRate      int
	configFile     string
	preset         string
	quiet          bool
	plot           bool
	outFile        string
	trajectory     int
	sweepMin       float64
	sweepMax       float64
	sweepCount     int
	particleIndex  int
	xAxis          string
	yAxis          string
)

// main registers the particlesim commands and executes the root command.
// It exits with status 1 if the command returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "particlesim",
		Short:         "2D Lennard-Jones particle simulation",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and print diagnostics",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress per-step diagnostics")
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot energy of recorded frames")

	streamCmd := &cobra.Command{
		Use:   "stream",
		Short: "write NDJSON frames to stdout",
		RunE:  streamFrames,
	}
	addSimFlags(streamCmd)
	streamCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress per-step diagnostics on stderr")

	svgCmd := &cobra.Command{
		Use:   "svg",
		Short: "render the final frame as SVG",
		RunE:  renderSVG,
	}
	addSimFlags(svgCmd)
	svgCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	svgCmd.Flags().IntVar(&trajectory, "trajectory", -1, "trace this particle's path instead of the final frame")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a YAML scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress per-step diagnostics")

	sweepCmd := &cobra.Command{
		Use:       "sweep [param]",
		Short:     "sweep dt or surface_tension",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"dt", "surface_tension"},
		RunE:      runSweep,
	}
	addSimFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.01, "first parameter value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.1, "last parameter value")
	sweepCmd.Flags().IntVar(&sweepCount, "values", 5, "number of values")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCOUNT\tAREA\tDT\tSTEPS")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%gx%g\t%g\t%d\n", name, p.Count, p.Width, p.Height, p.Dt, p.Steps)
			}
			return w.Flush()
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [file]",
		Short: "write a config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}
	addSimFlags(initCmd)

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "pair correlation, speed distribution and chaos estimate",
		RunE:  analyzeRun,
	}
	addSimFlags(analyzeCmd)
	analyzeCmd.Flags().IntVar(&particleIndex, "particle", 0, "particle for the phase portrait")
	analyzeCmd.Flags().StringVar(&xAxis, "x-axis", "x", "phase portrait x coordinate (x, y, vx, vy)")
	analyzeCmd.Flags().StringVar(&yAxis, "y-axis", "vx", "phase portrait y coordinate (x, y, vx, vy)")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure steps per second by particle count",
		RunE:  benchKernel,
	}

	rootCmd.AddCommand(runCmd, streamCmd, svgCmd, liveCmd, scenarioCmd, sweepCmd, analyzeCmd, presetsCmd, initCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&count, "count", "c", config.DefaultCount, "number of particles")
	cmd.Flags().Float64Var(&width, "width", config.DefaultWidth, "placement width")
	cmd.Flags().Float64Var(&height, "height", config.DefaultHeight, "placement height")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (default time-based)")
	cmd.Flags().Float64Var(&dt, "dt", physics.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&surfaceTension, "surface-tension", physics.DefaultSurfaceTension, "surface tension")
	cmd.Flags().IntVarP(&steps, "steps", "n", config.DefaultSteps, "number of steps")
	cmd.Flags().IntVar(&recordEvery, "record-every", config.DefaultRecordEvery, "record every n-th frame")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// loadConfig starts from the defaults, a preset or a config file and
// applies only the flags that were set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("count") {
		cfg.Count = count
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("surface-tension") {
		cfg.SurfaceTension = surfaceTension
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("record-every") {
		cfg.RecordEvery = recordEvery
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func diagnosticLogger(w io.Writer) physics.Option {
	logger := log.New(w, "", 0)
	return physics.WithObserver(dynamo.ObserverFunc(func(d dynamo.Diagnostic) {
		logger.Println(d.String())
	}))
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var opts []physics.Option
	if !quiet {
		opts = append(opts, diagnosticLogger(os.Stdout))
	}
	sim := cfg.NewSimulation(opts...)

	runner := dynamo.New(sim)
	for _, m := range metrics.Default(sim) {
		runner.AddMetric(m)
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Fprintf(os.Stderr, "running %d particles for %d steps (seed %d)\n", cfg.Count, cfg.Steps, cfg.Seed)
	start := time.Now()
	result, err := runner.Run(ctx, cfg.RunConfig())
	elapsed := time.Since(start)
	if result == nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stderr, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "steps\t%d\n", result.StepsTaken)
	fmt.Fprintf(w, "elapsed\t%s\n", elapsed.Round(time.Millisecond))
	fmt.Fprintf(w, "energy_drift\t%.6f\n", result.EnergyDrift)
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%.6f\n", name, result.Metrics[name])
	}
	w.Flush()

	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "warning: %v\n", e)
	}

	if plot && len(result.Frames) > 1 {
		energies := make([]float64, len(result.Frames))
		for i, f := range result.Frames {
			energies[i] = physics.Energy(f)
		}
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, asciigraph.Plot(energies, asciigraph.Height(10), asciigraph.Width(60), asciigraph.Caption("total energy")))
	}

	return err
}

func streamFrames(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var opts []physics.Option
	if !quiet {
		opts = append(opts, diagnosticLogger(os.Stderr))
	}
	sim := cfg.NewSimulation(opts...)

	ctx, cancel := signalContext()
	defer cancel()

	return bridge.Stream(ctx, os.Stdout, sim, cfg.Steps)
}

func renderSVG(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sim := cfg.NewSimulation()

	ctx, cancel := signalContext()
	defer cancel()

	result, err := dynamo.New(sim).Run(ctx, cfg.RunConfig())
	if err != nil {
		return err
	}

	w, h := int(physics.WorldWidth), int(physics.WorldHeight)
	var doc string
	if trajectory >= 0 {
		doc = export.TrajectoryToSVG(result.Frames, trajectory, w, h, "#00ffff")
		if doc == "" {
			return fmt.Errorf("particle %d has fewer than two recorded positions", trajectory)
		}
	} else {
		doc = export.SnapshotToSVG(result.Frames[len(result.Frames)-1], w, h)
	}

	if outFile == "" {
		_, err = io.WriteString(os.Stdout, doc)
		return err
	}
	if err := os.WriteFile(outFile, []byte(doc), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	title := "lennard-jones"
	if preset != "" {
		title += " / " + preset
	}
	return viz.Run(cfg.NewSimulation(), title, cfg.FPS)
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	if sc.Setup.Seed == 0 {
		sc.Setup.Seed = time.Now().UnixNano()
	}

	var opts []physics.Option
	if !quiet {
		opts = append(opts, diagnosticLogger(os.Stderr))
	}

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("scenario: %s\n", sc.Name)
	if sc.Description != "" {
		fmt.Printf("%s\n", sc.Description)
	}
	results, err := automation.RunScenario(ctx, sc, os.Stdout, opts...)

	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PHASE\tSTEPS\tDT\tTENSION\tENERGY\tMAX SPEED\tWALL")
	for _, r := range results {
		fmt.Fprintf(w, "%s\t%d\t%.4f\t%.2f\t%.3f\t%.3f\t%.3f\n",
			r.Name, r.Steps, r.Dt, r.SurfaceTension, r.Energy, r.Metrics["max_speed"], r.Metrics["wall_contact"])
	}
	w.Flush()

	return err
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	sweep := &automation.ParameterSweep{
		Setup:     *cfg,
		ParamName: args[0],
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepCount,
	}
	results, err := automation.RunSweep(ctx, sweep, os.Stderr)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tENERGY\tMAX SPEED\tWALL\tSTEPS\n", args[0])
	for _, r := range results {
		fmt.Fprintf(w, "%.4f\t%.3f\t%.3f\t%.3f\t%d\n", r.ParamValue, r.FinalEnergy, r.MaxSpeed, r.WallContact, r.StepsTaken)
	}
	return w.Flush()
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sim := cfg.NewSimulation()
	initial := sim.Particles()

	ctx, cancel := signalContext()
	defer cancel()

	rc := cfg.RunConfig()
	rc.RecordEvery = 1
	result, err := dynamo.New(sim).Run(ctx, rc)
	if err != nil {
		return err
	}
	final := result.Frames[len(result.Frames)-1]

	fmt.Printf("analyzing %d particles over %d steps (seed %d)\n\n", cfg.Count, result.StepsTaken, cfg.Seed)

	if g := analysis.RadialDistribution(final, physics.Sigma/4, 5*physics.Sigma, physics.WorldWidth*physics.WorldHeight); len(g) > 1 {
		fmt.Println(asciigraph.Plot(g, asciigraph.Height(8), asciigraph.Width(60), asciigraph.Caption("g(r), r in [0, 5 sigma)")))
		fmt.Println()
	}

	counts, binWidth := analysis.SpeedHistogram(final, 20)
	hist := make([]float64, len(counts))
	for i, c := range counts {
		hist[i] = float64(c)
	}
	fmt.Println(asciigraph.Plot(hist, asciigraph.Height(8), asciigraph.Width(60),
		asciigraph.Caption(fmt.Sprintf("speed distribution, bin width %.3f", binWidth))))
	fmt.Println()

	portrait, err := analysis.GeneratePhasePortrait(result.Frames, particleIndex, analysis.Coordinate(xAxis), analysis.Coordinate(yAxis))
	if err != nil {
		return err
	}
	fmt.Printf("particle %d: %s vs %s\n", particleIndex, yAxis, xAxis)
	fmt.Println(analysis.PhasePortraitToASCII(portrait, 60, 16))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if series, err := analysis.Series(result.Frames, particleIndex, analysis.CoordVX); err == nil {
		fmt.Fprintf(w, "dominant vx frequency\t%.4f\n", analysis.DominantFrequency(series, cfg.Dt))
	}
	fmt.Fprintf(w, "divergence rate\t%.4f\n", analysis.DivergenceRate(initial, cfg.Dt, 1e-6, min(cfg.Steps, 2000)))
	fmt.Fprintf(w, "energy drift\t%.6f\n", result.EnergyDrift)
	return w.Flush()
}

func benchKernel(cmd *cobra.Command, args []string) error {
	counts := []int{10, 50, 100, 200, 400}
	const benchSteps = 200

	fmt.Printf("benchmarking %d steps\n\n", benchSteps)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARTICLES\tPAIRS\tTIME\tSTEPS/SEC")

	for _, n := range counts {
		sim := physics.New(n, physics.WorldWidth, physics.WorldHeight, physics.WithSeed(42))

		start := time.Now()
		for i := 0; i < benchSteps; i++ {
			sim.Step()
		}
		elapsed := time.Since(start)

		rate := float64(benchSteps) / elapsed.Seconds()
		fmt.Fprintf(w, "%d\t%d\t%s\t%.0f\n", n, n*(n-1)/2, elapsed.Round(time.Microsecond), rate)
	}

	return w.Flush()
}
