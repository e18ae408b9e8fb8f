package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/mpolane/gravsim/internal/analysis"
	"github.com/mpolane/gravsim/internal/config"
	"github.com/mpolane/gravsim/internal/metrics"
	"github.com/mpolane/gravsim/internal/physics"
	"github.com/mpolane/gravsim/internal/scenario"
	"github.com/mpolane/gravsim/internal/sim"
	"github.com/mpolane/gravsim/internal/storage"
	"github.com/mpolane/gravsim/internal/viz"
)

var (
	dataDir     string
	configFile  string
	gravity     float64
	timeScale   float64
	subSteps    int
	softening   float64
	restitution float64
	collisions  bool
	frameDelta  float64
	duration    float64
	seed        int64
	scale       float64
	galaxySize  int
	// diverge
	ensembleRuns int
	// plot axes
	bodyIdx int
	axisIdx int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gravsim",
		Short: "softened n-body gravity sandbox",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gravsim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run a scenario headless and record it",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	addSimFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live [scenario]",
		Short: "run a scenario with live terminal visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list scenario presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "SCENARIO\tG\tTIMESCALE\tSUBSTEPS\tSOFTENING\tCOLLISIONS")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%d\t%.2f\t%v\n",
					name, p.G, p.TimeScale, p.SubSteps, p.Softening, p.Collisions)
			}
			return w.Flush()
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&bodyIdx, "body", 0, "body index to plot")
	plotCmd.Flags().IntVar(&axisIdx, "axis", 0, "coordinate index (0=px 1=py 2=pz 3=vx 4=vy 5=vz)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&bodyIdx, "body", 0, "body index to analyze")
	analyzeCmd.Flags().IntVar(&axisIdx, "axis", 0, "coordinate index (0=px 1=py 2=pz 3=vx 4=vy 5=vz)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	divergeCmd := &cobra.Command{
		Use:   "diverge [scenario]",
		Short: "measure sensitivity to initial conditions",
		Args:  cobra.ExactArgs(1),
		RunE:  divergeScenario,
	}
	addSimFlags(divergeCmd)
	divergeCmd.Flags().IntVar(&ensembleRuns, "runs", 4, "ensemble size including reference")

	benchCmd := &cobra.Command{
		Use:   "bench [scenario]",
		Short: "benchmark stepping throughput",
		Args:  cobra.ExactArgs(1),
		RunE:  benchScenario,
	}
	addSimFlags(benchCmd)

	rootCmd.AddCommand(runCmd, liveCmd, presetsCmd, listCmd, plotCmd, analyzeCmd, exportCSVCmd, exportJSONCmd, divergeCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().Float64Var(&gravity, "g", sim.DefaultG, "gravitational constant")
	cmd.Flags().Float64Var(&timeScale, "time-scale", sim.DefaultTimeScale, "simulation speed multiplier")
	cmd.Flags().IntVar(&subSteps, "sub-steps", sim.DefaultSubSteps, "integration sub-steps per frame")
	cmd.Flags().Float64Var(&softening, "softening", sim.DefaultSoftening, "gravitational softening length")
	cmd.Flags().Float64Var(&restitution, "restitution", config.DefaultRestitution, "collision restitution")
	cmd.Flags().BoolVar(&collisions, "collisions", true, "resolve collisions")
	cmd.Flags().Float64Var(&frameDelta, "frame-delta", sim.DefaultFrameDelta, "frame time step (s)")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "simulated duration (s)")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().Float64Var(&scale, "scale", config.DefaultScale, "scenario scale factor")
	cmd.Flags().IntVar(&galaxySize, "galaxy-bodies", config.DefaultGalaxySize, "ring bodies in the galaxy scenario")
}

// buildConfig resolves the run configuration. Precedence: flags beat the
// config file, which beats the scenario preset, which beats the defaults.
func buildConfig(cmd *cobra.Command, scenarioName string) (*config.Config, error) {
	cfg := config.GetPreset(scenarioName)
	if cfg == nil {
		cfg = config.DefaultConfig()
		cfg.Scenario = scenarioName
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		loaded.Scenario = scenarioName
		cfg = loaded
	}

	if cmd.Flags().Changed("g") {
		cfg.G = gravity
	}
	if cmd.Flags().Changed("time-scale") {
		cfg.TimeScale = timeScale
	}
	if cmd.Flags().Changed("sub-steps") {
		cfg.SubSteps = subSteps
	}
	if cmd.Flags().Changed("softening") {
		cfg.Softening = softening
	}
	if cmd.Flags().Changed("restitution") {
		cfg.Restitution = restitution
	}
	if cmd.Flags().Changed("collisions") {
		cfg.Collisions = collisions
	}
	if cmd.Flags().Changed("frame-delta") {
		cfg.FrameDelta = frameDelta
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("scale") {
		cfg.ScenarioParams.Scale = scale
	}
	if cmd.Flags().Changed("galaxy-bodies") {
		cfg.ScenarioParams.GalaxyBodies = galaxySize
	}
	if cfg.Seed == 0 || cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	gen := scenario.New(cfg.Seed)
	bodies, err := gen.Generate(scenario.Preset(cfg.Scenario), cfg.Options())
	if err != nil {
		return err
	}
	if cfg.Perturb {
		gen.Perturb(bodies)
	}

	runner := sim.NewRunner(sim.NewStepper(cfg.Seed), cfg.Params())
	runner.AddMetric(metrics.NewEnergyDrift(cfg.G, cfg.Softening))
	runner.AddMetric(metrics.NewMomentumDrift())
	runner.AddMetric(metrics.NewBoundingRadius())

	fmt.Printf("running %s (%d bodies)...\n", cfg.Scenario, len(bodies))
	start := time.Now()

	result, err := runner.Run(context.Background(), bodies, sim.RunConfig{
		FrameDelta: cfg.FrameDelta,
		Ticks:      cfg.Ticks(),
	})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		Scenario:   cfg.Scenario,
		Seed:       cfg.Seed,
		Bodies:     len(bodies),
		G:          cfg.G,
		TimeScale:  cfg.TimeScale,
		SubSteps:   cfg.SubSteps,
		Softening:  cfg.Softening,
		Collisions: cfg.Collisions,
		FrameDelta: cfg.FrameDelta,
		Duration:   cfg.Duration,
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d\n", result.TicksTaken)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	gen := scenario.New(cfg.Seed)
	bodies, err := gen.Generate(scenario.Preset(cfg.Scenario), cfg.Options())
	if err != nil {
		return err
	}
	if cfg.Perturb {
		gen.Perturb(bodies)
	}

	m := viz.NewModel(bodies, cfg.Params(), scenario.Preset(cfg.Scenario), cfg.Options(), cfg.Seed, cfg.FrameDelta)
	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tBODIES\tDURATION\tG\tCOLLISIONS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2fs\t%.2f\t%v\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Bodies,
			run.Duration,
			run.G,
			run.Collisions,
		)
	}

	return w.Flush()
}

// column extracts one coordinate of one body across all frames.
func column(frames [][]float64, body, axis int) ([]float64, error) {
	idx := body*6 + axis
	if len(frames) == 0 || idx >= len(frames[0]) {
		return nil, fmt.Errorf("body %d axis %d out of range", body, axis)
	}
	data := make([]float64, len(frames))
	for i := range frames {
		data[i] = frames[i][idx]
	}
	return data, nil
}

var axisNames = []string{"px", "py", "pz", "vx", "vy", "vz"}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	frames, _, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}

	data, err := column(frames, bodyIdx, axisIdx)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(frames))

	name := "x"
	if axisIdx >= 0 && axisIdx < len(axisNames) {
		name = axisNames[axisIdx]
	}
	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("body %d %s vs time", bodyIdx, name)),
	)
	fmt.Println(graph)

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	frames, times, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}

	data, err := column(frames, bodyIdx, axisIdx)
	if err != nil {
		return err
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n\n", meta.Scenario)

	ps := analysis.PowerSpectrum(data)
	plotData := ps[:len(ps)/4]

	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum (body %d)", bodyIdx)),
	)
	fmt.Println(graph)
	fmt.Println()

	dt := meta.FrameDelta * meta.TimeScale
	if len(times) > 1 {
		dt = times[1] - times[0]
	}
	period := analysis.DominantPeriod(data, dt)
	if period > 0 {
		fmt.Printf("dominant period: %.3f s\n", period)
		fmt.Printf("frequency: %.3f hz\n", 1.0/period)
	} else {
		fmt.Println("no dominant period found")
	}

	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	frames, times, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	return storage.ExportCSV(os.Stdout, frames, times)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	frames, times, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, frames, times)
}

func divergeScenario(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}
	if ensembleRuns < 2 {
		return fmt.Errorf("need at least 2 runs, got %d", ensembleRuns)
	}

	gen := scenario.New(cfg.Seed)
	bodies, err := gen.Generate(scenario.Preset(cfg.Scenario), cfg.Options())
	if err != nil {
		return err
	}

	perturb := func(b []*physics.Body, rng *rand.Rand) {
		scenario.NewWithRand(rng).Perturb(b)
	}

	ensemble := sim.NewEnsemble(cfg.Params(), ensembleRuns, cfg.Seed, perturb)

	fmt.Printf("running %d copies of %s...\n", ensembleRuns, cfg.Scenario)
	start := time.Now()

	results, err := ensemble.Run(context.Background(), bodies, sim.RunConfig{
		FrameDelta: cfg.FrameDelta,
		Ticks:      cfg.Ticks(),
	})
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n\n", time.Since(start))

	dt := cfg.FrameDelta * cfg.TimeScale
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "COPY\tFINAL SEP\tDIVERGENCE EXP")

	var meanSep []float64
	for i := 1; i < len(results); i++ {
		sep := analysis.Separation(results[0].Frames, results[i].Frames)
		if len(sep) == 0 {
			continue
		}
		exp := analysis.DivergenceExponent(sep, dt)
		fmt.Fprintf(w, "%d\t%.6f\t%.4f\n", i, sep[len(sep)-1], exp)

		if meanSep == nil {
			meanSep = make([]float64, len(sep))
		}
		for j := range sep {
			meanSep[j] += sep[j] / float64(len(results)-1)
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(meanSep) > 1 {
		fmt.Println()
		graph := asciigraph.Plot(meanSep,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("mean separation from reference"),
		)
		fmt.Println(graph)
	}

	return nil
}

func benchScenario(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args[0])
	if err != nil {
		return err
	}

	subStepGrid := []int{1, 4, 8, 16}
	ticks := cfg.Ticks()

	fmt.Printf("benchmarking %s (%d ticks)\n\n", cfg.Scenario, ticks)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SUBSTEPS\tBODIES\tTICKS\tTIME\tTICKS/SEC")

	for _, n := range subStepGrid {
		gen := scenario.New(cfg.Seed)
		bodies, err := gen.Generate(scenario.Preset(cfg.Scenario), cfg.Options())
		if err != nil {
			return err
		}

		params := cfg.Params()
		params.SubSteps = n
		stepper := sim.NewStepper(cfg.Seed)

		start := time.Now()
		for i := 0; i < ticks; i++ {
			stepper.Step(bodies, params, cfg.FrameDelta)
		}
		elapsed := time.Since(start)

		ticksPerSec := float64(ticks) / elapsed.Seconds()
		fmt.Fprintf(w, "%d\t%d\t%d\t%v\t%.0f\n", n, len(bodies), ticks, elapsed, ticksPerSec)
	}

	return w.Flush()
}
