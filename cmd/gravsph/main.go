package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/gravsph/gravsph/internal/config"
	"github.com/gravsph/gravsph/internal/integrators"
	"github.com/gravsph/gravsph/internal/metrics"
	"github.com/gravsph/gravsph/internal/physics"
	"github.com/gravsph/gravsph/internal/store"
)

var (
	dataDir      string
	numParticles int
	side         float64
	mass         float64
	energy       float64
	seed         int64
	theta        float64
	smoothingH   float64
	g            float64
	softening    float64
	dt           float64
	tEnd         float64
	configFile   string
	preset       string
	outputPath   string
)

// main is the entry point for the gravsph CLI; it registers commands and
// flags and executes the root command, exiting with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:   "gravsph",
		Short: "self-gravitating SPH fluid simulator",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gravsph", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scenario]",
		Short: "run the gravity/SPH pipeline to completion",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().IntVar(&numParticles, "n", config.DefaultNumParticles, "particle count (cube scenario)")
	runCmd.Flags().Float64Var(&side, "side", config.DefaultSide, "initial cube side length")
	runCmd.Flags().Float64Var(&mass, "mass", config.DefaultMass, "particle mass")
	runCmd.Flags().Float64Var(&energy, "energy", config.DefaultEnergy, "initial internal energy per particle")
	runCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	runCmd.Flags().Float64Var(&theta, "theta", 0, "Barnes-Hut opening angle (0 = use default)")
	runCmd.Flags().Float64Var(&smoothingH, "smoothing-h", 0, "SPH smoothing length (0 = use default)")
	runCmd.Flags().Float64Var(&g, "g", 0, "gravitational constant (0 = use default)")
	runCmd.Flags().Float64Var(&softening, "softening", 0, "gravity softening length (0 = use default)")
	runCmd.Flags().Float64Var(&dt, "dt", 0, "timestep (0 = use default)")
	runCmd.Flags().Float64Var(&tEnd, "t-end", 0, "stop time (0 = use default)")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use a named scenario preset")
	runCmd.Flags().StringVar(&outputPath, "output", "", "final-state log path (defaults to config's output_path)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run's metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [scenario]",
		Short: "time N steps and plot a diagnostic sparkline",
		Args:  cobra.ExactArgs(1),
		RunE:  benchScenario,
	}
	benchCmd.Flags().IntVar(&numParticles, "n", config.DefaultNumParticles, "particle count (cube scenario)")
	benchCmd.Flags().IntVar(&benchSteps, "steps", 20, "number of full steps to run")

	rootCmd.AddCommand(runCmd, listCmd, exportCmd, benchCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var benchSteps int

// buildScenario constructs the initial particle store for a named scenario.
func buildScenario(cfg *config.Config) (physics.Store, error) {
	switch cfg.Scenario {
	case "two-body":
		return physics.NewTwoBodyAtRest(cfg.Mass, cfg.InitialEnergy, cfg.Side), nil
	case "single":
		return physics.NewSingleParticle(cfg.Mass, cfg.InitialEnergy), nil
	case "cube", "":
		return physics.NewUniformCube(cfg.NumParticles, cfg.Side, cfg.Mass, cfg.InitialEnergy, cfg.Seed), nil
	default:
		return nil, fmt.Errorf("unknown scenario: %s", cfg.Scenario)
	}
}

func resolveConfig(scenario string, cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	} else {
		cfg = config.DefaultConfig()
		cfg.Scenario = scenario
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg
		cfg.Scenario = scenario
	}

	if cmd.Flags().Changed("n") {
		cfg.NumParticles = numParticles
	}
	if cmd.Flags().Changed("side") {
		cfg.Side = side
	}
	if cmd.Flags().Changed("mass") {
		cfg.Mass = mass
	}
	if cmd.Flags().Changed("energy") {
		cfg.InitialEnergy = energy
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("theta") && theta != 0 {
		cfg.Theta = theta
	}
	if cmd.Flags().Changed("smoothing-h") && smoothingH != 0 {
		cfg.SmoothingH = smoothingH
	}
	if cmd.Flags().Changed("g") && g != 0 {
		cfg.G = g
	}
	if cmd.Flags().Changed("softening") && softening != 0 {
		cfg.Softening = softening
	}
	if cmd.Flags().Changed("dt") && dt != 0 {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("t-end") && tEnd != 0 {
		cfg.TEnd = tEnd
	}
	if cmd.Flags().Changed("output") {
		cfg.OutputPath = outputPath
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	scenario := args[0]

	cfg, err := resolveConfig(scenario, cmd)
	if err != nil {
		return err
	}

	if _, err := os.Stat(cfg.OutputPath); err == nil {
		return physics.ErrOutputExists
	}

	particles, err := buildScenario(cfg)
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	integ := integrators.New(particles, cfg.IntegratorParams())

	fmt.Printf("running %s scenario (%d particles)...\n", cfg.Scenario, len(particles))
	start := time.Now()

	if err := integ.Run(context.Background()); err != nil {
		return err
	}

	elapsed := time.Since(start)

	if err := writeLog(cfg.OutputPath, integ); err != nil {
		return err
	}

	finalEnergy := metrics.Total(integ.Store, cfg.G, cfg.Softening)

	meta := store.RunMetadata{
		Scenario:     cfg.Scenario,
		Seed:         cfg.Seed,
		NumParticles: len(particles),
		Theta:        cfg.Theta,
		SmoothingH:   cfg.SmoothingH,
		Softening:    cfg.Softening,
		G:            cfg.G,
		Dt:           cfg.Dt,
		TEnd:         cfg.TEnd,
		Steps:        integ.StepsTaken,
		WallTime:     elapsed,
		FinalEnergy:  finalEnergy,
	}

	runID, err := st.Save(meta, integ.Store)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", integ.StepsTaken)
	fmt.Printf("final energy: %.6f\n", finalEnergy)

	return nil
}

// writeLog writes the reference plain-text final-state log: one line per
// particle with its index, position and density, failing if the file
// already exists.
func writeLog(path string, integ *integrators.GravSPH) error {
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return physics.ErrOutputExists
		}
		return err
	}
	defer file.Close()

	for i, p := range integ.Store {
		fmt.Fprintf(file, "%d %.10g %.10g %.10g %.10g\n", i, p.Pos.X, p.Pos.Y, p.Pos.Z, p.Density)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tN\tSTEPS\tFINAL ENERGY")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.6f\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.NumParticles,
			run.Steps,
			run.FinalEnergy,
		)
	}

	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func benchScenario(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	cfg.Scenario = args[0]
	cfg.NumParticles = numParticles

	particles, err := buildScenario(cfg)
	if err != nil {
		return err
	}

	integ := integrators.New(particles, cfg.IntegratorParams())

	densities := make([]float64, 0, benchSteps)
	start := time.Now()
	for i := 0; i < benchSteps; i++ {
		if err := integ.Step(); err != nil {
			return err
		}
		var mean float64
		for _, p := range integ.Store {
			mean += p.Density
		}
		densities = append(densities, mean/float64(len(integ.Store)))
	}
	elapsed := time.Since(start)

	fmt.Printf("%d steps over %d particles in %v (%.1f steps/sec)\n\n",
		benchSteps, len(particles), elapsed, float64(benchSteps)/elapsed.Seconds())

	graph := asciigraph.Plot(densities,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("mean density per step"),
	)
	fmt.Println(graph)

	return nil
}
