package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/kwhitlock/fiberlab/internal/analysis"
	"github.com/kwhitlock/fiberlab/internal/config"
	"github.com/kwhitlock/fiberlab/internal/experiment"
	"github.com/kwhitlock/fiberlab/internal/metrics"
	"github.com/kwhitlock/fiberlab/internal/storage"
	"github.com/kwhitlock/fiberlab/internal/tui"
	"github.com/kwhitlock/fiberlab/internal/world"
)

const version = "0.1.0"

var (
	dataDir     string
	radius      int
	span        float64
	nActin      int
	nActinin    int
	nMotors     int
	seed        int64
	temperature float64
	dt          float64
	steps       int
	sampleEvery int
	configFile  string
	preset      string
	jsonOut     bool
	replicas    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fiberlab",
		Short: "agent-based stress fiber simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".fiberlab", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and store the results",
		RunE:  runSimulation,
	}
	addWorldFlags(runCmd)
	runCmd.Flags().BoolVar(&jsonOut, "json", false, "print the full run as JSON instead of storing it")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a simulation with a live terminal view",
		RunE:  runLive,
	}
	addWorldFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure stepping throughput",
		RunE:  benchWorld,
	}
	addWorldFlags(benchCmd)

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "fluctuation analysis of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	ensembleCmd := &cobra.Command{
		Use:   "ensemble",
		Short: "run replicate simulations with sequential seeds",
		RunE:  runEnsemble,
	}
	addWorldFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&replicas, "replicas", 8, "number of replicate runs")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a default config file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Save(args[0], config.DefaultConfig())
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "print version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("fiberlab", version)
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd, benchCmd,
		analyzeCmd, ensembleCmd, presetsCmd, initCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addWorldFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&radius, "radius", config.DefaultRadius, "hex lattice radius")
	cmd.Flags().Float64Var(&span, "span", config.DefaultSpan, "tract span in nm")
	cmd.Flags().IntVar(&nActin, "actin", config.DefaultActin, "filaments per tract")
	cmd.Flags().IntVar(&nActinin, "actinin", config.DefaultActinin, "crosslinkers per tract")
	cmd.Flags().IntVar(&nMotors, "motors", config.DefaultMotors, "motors per tract")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().Float64Var(&temperature, "temp", 0, "temperature in kelvin (0 = default)")
	cmd.Flags().Float64Var(&dt, "dt", 0, "timestep in seconds (0 = default)")
	cmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	cmd.Flags().IntVar(&sampleEvery, "sample", config.DefaultSampleEvery, "sample interval in steps")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use a named preset")
}

// buildConfig layers preset, config file, and explicit flags, in that order.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q", preset)
		}
		cfg = p
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("radius") {
		cfg.Radius = radius
	}
	if flags.Changed("span") {
		cfg.Span = span
	}
	if flags.Changed("actin") {
		cfg.Actin = nActin
	}
	if flags.Changed("actinin") {
		cfg.Actinin = nActinin
	}
	if flags.Changed("motors") {
		cfg.Motors = nMotors
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("temp") {
		cfg.Temperature = temperature
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("steps") {
		cfg.Steps = steps
	}
	if flags.Changed("sample") {
		cfg.SampleEvery = sampleEvery
	}
	if cfg.Seed == 0 {
		cfg.Seed = seed
	}
	return cfg, nil
}

func metaFrom(cfg *config.Config) storage.RunMetadata {
	return storage.RunMetadata{
		Seed:        cfg.Seed,
		Dt:          cfg.Dt,
		Steps:       cfg.Steps,
		Radius:      cfg.Radius,
		Span:        cfg.Span,
		Actin:       cfg.Actin,
		Actinin:     cfg.Actinin,
		Motors:      cfg.Motors,
		Temperature: cfg.Temperature,
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	w, err := world.Build(cfg.Options())
	if err != nil {
		return err
	}

	bound := metrics.NewBoundFraction()
	energy := metrics.NewTotalEnergy()
	shrink := metrics.NewContraction()
	shrink.Observe(w.Snapshot())

	every := cfg.SampleEvery
	if every < 1 {
		every = 1
	}

	samples := make([]storage.Sample, 0, cfg.Steps/every+1)
	var binds, unbinds, strokes, warnings int

	start := time.Now()
	for i := 1; i <= cfg.Steps; i++ {
		rep := w.StepDt(cfg.Dt)
		binds += rep.Binds
		unbinds += rep.Unbinds
		strokes += rep.Strokes
		warnings += len(rep.Warnings)

		if i%every != 0 && i != cfg.Steps {
			continue
		}
		snap := w.Snapshot()
		bound.Observe(snap)
		energy.Observe(snap)
		shrink.Observe(snap)
		samples = append(samples, storage.Sample{
			Step:          i,
			Time:          w.Time(),
			Binds:         binds,
			Unbinds:       unbinds,
			Strokes:       strokes,
			BoundFraction: bound.Value(),
			TotalEnergy:   energy.Value(),
			Contraction:   shrink.Value(),
		})
		bound.Reset()
		energy.Reset()
	}
	elapsed := time.Since(start)

	meta := metaFrom(cfg)
	meta.Metrics = map[string]float64{
		"bound_fraction": lastSampleValue(samples, func(s storage.Sample) float64 { return s.BoundFraction }),
		"total_energy":   lastSampleValue(samples, func(s storage.Sample) float64 { return s.TotalEnergy }),
		"contraction":    shrink.Value(),
		"binds":          float64(binds),
		"unbinds":        float64(unbinds),
		"strokes":        float64(strokes),
	}

	if jsonOut {
		return storage.ExportJSONStdout(meta, samples, w.Snapshot())
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(meta, samples)
	if err != nil {
		return err
	}

	fmt.Printf("run %s: %d steps in %.2fs (%.0f steps/s)\n",
		runID, cfg.Steps, elapsed.Seconds(), float64(cfg.Steps)/elapsed.Seconds())
	fmt.Printf("binds %d  unbinds %d  strokes %d  warnings %d\n", binds, unbinds, strokes, warnings)
	fmt.Printf("contraction %.4f\n", shrink.Value())
	return nil
}

func lastSampleValue(samples []storage.Sample, f func(storage.Sample) float64) float64 {
	if len(samples) == 0 {
		return 0
	}
	return f(samples[len(samples)-1])
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	w, err := world.Build(cfg.Options())
	if err != nil {
		return err
	}
	return tui.Run(w, cfg.Steps)
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
	fmt.Fprintln(w, "ID\tTIME\tSTEPS\tDT\tRADIUS\tACTIN\tACTININ\tMOTORS\tSEED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.4fs\t%d\t%d\t%d\t%d\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Steps,
			run.Dt,
			run.Radius,
			run.Actin,
			run.Actinin,
			run.Motors,
			run.Seed,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(samples))

	series := []struct {
		caption string
		value   func(storage.Sample) float64
	}{
		{"bound fraction", func(s storage.Sample) float64 { return s.BoundFraction }},
		{"total energy (pN.nm)", func(s storage.Sample) float64 { return s.TotalEnergy }},
		{"contraction", func(s storage.Sample) float64 { return s.Contraction }},
	}
	for _, sr := range series {
		data := make([]float64, len(samples))
		for i, s := range samples {
			data[i] = sr.value(s)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(sr.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) < 8 {
		return fmt.Errorf("need at least 8 samples, run %s has %d", runID, len(samples))
	}

	data := make([]float64, len(samples))
	for i, s := range samples {
		data[i] = s.BoundFraction
	}

	fmt.Printf("run: %s  samples: %d  dt: %.4fs\n\n", meta.ID, len(samples), meta.Dt)

	ps := analysis.PowerSpectrum(data)
	graph := asciigraph.Plot(ps,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("bound fraction fluctuation spectrum"),
	)
	fmt.Println(graph)
	fmt.Println()

	acf := analysis.Autocorrelation(data, len(data)/2)
	tau := analysis.CorrelationTime(acf)
	sampleDt := meta.Dt
	if len(samples) > 1 {
		sampleDt = samples[1].Time - samples[0].Time
	}
	fmt.Printf("correlation time: %d samples (%.3fs)\n", tau, float64(tau)*sampleDt)
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	e := experiment.NewEnsemble(cfg.Options(), cfg.Steps, replicas, cfg.Seed)
	summary, err := e.Run(cmd.Context())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tBINDS\tUNBINDS\tSTROKES\tBOUND\tCONTRACTION")
	for _, r := range summary.Replicas {
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\t%.3f\t%+.4f\n",
			r.Seed, r.Binds, r.Unbinds, r.Strokes, r.BoundFraction, r.Contraction)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nbound fraction %.3f +/- %.3f\n", summary.MeanBound, summary.StdBound)
	fmt.Printf("contraction    %+.4f +/- %.4f\n", summary.MeanContraction, summary.StdContraction)
	return nil
}

func benchWorld(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}
	w, err := world.Build(cfg.Options())
	if err != nil {
		return err
	}

	start := time.Now()
	w.StepN(cfg.Steps)
	elapsed := time.Since(start)

	fmt.Printf("%d steps, %d proteins, %d sites\n", cfg.Steps, len(w.Proteins()), w.Arena().Len())
	fmt.Printf("%.2fs total, %.0f steps/s\n", elapsed.Seconds(), float64(cfg.Steps)/elapsed.Seconds())
	return nil
}
