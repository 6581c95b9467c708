package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/hapticsim/internal/analysis"
	"github.com/san-kum/hapticsim/internal/config"
	"github.com/san-kum/hapticsim/internal/experiment"
	"github.com/san-kum/hapticsim/internal/export"
	"github.com/san-kum/hapticsim/internal/optim"
	"github.com/san-kum/hapticsim/internal/viz"
)

var (
	logLevel   string
	preset     string
	configFile string
	steps      int
	// run outputs
	csvFile  string
	jsonFile string
	pngFile  string
	plot     bool
	series   string
	// profile
	from    float64
	to      float64
	samples int
	svgFile string
	// tune
	iterations int
	method     string
	// analyze
	analyzed string
	level    float64
	// sweep
	param     string
	sweepFrom float64
	sweepTo   float64
	points    int
	workers   int

	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "hapticsim",
		Short:        "1-d haptic surface simulator",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive()
		},
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "default", "preset scenario")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "scenario file (yaml), overrides --preset")
	rootCmd.PersistentFlags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a scenario headless",
		Args:  cobra.NoArgs,
		RunE:  runScenario,
	}
	runCmd.Flags().StringVar(&csvFile, "csv", "", "write the trace as CSV")
	runCmd.Flags().StringVar(&jsonFile, "json", "", "write the result as JSON")
	runCmd.Flags().StringVar(&pngFile, "png", "", "write a chart of --series as PNG")
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot --series in the terminal")
	runCmd.Flags().StringVar(&series, "series", "position", "trace series to plot ("+strings.Join(experiment.SeriesNames(), ", ")+")")

	profileCmd := &cobra.Command{
		Use:   "profile",
		Short: "plot the surface potential and force",
		Args:  cobra.NoArgs,
		RunE:  plotProfile,
	}
	profileCmd.Flags().Float64Var(&from, "from", 0, "start of the range (default x_min)")
	profileCmd.Flags().Float64Var(&to, "to", 0, "end of the range (default x_max)")
	profileCmd.Flags().IntVar(&samples, "samples", 200, "number of intervals")
	profileCmd.Flags().StringVar(&svgFile, "svg", "", "write the plot as SVG")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive live view of a scenario",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return viz.RunLive(cfg)
		},
	}

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "tune target controller gains",
		Args:  cobra.NoArgs,
		RunE:  tuneGains,
	}
	tuneCmd.Flags().IntVar(&iterations, "iterations", optim.DefaultMaxEvals, "maximum evaluations (nelder-mead)")
	tuneCmd.Flags().StringVar(&method, "method", "nelder-mead", "search method (nelder-mead, grid)")
	tuneCmd.Flags().IntVar(&workers, "workers", 0, "parallel runs for grid search (0 = unbounded)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "spectrum, statistics and phase portrait of a run",
		Args:  cobra.NoArgs,
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&analyzed, "series", "velocity", "trace series to analyze")
	analyzeCmd.Flags().Float64Var(&level, "level", 0, "position level for crossings (default: the mean position)")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "final state against one parameter",
		Args:  cobra.NoArgs,
		RunE:  sweepParam,
	}
	sweepCmd.Flags().StringVar(&param, "param", "friction.static", "parameter ("+strings.Join(config.ParamNames(), ", ")+")")
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 50, "last value")
	sweepCmd.Flags().IntVar(&points, "points", 11, "number of values")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "parallel runs (0 = unbounded)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset scenarios",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Printf("  %s\n", name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, profileCmd, liveCmd, tuneCmd, analyzeCmd, sweepCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogger() error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(logLevel)); err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))
	return nil
}

// loadConfig reads --config, else --preset, and applies --steps when given.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	} else {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if cmd.Flags().Changed("steps") {
		cfg.Simulation.Steps = steps
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("scenario loaded", "name", cfg.Name, "steps", cfg.Simulation.Steps, "entries", len(cfg.Profile))
	return cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runExperiment(cmd *cobra.Command) (*experiment.Result, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	exp, err := experiment.New(cfg, experiment.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	ctx, cancel := signalContext()
	defer cancel()
	return exp.Run(ctx)
}

func runScenario(cmd *cobra.Command, args []string) error {
	start := time.Now()
	result, err := runExperiment(cmd)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("scenario: %s\n", result.Name)
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("steps: %d (t = %.2fs)\n", result.StepsTaken, result.Time)
	fmt.Printf("final: x = %.4f, vx = %.4f\n", result.Final.X, result.Final.Vx)
	printMetrics(result.Metrics)

	if csvFile != "" {
		if err := export.SaveCSV(csvFile, result.Trace.Samples); err != nil {
			return err
		}
		fmt.Printf("trace written to %s\n", csvFile)
	}
	if jsonFile != "" {
		if err := export.SaveJSON(jsonFile, result); err != nil {
			return err
		}
		fmt.Printf("result written to %s\n", jsonFile)
	}
	if !plot && pngFile == "" {
		return nil
	}

	ys, err := result.Trace.Series(series)
	if err != nil {
		return err
	}
	if plot {
		fmt.Println()
		fmt.Println(asciigraph.Plot(ys,
			asciigraph.Height(15),
			asciigraph.Width(80),
			asciigraph.Caption(series),
		))
	}
	if pngFile != "" {
		ts, _ := result.Trace.Series("time")
		fig := export.Figure{Title: result.Name, XLabel: "t (s)", YLabel: series}
		if err := fig.SavePNG(pngFile, ts, []export.Series{{Name: series, Ys: ys}}); err != nil {
			return err
		}
		fmt.Printf("chart written to %s\n", pngFile)
	}
	return nil
}

func printMetrics(metrics map[string]float64) {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\t%.6f\n", name, metrics[name])
	}
	w.Flush()
}

func plotProfile(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	prof, err := cfg.BuildProfile()
	if err != nil {
		return err
	}
	lo, hi := cfg.Simulation.XMin, cfg.Simulation.XMax
	if cmd.Flags().Changed("from") {
		lo = from
	}
	if cmd.Flags().Changed("to") {
		hi = to
	}
	if lo >= hi {
		return fmt.Errorf("empty range [%g, %g]", lo, hi)
	}

	_, us, fs := prof.Sample(lo, hi, samples)
	fmt.Printf("profile: %s, x in [%g, %g]\n\n", cfg.Name, lo, hi)
	fmt.Println(asciigraph.Plot(us, asciigraph.Height(12), asciigraph.Width(80), asciigraph.Caption("potential U(x)")))
	fmt.Println()
	fmt.Println(asciigraph.Plot(fs, asciigraph.Height(12), asciigraph.Width(80), asciigraph.Caption("force F(x)")))

	if svgFile != "" {
		f, err := os.Create(svgFile)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := export.ProfileSVG(f, prof, lo, hi, samples, 800, 400); err != nil {
			return err
		}
		fmt.Printf("\nsvg written to %s\n", svgFile)
	}
	return nil
}

func tuneGains(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	target, ok := experiment.Target(cfg)
	if !ok {
		return fmt.Errorf("scenario %s has no target to tune for (try --preset position)", cfg.Name)
	}
	bounds := optim.PositionGains()
	if cfg.Impedance.Enabled {
		bounds = optim.ImpedanceGains()
	}
	objective := optim.TrackingCost(target)

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("tuning %s toward x = %g (%s)...\n", cfg.Name, target, method)
	start := time.Now()

	var best map[string]float64
	var score float64
	switch method {
	case "nelder-mead":
		tuner := &optim.Tuner{Bounds: bounds, MaxEvals: iterations, Logger: logger}
		res, err := tuner.Tune(ctx, cfg, objective)
		if err != nil {
			return err
		}
		best, score = res.Params, res.Score
		fmt.Printf("evaluations: %d\n", res.Evaluations)
	case "grid":
		names := make([]string, len(bounds))
		ranges := make([][]float64, len(bounds))
		for i, b := range bounds {
			names[i] = b.Name
			ranges[i] = analysis.Linspace(b.Min, b.Max, 6)
		}
		gs := optim.NewGridSearch(names, ranges)
		gs.Workers = workers
		best, score, err = gs.Search(ctx, cfg, objective)
		if err != nil {
			return err
		}
	default:
		return fmt.Errorf("unknown method: %s (want nelder-mead or grid)", method)
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("score: %.4f\n", score)
	printMetrics(best)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	result, err := runExperiment(cmd)
	if err != nil {
		return err
	}
	data, err := result.Trace.Series(analyzed)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return fmt.Errorf("no data")
	}
	xs, _ := result.Trace.Series("position")
	vs, _ := result.Trace.Series("velocity")
	dt := result.Time / float64(result.StepsTaken)

	fmt.Printf("analysis: %s (%s)\n\n", result.Name, analyzed)

	s := analysis.Summarize(data)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  mean\t%.4f\n  stddev\t%.4f\n  min\t%.4f\n  max\t%.4f\n  median\t%.4f\n  rms\t%.4f\n",
		s.Mean, s.StdDev, s.Min, s.Max, s.Median, s.RMS)
	w.Flush()

	spec := analysis.PowerSpectrum(data, dt)
	if n := len(spec.Amps) / 4; n > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(spec.Amps[:n],
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("amplitude spectrum ("+analyzed+")"),
		))
	}
	freq, amp := analysis.DominantFrequency(data, dt)
	fmt.Printf("\ndominant frequency: %.3f hz (amplitude %.4f)\n", freq, amp)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	lvl := level
	if !cmd.Flags().Changed("level") {
		lvl = analysis.Summarize(xs).Mean
	}
	crossings := analysis.Crossings(xs, vs, lvl)
	fmt.Printf("crossings of x = %.2f: %d\n", lvl, len(crossings))

	fmt.Println("\nphase portrait (x, vx):")
	fmt.Println(analysis.PhasePortraitToASCII(analysis.NewPhasePortrait(xs, vs), 60, 20))
	return nil
}

func sweepParam(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	values := analysis.Linspace(sweepFrom, sweepTo, points)
	if len(values) == 0 {
		return fmt.Errorf("--points must be positive")
	}

	ctx, cancel := signalContext()
	defer cancel()
	res, err := analysis.Sweep(ctx, cfg, param, values, workers)
	if err != nil {
		return err
	}

	fmt.Printf("sweep: %s over %s\n\n", cfg.Name, param)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  %s\tx\tvx\n", param)
	for _, p := range res {
		fmt.Fprintf(w, "  %.4f\t%.4f\t%.4f\n", p.Param, p.Final.X, p.Final.Vx)
	}
	w.Flush()
	return nil
}
