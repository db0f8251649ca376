package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/san-kum/hexwave/internal/config"
	"github.com/san-kum/hexwave/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	verbose    bool

	edgesFile    string
	shape        string
	cmapName     string
	steps        int
	speed        float64
	timeStep     float64
	spacing      float64
	margin       int
	ring         int
	workers      int
	impulseX     float64
	impulseY     float64
	amplitude    float64
	headroom     float64
	captureEvery int
	scale        int

	pngOut        string
	gifOut        string
	csvOut        string
	jsonOut       string
	svgOut        string
	noSave        bool
	ascii         bool
	metric        string
	analyzeMetric string
	gifPath       string

	sweepSpecs  []string
	sweepMetric string
	sweepMax    bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "hexwave",
		Short: "wave propagation on a hexagonal lattice",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger(os.Stderr)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, closeLog := tuiLogger()
			defer closeLog()
			return viz.RunInteractive(filepath.Join(dataDir, "hexwave.gif"), logger)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".hexwave", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation headless and store it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)
	runCmd.Flags().StringVar(&pngOut, "png", "", "write the final frame as PNG")
	runCmd.Flags().StringVar(&gifOut, "gif", "", "write captured frames as GIF")
	runCmd.Flags().StringVar(&csvOut, "csv", "", "write the metric trace as CSV")
	runCmd.Flags().StringVar(&jsonOut, "json", "", "write the metric trace as JSON")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a simulation in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addSimFlags(liveCmd)
	liveCmd.Flags().StringVar(&gifPath, "gif", "", "where recordings are saved (default <data>/hexwave.gif)")

	classifyCmd := &cobra.Command{
		Use:   "classify",
		Short: "classify the lattice and print a summary",
		Args:  cobra.NoArgs,
		RunE:  classifyGrid,
	}
	addSimFlags(classifyCmd)
	classifyCmd.Flags().BoolVar(&ascii, "ascii", false, "print the grid as characters")
	classifyCmd.Flags().StringVar(&svgOut, "svg", "", "write the grid as SVG")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "plot a stored metric trace",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().StringVar(&metric, "metric", "energy", "metric to plot")
	showCmd.Flags().StringVar(&svgOut, "svg", "", "also write the plot as SVG")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run a grid of configurations and rank them by a metric",
		Args:  cobra.NoArgs,
		RunE:  sweepParams,
	}
	addSimFlags(sweepCmd)
	sweepCmd.Flags().StringArrayVar(&sweepSpecs, "param", nil, "name=v1,v2,... (repeatable)")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "peak", "metric to rank by")
	sweepCmd.Flags().BoolVar(&sweepMax, "max", false, "rank by largest value")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "find resonant frequencies in a stored trace",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringVar(&analyzeMetric, "metric", "probe", "metric to analyse")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a stored trace to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored trace to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	deleteCmd := &cobra.Command{
		Use:   "delete [run_id]",
		Short: "delete a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  deleteRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("  %-10s shape=%s steps=%d impulse=(%.2f, %.2f)\n", name, p.Shape, p.Steps, p.Impulse.X, p.Impulse.Y)
			}
		},
	}

	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the resolved configuration to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE:  writeConfig,
	}
	addSimFlags(initCmd)

	rootCmd.AddCommand(runCmd, liveCmd, classifyCmd, sweepCmd, listCmd, showCmd, analyzeCmd,
		exportCSVCmd, exportJSONCmd, deleteCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	def := config.DefaultConfig()
	f := cmd.Flags()
	f.StringVar(&edgesFile, "edges", "", "edge list file")
	f.StringVar(&shape, "shape", def.Shape, "built-in shape when no edge file is given")
	f.StringVar(&cmapName, "colormap", def.Colormap, "built-in colormap name or colour table file")
	f.IntVar(&steps, "steps", def.Steps, "number of steps")
	f.Float64Var(&speed, "speed", def.Speed, "wave speed")
	f.Float64Var(&timeStep, "dt", def.TimeStep, "time step")
	f.Float64Var(&spacing, "spacing", def.Spacing, "lattice spacing")
	f.IntVar(&margin, "margin", def.Margin, "padding cells around the geometry")
	f.IntVar(&ring, "ring", def.Ring, "outer cells left out of boundary marking")
	f.IntVar(&workers, "workers", def.Workers, "goroutines for classification and stepping")
	f.Float64Var(&impulseX, "x", def.Impulse.X, "impulse x in [0,1]")
	f.Float64Var(&impulseY, "y", def.Impulse.Y, "impulse y in [0,1]")
	f.Float64Var(&amplitude, "amplitude", def.Impulse.Amplitude, "impulse amplitude")
	f.Float64Var(&headroom, "headroom", def.Render.Headroom, "colour range headroom factor")
	f.IntVar(&captureEvery, "capture-every", def.Render.CaptureEvery, "capture a frame every n steps")
	f.IntVar(&scale, "scale", def.Render.Scale, "pixels per cell in images")
}

// setupLogger installs the default text logger.
func setupLogger(w io.Writer) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

// tuiLogger keeps log output off the terminal while the live view owns
// it. With --verbose it appends to a file in the data directory; the
// returned func closes it.
func tuiLogger() (*slog.Logger, func() error) {
	discard := slog.New(slog.NewTextHandler(io.Discard, nil))
	nop := func() error { return nil }
	if !verbose {
		return discard, nop
	}
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return discard, nop
	}
	f, err := os.OpenFile(filepath.Join(dataDir, "hexwave.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return discard, nop
	}
	return slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})), f.Close
}

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		if err := config.Overlay(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	f := cmd.Flags()
	if f.Changed("edges") {
		cfg.Edges = edgesFile
	}
	if f.Changed("shape") {
		cfg.Shape = shape
		if !f.Changed("edges") {
			cfg.Edges = ""
		}
	}
	if f.Changed("colormap") {
		cfg.Colormap = cmapName
	}
	if f.Changed("steps") {
		cfg.Steps = steps
	}
	if f.Changed("speed") {
		cfg.Speed = speed
	}
	if f.Changed("dt") {
		cfg.TimeStep = timeStep
	}
	if f.Changed("spacing") {
		cfg.Spacing = spacing
	}
	if f.Changed("margin") {
		cfg.Margin = margin
	}
	if f.Changed("ring") {
		cfg.Ring = ring
	}
	if f.Changed("workers") {
		cfg.Workers = workers
	}
	if f.Changed("x") {
		cfg.Impulse.X = impulseX
	}
	if f.Changed("y") {
		cfg.Impulse.Y = impulseY
	}
	if f.Changed("amplitude") {
		cfg.Impulse.Amplitude = amplitude
	}
	if f.Changed("headroom") {
		cfg.Render.Headroom = headroom
	}
	if f.Changed("capture-every") {
		cfg.Render.CaptureEvery = captureEvery
	}
	if f.Changed("scale") {
		cfg.Render.Scale = scale
	}
	return cfg, nil
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}
