package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/etchsim/internal/command"
	"github.com/san-kum/etchsim/internal/config"
	"github.com/san-kum/etchsim/internal/etch"
	"github.com/san-kum/etchsim/internal/export"
	"github.com/san-kum/etchsim/internal/metrics"
	"github.com/san-kum/etchsim/internal/optim"
	"github.com/san-kum/etchsim/internal/pathgen"
	"github.com/san-kum/etchsim/internal/sim"
	"github.com/san-kum/etchsim/internal/storage"
	"github.com/san-kum/etchsim/internal/viz"
	"github.com/san-kum/etchsim/internal/vmath"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string
	// physics overrides
	thickness     float64
	densityFactor float64
	density       float64
	// outputs
	imagePath   string
	svgPath     string
	csvPath     string
	samplesPath string
	svgWidth    int
	noSave      bool
	sampleEvery int
	workers     int
	sweepParams []string
	sweepMetric string
	// inspection
	row           int
	plotWidth     int
	plotHeight    int
	previewWidth  int
	previewHeight int
	threshold     float64
	// generators
	outPath       string
	boardWidth    float64
	boardHeight   float64
	pointerRadius float64
	angleStep     float64
	turns         float64
	maxRadius     float64
	sides         int
	rotation      float64
)

// main registers the etchsim commands and exits with status 1 when the
// selected command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "etchsim",
		Short:         "drawing toy coating displacement simulator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", config.DefaultDataDir, "run storage directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")

	runCmd := &cobra.Command{
		Use:   "run [commands]",
		Short: "simulate a command file",
		Args:  cobra.ExactArgs(1),
		RunE:  runEtch,
	}
	addPhysicsFlags(runCmd)
	runCmd.Flags().StringVar(&imagePath, "image", "", "PNG output path")
	runCmd.Flags().StringVar(&svgPath, "svg", "", "SVG path output")
	runCmd.Flags().StringVar(&csvPath, "csv", "", "grid CSV output")
	runCmd.Flags().StringVar(&samplesPath, "samples", "", "per-command metrics CSV output")
	runCmd.Flags().IntVar(&svgWidth, "svg-width", 800, "SVG width in pixels")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	runCmd.Flags().IntVar(&sampleEvery, "sample-every", 0, "observe metrics every n commands")

	batchCmd := &cobra.Command{
		Use:   "batch [commands...]",
		Short: "simulate several command files concurrently",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runBatch,
	}
	addPhysicsFlags(batchCmd)
	batchCmd.Flags().IntVar(&workers, "workers", 2, "concurrent runs")

	sweepCmd := &cobra.Command{
		Use:   "sweep [commands]",
		Short: "grid search over tuning parameters",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	addPhysicsFlags(sweepCmd)
	sweepCmd.Flags().StringArrayVar(&sweepParams, "param", nil, "tuning values to try, e.g. pointer_friction=0.1,0.3,0.5")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "roughness", "metric to minimise")
	sweepCmd.Flags().IntVar(&workers, "workers", 2, "concurrent runs")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	rmCmd := &cobra.Command{
		Use:   "rm [run_id]",
		Short: "delete a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  removeRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a cross section of a stored grid",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&row, "row", -1, "grid row to plot (default: middle)")
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")
	plotCmd.Flags().IntVar(&plotHeight, "height", 12, "plot height")

	previewCmd := &cobra.Command{
		Use:   "preview [run_id]",
		Short: "draw a stored grid in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  previewRun,
	}
	previewCmd.Flags().IntVar(&previewWidth, "width", 80, "preview width in characters")
	previewCmd.Flags().IntVar(&previewHeight, "height", 40, "preview height in characters")
	previewCmd.Flags().Float64Var(&threshold, "threshold", 0.5, "fraction of the coating below which a cell is drawn")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "render a stored grid",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&imagePath, "image", "", "PNG output path")
	exportCmd.Flags().StringVar(&csvPath, "csv", "", "grid CSV output")

	liveCmd := &cobra.Command{
		Use:   "live [commands]",
		Short: "replay a command file with live terminal preview",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	addPhysicsFlags(liveCmd)

	genCmd := &cobra.Command{
		Use:       "gen [polar|spiral|polygon|union <paths file>]",
		Short:     "generate a test command file",
		Args:      cobra.RangeArgs(1, 2),
		ValidArgs: []string{"polar", "spiral", "polygon", "union"},
		RunE:      generate,
	}
	genCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (.json, .yaml); stdout when empty")
	genCmd.Flags().Float64Var(&boardWidth, "board-width", 2, "etch width")
	genCmd.Flags().Float64Var(&boardHeight, "board-height", 2, "etch height")
	genCmd.Flags().Float64Var(&pointerRadius, "pointer-radius", 0.0025, "stylus radius")
	genCmd.Flags().Float64Var(&angleStep, "step", 0.01, "angle step in radians")
	genCmd.Flags().Float64Var(&turns, "turns", 4, "spiral turns")
	genCmd.Flags().Float64Var(&maxRadius, "radius", 0.8, "spiral or polygon radius")
	genCmd.Flags().IntVar(&sides, "sides", 6, "polygon sides")
	genCmd.Flags().Float64Var(&rotation, "rotation", 0, "polygon rotation in radians")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("presets:")
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the default configuration",
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

	rootCmd.AddCommand(runCmd, batchCmd, sweepCmd, listCmd, showCmd, rmCmd, plotCmd, previewCmd, exportCmd, liveCmd, genCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addPhysicsFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&thickness, "thickness", config.DefaultThickness, "coating thickness")
	cmd.Flags().Float64Var(&densityFactor, "density-factor", config.DefaultDensityFactor, "grid points per stylus radius")
	cmd.Flags().Float64Var(&density, "density", 0, "grid points per unit length (overrides density-factor)")
}

func setupLogging(cmd *cobra.Command) error {
	level := logLevel
	if configFile != "" && !cmd.Flags().Changed("log-level") {
		if cfg, err := config.Load(configFile); err == nil && cfg.LogLevel != "" {
			level = cfg.LogLevel
		}
	}

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	return nil
}

// loadConfig layers defaults, the preset, the config file and explicitly
// set flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		if !cfg.Apply(preset) {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	// Config file values override the preset.
	if configFile != "" {
		if _, err := config.LoadOver(configFile, cfg); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("thickness") {
		cfg.CoatingThickness = thickness
	}
	if flags.Changed("density-factor") {
		cfg.DensityFactor = densityFactor
	}
	if flags.Changed("density") {
		cfg.Density = density
	}
	if flags.Changed("data") || cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	if f := flags.Lookup("image"); f != nil && f.Changed {
		cfg.Output.Image = imagePath
	}
	if f := flags.Lookup("svg"); f != nil && f.Changed {
		cfg.Output.SVG = svgPath
	}
	if f := flags.Lookup("csv"); f != nil && f.Changed {
		cfg.Output.CSV = csvPath
	}
	if f := flags.Lookup("no-save"); f != nil && f.Changed {
		cfg.Output.Save = !noSave
	}
	return cfg, nil
}

func newScreen(cfg *config.Config, f *command.File) (*etch.Screen, error) {
	screen, err := etch.New(cfg.Params(f))
	if err != nil {
		return nil, err
	}
	size := screen.Size()
	slog.Debug("screen ready", "width", size.X, "height", size.Y, "cell", screen.CellWidth())
	return screen, nil
}

func runName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

func runEtch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	f, err := command.Load(args[0])
	if err != nil {
		return err
	}
	screen, err := newScreen(cfg, f)
	if err != nil {
		return err
	}

	name := runName(args[0])
	runner := sim.New(screen)
	runner.SetLogger(slog.Default().With("run", name))
	for _, m := range metrics.Standard() {
		runner.AddMetric(m)
	}
	recorder := metrics.NewRecorder()
	if samplesPath != "" {
		runner.AddMetric(recorder)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	size := screen.Size()
	fmt.Printf("etching %s: %d commands on a %dx%d grid...\n", name, len(f.Commands), size.X, size.Y)

	result, err := runner.Run(ctx, f.Targets(), sim.Config{SampleEvery: sampleEvery})
	if err != nil {
		if errors.Is(err, context.Canceled) {
			fmt.Printf("interrupted after %d of %d commands\n", result.Commands, len(f.Commands))
		}
		return err
	}

	if cfg.Output.Image != "" {
		if err := export.WritePNG(cfg.Output.Image, result.Grid, cfg.CoatingThickness); err != nil {
			return err
		}
		fmt.Printf("image: %s\n", cfg.Output.Image)
	}
	if cfg.Output.SVG != "" {
		svg := export.PathSVG(f.Start(), f.Targets(), f.Extent(), svgWidth)
		if err := os.WriteFile(cfg.Output.SVG, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("svg: %s\n", cfg.Output.SVG)
	}
	if cfg.Output.CSV != "" {
		if err := writeFile(cfg.Output.CSV, func(w *os.File) error {
			return export.WriteGridCSV(w, result.Grid, f.Extent())
		}); err != nil {
			return err
		}
		fmt.Printf("csv: %s\n", cfg.Output.CSV)
	}
	if samplesPath != "" {
		if err := writeFile(samplesPath, func(w *os.File) error { return recorder.WriteCSV(w) }); err != nil {
			return err
		}
		fmt.Printf("samples: %s\n", samplesPath)
	}

	if cfg.Output.Save {
		runID, err := saveRun(ctx, cfg, name, args[0], screen, result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	fmt.Printf("completed in %v\n", result.Elapsed)
	fmt.Printf("steps: %d\n", result.Steps)
	printMetrics(result.Metrics)
	return nil
}

func saveRun(ctx context.Context, cfg *config.Config, name, source string, screen *etch.Screen, result *sim.Result) (string, error) {
	st, err := storage.Open(cfg.DataDir)
	if err != nil {
		return "", err
	}
	defer st.Close()

	params := screen.Params()
	meta := storage.RunMetadata{
		Name:      name,
		Source:    source,
		Thickness: params.Thickness,
		ExtentX:   params.Extent.X,
		ExtentY:   params.Extent.Y,
		Density:   params.Density,
		Radius:    params.Radius,
		Commands:  result.Commands,
		Steps:     result.Steps,
		TotalMass: screen.TotalMass(),
		ElapsedMS: result.Elapsed.Milliseconds(),
		Metrics:   result.Metrics,
	}
	return st.Save(ctx, meta, result.Grid)
}

func printMetrics(values map[string]float64) {
	fmt.Println("\nmetrics:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, m := range metrics.Standard() {
		if v, ok := values[m.Name()]; ok {
			fmt.Fprintf(w, "  %s\t%.6f\n", m.Name(), v)
		}
	}
	w.Flush()
}

func writeFile(path string, fn func(w *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	type entry struct {
		path   string
		screen *etch.Screen
	}
	entries := make([]entry, 0, len(args))
	batch := sim.NewBatch(workers)
	for _, path := range args {
		f, err := command.Load(path)
		if err != nil {
			return err
		}
		screen, err := newScreen(cfg, f)
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		runner := sim.New(screen)
		for _, m := range metrics.Standard() {
			runner.AddMetric(m)
		}
		batch.Add(sim.Job{Name: runName(path), Runner: runner, Targets: f.Targets()})
		entries = append(entries, entry{path: path, screen: screen})
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := batch.Run(ctx, sim.Config{})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCOMMANDS\tSTEPS\tTIME\tRUN")
	for i, res := range results {
		e := entries[i]
		runID := "-"
		if cfg.Output.Save {
			if runID, err = saveRun(ctx, cfg, runName(e.path), e.path, e.screen, res); err != nil {
				return err
			}
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%v\t%s\n", runName(e.path), res.Commands, res.Steps, res.Elapsed, runID)
	}
	return w.Flush()
}

func parseSweep(params []string) ([]string, [][]float64, error) {
	if len(params) == 0 {
		return nil, nil, fmt.Errorf("at least one --param is required (available: %v)", config.TuningNames)
	}
	names := make([]string, 0, len(params))
	ranges := make([][]float64, 0, len(params))
	for _, param := range params {
		name, list, ok := strings.Cut(param, "=")
		if !ok {
			return nil, nil, fmt.Errorf("invalid --param %q, want name=v1,v2", param)
		}
		var values []float64
		for _, field := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("invalid value in --param %q: %w", param, err)
			}
			values = append(values, v)
		}
		names = append(names, strings.TrimSpace(name))
		ranges = append(ranges, values)
	}
	return names, ranges, nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	f, err := command.Load(args[0])
	if err != nil {
		return err
	}

	names, ranges, err := parseSweep(sweepParams)
	if err != nil {
		return err
	}
	search, err := optim.NewGridSearch(names, ranges, workers)
	if err != nil {
		return err
	}

	build := func(params map[string]float64) (*sim.Runner, []vmath.Vec2, error) {
		trial := *cfg
		for name, v := range params {
			if err := trial.Tuning.Set(name, v); err != nil {
				return nil, nil, err
			}
		}
		screen, err := newScreen(&trial, f)
		if err != nil {
			return nil, nil, err
		}
		runner := sim.New(screen)
		runner.SetLogger(slog.Default().With("params", params))
		for _, m := range metrics.Standard() {
			runner.AddMetric(m)
		}
		return runner, f.Targets(), nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("sweeping %d combinations of %v...\n", len(search.Combinations()), names)
	trials, err := search.Search(ctx, build, sweepMetric)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(names, "\t")+"\t"+strings.ToUpper(sweepMetric)+"\tSTEPS")
	for _, tr := range trials {
		for _, name := range names {
			fmt.Fprintf(w, "%g\t", tr.Params[name])
		}
		fmt.Fprintf(w, "%.6f\t%d\n", tr.Value, tr.Result.Steps)
	}
	return w.Flush()
}

func openStore(cmd *cobra.Command) (*storage.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return storage.Open(cfg.DataDir)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.List(cmd.Context())
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tGRID\tCOMMANDS\tSTEPS\tDRIFT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%d\t%d\t%.2e\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Width,
			run.Height,
			run.Commands,
			run.Steps,
			run.Metrics["mass_drift"],
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func removeRun(cmd *cobra.Command, args []string) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", args[0])
	return nil
}

func loadRun(cmd *cobra.Command, runID string) (*storage.RunMetadata, [][]float64, error) {
	st, err := openStore(cmd)
	if err != nil {
		return nil, nil, err
	}
	defer st.Close()

	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	grid, err := st.LoadGrid(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, grid, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, grid, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}
	if len(grid) == 0 {
		return fmt.Errorf("no data to plot")
	}

	y := row
	if y < 0 {
		y = len(grid[0]) / 2
	}

	chart, err := viz.Profile(grid, y, plotWidth, plotHeight)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("grid: %dx%d, row %d (y = %.4f)\n\n", meta.Width, meta.Height, y, rowY(y, len(grid[0]), meta.ExtentY))
	fmt.Println(chart)
	return nil
}

func rowY(y, n int, extent float64) float64 {
	if n < 2 {
		return 0
	}
	return float64(y) / float64(n-1) * extent
}

func previewRun(cmd *cobra.Command, args []string) error {
	meta, grid, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}

	h := previewHeight
	if meta.ExtentX > 0 {
		// A character holds 2x4 dots and is about twice as tall as wide.
		h = int(math.Ceil(float64(previewWidth) * meta.ExtentY / meta.ExtentX / 2))
		h = max(1, min(h, previewHeight))
	}

	canvas := viz.NewCanvas(previewWidth, h)
	canvas.DrawGrid(grid, threshold*meta.Thickness)
	fmt.Printf("run: %s (%dx%d)\n", meta.ID, meta.Width, meta.Height)
	fmt.Print(canvas.String())
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	meta, grid, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}
	if imagePath == "" && csvPath == "" {
		imagePath = meta.ID + ".png"
	}

	if imagePath != "" {
		if err := export.WritePNG(imagePath, grid, meta.Thickness); err != nil {
			return err
		}
		fmt.Printf("image: %s\n", imagePath)
	}
	if csvPath != "" {
		extent := vmath.V(meta.ExtentX, meta.ExtentY)
		if err := writeFile(csvPath, func(w *os.File) error { return export.WriteGridCSV(w, grid, extent) }); err != nil {
			return err
		}
		fmt.Printf("csv: %s\n", csvPath)
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	f, err := command.Load(args[0])
	if err != nil {
		return err
	}
	screen, err := newScreen(cfg, f)
	if err != nil {
		return err
	}
	return viz.RunLive(screen, f.Targets(), runName(args[0]))
}

func generate(cmd *cobra.Command, args []string) error {
	board := pathgen.Board{
		Extent: vmath.V(boardWidth, boardHeight),
		Radius: pointerRadius,
	}

	if len(args) == 2 && args[0] != "union" {
		return fmt.Errorf("%s takes no input file", args[0])
	}

	var (
		f   *command.File
		err error
	)
	switch args[0] {
	case "polar":
		f, err = pathgen.Polar(board, pathgen.DefaultRose, angleStep)
	case "spiral":
		f, err = pathgen.Spiral(board, turns, maxRadius, angleStep)
	case "polygon":
		f, err = pathgen.Polygon(board, sides, maxRadius, rotation)
	case "union":
		if len(args) != 2 {
			return errors.New("union needs a paths file")
		}
		paths, lerr := pathgen.LoadPaths(args[1])
		if lerr != nil {
			return lerr
		}
		f, err = pathgen.Union(board, paths)
	default:
		return fmt.Errorf("unknown generator: %s (available: polar, spiral, polygon, union)", args[0])
	}
	if err != nil {
		return err
	}

	if outPath == "" {
		return command.Encode(os.Stdout, f)
	}
	if err := command.Save(outPath, f); err != nil {
		return err
	}
	fmt.Printf("wrote %d commands to %s\n", len(f.Commands), outPath)
	return nil
}
