package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/hexwave/internal/analysis"
	"github.com/san-kum/hexwave/internal/experiment"
	"github.com/san-kum/hexwave/internal/export"
	"github.com/san-kum/hexwave/internal/lattice"
	"github.com/san-kum/hexwave/internal/optim"
	"github.com/san-kum/hexwave/internal/storage"
	"github.com/san-kum/hexwave/internal/viz"
)

func setupExperiment(cmd *cobra.Command, logger *slog.Logger) (*experiment.Experiment, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, err
	}
	exp := experiment.New(cfg, logger)
	if err := exp.Setup(); err != nil {
		return nil, err
	}
	return exp, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	exp, err := setupExperiment(cmd, slog.Default())
	if err != nil {
		return err
	}
	grid := exp.Grid()
	fmt.Printf("running %s on %dx%d grid (%s interior cells)...\n",
		exp.Source(), grid.Rows, grid.Cols, humanize.Comma(int64(grid.Count(lattice.Interior))))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}

	if err := writeOutputs(exp, result); err != nil {
		return err
	}

	fmt.Printf("completed %d steps in %v\n", result.Steps, result.Elapsed)
	if !noSave {
		st, err := storage.Open(dataDir)
		if err != nil {
			return err
		}
		defer st.Close()
		runID, err := st.SaveRun(storage.RunFrom(exp, result), result.Trace)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}
	return nil
}

func writeOutputs(exp *experiment.Experiment, result *experiment.Result) error {
	s := exp.Session()
	grid := exp.Grid()
	cfg := exp.Config()

	if pngOut != "" {
		err := writeFile(pngOut, func(f *os.File) error {
			return export.WritePNG(f, s.RenderFrame(), grid.Rows, grid.Cols, cfg.Render.Scale)
		})
		if err != nil {
			return err
		}
	}
	if gifOut != "" {
		if len(result.Frames) == 0 {
			return fmt.Errorf("no frames captured; set --capture-every")
		}
		pal := export.Palette(s.Colormap(), s.Background())
		err := writeFile(gifOut, func(f *os.File) error {
			return export.WriteGIF(f, result.Frames, grid.Rows, grid.Cols, cfg.Render.Scale, pal, 4)
		})
		if err != nil {
			return err
		}
	}
	if csvOut != "" {
		err := writeFile(csvOut, func(f *os.File) error {
			return export.WriteTraceCSV(f, result.Trace)
		})
		if err != nil {
			return err
		}
	}
	if jsonOut != "" {
		err := writeFile(jsonOut, func(f *os.File) error {
			return export.WriteTraceJSON(f, "", exp.Source(), result.Metrics, result.Trace)
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	logger, closeLog := tuiLogger()
	defer closeLog()
	exp, err := setupExperiment(cmd, logger)
	if err != nil {
		return err
	}
	path := gifPath
	if path == "" {
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return err
		}
		path = filepath.Join(dataDir, "hexwave.gif")
	}
	title := exp.Source()
	if preset != "" {
		title = preset
	}
	return viz.RunLive(viz.NewModel(exp.Session(), title, path))
}

var tagChars = map[lattice.Tag]byte{
	lattice.Outside:  '.',
	lattice.Interior: '#',
	lattice.Boundary: '+',
}

func classifyGrid(cmd *cobra.Command, args []string) error {
	exp, err := setupExperiment(cmd, slog.Default())
	if err != nil {
		return err
	}
	grid, frame := exp.Grid(), exp.Frame()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "source\t%s\n", exp.Source())
	fmt.Fprintf(w, "grid\t%d x %d\n", grid.Rows, grid.Cols)
	fmt.Fprintf(w, "origin\trow %d, col %d\n", frame.RowOffset, frame.ColOffset)
	fmt.Fprintf(w, "interior\t%s\n", humanize.Comma(int64(grid.Count(lattice.Interior))))
	fmt.Fprintf(w, "boundary\t%s\n", humanize.Comma(int64(grid.Count(lattice.Boundary))))
	fmt.Fprintf(w, "outside\t%s\n", humanize.Comma(int64(grid.Count(lattice.Outside))))
	if err := w.Flush(); err != nil {
		return err
	}

	if ascii {
		fmt.Println()
		for r := 0; r < grid.Rows; r++ {
			var sb strings.Builder
			if r&1 == 1 {
				sb.WriteByte(' ')
			}
			for c := 0; c < grid.Cols; c++ {
				sb.WriteByte(tagChars[grid.At(r, c)])
				sb.WriteByte(' ')
			}
			fmt.Println(strings.TrimRight(sb.String(), " "))
		}
	}

	if svgOut != "" {
		svg := export.GridSVG(grid, nil, 4)
		if err := os.WriteFile(svgOut, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgOut)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.ListRuns()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tSOURCE\tGRID\tINTERIOR\tSTEPS\tELAPSED\tENERGY")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%s\t%d\t%s\t%.4g\n",
			run.ID[:min(8, len(run.ID))],
			humanize.Time(run.CreatedAt),
			run.Source,
			run.Rows, run.Cols,
			humanize.Comma(int64(run.Interior)),
			run.Steps,
			run.Elapsed.Round(time.Millisecond),
			run.Metrics["energy"],
		)
	}
	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	run, err := st.LoadRun(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(run.ID)
	if err != nil {
		return err
	}

	fmt.Printf("run %s (%s)\n", run.ID, humanize.Time(run.CreatedAt))
	fmt.Printf("source %s, grid %dx%d, %d steps, courant %.3f\n",
		run.Source, run.Rows, run.Cols, run.Steps, run.Speed*run.TimeStep/run.Spacing)

	series := export.Series(samples, metric)
	if len(series) < 2 {
		fmt.Println("not enough samples to plot")
		return nil
	}
	fmt.Println()
	fmt.Println(asciigraph.Plot(series,
		asciigraph.Height(12),
		asciigraph.Width(70),
		asciigraph.Caption(fmt.Sprintf("%s over %d steps", metric, len(series)))))

	if svgOut != "" {
		if err := os.WriteFile(svgOut, []byte(export.TraceSVG(series, 640, 240, "#00ccff")), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgOut)
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	run, err := st.LoadRun(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(run.ID)
	if err != nil {
		return err
	}
	return writeFile(run.ID+".csv", func(f *os.File) error {
		return export.WriteTraceCSV(f, samples)
	})
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	run, err := st.LoadRun(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(run.ID)
	if err != nil {
		return err
	}
	return export.WriteTraceJSON(os.Stdout, run.ID, run.Source, run.Metrics, samples)
}

func deleteRun(cmd *cobra.Command, args []string) error {
	st, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.DeleteRun(args[0]); err != nil {
		return err
	}
	fmt.Printf("deleted %s\n", args[0])
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st, err := storage.Open(dataDir)
	if err != nil {
		return err
	}
	defer st.Close()

	run, err := st.LoadRun(args[0])
	if err != nil {
		return err
	}
	samples, err := st.LoadSamples(run.ID)
	if err != nil {
		return err
	}

	series := export.Series(samples, analyzeMetric)
	if len(series) < 4 {
		return fmt.Errorf("run %s has too few %s samples", run.ID, analyzeMetric)
	}

	fmt.Printf("frequency analysis: %s\n", run.ID)
	fmt.Printf("source: %s, %s samples of %s\n\n", run.Source, humanize.Comma(int64(len(series))), analyzeMetric)

	ps, _ := analysis.PowerSpectrum(series)
	fmt.Println(asciigraph.Plot(ps[:max(len(ps)/4, 2)],
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum (%s)", analyzeMetric)),
	))
	fmt.Println()

	peaks := analysis.DominantFrequencies(series, run.TimeStep, 5)
	if len(peaks) == 0 {
		fmt.Println("no dominant frequency found")
		return nil
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FREQUENCY\tPERIOD\tPOWER")
	for _, p := range peaks {
		fmt.Fprintf(w, "%.3f hz\t%.3f s\t%.4g\n", p.Frequency, 1/p.Frequency, p.Power)
	}
	return w.Flush()
}

// parseSweep reads "name=v1,v2,..." specs.
func parseSweep(specs []string) ([]string, [][]float64, error) {
	names := make([]string, 0, len(specs))
	ranges := make([][]float64, 0, len(specs))
	for _, spec := range specs {
		name, list, ok := strings.Cut(spec, "=")
		if !ok || list == "" {
			return nil, nil, fmt.Errorf("bad --param %q: want name=v1,v2", spec)
		}
		var values []float64
		for _, field := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return nil, nil, fmt.Errorf("bad --param %q: %w", spec, err)
			}
			values = append(values, v)
		}
		names = append(names, strings.TrimSpace(name))
		ranges = append(ranges, values)
	}
	return names, ranges, nil
}

func sweepParams(cmd *cobra.Command, args []string) error {
	if len(sweepSpecs) == 0 {
		return fmt.Errorf("at least one --param is required (available: %v)", optim.Params())
	}
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Render.CaptureEvery = 0

	names, ranges, err := parseSweep(sweepSpecs)
	if err != nil {
		return err
	}
	search, err := optim.NewGridSearch(names, ranges, max(cfg.Workers, 1))
	if err != nil {
		return err
	}
	// each run steps serially; the search runs them side by side
	cfg.Workers = 1

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	points, err := search.Run(ctx, cfg)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.ToUpper(strings.Join(names, "\t"))+"\t"+strings.ToUpper(sweepMetric))
	for _, p := range points {
		for _, name := range names {
			fmt.Fprintf(w, "%g\t", p.Params[name])
		}
		if p.Err != nil {
			fmt.Fprintf(w, "error: %v\n", p.Err)
			continue
		}
		fmt.Fprintf(w, "%.6g\n", p.Metrics[sweepMetric])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if best, ok := optim.Best(points, sweepMetric, sweepMax); ok {
		fmt.Printf("\nbest %s: %.6g at %v\n", sweepMetric, best.Metrics[sweepMetric], best.Params)
	}
	return nil
}
