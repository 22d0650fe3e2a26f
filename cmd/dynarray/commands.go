package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/san-kum/dynarray/internal/config"
	"github.com/san-kum/dynarray/internal/demo"
	"github.com/san-kum/dynarray/internal/dynarray"
	"github.com/san-kum/dynarray/internal/storage"
	"github.com/san-kum/dynarray/internal/trace"
	"github.com/san-kum/dynarray/internal/viz"
)

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	rep, err := demo.Run(cfg, logger)
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}

	fmt.Println(rep.Copy.Line())
	fmt.Println(rep.Assigned.Line())
	fmt.Println()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ARRAY\tSIZE\tCAP\tVALUES")
	for _, s := range []demo.Snapshot{rep.Copy, rep.Original, rep.Assigned, rep.SelfAssigned} {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\n", s.Label, s.Size, s.Capacity, s.Line())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(viz.Metric("allocations", strconv.FormatInt(rep.Allocations, 10)))
	fmt.Println(viz.Metric("releases", strconv.FormatInt(rep.Releases, 10)))
	fmt.Println(viz.Metric("peak bytes", strconv.FormatInt(rep.PeakBytes, 10)))
	return nil
}

func appendsArg(args []string, fallback int) (int, error) {
	if len(args) == 0 {
		return fallback, nil
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid append count: %q", args[0])
	}
	return n, nil
}

func runGrow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	n, err := appendsArg(args, cfg.Appends)
	if err != nil {
		return err
	}

	tk := dynarray.NewTracker(dynarray.WithLimit(cfg.LimitBytes), dynarray.WithLogger(logger))
	start := time.Now()
	tr, err := trace.Record(n, dynarray.WithTracker(tk))
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "APPEND\tSIZE\tCAPACITY\tGREW")
	for _, p := range tr.Points {
		grew := ""
		if p.Grew {
			grew = "*"
		}
		fmt.Fprintf(w, "%d\t%d\t%d\t%s\n", p.Append, p.Size, p.Capacity, grew)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if plot := viz.GrowthPlot(tr, 80, 10); plot != "" {
		fmt.Println()
		fmt.Println(plot)
	}

	fmt.Println()
	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("reallocations: %d\n", tr.Reallocations())
	fmt.Printf("elements copied: %d\n", tr.CopiedElements())
	fmt.Printf("peak bytes: %d\n", tk.PeakBytes())

	if !save {
		return nil
	}
	st := storage.New(cfg.DataDir, logger)
	if err := st.Init(); err != nil {
		return err
	}
	label := preset
	if label == "" {
		label = "grow"
	}
	runID, err := st.Save(label, cfg.LimitBytes, tk.PeakBytes(), tr)
	if err != nil {
		return err
	}
	fmt.Printf("run id: %s\n", runID)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	n, err := appendsArg(args, cfg.Appends)
	if err != nil {
		return err
	}

	tk := dynarray.NewTracker(dynarray.WithLimit(cfg.LimitBytes))
	return viz.RunLive(n, frameRate, tk)
}

func listRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(cfg.DataDir, logger)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tLABEL\tTIME\tAPPENDS\tCAPACITY\tREALLOCS\tPEAK")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
			run.ID,
			run.Label,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Appends,
			run.FinalCapacity,
			run.Reallocations,
			run.PeakBytes,
		)
	}

	return w.Flush()
}

func loadRun(cmd *cobra.Command, runID string) (*storage.RunMetadata, *trace.Trace, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}

	st := storage.New(cfg.DataDir, logger)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	tr, err := st.LoadTrace(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, tr, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, tr, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}

	if tr.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("appends: %d\n\n", meta.Appends)
	fmt.Println(viz.GrowthPlot(tr, 80, 12))
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, tr, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}
	return storage.WriteCSV(os.Stdout, tr)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, tr, err := loadRun(cmd, args[0])
	if err != nil {
		return err
	}
	return storage.WriteJSON(os.Stdout, meta, tr)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tVALUES\tMUTATION\tAPPENDS")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%v\t[%d]=%d\t%d\n", name, p.Values, p.Mutation.Index, p.Mutation.Value, p.Appends)
	}
	return w.Flush()
}

func benchAppend(cmd *cobra.Command, args []string) error {
	sizes := []int{1_000, 10_000, 100_000, 1_000_000}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "APPENDS\tTIME\tNS/APPEND\tREALLOCS\tCOPIED\tCOPIED/APPEND")

	for _, n := range sizes {
		a := dynarray.New[int]()
		realloc, copied := 0, 0

		start := time.Now()
		for i := 0; i < n; i++ {
			if a.Size() == a.Capacity() {
				realloc++
				copied += a.Size()
			}
			if err := a.Append(i); err != nil {
				return err
			}
		}
		elapsed := time.Since(start)
		a.Release()

		fmt.Fprintf(w, "%d\t%v\t%.1f\t%d\t%d\t%.2f\n",
			n, elapsed, float64(elapsed.Nanoseconds())/float64(n), realloc, copied, float64(copied)/float64(n))
		level.Debug(logger).Log("msg", "bench run", "appends", n, "elapsed", elapsed)
	}

	return w.Flush()
}
