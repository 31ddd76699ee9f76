package main

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/osa1/mmsim/internal/logging"
	"github.com/osa1/mmsim/render"
	"github.com/osa1/mmsim/scenario"
	"github.com/osa1/mmsim/simulation"
)

func newRunCmd() *cobra.Command {
	var (
		flags  configFlags
		format string
		data   string
		png    string
	)
	cmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "Simulate one configuration",
		Long: `Simulate one configuration and print the heap pointer and high water
series, one row per call.

Formats:
  csv      call,hp,high_water rows (default)
  json     {"hp":[...],"high_water":[...],...}
  summary  final heap pointer, peak, collection count
  gnuplot  a gnuplot script; the data is written to --data`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd, args)
			if err != nil {
				return err
			}
			res, err := simulation.Simulate(cfg)
			if err != nil {
				return err
			}
			traceResult(cmd, &res)
			sum := simulation.Summarize(&res)
			if sum.Truncated {
				logger.Warn("simulation stopped early, memory exceeded 32 bits",
					"calls", sum.Calls, "requested", cfg.NumCalls)
			}

			if png != "" {
				logger.Debug("plotting", "out", png)
				if err := render.Plot(cmd.Context(), &res, png, plotTitle(cfg)); err != nil {
					return err
				}
			}

			if jsonOutput(cmd) {
				format = "json"
			}
			out := cmd.OutOrStdout()
			switch format {
			case "csv":
				return render.WriteCSV(out, &res)
			case "json":
				return render.WriteJSON(out, &res)
			case "summary":
				return printSummary(out, cfg, sum)
			case "gnuplot":
				if data == "" {
					return errors.New("--format gnuplot requires --data")
				}
				if err := writeCSVFile(data, &res); err != nil {
					return err
				}
				return render.WriteGnuplot(out, render.PlotOptions{
					CSVPath: data,
					Points:  res.Len(),
					Title:   plotTitle(cfg),
				})
			}
			return fmt.Errorf("unknown format %q, must be one of: csv json summary gnuplot", format)
		},
	}
	flags.register(cmd.Flags())
	cmd.Flags().StringVarP(&format, "format", "f", "csv", "Output format: csv, json, summary or gnuplot")
	cmd.Flags().StringVar(&data, "data", "", "CSV file the gnuplot script reads (written by this command)")
	cmd.Flags().StringVar(&png, "png", "", "Also render a PNG chart with gnuplot")
	return cmd
}

func traceResult(cmd *cobra.Command, r *simulation.Result) {
	if !logger.Enabled(cmd.Context(), logging.LevelTrace) {
		return
	}
	for i := range r.HP {
		logger.Log(cmd.Context(), logging.LevelTrace, "point", "call", i, "hp", r.HP[i], "high_water", r.HighWater[i])
	}
}

func plotTitle(cfg scenario.Config) string {
	return fmt.Sprintf("%s scheduler, %s GC, %s/call, %d%% survival",
		cfg.Scheduler, cfg.Strategy, humanize.IBytes(uint64(cfg.AllocationRate)), cfg.SurvivalRate)
}

func printSummary(w io.Writer, cfg scenario.Config, s simulation.Summary) error {
	_, err := fmt.Fprintf(w, "scheduler:   %s\nstrategy:    %s\ncalls:       %d/%d\nfinal hp:    %s (%d)\npeak:        %s (%d)\ncollections: %d\ntruncated:   %t\n",
		cfg.Scheduler, cfg.Strategy,
		s.Calls, cfg.NumCalls,
		humanize.IBytes(uint64(s.FinalHP)), s.FinalHP,
		humanize.IBytes(uint64(s.PeakHighWater)), s.PeakHighWater,
		s.Collections,
		s.Truncated,
	)
	return err
}

func writeCSVFile(path string, r *simulation.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating data file")
	}
	if err := render.WriteCSV(f, r); err != nil {
		f.Close()
		return err
	}
	return errors.Wrap(f.Close(), "closing data file")
}
