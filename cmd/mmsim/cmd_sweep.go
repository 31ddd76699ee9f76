package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/osa1/mmsim/render"
	"github.com/osa1/mmsim/scenario"
	"github.com/osa1/mmsim/simulation"
)

type sweepRow struct {
	Value float64 `json:"value"`
	simulation.Summary
}

func newSweepCmd() *cobra.Command {
	var (
		flags    configFlags
		param    string
		from     float64
		to       float64
		step     float64
		readable bool
	)
	cmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "Simulate a range of values for one parameter",
		Long: `Simulate the configuration once per value of --param in [--from, --to]
and print one summary row per value. Use it to compare how the peak
footprint responds to a parameter under each scheduler and strategy.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := flags.resolve(cmd, args)
			if err != nil {
				return err
			}
			sw := scenario.Sweep{Base: base, Param: param, From: from, To: to, Step: step}
			configs, err := sw.Configs()
			if err != nil {
				return err
			}
			logger.Debug("sweeping", "param", param, "points", len(configs))

			rows := make([]sweepRow, 0, len(configs))
			for _, c := range configs {
				res, err := simulation.Simulate(c)
				if err != nil {
					return err
				}
				rows = append(rows, sweepRow{Value: sw.Value(c), Summary: simulation.Summarize(&res)})
			}

			out := cmd.OutOrStdout()
			switch {
			case jsonOutput(cmd):
				return render.WriteJSON(out, rows)
			case readable:
				return printSweepTable(out, param, rows)
			}
			return printSweepCSV(out, param, rows)
		},
	}
	flags.register(cmd.Flags())
	cmd.Flags().StringVar(&param, "param", "survival_rate", "Parameter to sweep")
	cmd.Flags().Float64Var(&from, "from", 0, "First value")
	cmd.Flags().Float64Var(&to, "to", 100, "Last value (inclusive)")
	cmd.Flags().Float64Var(&step, "step", 10, "Increment between values")
	cmd.Flags().BoolVarP(&readable, "human", "H", false, "Print an aligned table with human-readable sizes")
	return cmd
}

func printSweepCSV(w io.Writer, param string, rows []sweepRow) error {
	if _, err := fmt.Fprintf(w, "%s,calls,final_hp,peak,collections,truncated\n", param); err != nil {
		return err
	}
	for _, r := range rows {
		if _, err := fmt.Fprintf(w, "%s,%d,%d,%d,%d,%t\n",
			strconv.FormatFloat(r.Value, 'f', -1, 64),
			r.Calls,
			r.FinalHP,
			r.PeakHighWater,
			r.Collections,
			r.Truncated,
		); err != nil {
			return err
		}
	}
	return nil
}

func printSweepTable(w io.Writer, param string, rows []sweepRow) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tw, "%s\tcalls\tfinal hp\tpeak\tcollections\t\n", param)
	for _, r := range rows {
		peak := humanize.IBytes(uint64(r.PeakHighWater))
		if r.Truncated {
			peak += "+"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%d\t\n",
			strconv.FormatFloat(r.Value, 'f', -1, 64),
			r.Calls,
			humanize.IBytes(uint64(r.FinalHP)),
			peak,
			r.Collections,
		)
	}
	return tw.Flush()
}
