package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/osa1/mmsim/render"
	"github.com/osa1/mmsim/scenario"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List presets, schedulers, strategies and sweepable parameters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sections := []struct {
				name  string
				items []string
			}{
				{"presets", scenario.Generators()},
				{"schedulers", scenario.Schedulers()},
				{"strategies", scenario.Strategies()},
				{"sweep parameters", scenario.SweepParams()},
			}

			out := cmd.OutOrStdout()
			if jsonOutput(cmd) {
				m := make(map[string][]string, len(sections))
				for _, s := range sections {
					m[strings.ReplaceAll(s.name, " ", "_")] = s.items
				}
				return render.WriteJSON(out, m)
			}
			for i, s := range sections {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprintf(out, "%s:\n  %s\n", s.name, strings.Join(s.items, "\n  "))
			}
			return nil
		},
	}
}
