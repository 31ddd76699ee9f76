package main

import (
	"fmt"
	"math"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/osa1/mmsim/controller"
	"github.com/osa1/mmsim/render"
	"github.com/osa1/mmsim/simulation"
)

func newTuneCmd() *cobra.Command {
	var (
		flags      configFlags
		target     string
		rounds     int
		ctrlConfig string
	)
	cmd := &cobra.Command{
		Use:   "tune [preset]",
		Short: "Search for the growth factor that keeps the peak under a target",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := flags.resolve(cmd, args)
			if err != nil {
				return err
			}
			targetBytes, err := parseBytes("target", target, math.MaxUint32)
			if err != nil {
				return err
			}

			opts := simulation.TuneOptions{
				TargetPeak: uint32(targetBytes),
				Rounds:     rounds,
			}
			if ctrlConfig != "" {
				pi, err := loadControllerConfig(ctrlConfig)
				if err != nil {
					return err
				}
				opts.Controller = controller.NewPI(pi)
			}

			res, err := simulation.Tune(cfg, opts)
			if err != nil {
				return err
			}
			logger.Debug("tuned", "rounds", len(res.Rounds), "growth", res.Best.GrowthFactor)

			out := cmd.OutOrStdout()
			if jsonOutput(cmd) {
				return render.WriteJSON(out, res)
			}
			for i, r := range res.Rounds {
				fmt.Fprintf(out, "round %2d: growth %.4f peak %s collections %d truncated %t\n",
					i, r.GrowthFactor, humanize.IBytes(uint64(r.PeakHighWater)), r.Collections, r.Truncated)
			}
			_, err = fmt.Fprintf(out, "best growth factor: %.4f\n", res.Best.GrowthFactor)
			return err
		},
	}
	flags.register(cmd.Flags())
	cmd.Flags().StringVar(&target, "target", "64MiB", "Peak memory to aim for")
	cmd.Flags().IntVar(&rounds, "rounds", 0, "Maximum number of simulations (0 for the default)")
	cmd.Flags().StringVar(&ctrlConfig, "controller-config", "", "YAML or JSON file with PI controller gains (optional, default gains used otherwise)")
	return cmd
}

func loadControllerConfig(path string) (*controller.PIConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading controller config")
	}
	cfg := controller.DefaultPIConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshalling controller config")
	}
	return cfg, nil
}
