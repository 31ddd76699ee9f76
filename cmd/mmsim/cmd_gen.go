package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/osa1/mmsim/scenario"
)

func newGenCmd() *cobra.Command {
	var (
		output string
		filter string
	)
	cmd := &cobra.Command{
		Use:   "gen",
		Short: "Write presets as config files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			genNames := scenario.Generators()
			if filter != "" {
				r, err := regexp.Compile(filter)
				if err != nil {
					return errors.Wrap(err, "compiling filter regexp")
				}
				fNames := make([]string, 0, len(genNames))
				for _, name := range genNames {
					if r.MatchString(name) {
						fNames = append(fNames, name)
					}
				}
				genNames = fNames
			}
			if err := os.MkdirAll(output, 0755); err != nil {
				return errors.Wrap(err, "creating output directory")
			}
			for _, name := range genNames {
				cfg, err := scenario.Generate(name)
				if err != nil {
					// Internal error.
					panic(err)
				}
				path := filepath.Join(output, fmt.Sprintf("%s.yaml", name))
				if err := writeConfig(cfg, path); err != nil {
					return errors.Wrapf(err, "writing config to %q", path)
				}
				logger.Info("wrote preset", "name", name, "path", path)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", ".", "Where to write configs")
	cmd.Flags().StringVar(&filter, "filter", "", "Filter presets by name (regexp)")
	return cmd
}

func writeConfig(cfg scenario.Config, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := scenario.Write(f, cfg); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
