package main

import (
	"math"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/osa1/mmsim/scenario"
)

// configFlags are the flags shared by every command that builds a
// scenario.Config. Values are layered: defaults, then the preset named by
// the first argument, then --config, then flags set on the command line.
type configFlags struct {
	path           string
	calls          uint32
	allocRate      string
	survival       uint32
	growth         float64
	smallHeapDelta string
	maxHP          string
	strategy       string
	scheduler      string
}

func (f *configFlags) register(fs *pflag.FlagSet) {
	def := scenario.Default()
	fs.StringVar(&f.path, "config", "", "YAML or JSON file with a runtime config")
	fs.Uint32Var(&f.calls, "calls", def.NumCalls, "Number of calls to simulate")
	fs.StringVar(&f.allocRate, "alloc-rate", humanize.IBytes(uint64(def.AllocationRate)), "Bytes allocated per call")
	fs.Uint32Var(&f.survival, "survival", def.SurvivalRate, "Percentage of new allocations surviving a collection (0-100)")
	fs.Float64Var(&f.growth, "growth", def.GrowthFactor, "Heap growth factor")
	fs.StringVar(&f.smallHeapDelta, "small-heap-delta", humanize.IBytes(def.SmallHeapDelta), "Minimum heap growth between collections (old scheduler)")
	fs.StringVar(&f.maxHP, "max-hp", humanize.IBytes(def.MaxHPForGC), "Ceiling on the collection trigger (old scheduler)")
	fs.StringVar(&f.strategy, "strategy", def.Strategy.String(), "GC strategy: copying or mark-compact")
	fs.StringVar(&f.scheduler, "scheduler", def.Scheduler.String(), "GC scheduler: old or new")
}

func (f *configFlags) resolve(cmd *cobra.Command, args []string) (scenario.Config, error) {
	cfg := scenario.Default()
	if len(args) > 0 {
		preset, err := scenario.Generate(args[0])
		if err != nil {
			return scenario.Config{}, err
		}
		cfg = preset
	}
	if f.path != "" {
		loaded, err := scenario.Load(f.path, cfg)
		if err != nil {
			return scenario.Config{}, err
		}
		cfg = loaded
	}

	fs := cmd.Flags()
	if fs.Changed("calls") {
		cfg.NumCalls = f.calls
	}
	if fs.Changed("alloc-rate") {
		v, err := parseBytes("alloc-rate", f.allocRate, math.MaxUint32)
		if err != nil {
			return scenario.Config{}, err
		}
		cfg.AllocationRate = uint32(v)
	}
	if fs.Changed("survival") {
		cfg.SurvivalRate = f.survival
	}
	if fs.Changed("growth") {
		cfg.GrowthFactor = f.growth
	}
	if fs.Changed("small-heap-delta") {
		v, err := parseBytes("small-heap-delta", f.smallHeapDelta, math.MaxUint64)
		if err != nil {
			return scenario.Config{}, err
		}
		cfg.SmallHeapDelta = v
	}
	if fs.Changed("max-hp") {
		v, err := parseBytes("max-hp", f.maxHP, math.MaxUint64)
		if err != nil {
			return scenario.Config{}, err
		}
		cfg.MaxHPForGC = v
	}
	if fs.Changed("strategy") {
		s, err := scenario.ParseStrategy(f.strategy)
		if err != nil {
			return scenario.Config{}, err
		}
		cfg.Strategy = s
	}
	if fs.Changed("scheduler") {
		s, err := scenario.ParseScheduler(f.scheduler)
		if err != nil {
			return scenario.Config{}, err
		}
		cfg.Scheduler = s
	}

	if err := cfg.Validate(); err != nil {
		return scenario.Config{}, err
	}
	logger.Debug("resolved config",
		"calls", cfg.NumCalls,
		"alloc_rate", cfg.AllocationRate,
		"survival", cfg.SurvivalRate,
		"growth", cfg.GrowthFactor,
		"small_heap_delta", cfg.SmallHeapDelta,
		"max_hp", cfg.MaxHPForGC,
		"strategy", cfg.Strategy,
		"scheduler", cfg.Scheduler,
	)
	return cfg, nil
}

// parseBytes accepts plain integers as well as sizes like "10MiB".
func parseBytes(flag, s string, limit uint64) (uint64, error) {
	v, err := humanize.ParseBytes(s)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid --%s", flag)
	}
	if v > limit {
		return 0, errors.Errorf("invalid --%s: %d exceeds %d", flag, v, limit)
	}
	return v, nil
}
