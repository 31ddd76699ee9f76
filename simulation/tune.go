package simulation

import (
	"fmt"
	"math"

	"github.com/osa1/mmsim/controller"
	"github.com/osa1/mmsim/scenario"
)

const (
	minTunedGrowth = 1.0
	maxTunedGrowth = 16.0

	defaultTuneRounds = 20

	// truncatedInput is the normalized peak fed to the controller for a run
	// that ran out of address space: well above any target.
	truncatedInput = 2.0
)

type TuneOptions struct {
	// TargetPeak is the high-water mark the growth factor is tuned for.
	TargetPeak uint32

	// Rounds bounds the number of simulations. Zero means a default.
	Rounds int

	// Controller computes the growth factor correction from the
	// normalized peak. Nil means a PI controller with default gains.
	Controller controller.Controller
}

// TuneRound is one simulation performed while tuning.
type TuneRound struct {
	GrowthFactor float64 `json:"growth_factor"`
	Summary
}

type TuneResult struct {
	Best   scenario.Config `json:"best"`
	Rounds []TuneRound     `json:"rounds"`
}

// Tune searches for the growth factor whose run peaks closest to
// opts.TargetPeak without exceeding it. When every round exceeds the target
// the closest one is picked. The search starts from cfg.GrowthFactor clamped
// to [1, 16] and stays within that range.
func Tune(cfg scenario.Config, opts TuneOptions) (TuneResult, error) {
	if opts.TargetPeak == 0 {
		return TuneResult{}, fmt.Errorf("target peak must be positive")
	}
	if err := cfg.Validate(); err != nil {
		return TuneResult{}, err
	}
	rounds := opts.Rounds
	if rounds <= 0 {
		rounds = defaultTuneRounds
	}
	ctrl := opts.Controller
	if ctrl == nil {
		ctrl = controller.NewPI(controller.DefaultPIConfig())
	}

	var res TuneResult
	best := -1
	growth := clampGrowth(cfg.GrowthFactor)
	for i := 0; i < rounds; i++ {
		c := cfg
		c.GrowthFactor = growth
		r, err := Simulate(c)
		if err != nil {
			return TuneResult{}, err
		}
		round := TuneRound{GrowthFactor: growth, Summary: Summarize(&r)}
		res.Rounds = append(res.Rounds, round)
		if best < 0 || betterRound(round, res.Rounds[best], opts.TargetPeak) {
			best = i
			res.Best = c
		}

		input := float64(round.PeakHighWater) / float64(opts.TargetPeak)
		if round.Truncated {
			input = truncatedInput
		}
		next := clampGrowth(growth + ctrl.Next(input, 1))
		if next == growth && input != 1 {
			// Pinned against a bound.
			break
		}
		growth = next
	}
	return res, nil
}

// betterRound reports whether a is a better fit for target than b.
func betterRound(a, b TuneRound, target uint32) bool {
	aFits := !a.Truncated && a.PeakHighWater <= target
	bFits := !b.Truncated && b.PeakHighWater <= target
	switch {
	case aFits != bFits:
		return aFits
	case a.Truncated != b.Truncated:
		return !a.Truncated
	}
	return distance(a.PeakHighWater, target) < distance(b.PeakHighWater, target)
}

func distance(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}

func clampGrowth(g float64) float64 {
	return math.Max(minTunedGrowth, math.Min(maxTunedGrowth, g))
}
