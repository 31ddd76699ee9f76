package scenario

import (
	"fmt"
	"math"
	"sort"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Sweep varies one parameter of Base over [From, To] in increments of Step.
type Sweep struct {
	Base  Config
	Param string
	From  float64
	To    float64
	Step  float64
}

// sweepParam describes how a swept value is shaped and applied.
type sweepParam struct {
	integral bool
	min, max float64
	set      func(*Config, float64)
}

var sweepParams = map[string]sweepParam{
	"allocation_rate": {
		integral: true, min: 0, max: math.MaxUint32,
		set: func(c *Config, v float64) { c.AllocationRate = uint32(v) },
	},
	"survival_rate": {
		integral: true, min: 0, max: 100,
		set: func(c *Config, v float64) { c.SurvivalRate = uint32(v) },
	},
	"growth_factor": {
		min: 0, max: math.MaxFloat64,
		set: func(c *Config, v float64) { c.GrowthFactor = v },
	},
	"small_heap_delta": {
		integral: true, min: 0, max: 1 << 63,
		set: func(c *Config, v float64) { c.SmallHeapDelta = uint64(v) },
	},
	"max_hp_for_gc": {
		integral: true, min: 0, max: 1 << 63,
		set: func(c *Config, v float64) { c.MaxHPForGC = uint64(v) },
	},
}

// SweepParams returns the names of the parameters that can be swept.
func SweepParams() []string {
	var s []string
	for name := range sweepParams {
		s = append(s, name)
	}
	sort.Strings(s)
	return s
}

const maxSweepPoints = 10000

func (s *Sweep) points() float64 {
	return math.Floor((s.To-s.From)/s.Step+1e-9) + 1
}

func (s *Sweep) Validate() error {
	var errs *multierror.Error
	if _, ok := sweepParams[s.Param]; !ok {
		errs = multierror.Append(errs, fmt.Errorf("unknown sweep parameter %q", s.Param))
	}
	finite := true
	for _, bound := range []float64{s.From, s.To} {
		if math.IsNaN(bound) || math.IsInf(bound, 0) {
			errs = multierror.Append(errs, fmt.Errorf("sweep bound %v must be finite", bound))
			finite = false
		}
	}
	switch {
	case !(s.Step > 0) || math.IsInf(s.Step, 0):
		errs = multierror.Append(errs, fmt.Errorf("sweep step %v must be positive", s.Step))
	case !finite:
	case s.To < s.From:
		errs = multierror.Append(errs, fmt.Errorf("sweep range [%v, %v] is empty", s.From, s.To))
	case !(s.points() <= maxSweepPoints):
		errs = multierror.Append(errs, fmt.Errorf("sweep has %.0f points, limit is %d", s.points(), maxSweepPoints))
	}
	if err := s.Base.Validate(); err != nil {
		errs = multierror.Append(errs, err)
	}
	if errs != nil {
		errs.ErrorFormat = joinErrors
	}
	return errs.ErrorOrNil()
}

// Configs expands the sweep into one configuration per swept value, in
// increasing order. Integral parameters are truncated and every value is
// clamped into the parameter's domain.
func (s *Sweep) Configs() ([]Config, error) {
	if err := s.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid sweep")
	}
	p := sweepParams[s.Param]
	n := int(s.points())

	values := constant(s.From)
	if n > 1 {
		values = ramp(float64(n-1), n-1).scale(s.Step).offset(s.From)
	}
	if p.integral {
		values = values.quantize(1)
	}
	values = values.limit(p.min, p.max)

	configs := make([]Config, 0, n)
	for i := 0; i < n; i++ {
		c := s.Base
		p.set(&c, values())
		configs = append(configs, c)
	}
	return configs, nil
}

// Value reports the swept parameter's value in c.
func (s *Sweep) Value(c Config) float64 {
	switch s.Param {
	case "allocation_rate":
		return float64(c.AllocationRate)
	case "survival_rate":
		return float64(c.SurvivalRate)
	case "growth_factor":
		return c.GrowthFactor
	case "small_heap_delta":
		return float64(c.SmallHeapDelta)
	case "max_hp_for_gc":
		return float64(c.MaxHPForGC)
	}
	return math.NaN()
}
