package scenario

import (
	"fmt"
	"math"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// ErrInvalidConfig is returned (wrapped) for configurations the simulator
// refuses to run.
var ErrInvalidConfig = errors.New("invalid runtime config")

// Config describes a single simulation run.
type Config struct {
	// Number of allocating calls to simulate.
	NumCalls uint32 `json:"num_calls" yaml:"num_calls"`

	// Bytes allocated per call.
	AllocationRate uint32 `json:"allocation_rate" yaml:"allocation_rate"`

	// Percentage (0-100) of bytes allocated since the last collection
	// that are still live after a collection.
	SurvivalRate uint32 `json:"survival_rate" yaml:"survival_rate"`

	GrowthFactor   float64 `json:"growth_factor" yaml:"growth_factor"`
	SmallHeapDelta uint64  `json:"small_heap_delta" yaml:"small_heap_delta"`
	MaxHPForGC     uint64  `json:"max_hp_for_gc" yaml:"max_hp_for_gc"`

	Strategy  Strategy  `json:"gc_strategy" yaml:"gc_strategy"`
	Scheduler Scheduler `json:"scheduler" yaml:"scheduler"`
}

// Default returns the configuration the interactive tool starts with.
func Default() Config {
	return Config{
		NumCalls:       1000,
		AllocationRate: 1000,
		SurvivalRate:   100,
		GrowthFactor:   1.5,
		SmallHeapDelta: 10 << 20,
		MaxHPForGC:     1 << 30,
		Strategy:       Copying,
		Scheduler:      Old,
	}
}

// Validate reports every problem with c at once. The returned error wraps
// ErrInvalidConfig.
func (c Config) Validate() error {
	errs := &multierror.Error{ErrorFormat: joinErrors}
	if c.SurvivalRate > 100 {
		errs = multierror.Append(errs, fmt.Errorf("survival rate %d outside of 0-100", c.SurvivalRate))
	}
	if math.IsNaN(c.GrowthFactor) || math.IsInf(c.GrowthFactor, 0) || c.GrowthFactor < 0 {
		errs = multierror.Append(errs, fmt.Errorf("growth factor %v must be a finite non-negative number", c.GrowthFactor))
	}
	if !c.Strategy.valid() {
		errs = multierror.Append(errs, fmt.Errorf("unknown gc strategy %d", int(c.Strategy)))
	}
	if !c.Scheduler.valid() {
		errs = multierror.Append(errs, fmt.Errorf("unknown scheduler %d", int(c.Scheduler)))
	}
	if errs.ErrorOrNil() != nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, errs)
	}
	return nil
}

func joinErrors(errs []error) string {
	s := make([]string, 0, len(errs))
	for _, err := range errs {
		s = append(s, err.Error())
	}
	return strings.Join(s, "; ")
}
