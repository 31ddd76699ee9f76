package simulation

import (
	"fmt"
	"math"

	"github.com/osa1/mmsim/scenario"
)

const (
	// CopyingMaxLive is the most live data a copying collector can
	// evacuate within a 4 GiB address space: half of it.
	CopyingMaxLive = 2 << 30

	// MarkCompactMaxLive is the largest x with x + x/32 <= 4 GiB, i.e.
	// the most live data whose 1-bit-per-32-bytes mark bitmap still fits
	// alongside it.
	MarkCompactMaxLive = (4 << 30) * 32 / 33

	// MarkCompactMaxBitmapSize is the mark bitmap for MarkCompactMaxLive
	// bytes of heap. The mark stack is not modeled.
	MarkCompactMaxBitmapSize = MarkCompactMaxLive / 32
)

// MaxLive returns the largest live heap the strategy can collect.
func MaxLive(strategy scenario.Strategy) uint64 {
	switch strategy {
	case scenario.Copying:
		return CopyingMaxLive
	case scenario.MarkCompact:
		return MarkCompactMaxLive
	}
	panic(fmt.Sprintf("unknown gc strategy %v", strategy))
}

// HeapLimit returns the heap pointer value at or above which the next call
// triggers a collection, given the heap pointer after the last collection.
func HeapLimit(cfg scenario.Config, lastHP uint32) uint64 {
	grown := scaleSat(lastHP, cfg.GrowthFactor)
	switch cfg.Scheduler {
	case scenario.Old:
		limit := max(grown, addSat(uint64(lastHP), cfg.SmallHeapDelta))
		return min(limit, cfg.MaxHPForGC)
	case scenario.New:
		return min(grown, (uint64(lastHP)+MaxLive(cfg.Strategy))/2)
	}
	panic(fmt.Sprintf("unknown scheduler %v", cfg.Scheduler))
}

// TransientPeak returns the memory in use while a collection runs with the
// heap pointer at hp. ok is false when that does not fit in 32 bits.
func TransientPeak(strategy scenario.Strategy, hp, lastHP, newLive uint32) (peak uint32, ok bool) {
	switch strategy {
	case scenario.Copying:
		// Old space and to-space, holding the whole live set, coexist.
		peak, ok = add32(hp, lastHP)
		if !ok {
			return 0, false
		}
		return add32(peak, newLive)
	case scenario.MarkCompact:
		return add32(hp, MarkCompactMaxBitmapSize)
	}
	panic(fmt.Sprintf("unknown gc strategy %v", strategy))
}

func add32(a, b uint32) (uint32, bool) {
	sum := a + b
	return sum, sum >= a
}

func addSat(a, b uint64) uint64 {
	if sum := a + b; sum >= a {
		return sum
	}
	return math.MaxUint64
}

// scaleSat returns x*f truncated to an integer, saturating at the top of
// the uint64 range. f must be non-negative.
func scaleSat(x uint32, f float64) uint64 {
	v := float64(x) * f
	if v >= math.MaxUint64 {
		return math.MaxUint64
	}
	return uint64(v)
}
