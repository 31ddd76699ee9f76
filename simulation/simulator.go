package simulation

import (
	"github.com/osa1/mmsim/scenario"
)

// Result holds the time series of a run. HP and HighWater are index-aligned
// by call; index 0 is the state before the first call.
type Result struct {
	HP        []uint32 `json:"hp"`
	HighWater []uint32 `json:"high_water"`

	// Collections lists the calls (indices into HP) that triggered a
	// collection.
	Collections []int `json:"collections"`

	// Truncated is set when the run stopped before NumCalls because a
	// value no longer fit in 32 bits. The series cover the calls that
	// completed.
	Truncated bool `json:"truncated"`
}

// Len returns the number of points in the series.
func (r *Result) Len() int {
	return len(r.HP)
}

const maxPrealloc = 1 << 20

type simulator struct {
	scenario.Config

	// State
	lastHP        uint32
	hp            uint32
	lastHighWater uint32

	res Result
}

// Simulate runs cfg to completion. The only error is an invalid
// configuration; running out of 32-bit address space is reported through
// Result.Truncated.
func Simulate(cfg scenario.Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	s := &simulator{Config: cfg}
	n := min(int(cfg.NumCalls), maxPrealloc) + 1
	s.res.HP = make([]uint32, 0, n)
	s.res.HighWater = make([]uint32, 0, n)
	s.res.Collections = []int{}
	s.record()
	for call := uint32(0); call < cfg.NumCalls; call++ {
		if !s.step() {
			s.res.Truncated = true
			break
		}
	}
	return s.res, nil
}

// step simulates one call and reports whether it fit in 32 bits. State is
// untouched when it did not.
func (s *simulator) step() bool {
	// 1. Figure out the trigger from the heap as of the last collection.
	heapLimit := HeapLimit(s.Config, s.lastHP)

	// 2. Allocate.
	hp, ok := add32(s.hp, s.AllocationRate)
	if !ok {
		return false
	}
	if uint64(hp) < heapLimit {
		s.hp = hp
		s.lastHighWater = max(s.lastHighWater, hp)
		s.record()
		return true
	}

	// 3. Collect.
	//
	// Only what was allocated since the last collection can die; the
	// survivors are appended to the previous live set.
	newAllocs := hp - s.lastHP
	newLive := uint32(float64(newAllocs) * float64(s.SurvivalRate) / 100)
	peak, ok := TransientPeak(s.Strategy, hp, s.lastHP, newLive)
	if !ok {
		return false
	}
	s.lastHighWater = max(s.lastHighWater, peak)
	s.hp = s.lastHP + newLive
	s.lastHP = s.hp
	s.res.Collections = append(s.res.Collections, len(s.res.HP))
	s.record()
	return true
}

func (s *simulator) record() {
	s.res.HP = append(s.res.HP, s.hp)
	s.res.HighWater = append(s.res.HighWater, s.lastHighWater)
}
