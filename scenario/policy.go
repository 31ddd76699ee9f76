package scenario

import (
	"fmt"
	"sort"
)

// Strategy is the collection algorithm.
type Strategy int

const (
	// Copying evacuates live data into a fresh region, so the old heap
	// and the copy coexist while collecting.
	Copying Strategy = iota
	// MarkCompact marks into a fixed-size bitmap and compacts in place.
	MarkCompact
)

// Scheduler is the heuristic deciding when a collection is triggered.
type Scheduler int

const (
	// Old grows the heap limit multiplicatively with an absolute floor
	// and caps it at Config.MaxHPForGC.
	Old Scheduler = iota
	// New caps the heap limit halfway to the strategy's live-data ceiling.
	New
)

var strategyNames = map[Strategy]string{
	Copying:     "copying",
	MarkCompact: "mark-compact",
}

var schedulerNames = map[Scheduler]string{
	Old: "old",
	New: "new",
}

func (s Strategy) valid() bool {
	_, ok := strategyNames[s]
	return ok
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

func (s Strategy) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, fmt.Errorf("unknown gc strategy %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Strategy) UnmarshalText(text []byte) error {
	v, err := ParseStrategy(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseStrategy maps a strategy name as printed by Strategy.String back to
// its value.
func ParseStrategy(name string) (Strategy, error) {
	for s, n := range strategyNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown gc strategy %q, must be one of: %s", name, joinNames(strategyNames))
}

func (s Scheduler) valid() bool {
	_, ok := schedulerNames[s]
	return ok
}

func (s Scheduler) String() string {
	if name, ok := schedulerNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Scheduler(%d)", int(s))
}

func (s Scheduler) MarshalText() ([]byte, error) {
	if !s.valid() {
		return nil, fmt.Errorf("unknown scheduler %d", int(s))
	}
	return []byte(s.String()), nil
}

func (s *Scheduler) UnmarshalText(text []byte) error {
	v, err := ParseScheduler(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseScheduler maps a scheduler name back to its value.
func ParseScheduler(name string) (Scheduler, error) {
	for s, n := range schedulerNames {
		if n == name {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown scheduler %q, must be one of: %s", name, joinNames(schedulerNames))
}

// Strategies returns the names of all strategies, sorted.
func Strategies() []string {
	return sortedNames(strategyNames)
}

// Schedulers returns the names of all schedulers, sorted.
func Schedulers() []string {
	return sortedNames(schedulerNames)
}

func sortedNames[K comparable](m map[K]string) []string {
	var s []string
	for _, name := range m {
		s = append(s, name)
	}
	sort.Strings(s)
	return s
}

func joinNames[K comparable](m map[K]string) string {
	s := ""
	for i, name := range sortedNames(m) {
		if i > 0 {
			s += " "
		}
		s += name
	}
	return s
}
