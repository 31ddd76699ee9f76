package scenario

import (
	"fmt"
	"sort"
)

func Generate(name string) (Config, error) {
	g, ok := generators[name]
	if !ok {
		return Config{}, fmt.Errorf("generator %q not found", name)
	}
	return g(), nil
}

func Generators() []string {
	var s []string
	for name := range generators {
		s = append(s, name)
	}
	sort.Strings(s)
	return s
}

// generators are presets layered over Default. Each one isolates a single
// behavior of the trigger or the collector.
var generators = map[string]func() Config{
	"default": Default,
	"forced-gc": func() Config {
		c := Default()
		c.SurvivalRate = 50
		c.MaxHPForGC = 500
		return c
	},
	"no-survival": func() Config {
		c := Default()
		c.SurvivalRate = 0
		c.SmallHeapDelta = 64 << 10
		return c
	},
	"full-survival": func() Config {
		c := Default()
		c.SurvivalRate = 100
		c.SmallHeapDelta = 64 << 10
		return c
	},
	"small-heap-delta": func() Config {
		c := Default()
		c.NumCalls = 5000
		c.SurvivalRate = 20
		c.SmallHeapDelta = 256 << 10
		return c
	},
	"old-mark-compact": func() Config {
		c := Default()
		c.NumCalls = 5000
		c.SurvivalRate = 20
		c.SmallHeapDelta = 256 << 10
		c.Strategy = MarkCompact
		return c
	},
	"new-copying": func() Config {
		c := Default()
		c.NumCalls = 5000
		c.AllocationRate = 64 << 10
		c.SurvivalRate = 20
		c.GrowthFactor = 2
		c.Scheduler = New
		return c
	},
	"new-mark-compact": func() Config {
		c := Default()
		c.NumCalls = 5000
		c.AllocationRate = 64 << 10
		c.SurvivalRate = 20
		c.GrowthFactor = 2
		c.Strategy = MarkCompact
		c.Scheduler = New
		return c
	},
	"overflow": func() Config {
		c := Default()
		c.NumCalls = 10000
		c.AllocationRate = 1 << 20
		c.SurvivalRate = 90
		c.MaxHPForGC = 3 << 30
		return c
	},
}
