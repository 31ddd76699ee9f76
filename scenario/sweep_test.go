package scenario

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSweepConfigs(t *testing.T) {
	tests := []struct {
		name  string
		sweep Sweep
		want  []float64
	}{
		{
			name:  "survival",
			sweep: Sweep{Param: "survival_rate", From: 0, To: 100, Step: 25},
			want:  []float64{0, 25, 50, 75, 100},
		},
		{
			name:  "survival clamped",
			sweep: Sweep{Param: "survival_rate", From: 80, To: 120, Step: 20},
			want:  []float64{80, 100, 100},
		},
		{
			name:  "single point",
			sweep: Sweep{Param: "allocation_rate", From: 4096, To: 4096, Step: 1},
			want:  []float64{4096},
		},
		{
			name:  "integral values truncate",
			sweep: Sweep{Param: "small_heap_delta", From: 0.5, To: 3, Step: 1},
			want:  []float64{0, 1, 2},
		},
		{
			name:  "growth keeps fractions",
			sweep: Sweep{Param: "growth_factor", From: 1, To: 2, Step: 0.25},
			want:  []float64{1, 1.25, 1.5, 1.75, 2},
		},
		{
			name:  "inclusive end despite rounding",
			sweep: Sweep{Param: "growth_factor", From: 1, To: 1.3, Step: 0.1},
			want:  []float64{1, 1.1, 1.2, 1.3},
		},
		{
			name:  "max hp",
			sweep: Sweep{Param: "max_hp_for_gc", From: 1 << 20, To: 4 << 20, Step: 1 << 20},
			want:  []float64{1 << 20, 2 << 20, 3 << 20, 4 << 20},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			test.sweep.Base = Default()
			configs, err := test.sweep.Configs()
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			var have []float64
			for _, c := range configs {
				have = append(have, test.sweep.Value(c))
			}
			approx := cmp.Comparer(func(a, b float64) bool {
				d := a - b
				return d < 1e-9 && d > -1e-9
			})
			if diff := cmp.Diff(test.want, have, approx); diff != "" {
				t.Errorf("unexpected values (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSweepKeepsBase(t *testing.T) {
	base := Default()
	base.Strategy = MarkCompact
	sw := Sweep{Base: base, Param: "survival_rate", From: 10, To: 20, Step: 10}
	configs, err := sw.Configs()
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	for _, c := range configs {
		c.SurvivalRate = base.SurvivalRate
		if diff := cmp.Diff(base, c); diff != "" {
			t.Errorf("sweep changed more than the swept parameter (-want +got):\n%s", diff)
		}
	}
}

func TestSweepValidate(t *testing.T) {
	for _, sw := range []Sweep{
		{Param: "num_calls", From: 0, To: 1, Step: 1},
		{Param: "survival_rate", From: 0, To: 100, Step: 0},
		{Param: "survival_rate", From: 0, To: 100, Step: -5},
		{Param: "survival_rate", From: 10, To: 0, Step: 1},
		{Param: "allocation_rate", From: 0, To: 1e9, Step: 1},
		{Param: "survival_rate", From: math.NaN(), To: 100, Step: 10},
		{Param: "survival_rate", From: 0, To: math.NaN(), Step: 10},
		{Param: "survival_rate", From: math.Inf(1), To: math.Inf(1), Step: 10},
		{Param: "survival_rate", From: math.Inf(-1), To: 0, Step: 10},
		{Param: "growth_factor", From: 0, To: 1e300, Step: 1e-300},
	} {
		sw.Base = Default()
		if _, err := sw.Configs(); err == nil {
			t.Errorf("expected an error for %+v", sw)
		}
	}

	bad := Sweep{Base: Default(), Param: "survival_rate", From: 0, To: 1, Step: 1}
	bad.Base.GrowthFactor = -2
	if err := bad.Validate(); err == nil {
		t.Errorf("expected the base config to be validated")
	}
}
