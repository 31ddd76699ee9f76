package scenario

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr []string
	}{
		{name: "default", modify: func(*Config) {}},
		{name: "zero calls", modify: func(c *Config) { c.NumCalls = 0 }},
		{name: "survival bounds", modify: func(c *Config) { c.SurvivalRate = 100 }},
		{
			name:    "survival too high",
			modify:  func(c *Config) { c.SurvivalRate = 101 },
			wantErr: []string{"survival rate 101"},
		},
		{
			name:    "negative growth",
			modify:  func(c *Config) { c.GrowthFactor = -1 },
			wantErr: []string{"growth factor -1"},
		},
		{
			name:    "nan growth",
			modify:  func(c *Config) { c.GrowthFactor = math.NaN() },
			wantErr: []string{"growth factor NaN"},
		},
		{
			name: "everything wrong",
			modify: func(c *Config) {
				c.SurvivalRate = 500
				c.GrowthFactor = math.Inf(1)
				c.Strategy = Strategy(7)
				c.Scheduler = Scheduler(-1)
			},
			wantErr: []string{"survival rate 500", "growth factor +Inf", "unknown gc strategy 7", "unknown scheduler -1"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c := Default()
			test.modify(&c)
			err := c.Validate()
			if len(test.wantErr) == 0 {
				if err != nil {
					t.Fatalf("unexpected error: %s", err)
				}
				return
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
			for _, want := range test.wantErr {
				if !strings.Contains(err.Error(), want) {
					t.Errorf("error %q does not mention %q", err, want)
				}
			}
		})
	}
}

func TestParsePolicies(t *testing.T) {
	for _, name := range Strategies() {
		s, err := ParseStrategy(name)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if s.String() != name {
			t.Errorf("strategy %q round-tripped as %q", name, s)
		}
	}
	for _, name := range Schedulers() {
		s, err := ParseScheduler(name)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if s.String() != name {
			t.Errorf("scheduler %q round-tripped as %q", name, s)
		}
	}
	if _, err := ParseStrategy("generational"); err == nil {
		t.Errorf("expected an error for an unknown strategy")
	}
	if _, err := ParseScheduler("newest"); err == nil {
		t.Errorf("expected an error for an unknown scheduler")
	}
	if diff := cmp.Diff([]string{"copying", "mark-compact"}, Strategies()); diff != "" {
		t.Errorf("unexpected strategies (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"new", "old"}, Schedulers()); diff != "" {
		t.Errorf("unexpected schedulers (-want +got):\n%s", diff)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  func() Config
	}{
		{
			name:  "empty keeps base",
			input: "",
			want:  Default,
		},
		{
			name: "yaml",
			input: `
num_calls: 10
survival_rate: 0
gc_strategy: mark-compact
scheduler: new
`,
			want: func() Config {
				c := Default()
				c.NumCalls = 10
				c.SurvivalRate = 0
				c.Strategy = MarkCompact
				c.Scheduler = New
				return c
			},
		},
		{
			name:  "json",
			input: `{"allocation_rate": 4096, "growth_factor": 2.5, "max_hp_for_gc": 500}`,
			want: func() Config {
				c := Default()
				c.AllocationRate = 4096
				c.GrowthFactor = 2.5
				c.MaxHPForGC = 500
				return c
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			have, err := Decode(strings.NewReader(test.input), Default())
			if err != nil {
				t.Fatalf("unexpected error: %s", err)
			}
			if diff := cmp.Diff(test.want(), have); diff != "" {
				t.Errorf("unexpected config (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	for _, input := range []string{
		"num_calls: -1\n",
		"gc_strategy: generational\n",
		"scheduler: 3\n",
		"heap_size: 10\n",
	} {
		if _, err := Decode(strings.NewReader(input), Default()); err == nil {
			t.Errorf("expected an error decoding %q", input)
		}
	}
}

func TestWriteLoad(t *testing.T) {
	c := Default()
	c.Strategy = MarkCompact
	c.Scheduler = New
	c.SmallHeapDelta = 12345

	var buf bytes.Buffer
	if err := Write(&buf, c); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !strings.Contains(buf.String(), "gc_strategy: mark-compact") {
		t.Errorf("strategy not written by name:\n%s", buf.String())
	}

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path, Config{})
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if diff := cmp.Diff(c, loaded); diff != "" {
		t.Errorf("unexpected config (-want +got):\n%s", diff)
	}
}

func TestLoadMissing(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), Default()); err == nil {
		t.Errorf("expected an error")
	}
}

func TestGenerators(t *testing.T) {
	names := Generators()
	if len(names) == 0 || names[0] != "default" {
		t.Fatalf("unexpected generators %v", names)
	}
	for _, name := range names {
		c, err := Generate(name)
		if err != nil {
			t.Fatalf("%s: unexpected error: %s", name, err)
		}
		if err := c.Validate(); err != nil {
			t.Errorf("%s: invalid preset: %s", name, err)
		}
	}
	if _, err := Generate("nope"); err == nil {
		t.Errorf("expected an error for an unknown generator")
	}
}
