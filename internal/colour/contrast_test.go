package colour

import (
	"bytes"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
)

var paper = LCH{L: 100, C: 0, H: 0, A: 1}

func TestContrast(t *testing.T) {
	tests := []struct {
		name string
		fg   LCH
		bg   LCH
		want float64
	}{
		{
			name: "light on white reference",
			fg:   LCH{L: 100, A: 1},
			bg:   White,
			want: 100.05 / 1.05,
		},
		{
			name: "identical colours",
			fg:   LCH{L: 50, C: 30, H: 120, A: 1},
			bg:   LCH{L: 50, C: 0, H: 0, A: 1},
			want: 1,
		},
		{
			name: "order does not matter",
			fg:   LCH{L: 20, A: 1},
			bg:   LCH{L: 80, A: 1},
			want: 80.05 / 20.05,
		},
		{
			name: "translucent foreground",
			fg:   LCH{L: 80, A: 0.5},
			bg:   LCH{L: 20, A: 1},
			want: 50.05 / 20.05,
		},
		{
			name: "translucent background flattened over white",
			fg:   LCH{L: 0, A: 1},
			bg:   LCH{L: 50, A: 0.5},
			want: 25.55 / 0.05,
		},
		{
			name: "fully transparent foreground",
			fg:   LCH{L: 90, A: 0},
			bg:   LCH{L: 30, A: 1},
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Contrast(tt.fg, tt.bg)
			if !approx(got, tt.want) {
				t.Errorf("Contrast() = %v, want %v", got, tt.want)
			}
			if got < 1 {
				t.Errorf("Contrast() = %v, want >= 1", got)
			}
		})
	}
}

func TestContrastMonotonic(t *testing.T) {
	bg := LCH{L: 50, A: 1}

	// Moving away from the background on either side never lowers contrast.
	prev := 1.0
	for l := 50.0; l <= 100; l++ {
		got := Contrast(LCH{L: l, A: 1}, bg)
		if got < prev {
			t.Fatalf("Contrast at L=%v = %v, lower than previous %v", l, got, prev)
		}
		prev = got
	}

	prev = 1.0
	for l := 50.0; l >= 0; l-- {
		got := Contrast(LCH{L: l, A: 1}, bg)
		if got < prev {
			t.Fatalf("Contrast at L=%v = %v, lower than previous %v", l, got, prev)
		}
		prev = got
	}
}

func TestAdjustContrast(t *testing.T) {
	blue, err := ParseHex("#2563eb")
	if err != nil {
		t.Fatalf("ParseHex() error = %v", err)
	}

	tests := []struct {
		name   string
		fg     LCH
		bg     LCH
		target float64
		wantL  float64
	}{
		{
			name:   "white reference point walks up from 1",
			fg:     blue,
			bg:     White,
			target: WCAGAA,
			wantL:  5,
		},
		{
			name:   "paper walks down from 99",
			fg:     blue,
			bg:     paper,
			target: WCAGAA,
			wantL:  22,
		},
		{
			name:   "maximum ratio on paper",
			fg:     blue,
			bg:     paper,
			target: 21,
			wantL:  4,
		},
		{
			name:   "black passes at 99 immediately",
			fg:     blue,
			bg:     Black,
			target: WCAGAAA,
			wantL:  99,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AdjustContrast(tt.fg, tt.bg, tt.target, PropertyLightness)
			if got.L != tt.wantL {
				t.Errorf("AdjustContrast().L = %v, want %v", got.L, tt.wantL)
			}
			if got.C != tt.fg.C || got.H != tt.fg.H || got.A != tt.fg.A {
				t.Errorf("AdjustContrast() changed non-lightness channels: %+v from %+v", got, tt.fg)
			}
			if c := Contrast(got, tt.bg); c < tt.target {
				t.Errorf("Contrast(result) = %v, want >= %v", c, tt.target)
			}
		})
	}
}

func TestAdjustContrastConverges(t *testing.T) {
	seeds := []string{"#2563eb", "#f97316", "#000000", "#ffffff", "#10b981", "#7c3aed"}
	targets := []float64{1, 3, WCAGAA, WCAGAAA, 12, 21}

	for _, hex := range seeds {
		seed, err := ParseHex(hex)
		if err != nil {
			t.Fatalf("ParseHex(%q) error = %v", hex, err)
		}
		for _, target := range targets {
			got := AdjustContrast(seed, paper, target, PropertyLightness)
			if c := Contrast(got, paper); c < target {
				t.Errorf("%s target %v: contrast %v not reached (L=%v)", hex, target, c, got.L)
			}
		}
	}
}

func TestAdjustContrastUnreachable(t *testing.T) {
	var buf bytes.Buffer
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "test",
		Output: &buf,
		Level:  hclog.Warn,
	})
	g := NewGenerator(logger)

	fg := LCH{L: 50, C: 10, H: 10, A: 1}
	bg := LCH{L: 50, A: 1}
	got := g.AdjustContrast(fg, bg, 100, PropertyLightness)

	if got.L != 100 {
		t.Errorf("AdjustContrast().L = %v, want last candidate 100", got.L)
	}
	if !strings.Contains(buf.String(), "contrast could not be achieved") {
		t.Errorf("expected warning in log output, got %q", buf.String())
	}
}

func TestAdjustContrastDoesNotMutateInput(t *testing.T) {
	fg := LCH{L: 60, C: 40, H: 200, A: 1}
	orig := fg
	_ = AdjustContrast(fg, paper, WCAGAA, PropertyLightness)
	if fg != orig {
		t.Errorf("input mutated: %+v, want %+v", fg, orig)
	}
}

func TestMeets(t *testing.T) {
	if !Meets(LCH{L: 0, A: 1}, paper, WCAGAAA) {
		t.Error("black on paper should meet AAA")
	}
	if Meets(LCH{L: 90, A: 1}, paper, WCAGAA) {
		t.Error("L=90 on paper should not meet AA")
	}
}
