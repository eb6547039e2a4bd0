package colour

import (
	"reflect"
	"testing"
)

func lightnesses(cs []LCH) []float64 {
	out := make([]float64, len(cs))
	for i, c := range cs {
		out[i] = c.L
	}
	return out
}

func assertLightness(t *testing.T, got []LCH, want []float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d colours %v, want %d %v", len(got), lightnesses(got), len(want), want)
	}
	for i := range want {
		if !approx(got[i].L, want[i]) {
			t.Errorf("colour %d lightness = %v, want %v", i, got[i].L, want[i])
		}
	}
}

func TestShades(t *testing.T) {
	seed := LCH{L: 50, C: 40, H: 120, A: 0.9}
	got := Shades(seed, 5)
	assertLightness(t, got, []float64{41, 32, 23, 14, 5})

	for _, c := range got {
		if c.C != seed.C || c.H != seed.H || c.A != seed.A {
			t.Errorf("shade changed non-lightness channels: %+v", c)
		}
	}
}

func TestTints(t *testing.T) {
	seed := LCH{L: 50, C: 40, H: 120, A: 1}
	assertLightness(t, Tints(seed, 5), []float64{86, 77, 68, 59, 50})
}

func TestShadesToCustomEnding(t *testing.T) {
	seed := LCH{L: 20, A: 1}
	assertLightness(t, ShadesTo(seed, 4, 0), []float64{15, 10, 5, 0})
	assertLightness(t, TintsTo(seed, 2, 100), []float64{60, 20})
}

func TestRampsZeroStops(t *testing.T) {
	seed := LCH{L: 50, A: 1}
	if got := Shades(seed, 0); len(got) != 0 {
		t.Errorf("Shades(0) = %v, want empty", got)
	}
	if got := Tints(seed, -1); len(got) != 0 {
		t.Errorf("Tints(-1) = %v, want empty", got)
	}
}

func TestRoundingStep(t *testing.T) {
	tests := []struct {
		stops int
		want  int
	}{
		{1, 100}, {10, 100},
		{11, 50}, {20, 50},
		{21, 25}, {40, 25},
		{41, 10}, {80, 10},
		{81, 5}, {160, 5},
		{161, 1}, {1000, 1},
	}

	for _, tt := range tests {
		if got := RoundingStep(tt.stops); got != tt.want {
			t.Errorf("RoundingStep(%d) = %d, want %d", tt.stops, got, tt.want)
		}
	}
}

func TestStepLabel(t *testing.T) {
	tests := []struct {
		stops int
		want  []int
	}{
		{stops: 9, want: []int{100, 200, 300, 400, 500, 600, 700, 800, 900}},
		{stops: 5, want: []int{200, 400, 500, 700, 900}},
		{stops: 7, want: []int{100, 300, 400, 500, 600, 800, 900}},
		{stops: 2, want: []int{500, 900}},
		{stops: 1, want: []int{900}},
		{stops: 12, want: []int{100, 150, 250, 300, 400, 450, 550, 600, 700, 750, 850, 900}},
	}

	for _, tt := range tests {
		got := make([]int, tt.stops)
		for i := range got {
			got[i] = StepLabel(i, tt.stops)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("labels for %d stops = %v, want %v", tt.stops, got, tt.want)
		}
	}
}

func TestEvenlySpaced(t *testing.T) {
	seed := LCH{L: 95, C: 8, H: 264, A: 1}
	p := EvenlySpaced("neutral", seed, 9)

	wantNames := []string{
		"neutral-100", "neutral-200", "neutral-300", "neutral-400", "neutral-500",
		"neutral-600", "neutral-700", "neutral-800", "neutral-900",
	}
	if got := p.Names(); !reflect.DeepEqual(got, wantNames) {
		t.Errorf("Names() = %v, want %v", got, wantNames)
	}

	want := []float64{85, 75, 65, 55, 45, 35, 25, 15, 5}
	for i, tok := range p.Tokens() {
		if !approx(tok.Colour.L, want[i]) {
			t.Errorf("%s lightness = %v, want %v", tok.Name, tok.Colour.L, want[i])
		}
	}
}

func TestStartAtMiddle(t *testing.T) {
	seed := LCH{L: 50, C: 60, H: 30, A: 1}

	t.Run("nine stops", func(t *testing.T) {
		p := StartAtMiddle("primary", seed, 9)
		if p.Len() != 9 {
			t.Fatalf("Len() = %d, want 9", p.Len())
		}
		// Five tints from 95 back to the seed, then four shades to 5.
		want := []float64{86, 77, 68, 59, 50, 38.75, 27.5, 16.25, 5}
		for i, tok := range p.Tokens() {
			if !approx(tok.Colour.L, want[i]) {
				t.Errorf("%s lightness = %v, want %v", tok.Name, tok.Colour.L, want[i])
			}
			if tok.Step != (i+1)*100 {
				t.Errorf("token %d step = %d, want %d", i, tok.Step, (i+1)*100)
			}
		}
	})

	t.Run("five stops", func(t *testing.T) {
		p := StartAtMiddle("danger", seed, 5)
		wantNames := []string{"danger-200", "danger-400", "danger-500", "danger-700", "danger-900"}
		if got := p.Names(); !reflect.DeepEqual(got, wantNames) {
			t.Errorf("Names() = %v, want %v", got, wantNames)
		}
		want := []float64{80, 65, 50, 27.5, 5}
		for i, tok := range p.Tokens() {
			if !approx(tok.Colour.L, want[i]) {
				t.Errorf("%s lightness = %v, want %v", tok.Name, tok.Colour.L, want[i])
			}
		}
	})
}

// Above 900 stops the label formula maps several stops onto one label. The
// later stop replaces the earlier one and the label keeps its first position.
func TestEvenlySpacedDuplicateLabels(t *testing.T) {
	seed := LCH{L: 95, C: 8, H: 0, A: 1}
	stops := 1000
	p := EvenlySpaced("grey", seed, stops)

	if p.Len() != 900 {
		t.Fatalf("Len() = %d, want 900 distinct labels", p.Len())
	}

	names := p.Names()
	if names[0] != "grey-1" || names[len(names)-1] != "grey-900" {
		t.Errorf("first/last names = %s/%s, want grey-1/grey-900", names[0], names[len(names)-1])
	}

	// Index 5 (0.9*6=5.4) is the last stop rounded to label 5.
	shades := Shades(seed, stops)
	got, ok := p.Get("grey-5")
	if !ok {
		t.Fatal("grey-5 missing")
	}
	if got != shades[5] {
		t.Errorf("grey-5 = %+v, want later stop %+v", got, shades[5])
	}
}
