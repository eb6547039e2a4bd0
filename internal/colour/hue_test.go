package colour

import (
	"testing"
)

func TestShiftToWithinRange(t *testing.T) {
	tests := []struct {
		name    string
		hue     float64
		min     float64
		max     float64
		wantHue float64
	}{
		{name: "below min", hue: 10, min: 20, max: 40, wantHue: 20},
		{name: "above max", hue: 50, min: 20, max: 40, wantHue: 40},
		{name: "inside", hue: 30, min: 20, max: 40, wantHue: 30},
		{name: "on min boundary", hue: 20, min: 20, max: 40, wantHue: 20},
		{name: "on max boundary", hue: 40, min: 20, max: 40, wantHue: 40},
		{name: "wraps past 360 to min", hue: 350, min: 20, max: 40, wantHue: 20},
		{name: "blue into green band", hue: 292.75, min: 120, max: 180, wantHue: 180},
		{name: "blue into red band", hue: 292.75, min: 20, max: 40, wantHue: 20},
		{name: "blue into info band", hue: 292.75, min: 190, max: 250, wantHue: 250},
		{name: "tie goes to min", hue: 210, min: 20, max: 40, wantHue: 20},
		{name: "band ending at 360", hue: 10, min: 300, max: 360, wantHue: 360},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := LCH{L: 50, C: 60, H: tt.hue, A: 0.8}
			got := ShiftToWithinRange(in, tt.min, tt.max)
			if got.H != tt.wantHue {
				t.Errorf("ShiftToWithinRange(%v, %v, %v).H = %v, want %v", tt.hue, tt.min, tt.max, got.H, tt.wantHue)
			}
			if got.L != in.L || got.C != in.C || got.A != in.A {
				t.Errorf("ShiftToWithinRange() changed other channels: %+v", got)
			}
		})
	}
}

func TestShiftToWithinRangeIdempotent(t *testing.T) {
	bands := []HueBand{DangerHues, SuccessHues, WarningHues, InfoHues}
	for _, band := range bands {
		for h := 0.0; h < 360; h += 7.5 {
			once := band.Constrain(LCH{L: 40, C: 50, H: h, A: 1})
			twice := band.Constrain(once)
			if once != twice {
				t.Errorf("band %+v hue %v: once=%v twice=%v", band, h, once.H, twice.H)
			}
			if !band.Contains(once.H) {
				t.Errorf("band %+v hue %v: result %v outside band", band, h, once.H)
			}
		}
	}
}
