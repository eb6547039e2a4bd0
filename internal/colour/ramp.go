package colour

import (
	"math"
)

// Default lightness targets for ramps.
const (
	DefaultShadeLightness = 5
	DefaultTintLightness  = 95
)

// endLabel is the step label of the last stop in a family.
const endLabel = 900

// Shades returns stops colours darkening from c towards DefaultShadeLightness.
func Shades(c LCH, stops int) []LCH {
	return ShadesTo(c, stops, DefaultShadeLightness)
}

// ShadesTo interpolates lightness from c.L towards ending in stops equal
// increments. Stop i (1-based) has lightness start+((ending-start)/stops)*i.
func ShadesTo(c LCH, stops int, ending float64) []LCH {
	if stops <= 0 {
		return nil
	}

	start := c.L
	out := make([]LCH, 0, stops)
	for i := 1; i <= stops; i++ {
		out = append(out, c.WithLightness(start+((ending-start)/float64(stops))*float64(i)))
	}
	return out
}

// Tints returns stops colours from near DefaultTintLightness back to c.
func Tints(c LCH, stops int) []LCH {
	return TintsTo(c, stops, DefaultTintLightness)
}

// TintsTo is the mirror of ShadesTo. Stop i (1-based) has lightness
// ending-((ending-start)/stops)*i, so the sequence runs from the light end
// towards the seed.
func TintsTo(c LCH, stops int, ending float64) []LCH {
	if stops <= 0 {
		return nil
	}

	start := c.L
	out := make([]LCH, 0, stops)
	for i := 1; i <= stops; i++ {
		out = append(out, c.WithLightness(ending-((ending-start)/float64(stops))*float64(i)))
	}
	return out
}

// RoundingStep returns the label granularity for a ramp of stops colours.
func RoundingStep(stops int) int {
	switch {
	case stops > 160:
		return 1
	case stops > 80:
		return 5
	case stops > 40:
		return 10
	case stops > 20:
		return 25
	case stops > 10:
		return 50
	default:
		return 100
	}
}

// StepLabel returns the label number of the i-th (0-based) colour in a ramp.
// Distinct indexes can share a label once stops exceeds endLabel.
func StepLabel(i, stops int) int {
	step := float64(RoundingStep(stops))
	return int(math.Round(((endLabel/float64(stops))*float64(i+1))/step) * step)
}

// EvenlySpaced builds a family from stops shades of c.
func EvenlySpaced(family string, c LCH, stops int) *Palette {
	return labelled(family, Shades(c, stops), stops)
}

// StartAtMiddle builds a family with ceil(stops/2) tints followed by
// floor(stops/2) shades, so the seed sits near the middle label.
func StartAtMiddle(family string, c LCH, stops int) *Palette {
	half := stops / 2
	colours := append(Tints(c, stops-half), Shades(c, half)...)
	return labelled(family, colours, stops)
}

func labelled(family string, colours []LCH, stops int) *Palette {
	p := newPalette(len(colours))
	for i, c := range colours {
		p.set(family, StepLabel(i, stops), c)
	}
	return p
}
