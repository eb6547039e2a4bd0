package colour

// HueBand is an inclusive hue range in degrees with 0 <= Min < Max <= 360.
type HueBand struct {
	Min float64
	Max float64
}

// Semantic hue bands.
var (
	DangerHues  = HueBand{Min: 20, Max: 40}
	SuccessHues = HueBand{Min: 120, Max: 180}
	WarningHues = HueBand{Min: 90, Max: 100}
	InfoHues    = HueBand{Min: 190, Max: 250}
)

// Contains reports whether hue h lies inside the band.
func (b HueBand) Contains(h float64) bool {
	return h >= b.Min && h <= b.Max
}

// ShiftToWithinRange snaps the hue of c to the nearest boundary of
// [minHue,maxHue] measured around the colour wheel. Colours already in range
// are returned unchanged. Ties go to minHue.
func ShiftToWithinRange(c LCH, minHue, maxHue float64) LCH {
	if c.H >= minHue && c.H <= maxHue {
		return c
	}

	toMax := wrapDistance(c.H - maxHue)
	toMin := wrapDistance(minHue - c.H)

	if toMax < toMin {
		return c.WithHue(maxHue)
	}
	return c.WithHue(minHue)
}

// Constrain is ShiftToWithinRange for a HueBand.
func (b HueBand) Constrain(c LCH) LCH {
	return ShiftToWithinRange(c, b.Min, b.Max)
}

func wrapDistance(d float64) float64 {
	if d < 0 {
		d += totalDegrees
	}
	if d > totalDegrees {
		d -= totalDegrees
	}
	return d
}
