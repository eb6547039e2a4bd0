package colour

// WCAG contrast targets.
const (
	WCAGAA  = 4.5
	WCAGAAA = 7.0
)

const (
	iterationLimit = 100
	minLightness   = 1
	maxLightness   = 99
)

// Property selects the channel AdjustContrast searches.
type Property string

// PropertyLightness is currently the only searchable channel.
const PropertyLightness Property = "lightness"

// flatten composites a translucent colour over an opaque background.
func flatten(fg, bg LCH) LCH {
	return LCH{
		L: fg.L*fg.A + bg.L*(1-fg.A),
		C: fg.C*fg.A + bg.C*(1-fg.A),
		H: fg.H*fg.A + bg.H*(1-fg.A),
		A: 1,
	}
}

// Contrast returns the contrast ratio of fg on bg.
//
// The background is first flattened over White and the foreground over the
// result. The ratio uses the lightness channel in place of relative luminance:
// (max+0.05)/(min+0.05).
func Contrast(fg, bg LCH) float64 {
	bgFlat := flatten(bg, White)
	fgFlat := flatten(fg, bgFlat)

	hi, lo := fgFlat.L, bgFlat.L
	if lo > hi {
		hi, lo = lo, hi
	}
	return (hi + 0.05) / (lo + 0.05)
}

// AdjustContrast searches the lightness of fg until it reaches target contrast
// against bg. See Generator.AdjustContrast.
func AdjustContrast(fg, bg LCH, target float64, prop Property) LCH {
	return defaultGenerator.AdjustContrast(fg, bg, target, prop)
}

// AdjustContrast returns fg with a lightness that meets target contrast
// against bg, keeping chroma, hue and alpha.
//
// The search starts from whichever extreme fails the target (1 when 1 fails,
// otherwise 99) and walks one unit further from it per iteration, so the
// result is the passing value closest to that extreme. When lightness leaves
// [0,100] or the iteration budget runs out the last candidate is returned and
// a warning is logged.
func (g *Generator) AdjustContrast(fg, bg LCH, target float64, prop Property) LCH {
	if prop != PropertyLightness {
		g.logger.Debug("unsupported contrast property, using lightness", "property", prop)
	}

	start := float64(minLightness)
	direction := 1.0
	candidate := fg.WithLightness(start)
	if Contrast(candidate, bg) >= target {
		start = maxLightness
		direction = -1
		candidate = fg.WithLightness(start)
	}

	for i := 1; i <= iterationLimit; i++ {
		if Contrast(candidate, bg) >= target {
			return candidate
		}

		next := start + float64(i)*direction
		if next < 0 || next > 100 {
			g.logger.Warn("contrast could not be achieved",
				"target", target, "lightness", candidate.L, "background", bg.String())
			return candidate
		}
		candidate = candidate.WithLightness(next)
	}

	g.logger.Warn("contrast search exhausted iteration budget",
		"target", target, "lightness", candidate.L, "iterations", iterationLimit)
	return candidate
}

// Meets reports whether fg on bg reaches target.
func Meets(fg, bg LCH, target float64) bool {
	return Contrast(fg, bg) >= target
}
