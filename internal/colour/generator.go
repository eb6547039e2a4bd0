package colour

import (
	"fmt"

	"github.com/hashicorp/go-hclog"
)

// Family names, in palette order.
const (
	FamilyPrimary = "primary"
	FamilyAccent  = "accent"
	FamilyNeutral = "neutral"
	FamilyDanger  = "danger"
	FamilySuccess = "success"
	FamilyWarning = "warning"
	FamilyInfo    = "info"
)

// Families lists every family CreatePalette produces.
var Families = []string{
	FamilyPrimary, FamilyAccent, FamilyNeutral,
	FamilyDanger, FamilySuccess, FamilyWarning, FamilyInfo,
}

// Floors and fixed values applied to derived seeds.
const (
	vibrantMinChroma    = 50
	vibrantMinLightness = 40
	neutralChroma       = 8
	neutralLightness    = 95
)

// Options control palette assembly. DefaultOptions reproduces the standard
// 47-token palette.
type Options struct {
	// TargetContrast is the minimum contrast of the brand seeds against Background.
	TargetContrast float64
	// Background is the surface the brand seeds are adjusted against.
	Background LCH
	// BrandStops is the number of primary and accent stops.
	BrandStops int
	// NeutralStops is the number of neutral stops.
	NeutralStops int
	// SemanticStops is the number of danger/success/warning/info stops.
	SemanticStops int
}

// DefaultOptions returns AA contrast against White with 9/9/5 stops.
func DefaultOptions() Options {
	return Options{
		TargetContrast: WCAGAA,
		Background:     White,
		BrandStops:     9,
		NeutralStops:   9,
		SemanticStops:  5,
	}
}

// Validate checks the options are usable.
func (o Options) Validate() error {
	if o.TargetContrast < 1 {
		return fmt.Errorf("target contrast must be at least 1, got %g", o.TargetContrast)
	}
	if o.BrandStops < 1 || o.NeutralStops < 1 || o.SemanticStops < 1 {
		return fmt.Errorf("stop counts must be at least 1, got brand=%d neutral=%d semantic=%d",
			o.BrandStops, o.NeutralStops, o.SemanticStops)
	}
	return nil
}

var defaultGenerator = NewGenerator(hclog.NewNullLogger())

// Generator assembles palettes and reports contrast search diagnostics
// through its logger. It holds no per-call state and is safe for concurrent use.
type Generator struct {
	logger hclog.Logger
	opts   Options
}

// NewGenerator returns a generator with DefaultOptions. A nil logger
// discards diagnostics.
func NewGenerator(logger hclog.Logger) *Generator {
	return NewGeneratorWithOptions(logger, DefaultOptions())
}

// NewGeneratorWithOptions returns a generator using opts.
func NewGeneratorWithOptions(logger hclog.Logger, opts Options) *Generator {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Generator{logger: logger, opts: opts}
}

// Options returns the generator's options.
func (g *Generator) Options() Options {
	return g.opts
}

// CreatePalette builds the standard palette from two seed colours.
func CreatePalette(primary, accent Color) (*Palette, error) {
	return defaultGenerator.CreatePalette(primary, accent)
}

// EnsureVibrant raises chroma to at least 50 and lightness to at least 40.
func EnsureVibrant(c LCH) LCH {
	if c.C < vibrantMinChroma {
		c.C = vibrantMinChroma
	}
	if c.L < vibrantMinLightness {
		c.L = vibrantMinLightness
	}
	return c
}

// EnsureNeutral fixes chroma at 8 and lightness at 95, keeping hue and alpha.
func EnsureNeutral(c LCH) LCH {
	c.C = neutralChroma
	c.L = neutralLightness
	return c
}

// CreatePalette builds the semantic palette from a primary and an accent seed.
//
// Primary and accent are adjusted to the target contrast and expanded around
// their middle. Neutral is the primary hue at fixed low chroma, shaded evenly
// from lightness 95. Danger, success, warning and info share the vibrant
// primary's lightness and chroma, with the hue snapped into their band.
func (g *Generator) CreatePalette(primary, accent Color) (*Palette, error) {
	if err := g.opts.Validate(); err != nil {
		return nil, err
	}

	p, err := ToLCH(primary)
	if err != nil {
		return nil, fmt.Errorf("primary: %w", err)
	}
	a, err := ToLCH(accent)
	if err != nil {
		return nil, fmt.Errorf("accent: %w", err)
	}

	vibrant := EnsureVibrant(p)
	neutral := EnsureNeutral(p)

	adjustedPrimary := g.AdjustContrast(p, g.opts.Background, g.opts.TargetContrast, PropertyLightness)
	adjustedAccent := g.AdjustContrast(a, g.opts.Background, g.opts.TargetContrast, PropertyLightness)

	g.logger.Debug("seeds prepared",
		"primary", adjustedPrimary.String(),
		"accent", adjustedAccent.String(),
		"neutral", neutral.String(),
		"vibrant", vibrant.String())

	families := []*Palette{
		StartAtMiddle(FamilyPrimary, adjustedPrimary, g.opts.BrandStops),
		StartAtMiddle(FamilyAccent, adjustedAccent, g.opts.BrandStops),
		EvenlySpaced(FamilyNeutral, neutral, g.opts.NeutralStops),
		StartAtMiddle(FamilyDanger, DangerHues.Constrain(vibrant), g.opts.SemanticStops),
		StartAtMiddle(FamilySuccess, SuccessHues.Constrain(vibrant), g.opts.SemanticStops),
		StartAtMiddle(FamilyWarning, WarningHues.Constrain(vibrant), g.opts.SemanticStops),
		StartAtMiddle(FamilyInfo, InfoHues.Constrain(vibrant), g.opts.SemanticStops),
	}

	size := 0
	for _, f := range families {
		size += f.Len()
	}

	palette := newPalette(size)
	for _, f := range families {
		palette.merge(f)
	}
	return palette, nil
}
