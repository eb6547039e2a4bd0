// Package common provides shared formatting and template helpers for output plugins.
package common

import (
	"fmt"
	"math"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/jmylchreest/swatch/internal/colour"
)

// Format selects how colour values are written.
type Format string

const (
	// FormatLCH writes CSS lch() values, the palette's native space.
	FormatLCH Format = "lch"
	// FormatHex writes #rrggbb, or #rrggbbaa for translucent colours.
	FormatHex Format = "hex"
	// FormatRGB writes CSS rgb() values.
	FormatRGB Format = "rgb"
)

// Formats lists the accepted formats.
var Formats = []Format{FormatLCH, FormatHex, FormatRGB}

// ParseFormat validates a format name. Empty means FormatLCH.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "":
		return FormatLCH, nil
	case FormatLCH, FormatHex, FormatRGB:
		return Format(s), nil
	}
	return "", fmt.Errorf("invalid format %q (must be lch, hex or rgb)", s)
}

// ToColorful maps an LCH colour onto sRGB, clamped into gamut.
// Lightness and chroma are scaled from 0-100 to go-colorful's 0-1 range.
func ToColorful(c colour.LCH) colorful.Color {
	return colorful.Hcl(c.H, c.C/100, c.L/100).Clamped()
}

// Hex returns the colour as #rrggbb, with an alpha byte when A < 1.
func Hex(c colour.LCH) string {
	hex := ToColorful(c).Hex()
	if c.A < 1 {
		hex += fmt.Sprintf("%02x", alphaByte(c.A))
	}
	return hex
}

// RGB returns the colour as CSS rgb(), adding an alpha component when A < 1.
func RGB(c colour.LCH) string {
	r, g, b := ToColorful(c).RGB255()
	if c.A < 1 {
		return fmt.Sprintf("rgb(%d %d %d / %s)", r, g, b, strconv.FormatFloat(round2(c.A), 'f', -1, 64))
	}
	return fmt.Sprintf("rgb(%d %d %d)", r, g, b)
}

// Value formats c according to format.
func Value(c colour.LCH, format Format) string {
	switch format {
	case FormatHex:
		return Hex(c)
	case FormatRGB:
		return RGB(c)
	default:
		return c.String()
	}
}

func alphaByte(a float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, a)) * 255))
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
