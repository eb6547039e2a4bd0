// Package colour implements the swatch palette engine: hex to LCH conversion,
// lightness-based contrast, contrast adjustment, hue constraints, lightness
// ramps and assembly of the semantic UI palette.
package colour

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidColorFormat is returned when a colour string cannot be parsed.
var ErrInvalidColorFormat = errors.New("invalid color format")

// Color is either a Hex string or an LCH tuple.
// The set of implementations is closed; use ToLCH to normalise.
type Color interface {
	isColor()
}

// Hex is a 24-bit RGB colour encoded as "#rrggbb".
type Hex string

func (Hex) isColor() {}

// LCH is a colour in the lightness/chroma/hue/alpha space.
// L is in [0,100], C >= 0, H in [0,360) degrees and A in [0,1].
type LCH struct {
	L float64 `json:"l"`
	C float64 `json:"c"`
	H float64 `json:"h"`
	A float64 `json:"a"`
}

func (LCH) isColor() {}

// Reference points used as contrast anchors.
var (
	White = LCH{L: 1, C: 0, H: 0, A: 1}
	Black = LCH{L: 0, C: 0, H: 0, A: 1}
)

// WithLightness returns a copy of c with lightness l.
func (c LCH) WithLightness(l float64) LCH {
	c.L = l
	return c
}

// WithChroma returns a copy of c with chroma ch.
func (c LCH) WithChroma(ch float64) LCH {
	c.C = ch
	return c
}

// WithHue returns a copy of c with hue h.
func (c LCH) WithHue(h float64) LCH {
	c.H = h
	return c
}

// String returns the colour in CSS lch() syntax.
func (c LCH) String() string {
	return fmt.Sprintf("lch(%s%% %s %s / %s)",
		formatFloat(c.L), formatFloat(c.C), formatFloat(c.H), formatFloat(c.A))
}

// ToLCH normalises any Color to its LCH form.
func ToLCH(c Color) (LCH, error) {
	switch v := c.(type) {
	case LCH:
		return v, nil
	case Hex:
		return ParseHex(string(v))
	case nil:
		return LCH{}, fmt.Errorf("%w: nil colour", ErrInvalidColorFormat)
	default:
		return LCH{}, fmt.Errorf("%w: unsupported colour type %T", ErrInvalidColorFormat, c)
	}
}

// ParseColor parses user input into a Color.
//
// Accepted forms:
//
//	#2563eb / 2563eb
//	lch(52.4% 70.1 278.3) / lch(52.4 70.1 278.3 / 0.5)
//	52.4,70.1,278.3[,1]
func ParseColor(s string) (Color, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("%w: empty string", ErrInvalidColorFormat)
	}

	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "lch(") && strings.HasSuffix(lower, ")"):
		body := strings.TrimSuffix(strings.TrimPrefix(lower, "lch("), ")")
		channels, alpha, hasAlpha := strings.Cut(body, "/")
		fields := strings.Fields(channels)
		if hasAlpha {
			// Alpha follows exactly three channels.
			alphaFields := strings.Fields(alpha)
			if len(fields) != 3 || len(alphaFields) != 1 {
				return nil, fmt.Errorf("%w: %q needs L C H / A", ErrInvalidColorFormat, s)
			}
			fields = append(fields, alphaFields[0])
		}
		return parseChannels(s, fields)
	case strings.Contains(s, ","):
		parts := strings.Split(s, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parseChannels(s, parts)
	}

	if _, _, _, err := HexToRGB(s); err != nil {
		return nil, err
	}
	return Hex(s), nil
}

func parseChannels(input string, fields []string) (LCH, error) {
	if len(fields) != 3 && len(fields) != 4 {
		return LCH{}, fmt.Errorf("%w: %q needs 3 or 4 channels", ErrInvalidColorFormat, input)
	}

	vals := [4]float64{0, 0, 0, 1}
	for i, f := range fields {
		f = strings.TrimSuffix(f, "%")
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return LCH{}, fmt.Errorf("%w: %q: channel %d: %v", ErrInvalidColorFormat, input, i+1, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return LCH{}, fmt.Errorf("%w: %q: channel %d is not finite", ErrInvalidColorFormat, input, i+1)
		}
		vals[i] = v
	}

	c := LCH{L: vals[0], C: vals[1], H: vals[2], A: vals[3]}
	if c.L < 0 || c.L > 100 || c.C < 0 || c.H < 0 || c.H >= totalDegrees || c.A < 0 || c.A > 1 {
		return LCH{}, fmt.Errorf("%w: %q out of range", ErrInvalidColorFormat, input)
	}
	return c, nil
}

// formatFloat renders v with at most two decimals.
func formatFloat(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
