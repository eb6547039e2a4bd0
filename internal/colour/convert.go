package colour

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

const totalDegrees = 360

// D65 reference white divisors for XYZ to Lab.
const (
	whiteX = 95.047
	whiteY = 100.0
	whiteZ = 108.883
)

// ParseHex converts a "#rrggbb" (or "rrggbb") string to LCH with alpha 1.
func ParseHex(hex string) (LCH, error) {
	r, g, b, err := HexToRGB(hex)
	if err != nil {
		return LCH{}, err
	}
	l, c, h := LabToLCH(XYZToLab(RGBToXYZ(r, g, b)))
	return LCH{L: l, C: c, H: h, A: 1}, nil
}

// HexToRGB parses six hex digits into 8-bit channels.
func HexToRGB(hex string) (r, g, b uint8, err error) {
	digits := strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if len(digits) != 6 {
		return 0, 0, 0, fmt.Errorf("%w: %q: expected 6 hex digits", ErrInvalidColorFormat, hex)
	}

	v, err := strconv.ParseUint(digits, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("%w: %q: not a hex triplet", ErrInvalidColorFormat, hex)
	}

	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}

// RGBToXYZ converts 8-bit sRGB to CIE XYZ scaled to [0,100].
func RGBToXYZ(r, g, b uint8) [3]float64 {
	rl := linearise(float64(r) / 255)
	gl := linearise(float64(g) / 255)
	bl := linearise(float64(b) / 255)

	x := rl*0.4124 + gl*0.3576 + bl*0.1805
	y := rl*0.2126 + gl*0.7152 + bl*0.0722
	z := rl*0.0193 + gl*0.1192 + bl*0.9505

	return [3]float64{x * 100, y * 100, z * 100}
}

// linearise removes the sRGB transfer curve from a [0,1] channel.
func linearise(v float64) float64 {
	if v > 0.04045 {
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return v / 12.92
}

// XYZToLab converts XYZ to CIE Lab relative to D65.
func XYZToLab(xyz [3]float64) [3]float64 {
	x := labPivot(xyz[0] / whiteX)
	y := labPivot(xyz[1] / whiteY)
	z := labPivot(xyz[2] / whiteZ)

	return [3]float64{116*y - 16, 500 * (x - y), 200 * (y - z)}
}

func labPivot(t float64) float64 {
	if t > 0.008856 {
		return math.Cbrt(t)
	}
	return 7.787*t + 16.0/116
}

// LabToLCH converts Lab to lightness, chroma and hue in [0,360).
func LabToLCH(lab [3]float64) (l, c, h float64) {
	a, b := lab[1], lab[2]
	c = math.Sqrt(a*a + b*b)
	h = math.Atan2(b, a) * (180 / math.Pi)
	if h < 0 {
		h += totalDegrees
	}
	return lab[0], c, h
}
