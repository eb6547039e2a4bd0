// Package preview renders palettes as ANSI true-colour swatches.
package preview

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/muesli/gamut"
	"golang.org/x/term"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/plugin/output/common"
)

// ANSI escape codes for terminal colours.
const (
	ansiReset    = "\033[0m"
	ansiFgPrefix = "\033[38;2;"
	ansiBgPrefix = "\033[48;2;"
	ansiSuffix   = "m"

	// DefaultWidth is the swatch width in columns.
	DefaultWidth = 8
)

// SupportsColour reports whether w is a terminal that should get ANSI
// output. NO_COLOR disables colour regardless.
func SupportsColour(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the width of w when it is a terminal, or fallback.
func TerminalWidth(w io.Writer, fallback int) int {
	if f, ok := w.(*os.File); ok {
		if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
			return width
		}
	}
	return fallback
}

// Swatch returns a solid block of c, width columns wide.
func Swatch(c colour.LCH, width int) string {
	return SwatchWithText(c, "", width)
}

// SwatchWithText returns a block of c with text centred on it. The text
// colour is black or white, whichever contrasts more with c.
func SwatchWithText(c colour.LCH, text string, width int) string {
	if width <= 0 {
		width = DefaultWidth
	}

	bg := common.ToColorful(c)
	fg := gamut.Contrast(bg)

	if len(text) > width {
		text = text[:width]
	}
	padding := (width - len(text)) / 2
	display := strings.Repeat(" ", padding) + text + strings.Repeat(" ", width-len(text)-padding)

	return bgCode(bg) + fgCode(fg) + display + ansiReset
}

// Grid writes one row per family: the family name, then a labelled swatch
// per token.
func Grid(w io.Writer, p *colour.Palette, width int) error {
	nameWidth := 0
	for _, family := range p.Families() {
		nameWidth = max(nameWidth, len(family))
	}

	for _, family := range p.Families() {
		var b strings.Builder
		fmt.Fprintf(&b, "%-*s ", nameWidth, family)
		for _, tok := range p.Family(family) {
			b.WriteString(SwatchWithText(tok.Colour, strconv.Itoa(tok.Step), width))
		}
		b.WriteByte('\n')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}

func bgCode(c color.Color) string {
	r, g, b := rgb8(c)
	return fmt.Sprintf("%s%d;%d;%d%s", ansiBgPrefix, r, g, b, ansiSuffix)
}

func fgCode(c color.Color) string {
	r, g, b := rgb8(c)
	return fmt.Sprintf("%s%d;%d;%d%s", ansiFgPrefix, r, g, b, ansiSuffix)
}

func rgb8(c color.Color) (r, g, b uint8) {
	r32, g32, b32, _ := c.RGBA()
	return uint8(r32 >> 8), uint8(g32 >> 8), uint8(b32 >> 8)
}
