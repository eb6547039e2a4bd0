package common

import (
	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/pkg/plugin"
)

// PaletteData converts a palette into the structure handed to templates and
// external plugins.
func PaletteData(p *colour.Palette, format Format) plugin.PaletteData {
	data := plugin.PaletteData{
		Tokens:   make([]plugin.Token, 0, p.Len()),
		Families: p.Families(),
		Format:   string(format),
	}
	for _, t := range p.All() {
		data.Tokens = append(data.Tokens, Token(t, format))
	}
	return data
}

// Token converts a single palette token.
func Token(t colour.Token, format Format) plugin.Token {
	c := t.Colour
	return plugin.Token{
		Name:   t.Name,
		Family: t.Family,
		Step:   t.Step,
		L:      c.L,
		C:      c.C,
		H:      c.H,
		A:      c.A,
		LCH:    c.String(),
		Hex:    Hex(c),
		RGB:    RGB(c),
		Value:  Value(c, format),
	}
}

// FamilyTokens returns the tokens of one family in order.
func FamilyTokens(data plugin.PaletteData, family string) []plugin.Token {
	var out []plugin.Token
	for _, t := range data.Tokens {
		if t.Family == family {
			out = append(out, t)
		}
	}
	return out
}
