package plugin

// PaletteData is the palette sent to output plugins.
type PaletteData struct {
	// Tokens are in palette order: primary, accent, neutral, danger,
	// success, warning, info; each family from lightest to darkest.
	Tokens     []Token        `json:"tokens"`
	Families   []string       `json:"families"`
	Format     string         `json:"format"` // preferred value format: "lch", "hex" or "rgb"
	PluginArgs map[string]any `json:"plugin_args,omitempty"`
	DryRun     bool           `json:"dry_run"`
}

// Token is a single palette entry prepared for transfer.
type Token struct {
	Name   string  `json:"name"`   // e.g. "primary-500"
	Family string  `json:"family"` // e.g. "primary"
	Step   int     `json:"step"`   // e.g. 500
	L      float64 `json:"l"`
	C      float64 `json:"c"`
	H      float64 `json:"h"`
	A      float64 `json:"a"`
	LCH    string  `json:"lch"` // CSS lch() notation
	Hex    string  `json:"hex"` // nearest in-gamut sRGB
	RGB    string  `json:"rgb"` // CSS rgb() notation
	Value  string  `json:"value"`
}

// Get returns the token with the given name.
func (p PaletteData) Get(name string) (Token, bool) {
	for _, t := range p.Tokens {
		if t.Name == name {
			return t, true
		}
	}
	return Token{}, false
}
