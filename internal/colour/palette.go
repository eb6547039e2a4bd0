package colour

import (
	"fmt"
	"iter"
)

// Token is a named palette entry such as "primary-500".
type Token struct {
	Name   string `json:"name"`
	Family string `json:"family"`
	Step   int    `json:"step"`
	Colour LCH    `json:"colour"`
}

// Palette is an ordered mapping from token name to colour.
// Palettes are built once and never mutated afterwards.
type Palette struct {
	tokens []Token
	index  map[string]int
}

func newPalette(capacity int) *Palette {
	return &Palette{
		tokens: make([]Token, 0, capacity),
		index:  make(map[string]int, capacity),
	}
}

// TokenName formats a family and step as "<family>-<step>".
func TokenName(family string, step int) string {
	return fmt.Sprintf("%s-%d", family, step)
}

// set inserts or overwrites a token. An existing name keeps its position.
func (p *Palette) set(family string, step int, c LCH) {
	name := TokenName(family, step)
	tok := Token{Name: name, Family: family, Step: step, Colour: c}
	if i, ok := p.index[name]; ok {
		p.tokens[i] = tok
		return
	}
	p.index[name] = len(p.tokens)
	p.tokens = append(p.tokens, tok)
}

// merge appends every token of other in order.
func (p *Palette) merge(other *Palette) {
	for _, t := range other.tokens {
		p.set(t.Family, t.Step, t.Colour)
	}
}

// Len returns the number of tokens.
func (p *Palette) Len() int {
	return len(p.tokens)
}

// Get returns the colour stored under name.
func (p *Palette) Get(name string) (LCH, bool) {
	i, ok := p.index[name]
	if !ok {
		return LCH{}, false
	}
	return p.tokens[i].Colour, true
}

// Names returns token names in palette order.
func (p *Palette) Names() []string {
	names := make([]string, len(p.tokens))
	for i, t := range p.tokens {
		names[i] = t.Name
	}
	return names
}

// Tokens returns a copy of the tokens in palette order.
func (p *Palette) Tokens() []Token {
	out := make([]Token, len(p.tokens))
	copy(out, p.tokens)
	return out
}

// Families returns the distinct family names in order of first appearance.
func (p *Palette) Families() []string {
	var families []string
	seen := make(map[string]bool)
	for _, t := range p.tokens {
		if !seen[t.Family] {
			seen[t.Family] = true
			families = append(families, t.Family)
		}
	}
	return families
}

// Family returns the tokens of a single family in order.
func (p *Palette) Family(family string) []Token {
	var out []Token
	for _, t := range p.tokens {
		if t.Family == family {
			out = append(out, t)
		}
	}
	return out
}

// All iterates over the tokens in palette order.
func (p *Palette) All() iter.Seq2[int, Token] {
	return func(yield func(int, Token) bool) {
		for i, t := range p.tokens {
			if !yield(i, t) {
				return
			}
		}
	}
}

// Map returns the palette as a plain name to colour map.
func (p *Palette) Map() map[string]LCH {
	m := make(map[string]LCH, len(p.tokens))
	for _, t := range p.tokens {
		m[t.Name] = t.Colour
	}
	return m
}
