package colour

// AuditEntry is the contrast of one token against a background.
type AuditEntry struct {
	Token    Token   `json:"token"`
	Contrast float64 `json:"contrast"`
	AA       bool    `json:"aa"`
	AAA      bool    `json:"aaa"`
}

// Audit evaluates every token in p against bg, in palette order.
func (p *Palette) Audit(bg LCH) []AuditEntry {
	entries := make([]AuditEntry, 0, len(p.tokens))
	for _, t := range p.tokens {
		ratio := Contrast(t.Colour, bg)
		entries = append(entries, AuditEntry{
			Token:    t,
			Contrast: ratio,
			AA:       ratio >= WCAGAA,
			AAA:      ratio >= WCAGAAA,
		})
	}
	return entries
}
