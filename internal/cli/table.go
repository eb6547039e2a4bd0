package cli

import (
	"io"
	"strings"
	"unicode/utf8"
)

// Table lays out rows in aligned columns for terminal output. Widths are
// measured in runes so swatch glyphs and arrows line up.
type Table struct {
	headers    []string
	rows       [][]string
	gap        int
	maxWidths  map[int]int
	rightAlign map[int]bool
}

// NewTable creates a table with the given column headers.
func NewTable(headers []string) *Table {
	return &Table{
		headers:    headers,
		gap:        2,
		maxWidths:  make(map[int]int),
		rightAlign: make(map[int]bool),
	}
}

// SetColumnMaxWidth wraps cells of column col at word boundaries once they
// exceed width runes.
func (t *Table) SetColumnMaxWidth(col, width int) {
	t.maxWidths[col] = width
}

// AlignRight right-aligns column col, for numeric values such as ratios.
func (t *Table) AlignRight(col int) {
	t.rightAlign[col] = true
}

// AddRow appends a row, padding or truncating it to the header count.
func (t *Table) AddRow(row []string) {
	cells := make([]string, len(t.headers))
	copy(cells, row)
	t.rows = append(t.rows, cells)
}

// Render returns the table: header, dashed separator, then rows.
func (t *Table) Render() string {
	if len(t.headers) == 0 {
		return ""
	}

	// Each cell becomes one or more lines after wrapping.
	cells := make([][][]string, len(t.rows))
	for r, row := range t.rows {
		cells[r] = make([][]string, len(row))
		for c, cell := range row {
			cells[r][c] = wrapText(cell, t.maxWidths[c])
		}
	}

	widths := make([]int, len(t.headers))
	for c, h := range t.headers {
		widths[c] = runeLen(h)
	}
	for _, row := range cells {
		for c, lines := range row {
			for _, line := range lines {
				widths[c] = max(widths[c], runeLen(line))
			}
		}
	}

	var b strings.Builder
	t.writeLine(&b, widths, func(c int) string { return t.headers[c] })
	t.writeLine(&b, widths, func(c int) string { return strings.Repeat("-", widths[c]) })
	for _, row := range cells {
		height := 1
		for _, lines := range row {
			height = max(height, len(lines))
		}
		for i := range height {
			t.writeLine(&b, widths, func(c int) string {
				if i < len(row[c]) {
					return row[c][i]
				}
				return ""
			})
		}
	}
	return b.String()
}

// Write renders the table to w.
func (t *Table) Write(w io.Writer) error {
	_, err := io.WriteString(w, t.Render())
	return err
}

func (t *Table) writeLine(b *strings.Builder, widths []int, cell func(int) string) {
	sep := strings.Repeat(" ", t.gap)
	parts := make([]string, len(widths))
	for c, w := range widths {
		if t.rightAlign[c] {
			parts[c] = padLeft(cell(c), w)
		} else {
			parts[c] = padRight(cell(c), w)
		}
	}
	b.WriteString(strings.TrimRight(strings.Join(parts, sep), " "))
	b.WriteByte('\n')
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func padRight(s string, width int) string {
	if n := runeLen(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func padLeft(s string, width int) string {
	if n := runeLen(s); n < width {
		return strings.Repeat(" ", width-n) + s
	}
	return s
}

// wrapText breaks text into lines of at most width runes at word
// boundaries. Words longer than width are split. A width of zero or less
// disables wrapping.
func wrapText(text string, width int) []string {
	if width <= 0 || runeLen(text) <= width {
		return []string{text}
	}

	var lines []string
	var line []rune
	flush := func() {
		if len(line) > 0 {
			lines = append(lines, string(line))
			line = line[:0]
		}
	}

	for _, word := range strings.Fields(text) {
		w := []rune(word)
		for len(w) > width {
			flush()
			lines = append(lines, string(w[:width]))
			w = w[width:]
		}
		switch {
		case len(line) == 0:
			line = append(line, w...)
		case len(line)+1+len(w) <= width:
			line = append(line, ' ')
			line = append(line, w...)
		default:
			flush()
			line = append(line, w...)
		}
	}
	flush()
	return lines
}
