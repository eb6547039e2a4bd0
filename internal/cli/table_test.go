package cli

import (
	"slices"
	"strings"
	"testing"
)

func TestTableRender(t *testing.T) {
	tbl := NewTable([]string{"TOKEN", "CONTRAST"})
	tbl.AlignRight(1)
	tbl.AddRow([]string{"primary-100", "1.05:1"})
	tbl.AddRow([]string{"neutral-900", "2001.00:1"})

	want := "TOKEN         CONTRAST\n" +
		"-----------  ---------\n" +
		"primary-100     1.05:1\n" +
		"neutral-900  2001.00:1\n"
	if got := tbl.Render(); got != want {
		t.Errorf("Render() =\n%s\nwant\n%s", got, want)
	}
}

func TestTableAddRow(t *testing.T) {
	tests := []struct {
		name string
		row  []string
		want []string
	}{
		{name: "exact", row: []string{"a", "b"}, want: []string{"a", "b"}},
		{name: "short row padded", row: []string{"a"}, want: []string{"a", ""}},
		{name: "long row truncated", row: []string{"a", "b", "c"}, want: []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := NewTable([]string{"X", "Y"})
			tbl.AddRow(tt.row)
			if got := tbl.rows[0]; !slices.Equal(got, tt.want) {
				t.Errorf("AddRow(%q) stored %q, want %q", tt.row, got, tt.want)
			}
		})
	}
}

func TestTableRenderEmpty(t *testing.T) {
	if got := NewTable(nil).Render(); got != "" {
		t.Errorf("Render() = %q, want empty", got)
	}

	got := NewTable([]string{"NAME"}).Render()
	if got != "NAME\n----\n" {
		t.Errorf("Render() = %q, want header and separator only", got)
	}
}

func TestTableRuneWidth(t *testing.T) {
	tbl := NewTable([]string{"SWATCH", "NAME"})
	tbl.AddRow([]string{"██", "primary"})

	lines := strings.Split(tbl.Render(), "\n")
	if got := lines[2]; got != "██      primary" {
		t.Errorf("row = %q, want swatch padded by rune count", got)
	}
}

func TestTableWrap(t *testing.T) {
	tbl := NewTable([]string{"NAME", "DESCRIPTION"})
	tbl.SetColumnMaxWidth(1, 11)
	tbl.AddRow([]string{"css", "custom properties for stylesheets"})

	lines := strings.Split(strings.TrimSuffix(tbl.Render(), "\n"), "\n")
	want := []string{
		"NAME  DESCRIPTION",
		"----  -----------",
		"css   custom",
		"      properties",
		"      for",
		"      stylesheets",
	}
	if !slices.Equal(lines, want) {
		t.Errorf("Render() lines =\n%q\nwant\n%q", lines, want)
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  []string
	}{
		{text: "short", width: 10, want: []string{"short"}},
		{text: "no limit at all", width: 0, want: []string{"no limit at all"}},
		{text: "one two three", width: 7, want: []string{"one two", "three"}},
		{text: "abcdefghij", width: 4, want: []string{"abcd", "efgh", "ij"}},
		{text: "→→→ →", width: 3, want: []string{"→→→", "→"}},
	}

	for _, tt := range tests {
		if got := wrapText(tt.text, tt.width); !slices.Equal(got, tt.want) {
			t.Errorf("wrapText(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}

func TestPad(t *testing.T) {
	tests := []struct {
		s           string
		width       int
		right, left string
	}{
		{s: "ab", width: 4, right: "ab  ", left: "  ab"},
		{s: "abcd", width: 2, right: "abcd", left: "abcd"},
		{s: "→", width: 2, right: "→ ", left: " →"},
	}

	for _, tt := range tests {
		if got := padRight(tt.s, tt.width); got != tt.right {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.s, tt.width, got, tt.right)
		}
		if got := padLeft(tt.s, tt.width); got != tt.left {
			t.Errorf("padLeft(%q, %d) = %q, want %q", tt.s, tt.width, got, tt.left)
		}
	}
}
