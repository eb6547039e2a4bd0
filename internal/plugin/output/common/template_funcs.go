package common

import (
	"fmt"
	"strconv"
	"strings"
	"text/template"
	"unicode"

	"github.com/jmylchreest/swatch/pkg/plugin"
)

// TemplateFuncs returns the functions available to every output template.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		// Token access.
		"get":    getFunc,
		"has":    hasFunc,
		"family": familyFunc,

		// Value formatting.
		"hex":   func(t plugin.Token) string { return t.Hex },
		"rgb":   func(t plugin.Token) string { return t.RGB },
		"lch":   func(t plugin.Token) string { return t.LCH },
		"value": func(t plugin.Token) string { return t.Value },
		"num":   numFunc,

		// Naming.
		"camel": camelFunc,
		"title": titleFunc,

		// String manipulation (pipe-friendly argument order).
		"trimPrefix": trimPrefixFunc,
		"trimSuffix": trimSuffixFunc,
		"replace":    replaceFunc,
		"toLower":    strings.ToLower,
		"toUpper":    strings.ToUpper,
		"last":       lastFunc,
	}
}

// getFunc returns a token by name, failing template execution if absent.
func getFunc(data plugin.PaletteData, name string) (plugin.Token, error) {
	t, ok := data.Get(name)
	if !ok {
		return plugin.Token{}, fmt.Errorf("token %q not found", name)
	}
	return t, nil
}

func hasFunc(data plugin.PaletteData, name string) bool {
	_, ok := data.Get(name)
	return ok
}

func familyFunc(data plugin.PaletteData, family string) []plugin.Token {
	return FamilyTokens(data, family)
}

// numFunc formats a float with at most two decimals.
func numFunc(v float64) string {
	return strconv.FormatFloat(round2(v), 'f', -1, 64)
}

// camelFunc turns "primary-500" into "primary500" and "dark-grey" into "darkGrey".
func camelFunc(s string) string {
	var b strings.Builder
	upper := false
	for i, r := range s {
		if r == '-' || r == '_' || r == ' ' {
			upper = i > 0
			continue
		}
		if upper && unicode.IsLetter(r) {
			r = unicode.ToUpper(r)
		}
		upper = false
		b.WriteRune(r)
	}
	return b.String()
}

func titleFunc(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// lastFunc reports whether i is the final index of a slice of length n.
func lastFunc(i, n int) bool {
	return i == n-1
}

// trimPrefixFunc removes a prefix from a string. The prefix comes first so it works in pipes:
//
//	{{ .Name | trimPrefix "primary-" }}
func trimPrefixFunc(prefix, s string) string {
	return strings.TrimPrefix(s, prefix)
}

func trimSuffixFunc(suffix, s string) string {
	return strings.TrimSuffix(s, suffix)
}

// replaceFunc replaces all occurrences of old with new:
//
//	{{ .Name | replace "-" "_" }}
func replaceFunc(old, new, s string) string {
	return strings.ReplaceAll(s, old, new)
}
