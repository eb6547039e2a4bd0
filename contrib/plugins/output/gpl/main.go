// gpl - swatch output plugin writing a GIMP palette
//
// Example go-plugin: swatch launches the binary once and talks to it over
// RPC for PreExecute, Generate and PostExecute. The .gpl file it produces
// loads in GIMP, Inkscape and Krita.
//
// Build:
//
//	go build -o swatch-gpl ./contrib/plugins/output/gpl
//
// Usage (swatch.toml):
//
//	outputs = ["css", "gpl"]
//
//	[[plugins]]
//	path = "/usr/local/bin/swatch-gpl"
//	args = { name = "Brand", filename = "brand.gpl" }
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jmylchreest/swatch/pkg/plugin"
)

const (
	defaultName     = "swatch"
	defaultFilename = "swatch.gpl"
)

// GPLPlugin renders the palette in GIMP palette format.
type GPLPlugin struct{}

// Generate returns a single .gpl file with one row per token.
func (p *GPLPlugin) Generate(_ context.Context, palette plugin.PaletteData) (map[string][]byte, error) {
	name := stringArg(palette.PluginArgs, "name", defaultName)
	filename := stringArg(palette.PluginArgs, "filename", defaultFilename)
	if strings.ContainsAny(filename, `/\`) {
		return nil, fmt.Errorf("invalid filename %q", filename)
	}

	content, err := render(name, palette)
	if err != nil {
		return nil, err
	}
	return map[string][]byte{filename: content}, nil
}

// PreExecute never skips.
func (p *GPLPlugin) PreExecute(_ context.Context) (skip bool, reason string, err error) {
	return false, "", nil
}

// PostExecute has nothing to reload.
func (p *GPLPlugin) PostExecute(_ context.Context, _ []string) error {
	return nil
}

// GetMetadata returns plugin metadata.
func (p *GPLPlugin) GetMetadata() plugin.PluginInfo {
	return plugin.PluginInfo{
		Name:            "gpl",
		Type:            "output",
		Version:         "0.1.0",
		ProtocolVersion: plugin.ProtocolVersion,
		Description:     "Write the palette as a GIMP/Inkscape .gpl palette",
		PluginProtocol:  string(plugin.PluginTypeGoPlugin),
	}
}

// GetFlagHelp describes the plugin_args the plugin reads.
func (p *GPLPlugin) GetFlagHelp() []plugin.FlagHelp {
	return []plugin.FlagHelp{
		{Name: "name", Type: "string", Default: defaultName, Description: "Palette name shown in the editor"},
		{Name: "filename", Type: "string", Default: defaultFilename, Description: "Output filename"},
	}
}

// render writes the GIMP palette. Columns match the widest family so each
// family sits on its own row in the editor's grid.
func render(name string, palette plugin.PaletteData) ([]byte, error) {
	columns := 0
	counts := make(map[string]int)
	for _, t := range palette.Tokens {
		counts[t.Family]++
		columns = max(columns, counts[t.Family])
	}

	var b strings.Builder
	fmt.Fprintf(&b, "GIMP Palette\nName: %s\nColumns: %d\n#\n", name, columns)
	for _, t := range palette.Tokens {
		r, g, bl, err := parseHex(t.Hex)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", t.Name, err)
		}
		fmt.Fprintf(&b, "%3d %3d %3d\t%s\n", r, g, bl, t.Name)
	}
	return []byte(b.String()), nil
}

// parseHex reads the RGB channels of "#rrggbb" or "#rrggbbaa".
func parseHex(hex string) (r, g, b uint8, err error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return 0, 0, 0, fmt.Errorf("invalid hex colour %q", hex)
	}
	v, err := strconv.ParseUint(hex[:6], 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid hex colour %q: %w", hex, err)
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}

func stringArg(args map[string]any, key, fallback string) string {
	if v, ok := args[key].(string); ok && v != "" {
		return v
	}
	return fallback
}

func main() {
	// Every plugin answers --plugin-info so swatch can discover its name
	// and protocol before launching it.
	if len(os.Args) > 1 && os.Args[1] == "--plugin-info" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode((&GPLPlugin{}).GetMetadata()); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding plugin info: %v\n", err)
			os.Exit(1)
		}
		return
	}

	plugin.Serve(&GPLPlugin{})
}
