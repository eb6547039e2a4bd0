// Package css provides an output plugin writing the palette as CSS custom properties.
package css

import (
	"embed"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/plugin/output/common"
	tmplloader "github.com/jmylchreest/swatch/internal/plugin/output/template"
)

//go:embed *.tmpl
var templates embed.FS

const templateFile = "theme.css.tmpl"

// Plugin implements the output.Plugin interface for plain CSS.
type Plugin struct {
	outputDir string
	filename  string
	selector  string
	prefix    string
	format    common.Format
	logger    hclog.Logger
}

// New creates a new CSS output plugin.
func New() *Plugin {
	return &Plugin{
		filename: "swatch.css",
		selector: ":root",
		format:   common.FormatLCH,
		logger:   hclog.NewNullLogger(),
	}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "css"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Generate CSS custom properties for every palette token"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.outputDir, "css.output-dir", "", "Output directory (default: current directory)")
	cmd.Flags().StringVar(&p.filename, "css.filename", p.filename, "Output filename")
	cmd.Flags().StringVar(&p.selector, "css.selector", p.selector, "Selector the properties are declared on")
	cmd.Flags().StringVar(&p.prefix, "css.prefix", "", "Prefix added to every property name")
}

// Validate checks if the plugin configuration is valid.
func (p *Plugin) Validate() error {
	if strings.TrimSpace(p.selector) == "" {
		return fmt.Errorf("css selector cannot be empty")
	}
	if p.filename == "" || strings.ContainsAny(p.filename, `/\`) {
		return fmt.Errorf("invalid css filename %q", p.filename)
	}
	return nil
}

// DefaultOutputDir returns the default output directory for this plugin.
func (p *Plugin) DefaultOutputDir() string {
	if p.outputDir != "" {
		return p.outputDir
	}
	return "."
}

// SetFormat sets the colour value format.
func (p *Plugin) SetFormat(format common.Format) {
	p.format = format
}

// SetLogger sets the plugin logger.
func (p *Plugin) SetLogger(logger hclog.Logger) {
	p.logger = logger
}

// TemplateLoader returns the loader for this plugin's templates.
func (p *Plugin) TemplateLoader() *tmplloader.Loader {
	return tmplloader.New(p.Name(), templates).WithLogger(p.logger)
}

// Generate renders the CSS file.
func (p *Plugin) Generate(palette *colour.Palette) (map[string][]byte, error) {
	if palette == nil {
		return nil, fmt.Errorf("palette cannot be nil")
	}

	data := common.PaletteData(palette, p.format)
	data.PluginArgs = map[string]any{
		"selector": p.selector,
		"prefix":   p.prefix,
	}

	content, err := common.Render(p.TemplateLoader(), templateFile, data)
	if err != nil {
		return nil, err
	}
	return map[string][]byte{p.filename: content}, nil
}
