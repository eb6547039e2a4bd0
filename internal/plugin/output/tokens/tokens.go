// Package tokens provides an output plugin writing the palette in the
// W3C Design Tokens format.
package tokens

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/plugin/output/common"
	tmplloader "github.com/jmylchreest/swatch/internal/plugin/output/template"
)

//go:embed *.tmpl
var templates embed.FS

const templateFile = "tokens.json.tmpl"

// Plugin implements the output.Plugin interface for design tokens.
type Plugin struct {
	outputDir string
	filename  string
	format    common.Format
	logger    hclog.Logger
}

// New creates a new design tokens output plugin.
func New() *Plugin {
	return &Plugin{
		filename: "tokens.json",
		format:   common.FormatHex,
		logger:   hclog.NewNullLogger(),
	}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "tokens"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Generate a W3C design tokens JSON file grouped by family"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.outputDir, "tokens.output-dir", "", "Output directory (default: current directory)")
	cmd.Flags().StringVar(&p.filename, "tokens.filename", p.filename, "Output filename")
}

// Validate checks if the plugin configuration is valid.
func (p *Plugin) Validate() error {
	if p.filename == "" {
		return fmt.Errorf("tokens filename cannot be empty")
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

// SetFormat sets the colour value format. Design token tools expect hex,
// so the default differs from the other built-in plugins.
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

// Generate renders the tokens file and checks that it is valid JSON,
// so a broken custom template fails here rather than in a downstream tool.
func (p *Plugin) Generate(palette *colour.Palette) (map[string][]byte, error) {
	if palette == nil {
		return nil, fmt.Errorf("palette cannot be nil")
	}

	data := common.PaletteData(palette, p.format)
	content, err := common.Render(p.TemplateLoader(), templateFile, data)
	if err != nil {
		return nil, err
	}
	if !json.Valid(content) {
		return nil, fmt.Errorf("template %s produced invalid JSON", templateFile)
	}
	return map[string][]byte{p.filename: content}, nil
}
