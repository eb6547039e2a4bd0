// Package tailwind provides a Tailwind CSS output plugin.
package tailwind

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/plugin/output/common"
	tmplloader "github.com/jmylchreest/swatch/internal/plugin/output/template"
)

//go:embed *.tmpl
var templates embed.FS

const (
	// FormatCSS writes a Tailwind v4 @theme block.
	FormatCSS = "css"
	// FormatConfig writes a Tailwind v3 tailwind.config.js.
	FormatConfig = "config"
)

// Plugin implements the output.Plugin interface for Tailwind CSS.
type Plugin struct {
	format    string // FormatCSS or FormatConfig
	outputDir string
	colourFmt common.Format
	logger    hclog.Logger
}

// New creates a new Tailwind CSS output plugin.
func New() *Plugin {
	return NewWithFormat(FormatCSS)
}

// NewWithFormat creates a new Tailwind CSS output plugin with a specific format.
func NewWithFormat(format string) *Plugin {
	return &Plugin{
		format:    format,
		colourFmt: common.FormatLCH,
		logger:    hclog.NewNullLogger(),
	}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "tailwind"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Generate Tailwind CSS theme colours (v4 @theme or v3 config)"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.format, "tailwind.format", p.format, "Output format (css or config)")
	cmd.Flags().StringVar(&p.outputDir, "tailwind.output-dir", "", "Output directory (default: detected from project layout)")
}

// Validate checks if the plugin configuration is valid.
func (p *Plugin) Validate() error {
	if p.format != FormatCSS && p.format != FormatConfig {
		return fmt.Errorf("invalid format: %s (must be 'css' or 'config')", p.format)
	}
	return nil
}

// DefaultOutputDir returns the default output directory for this plugin.
func (p *Plugin) DefaultOutputDir() string {
	if p.outputDir != "" {
		return p.outputDir
	}

	if p.format == FormatConfig {
		return "."
	}

	// Next.js style layouts keep global styles beside the app router.
	if _, err := os.Stat("app"); err == nil {
		return "app"
	}
	if _, err := os.Stat("src"); err == nil {
		return filepath.Join("src", "app")
	}

	return "."
}

// SetFormat sets the colour value format.
func (p *Plugin) SetFormat(format common.Format) {
	p.colourFmt = format
}

// SetLogger sets the plugin logger.
func (p *Plugin) SetLogger(logger hclog.Logger) {
	p.logger = logger
}

// TemplateLoader returns the loader for this plugin's templates.
func (p *Plugin) TemplateLoader() *tmplloader.Loader {
	return tmplloader.New(p.Name(), templates).WithLogger(p.logger)
}

// Generate renders either the @theme stylesheet or the config module.
func (p *Plugin) Generate(palette *colour.Palette) (map[string][]byte, error) {
	if palette == nil {
		return nil, fmt.Errorf("palette cannot be nil")
	}

	data := common.PaletteData(palette, p.colourFmt)

	filename, tmpl := "theme.css", "theme.css.tmpl"
	if p.format == FormatConfig {
		filename, tmpl = "tailwind.config.js", "tailwind.config.js.tmpl"
	}

	content, err := common.Render(p.TemplateLoader(), tmpl, data)
	if err != nil {
		return nil, err
	}
	return map[string][]byte{filename: content}, nil
}
