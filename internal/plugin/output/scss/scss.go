// Package scss provides an output plugin writing the palette as SCSS variables and maps.
package scss

import (
	"embed"
	"fmt"
	"regexp"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/plugin/output/common"
	tmplloader "github.com/jmylchreest/swatch/internal/plugin/output/template"
)

//go:embed *.tmpl
var templates embed.FS

const templateFile = "swatch.scss.tmpl"

var identifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_-]*$`)

// Plugin implements the output.Plugin interface for SCSS.
type Plugin struct {
	outputDir string
	mapName   string
	format    common.Format
	logger    hclog.Logger
}

// New creates a new SCSS output plugin.
func New() *Plugin {
	return &Plugin{
		mapName: "swatch",
		format:  common.FormatLCH,
		logger:  hclog.NewNullLogger(),
	}
}

// Name returns the plugin name.
func (p *Plugin) Name() string {
	return "scss"
}

// Description returns the plugin description.
func (p *Plugin) Description() string {
	return "Generate an SCSS partial with one variable per token and a nested palette map"
}

// RegisterFlags registers plugin-specific flags with the cobra command.
func (p *Plugin) RegisterFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&p.outputDir, "scss.output-dir", "", "Output directory (default: current directory)")
	cmd.Flags().StringVar(&p.mapName, "scss.map-name", p.mapName, "Name of the generated palette map")
}

// Validate checks if the plugin configuration is valid.
func (p *Plugin) Validate() error {
	if !identifier.MatchString(p.mapName) {
		return fmt.Errorf("invalid scss map name %q", p.mapName)
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

// Generate renders the SCSS partial.
func (p *Plugin) Generate(palette *colour.Palette) (map[string][]byte, error) {
	if palette == nil {
		return nil, fmt.Errorf("palette cannot be nil")
	}

	data := common.PaletteData(palette, p.format)
	data.PluginArgs = map[string]any{"map": p.mapName}

	content, err := common.Render(p.TemplateLoader(), templateFile, data)
	if err != nil {
		return nil, err
	}
	return map[string][]byte{"_swatch.scss": content}, nil
}
