// Package output provides the interface and registry for output plugins.
package output

import (
	"context"
	"slices"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/plugin/output/common"
	"github.com/jmylchreest/swatch/internal/plugin/output/template"
)

// Plugin turns a generated palette into one or more files.
type Plugin interface {
	// Name returns the plugin's name (e.g., "css", "tailwind").
	Name() string

	// Description returns a human-readable description of the plugin.
	Description() string

	// Generate creates output file(s) from the given palette.
	// Returns map of filename -> content.
	Generate(palette *colour.Palette) (map[string][]byte, error)

	// RegisterFlags registers plugin-specific flags with cobra command.
	RegisterFlags(cmd *cobra.Command)

	// Validate checks if the plugin configuration is valid.
	Validate() error

	// DefaultOutputDir returns the default output directory for this plugin.
	DefaultOutputDir() string
}

// FormatSetter is implemented by plugins that honour the global colour format.
type FormatSetter interface {
	SetFormat(format common.Format)
}

// LoggerSetter is implemented by plugins that log template resolution.
type LoggerSetter interface {
	SetLogger(logger hclog.Logger)
}

// PreExecuteHook is implemented by plugins that may skip themselves.
type PreExecuteHook interface {
	PreExecute(ctx context.Context) (skip bool, reason string, err error)
}

// PostExecuteHook is implemented by plugins that act on written files.
type PostExecuteHook interface {
	PostExecute(ctx context.Context, writtenFiles []string) error
}

// TemplateProvider is implemented by plugins with overridable templates.
type TemplateProvider interface {
	TemplateLoader() *template.Loader
}

// Registry holds all registered output plugins.
type Registry struct {
	plugins map[string]Plugin
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]Plugin),
	}
}

// Register adds a plugin to the registry, replacing any plugin of the same name.
func (r *Registry) Register(plugin Plugin) {
	r.plugins[plugin.Name()] = plugin
}

// Get retrieves a plugin by name.
func (r *Registry) Get(name string) (Plugin, bool) {
	plugin, ok := r.plugins[name]
	return plugin, ok
}

// List returns all registered plugin names in sorted order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.plugins))
	for name := range r.plugins {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// All returns a copy of the registered plugins.
func (r *Registry) All() map[string]Plugin {
	plugins := make(map[string]Plugin, len(r.plugins))
	for name, plugin := range r.plugins {
		plugins[name] = plugin
	}
	return plugins
}

// SetFormat applies format to every plugin that supports it.
func (r *Registry) SetFormat(format common.Format) {
	for _, p := range r.plugins {
		if fs, ok := p.(FormatSetter); ok {
			fs.SetFormat(format)
		}
	}
}

// SetLogger hands a named sub-logger to every plugin that accepts one.
func (r *Registry) SetLogger(logger hclog.Logger) {
	for name, p := range r.plugins {
		if ls, ok := p.(LoggerSetter); ok {
			ls.SetLogger(logger.Named(name))
		}
	}
}
