// Package manager provides centralised output plugin management.
package manager

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/swatch/internal/plugin/output"
	"github.com/jmylchreest/swatch/internal/plugin/output/css"
	"github.com/jmylchreest/swatch/internal/plugin/output/scss"
	"github.com/jmylchreest/swatch/internal/plugin/output/tailwind"
	"github.com/jmylchreest/swatch/internal/plugin/output/tokens"
)

const (
	pluginType = "output"

	// EnvDisabledPlugins and EnvEnabledPlugins hold comma-separated plugin lists.
	EnvDisabledPlugins = "SWATCH_DISABLED_PLUGINS"
	EnvEnabledPlugins  = "SWATCH_ENABLED_PLUGINS"
)

// ErrUnknownPlugin is returned when a requested plugin is not registered.
var ErrUnknownPlugin = errors.New("unknown output plugin")

// Config controls which plugins are enabled.
// Entries are plugin names, "output:<name>", or "all".
type Config struct {
	DisabledPlugins []string
	EnabledPlugins  []string
}

// Builder constructs a Manager.
type Builder struct {
	config   Config
	registry *output.Registry
	logger   hclog.Logger
	useEnv   bool
}

// NewBuilder creates a new Manager builder with default settings.
func NewBuilder() *Builder {
	return &Builder{
		registry: output.NewRegistry(),
		logger:   hclog.NewNullLogger(),
	}
}

// WithConfig sets the enable/disable configuration.
func (b *Builder) WithConfig(config Config) *Builder {
	b.config = config
	return b
}

// WithEnvConfig reads SWATCH_DISABLED_PLUGINS and SWATCH_ENABLED_PLUGINS at
// build time. Non-empty variables replace the configured lists.
func (b *Builder) WithEnvConfig() *Builder {
	b.useEnv = true
	return b
}

// WithRegistry supplies the registry to populate (useful for testing).
func (b *Builder) WithRegistry(registry *output.Registry) *Builder {
	b.registry = registry
	return b
}

// WithLogger sets the logger handed to the manager and its plugins.
func (b *Builder) WithLogger(logger hclog.Logger) *Builder {
	if logger != nil {
		b.logger = logger
	}
	return b
}

// Build constructs the Manager and registers the built-in plugins.
func (b *Builder) Build() *Manager {
	config := b.config

	if b.useEnv {
		if disabled := os.Getenv(EnvDisabledPlugins); disabled != "" {
			config.DisabledPlugins = parsePluginList(disabled)
		}
		if enabled := os.Getenv(EnvEnabledPlugins); enabled != "" {
			config.EnabledPlugins = parsePluginList(enabled)
		}
	}

	m := &Manager{
		config:   config,
		registry: b.registry,
		logger:   b.logger,
	}
	m.registerBuiltinPlugins()
	m.registry.SetLogger(m.logger)

	return m
}

// Manager owns the output registry and its enable/disable state.
type Manager struct {
	config    Config
	registry  *output.Registry
	logger    hclog.Logger
	externals []*ExternalOutputPlugin
}

func (m *Manager) registerBuiltinPlugins() {
	for _, p := range []output.Plugin{css.New(), scss.New(), tailwind.New(), tokens.New()} {
		if _, exists := m.registry.Get(p.Name()); exists {
			continue
		}
		m.registry.Register(p)
	}
}

// Registry returns the output plugin registry.
func (m *Manager) Registry() *output.Registry {
	return m.registry
}

// Config returns the effective enable/disable configuration.
func (m *Manager) Config() Config {
	return m.config
}

// UpdateConfig replaces the enable/disable configuration, e.g. once the
// project config file has been read.
func (m *Manager) UpdateConfig(config Config) {
	m.config = config
}

// SetLogger replaces the manager's logger and hands named sub-loggers to
// every registered plugin.
func (m *Manager) SetLogger(logger hclog.Logger) {
	if logger == nil {
		return
	}
	m.logger = logger
	m.registry.SetLogger(logger)
}

// IsExternal reports whether the named plugin was registered from an executable.
func (m *Manager) IsExternal(name string) bool {
	p, ok := m.registry.Get(name)
	if !ok {
		return false
	}
	_, ext := p.(*ExternalOutputPlugin)
	return ext
}

// Get returns the named plugin or ErrUnknownPlugin.
func (m *Manager) Get(name string) (output.Plugin, error) {
	p, ok := m.registry.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlugin, name)
	}
	return p, nil
}

// IsEnabled reports whether the named plugin may run.
func (m *Manager) IsEnabled(name string) bool {
	fullName := pluginType + ":" + name

	// "all" in the disabled list wins over everything.
	if slices.Contains(m.config.DisabledPlugins, "all") {
		return false
	}

	for _, disabled := range m.config.DisabledPlugins {
		if disabled == fullName || disabled == name {
			return false
		}
	}

	if slices.Contains(m.config.EnabledPlugins, "all") {
		return true
	}

	// Whitelist mode.
	if len(m.config.EnabledPlugins) > 0 {
		for _, enabled := range m.config.EnabledPlugins {
			if enabled == fullName || enabled == name {
				return true
			}
		}
		return false
	}

	return true
}

// Enabled returns the enabled plugins sorted by name.
func (m *Manager) Enabled() []output.Plugin {
	var plugins []output.Plugin
	for _, name := range m.registry.List() {
		if !m.IsEnabled(name) {
			continue
		}
		p, _ := m.registry.Get(name)
		plugins = append(plugins, p)
	}
	return plugins
}

// Select resolves the requested plugin names in order. Unknown names are an
// error; disabled ones are skipped with a warning. An empty request selects
// every enabled plugin.
func (m *Manager) Select(names []string) ([]output.Plugin, error) {
	if len(names) == 0 {
		return m.Enabled(), nil
	}

	var (
		plugins []output.Plugin
		seen    = make(map[string]bool, len(names))
	)
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		p, err := m.Get(name)
		if err != nil {
			return nil, err
		}
		if !m.IsEnabled(name) {
			m.logger.Warn("plugin disabled, skipping", "plugin", name)
			continue
		}
		plugins = append(plugins, p)
	}
	return plugins, nil
}

// RegisterExternalPlugin registers the executable at path as an output plugin.
// An empty name uses the name the plugin reports in its --plugin-info.
func (m *Manager) RegisterExternalPlugin(name, path string) error {
	if !filepath.IsAbs(path) {
		return fmt.Errorf("plugin path must be absolute: %s", path)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("plugin not found or not accessible: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("plugin path is a directory, not a file: %s", path)
	}
	if info.Mode().Perm()&0o111 == 0 {
		return fmt.Errorf("plugin is not executable: %s", path)
	}

	p := NewExternalOutputPlugin(name, path)
	p.SetLogger(m.logger.Named(p.logName()))
	if p.name == "" {
		if err := p.resolveInfo(); err != nil {
			return fmt.Errorf("failed to query plugin info: %w", err)
		}
	}

	if _, exists := m.registry.Get(p.Name()); exists {
		m.logger.Warn("external plugin replaces registered plugin", "plugin", p.Name(), "path", path)
	}
	m.registry.Register(p)
	m.externals = append(m.externals, p)
	m.logger.Debug("registered external plugin", "plugin", p.Name(), "path", path)

	return nil
}

// Close shuts down any running external plugin processes.
func (m *Manager) Close() {
	for _, p := range m.externals {
		p.Close()
	}
}

// parsePluginList splits a comma-separated list such as "css,output:tokens".
func parsePluginList(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
