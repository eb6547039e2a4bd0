// Package config loads swatch's project configuration.
//
// Values are layered, lowest to highest: built-in defaults, the config file
// (swatch.toml or swatch.yaml), SWATCH_* environment variables, then any
// command-line flags the user set.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/plugin/output/common"
)

// ErrNotFound is returned when no config file exists at the requested path.
var ErrNotFound = errors.New("config file not found")

// FileNames are the config file names searched for, in order.
var FileNames = []string{"swatch.toml", "swatch.yaml", "swatch.yml"}

// Environment variables read by ApplyEnv.
const (
	EnvPrimary         = "SWATCH_PRIMARY"
	EnvAccent          = "SWATCH_ACCENT"
	EnvOutputDir       = "SWATCH_OUTPUT_DIR"
	EnvFormat          = "SWATCH_FORMAT"
	EnvDisabledPlugins = "SWATCH_DISABLED_PLUGINS"
	EnvEnabledPlugins  = "SWATCH_ENABLED_PLUGINS"
)

// Config is the resolved swatch configuration.
type Config struct {
	Primary        string   `toml:"primary" yaml:"primary"`
	Accent         string   `toml:"accent" yaml:"accent"`
	Image          string   `toml:"image" yaml:"image"`
	Seed           int64    `toml:"seed" yaml:"seed"`
	Outputs        []string `toml:"outputs" yaml:"outputs"`
	OutputDir      string   `toml:"output_dir" yaml:"output_dir"`
	Format         string   `toml:"format" yaml:"format"`
	TargetContrast float64  `toml:"target_contrast" yaml:"target_contrast"`

	DisabledPlugins []string       `toml:"disabled_plugins" yaml:"disabled_plugins"`
	EnabledPlugins  []string       `toml:"enabled_plugins" yaml:"enabled_plugins"`
	Plugins         []PluginConfig `toml:"plugins" yaml:"plugins"`

	// Path is the file the config was read from, empty for defaults.
	Path string `toml:"-" yaml:"-"`
}

// PluginConfig declares an external output plugin.
type PluginConfig struct {
	Name string         `toml:"name" yaml:"name"`
	Path string         `toml:"path" yaml:"path"`
	Args map[string]any `toml:"args" yaml:"args"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Seed:           1,
		Outputs:        []string{"css"},
		Format:         string(common.FormatLCH),
		TargetContrast: colour.WCAGAA,
	}
}

// SearchPaths returns the directories searched for a config file: the
// working directory, then $XDG_CONFIG_HOME/swatch.
func SearchPaths() []string {
	var dirs []string
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, filepath.Join(dir, "swatch"))
	}
	return dirs
}

// Find returns the first config file in dirs, or ErrNotFound.
func Find(dirs []string) (string, error) {
	for _, dir := range dirs {
		for _, name := range FileNames {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}
	}
	return "", ErrNotFound
}

// Load reads the config file at path over the defaults. An empty path
// searches SearchPaths and falls back to the defaults when nothing is found.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		found, err := Find(SearchPaths())
		if errors.Is(err, ErrNotFound) {
			return cfg, nil
		}
		path = found
	}

	data, err := os.ReadFile(path) // #nosec G304 - user-specified config file
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := cfg.Decode(data, filepath.Ext(path)); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path

	return cfg, nil
}

// Decode parses data over c. ext selects the syntax: ".toml", ".yaml" or ".yml".
// Unknown keys are rejected.
func (c *Config) Decode(data []byte, ext string) error {
	switch strings.ToLower(ext) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
		if err := dec.Decode(c); err != nil {
			var strict *toml.StrictMissingError
			if errors.As(err, &strict) {
				keys := make([]string, 0, len(strict.Errors))
				for _, e := range strict.Errors {
					keys = append(keys, strings.Join(e.Key(), "."))
				}
				return fmt.Errorf("failed to parse TOML config: unknown keys: %s", strings.Join(keys, ", "))
			}
			return fmt.Errorf("failed to parse TOML config: %w", err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to parse YAML config: %w", err)
		}
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
	return nil
}

// ApplyEnv overlays the SWATCH_* environment variables that are set.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvPrimary); v != "" {
		c.Primary = v
	}
	if v := os.Getenv(EnvAccent); v != "" {
		c.Accent = v
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		c.OutputDir = v
	}
	if v := os.Getenv(EnvFormat); v != "" {
		c.Format = v
	}
	if v := os.Getenv(EnvDisabledPlugins); v != "" {
		c.DisabledPlugins = splitList(v)
	}
	if v := os.Getenv(EnvEnabledPlugins); v != "" {
		c.EnabledPlugins = splitList(v)
	}
}

// Validate checks the resolved configuration.
func (c *Config) Validate() error {
	if _, err := common.ParseFormat(c.Format); err != nil {
		return err
	}
	if c.TargetContrast < 1 || c.TargetContrast > 21 {
		return fmt.Errorf("target_contrast must be between 1 and 21, got %s",
			strconv.FormatFloat(c.TargetContrast, 'f', -1, 64))
	}
	if c.Primary != "" {
		if _, err := colour.ParseColor(c.Primary); err != nil {
			return fmt.Errorf("primary: %w", err)
		}
	}
	if c.Accent != "" {
		if _, err := colour.ParseColor(c.Accent); err != nil {
			return fmt.Errorf("accent: %w", err)
		}
	}
	for i, p := range c.Plugins {
		if p.Path == "" {
			return fmt.Errorf("plugins[%d]: path is required", i)
		}
	}
	return nil
}

// PluginArgs returns the args configured for the named external plugin.
func (c *Config) PluginArgs(name string) map[string]any {
	for _, p := range c.Plugins {
		if p.Name == name {
			return p.Args
		}
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
