// Package template loads plugin templates with support for user overrides.
package template

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-hclog"
)

// ErrTemplateExists is returned by DumpTemplate when an override is already present.
var ErrTemplateExists = errors.New("custom template already exists")

// Loader reads templates from $XDG_CONFIG_HOME/swatch/templates/{plugin}/
// first and falls back to the plugin's embedded copies.
type Loader struct {
	pluginName string
	embedFS    fs.FS
	customBase string
	logger     hclog.Logger
}

// DefaultCustomBase returns the directory user template overrides live under.
func DefaultCustomBase() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, "swatch", "templates")
	}
	return filepath.Join(".swatch", "templates")
}

// New creates a template loader for the named plugin.
func New(pluginName string, embedFS fs.FS) *Loader {
	return &Loader{
		pluginName: pluginName,
		embedFS:    embedFS,
		customBase: DefaultCustomBase(),
		logger:     hclog.NewNullLogger(),
	}
}

// WithCustomBase sets the base directory for template overrides.
func (l *Loader) WithCustomBase(customBase string) *Loader {
	l.customBase = customBase
	return l
}

// WithLogger sets the logger used to report which template was chosen.
func (l *Loader) WithLogger(logger hclog.Logger) *Loader {
	if logger != nil {
		l.logger = logger
	}
	return l
}

// PluginName returns the plugin the loader serves.
func (l *Loader) PluginName() string {
	return l.pluginName
}

// Load reads a template file, checking for custom overrides first.
func (l *Loader) Load(filename string) (content []byte, fromCustom bool, err error) {
	customPath := l.CustomPath(filename)
	if content, err := os.ReadFile(customPath); err == nil {
		l.logger.Debug("using custom template", "path", customPath)
		return content, true, nil
	}

	l.logger.Debug("using embedded template", "template", filename)
	content, err = fs.ReadFile(l.embedFS, filename)
	if err != nil {
		return nil, false, fmt.Errorf("failed to load template %q: %w", filename, err)
	}
	return content, false, nil
}

// CustomPath returns the path where a custom template would be located.
func (l *Loader) CustomPath(filename string) string {
	return filepath.Join(l.customBase, l.pluginName, filename)
}

// CustomDir returns the directory holding this plugin's overrides.
func (l *Loader) CustomDir() string {
	return filepath.Join(l.customBase, l.pluginName)
}

// HasCustomTemplate checks if a custom template exists for the given filename.
func (l *Loader) HasCustomTemplate(filename string) bool {
	_, err := os.Stat(l.CustomPath(filename))
	return err == nil
}

// ListEmbeddedTemplates returns all embedded .tmpl files.
func (l *Loader) ListEmbeddedTemplates() ([]string, error) {
	var templates []string
	err := fs.WalkDir(l.embedFS, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".tmpl" {
			templates = append(templates, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list embedded templates: %w", err)
	}
	return templates, nil
}

// DumpTemplate writes an embedded template to the override directory.
// Without force an existing override is left alone and ErrTemplateExists returned.
func (l *Loader) DumpTemplate(filename string, force bool) error {
	content, err := fs.ReadFile(l.embedFS, filename)
	if err != nil {
		return fmt.Errorf("failed to read embedded template %q: %w", filename, err)
	}

	outputPath := l.CustomPath(filename)
	if !force {
		if _, err := os.Stat(outputPath); err == nil {
			return fmt.Errorf("%w: %s (use --force to overwrite)", ErrTemplateExists, outputPath)
		}
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %q: %w", outputPath, err)
	}
	if err := os.WriteFile(outputPath, content, 0o644); err != nil {
		return fmt.Errorf("failed to write template to %q: %w", outputPath, err)
	}
	return nil
}

// DumpAllTemplates writes every embedded template to the override directory.
// Existing overrides are skipped unless force is set; the skips are joined
// into the returned error while the remaining templates are still written.
func (l *Loader) DumpAllTemplates(force bool) ([]string, error) {
	templates, err := l.ListEmbeddedTemplates()
	if err != nil {
		return nil, err
	}

	var dumped []string
	var skipped []error
	for _, tmpl := range templates {
		if err := l.DumpTemplate(tmpl, force); err != nil {
			if errors.Is(err, ErrTemplateExists) {
				skipped = append(skipped, err)
				continue
			}
			return dumped, err
		}
		dumped = append(dumped, l.CustomPath(tmpl))
	}

	return dumped, errors.Join(skipped...)
}

// TemplateInfo describes where a template would be loaded from.
type TemplateInfo struct {
	Filename       string
	EmbeddedExists bool
	CustomExists   bool
	CustomPath     string
}

// GetInfo returns information about a specific template.
func (l *Loader) GetInfo(filename string) TemplateInfo {
	_, embeddedErr := fs.Stat(l.embedFS, filename)
	return TemplateInfo{
		Filename:       filename,
		EmbeddedExists: embeddedErr == nil,
		CustomExists:   l.HasCustomTemplate(filename),
		CustomPath:     l.CustomPath(filename),
	}
}
