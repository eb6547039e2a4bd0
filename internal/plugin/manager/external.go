package manager

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/plugin/executor"
	"github.com/jmylchreest/swatch/internal/plugin/output/common"
	"github.com/jmylchreest/swatch/internal/plugin/protocol"
)

const generateTimeout = 30 * time.Second

// ExternalOutputPlugin wraps an external executable as an output plugin.
// The executor is created on first use and reused for the hooks, so a
// go-plugin process serves PreExecute, Generate and PostExecute in one run.
type ExternalOutputPlugin struct {
	name        string
	description string
	path        string
	args        map[string]any
	dryRun      bool
	format      common.Format
	logger      hclog.Logger

	mu   sync.Mutex
	exec *executor.PluginExecutor
}

// NewExternalOutputPlugin creates a wrapper for the executable at path.
func NewExternalOutputPlugin(name, path string) *ExternalOutputPlugin {
	return &ExternalOutputPlugin{
		name:   name,
		path:   path,
		format: common.FormatLCH,
		logger: hclog.NewNullLogger(),
	}
}

// Name returns the plugin's name.
func (p *ExternalOutputPlugin) Name() string {
	return p.name
}

// Description returns the plugin's description.
func (p *ExternalOutputPlugin) Description() string {
	if p.description == "" {
		return "External plugin: " + p.path
	}
	return p.description
}

// Path returns the executable path.
func (p *ExternalOutputPlugin) Path() string {
	return p.path
}

// SetArgs sets the plugin_args sent with the palette.
func (p *ExternalOutputPlugin) SetArgs(args map[string]any) {
	p.args = args
}

// SetDryRun marks the palette sent to the plugin as a dry run.
func (p *ExternalOutputPlugin) SetDryRun(dryRun bool) {
	p.dryRun = dryRun
}

// SetFormat sets the value format advertised to the plugin.
func (p *ExternalOutputPlugin) SetFormat(format common.Format) {
	p.format = format
}

// SetLogger sets the logger passed to the executor.
func (p *ExternalOutputPlugin) SetLogger(logger hclog.Logger) {
	p.logger = logger
}

// Generate sends the palette to the plugin and returns the files it produced.
func (p *ExternalOutputPlugin) Generate(palette *colour.Palette) (map[string][]byte, error) {
	ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
	defer cancel()

	exec, err := p.executor(ctx)
	if err != nil {
		return nil, err
	}

	data := common.PaletteData(palette, p.format)
	data.PluginArgs = p.args
	data.DryRun = p.dryRun

	files, err := exec.ExecuteOutput(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("plugin execution failed: %w", err)
	}
	return files, nil
}

// RegisterFlags is a no-op; external plugins receive options through plugin_args.
func (p *ExternalOutputPlugin) RegisterFlags(_ *cobra.Command) {}

// Validate is a no-op; the executable is checked at registration.
func (p *ExternalOutputPlugin) Validate() error {
	return nil
}

// DefaultOutputDir returns "" so files land in the global output directory.
func (p *ExternalOutputPlugin) DefaultOutputDir() string {
	return ""
}

// PreExecute runs the plugin's pre-execution hook.
func (p *ExternalOutputPlugin) PreExecute(ctx context.Context) (skip bool, reason string, err error) {
	exec, err := p.executor(ctx)
	if err != nil {
		return false, "", err
	}
	return exec.PreExecute(ctx)
}

// PostExecute runs the plugin's post-execution hook.
func (p *ExternalOutputPlugin) PostExecute(ctx context.Context, writtenFiles []string) error {
	exec, err := p.executor(ctx)
	if err != nil {
		return err
	}
	return exec.PostExecute(ctx, writtenFiles)
}

// Close stops the plugin process if one is running.
func (p *ExternalOutputPlugin) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.exec != nil {
		p.exec.Close()
		p.exec = nil
	}
}

func (p *ExternalOutputPlugin) executor(ctx context.Context) (*executor.PluginExecutor, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.exec != nil {
		return p.exec, nil
	}
	exec, err := executor.New(ctx, p.path, p.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create plugin executor: %w", err)
	}
	p.exec = exec
	if p.description == "" {
		p.description = exec.Info().Description
	}
	return exec, nil
}

// resolveInfo fills name and description from the plugin's --plugin-info.
func (p *ExternalOutputPlugin) resolveInfo() error {
	ctx, cancel := context.WithTimeout(context.Background(), protocol.DetectTimeout)
	defer cancel()

	result, err := protocol.DetectProtocol(ctx, p.path)
	if err != nil {
		return err
	}
	if p.name == "" {
		p.name = result.PluginInfo.Name
	}
	p.description = result.PluginInfo.Description
	return nil
}

// logName is the sub-logger name before the plugin's own name is known.
func (p *ExternalOutputPlugin) logName() string {
	if p.name != "" {
		return p.name
	}
	return strings.TrimSuffix(filepath.Base(p.path), filepath.Ext(p.path))
}
