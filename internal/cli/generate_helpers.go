package cli

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/plugin/output"
)

const (
	preExecuteTimeout  = 5 * time.Second
	postExecuteTimeout = 10 * time.Second
)

// generateRun carries the settings of one generate invocation.
type generateRun struct {
	out       io.Writer
	logger    hclog.Logger
	dryRun    bool
	outputDir string // overrides every plugin's DefaultOutputDir when set
}

// pluginExecution tracks the execution state of an output plugin.
type pluginExecution struct {
	plugin       output.Plugin
	skip         bool
	skipReason   string
	writtenFiles []string
}

// prepare validates plugins and runs pre-execute hooks.
func (r *generateRun) prepare(ctx context.Context, plugins []output.Plugin) []pluginExecution {
	executions := make([]pluginExecution, 0, len(plugins))

	for _, plugin := range plugins {
		exec := pluginExecution{plugin: plugin}

		if err := plugin.Validate(); err != nil {
			r.logger.Warn("skipping plugin", "plugin", plugin.Name(), "reason", "validation failed", "error", err)
			exec.skip = true
			exec.skipReason = fmt.Sprintf("validation failed: %v", err)
		} else {
			r.runPreHook(ctx, &exec)
		}

		executions = append(executions, exec)
	}

	return executions
}

// runPreHook runs the plugin's pre-execute hook, marking exec skipped when
// the hook declines or fails.
func (r *generateRun) runPreHook(ctx context.Context, exec *pluginExecution) {
	preHook, ok := exec.plugin.(output.PreExecuteHook)
	if !ok {
		return
	}

	hookCtx, cancel := context.WithTimeout(ctx, preExecuteTimeout)
	skip, reason, err := preHook.PreExecute(hookCtx)
	cancel()

	switch {
	case err != nil:
		r.logger.Warn("pre-execution check failed", "plugin", exec.plugin.Name(), "error", err)
		exec.skip = true
		exec.skipReason = fmt.Sprintf("pre-hook error: %v", err)
	case skip:
		r.logger.Info("skipping plugin", "plugin", exec.plugin.Name(), "reason", reason)
		exec.skip = true
		exec.skipReason = reason
	}
}

// generate runs every non-skipped plugin and writes its files.
func (r *generateRun) generate(executions []pluginExecution, palette *colour.Palette) int {
	successCount := 0

	for i := range executions {
		exec := &executions[i]
		if exec.skip {
			continue
		}

		r.logger.Debug("running output plugin", "plugin", exec.plugin.Name())

		files, err := exec.plugin.Generate(palette)
		if err != nil {
			r.logger.Error("plugin failed", "plugin", exec.plugin.Name(), "error", err)
			exec.skip = true
			exec.skipReason = fmt.Sprintf("generation failed: %v", err)
			continue
		}

		if r.writeFiles(exec, files) {
			successCount++
		}
	}

	return successCount
}

// dirFor returns where plugin's files are written.
func (r *generateRun) dirFor(plugin output.Plugin) string {
	if r.outputDir != "" {
		return r.outputDir
	}
	if dir := plugin.DefaultOutputDir(); dir != "" {
		return dir
	}
	return "."
}

// writeFiles writes generated files to disk in filename order.
func (r *generateRun) writeFiles(exec *pluginExecution, files map[string][]byte) bool {
	dir := r.dirFor(exec.plugin)
	exec.writtenFiles = make([]string, 0, len(files))

	for _, filename := range slices.Sorted(maps.Keys(files)) {
		content := files[filename]
		fullPath := filepath.Join(dir, filename)

		if r.dryRun {
			fmt.Fprintf(r.out, "   Would write: %s (%d bytes)\n", fullPath, len(content))
			continue
		}

		if err := writeFile(fullPath, content); err != nil {
			r.logger.Error("failed to write file", "plugin", exec.plugin.Name(), "path", fullPath, "error", err)
			exec.skip = true
			exec.skipReason = fmt.Sprintf("write failed: %v", err)
			return false
		}
		fmt.Fprintf(r.out, "   %s (%d bytes)\n", fullPath, len(content))
		exec.writtenFiles = append(exec.writtenFiles, fullPath)
	}

	return true
}

// postExecute runs post-execute hooks for plugins that wrote files.
func (r *generateRun) postExecute(ctx context.Context, executions []pluginExecution) {
	for _, exec := range executions {
		if exec.skip || len(exec.writtenFiles) == 0 {
			continue
		}

		postHook, ok := exec.plugin.(output.PostExecuteHook)
		if !ok {
			continue
		}

		r.logger.Debug("running post-hook", "plugin", exec.plugin.Name())

		hookCtx, cancel := context.WithTimeout(ctx, postExecuteTimeout)
		err := postHook.PostExecute(hookCtx, exec.writtenFiles)
		cancel()

		if err != nil {
			r.logger.Warn("post-hook failed", "plugin", exec.plugin.Name(), "error", err)
		}
	}
}

// summary prints the final line and reports total failure as an error.
func (r *generateRun) summary(successCount int) error {
	if r.dryRun {
		return nil
	}

	fmt.Fprintln(r.out)
	if successCount > 0 {
		fmt.Fprintf(r.out, " Done! Generated %d output plugin(s)\n", successCount)
		return nil
	}

	return fmt.Errorf("no output plugins succeeded")
}

// writeFile writes content to path, creating parent directories.
func writeFile(path string, content []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil { // #nosec G301 - output directories are user-visible
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return os.WriteFile(path, content, 0o644) // #nosec G306 - generated theme files are not sensitive
}
