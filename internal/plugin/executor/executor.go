// Package executor runs external output plugins over go-plugin RPC or JSON stdio.
package executor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	goplugin "github.com/hashicorp/go-plugin"

	"github.com/jmylchreest/swatch/internal/plugin/protocol"
	"github.com/jmylchreest/swatch/pkg/plugin"
)

const (
	preExecuteTimeout  = 5 * time.Second
	postExecuteTimeout = 10 * time.Second

	// FallbackFilename names the file written when a JSON plugin prints
	// something other than a files object.
	FallbackFilename = "output.txt"
)

// PluginExecutor runs one external output plugin.
type PluginExecutor struct {
	path         string
	info         plugin.PluginInfo
	protocolType protocol.PluginType
	client       *goplugin.Client
	rpcClient    *plugin.OutputPluginRPCClient
	logger       hclog.Logger
	runner       ProcessRunner
}

// jsonOutput is what JSON stdio plugins print on stdout.
type jsonOutput struct {
	Files map[string]string `json:"files"`
}

// New detects the plugin's protocol and returns an executor for it.
func New(ctx context.Context, pluginPath string, logger hclog.Logger) (*PluginExecutor, error) {
	return NewWithRunner(ctx, pluginPath, logger, NewRealProcessRunner())
}

// NewWithRunner is New with a custom process runner for JSON stdio calls.
func NewWithRunner(ctx context.Context, pluginPath string, logger hclog.Logger, runner ProcessRunner) (*PluginExecutor, error) {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	result, err := protocol.DetectProtocol(ctx, pluginPath)
	if err != nil {
		return nil, fmt.Errorf("failed to detect plugin protocol: %w", err)
	}

	logger.Debug("detected plugin",
		"path", pluginPath,
		"name", result.PluginInfo.Name,
		"protocol", result.Type,
		"version", result.PluginInfo.Version)

	return &PluginExecutor{
		path:         pluginPath,
		info:         result.PluginInfo,
		protocolType: result.Type,
		logger:       logger,
		runner:       runner,
	}, nil
}

// Info returns the metadata the plugin reported.
func (e *PluginExecutor) Info() plugin.PluginInfo {
	return e.info
}

// Protocol returns the detected protocol.
func (e *PluginExecutor) Protocol() protocol.PluginType {
	return e.protocolType
}

// ExecuteOutput sends the palette to the plugin and returns generated files.
func (e *PluginExecutor) ExecuteOutput(ctx context.Context, palette plugin.PaletteData) (map[string][]byte, error) {
	switch e.protocolType {
	case protocol.PluginTypeGoPlugin:
		client, err := e.getRPCClient()
		if err != nil {
			return nil, err
		}
		return client.Generate(ctx, palette)
	case protocol.PluginTypeJSON:
		return e.executeOutputJSON(ctx, palette)
	default:
		return nil, fmt.Errorf("unsupported protocol type: %s", e.protocolType)
	}
}

// PreExecute runs the plugin's pre-execution hook.
func (e *PluginExecutor) PreExecute(ctx context.Context) (skip bool, reason string, err error) {
	switch e.protocolType {
	case protocol.PluginTypeGoPlugin:
		client, err := e.getRPCClient()
		if err != nil {
			return false, "", err
		}
		return client.PreExecute(ctx)
	case protocol.PluginTypeJSON:
		return e.preExecuteJSON(ctx)
	default:
		return false, "", fmt.Errorf("unsupported protocol type: %s", e.protocolType)
	}
}

// PostExecute runs the plugin's post-execution hook.
func (e *PluginExecutor) PostExecute(ctx context.Context, writtenFiles []string) error {
	switch e.protocolType {
	case protocol.PluginTypeGoPlugin:
		client, err := e.getRPCClient()
		if err != nil {
			return err
		}
		return client.PostExecute(ctx, writtenFiles)
	case protocol.PluginTypeJSON:
		return e.postExecuteJSON(ctx, writtenFiles)
	default:
		return fmt.Errorf("unsupported protocol type: %s", e.protocolType)
	}
}

// GetFlagHelp returns the plugin's flag help. JSON stdio plugins have none.
func (e *PluginExecutor) GetFlagHelp() ([]plugin.FlagHelp, error) {
	if e.protocolType != protocol.PluginTypeGoPlugin {
		return []plugin.FlagHelp{}, nil
	}
	client, err := e.getRPCClient()
	if err != nil {
		return nil, err
	}
	return client.GetFlagHelp(), nil
}

// Close kills a running go-plugin process. It is safe to call repeatedly.
func (e *PluginExecutor) Close() {
	if e.client != nil {
		e.client.Kill()
		e.client = nil
		e.rpcClient = nil
	}
}

// getRPCClient starts the plugin process on first use.
func (e *PluginExecutor) getRPCClient() (*plugin.OutputPluginRPCClient, error) {
	if e.rpcClient != nil {
		return e.rpcClient, nil
	}

	e.client = goplugin.NewClient(&goplugin.ClientConfig{
		HandshakeConfig: protocol.Handshake,
		Plugins: map[string]goplugin.Plugin{
			plugin.PluginMapKey: &plugin.OutputPluginRPC{},
		},
		Cmd:              exec.Command(e.path),
		AllowedProtocols: []goplugin.Protocol{goplugin.ProtocolNetRPC},
		Logger:           e.logger.Named("rpc"),
	})

	rpcClient, err := e.client.Client()
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("failed to get RPC client: %w", err)
	}

	raw, err := rpcClient.Dispense(plugin.PluginMapKey)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("failed to dispense plugin: %w", err)
	}

	client, ok := raw.(*plugin.OutputPluginRPCClient)
	if !ok {
		e.Close()
		return nil, fmt.Errorf("plugin dispensed unexpected type %T", raw)
	}
	e.rpcClient = client
	return client, nil
}

func (e *PluginExecutor) executeOutputJSON(ctx context.Context, palette plugin.PaletteData) (map[string][]byte, error) {
	paletteJSON, err := json.Marshal(palette)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal palette: %w", err)
	}

	stdout, stderr, err := e.runner.Run(ctx, e.path, nil, bytes.NewReader(paletteJSON))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("plugin %s: %w", e.info.Name, ctxErr)
		}
		return nil, fmt.Errorf("plugin execution failed: %w\nStderr: %s", err, stderr)
	}
	if msg := strings.TrimSpace(string(stderr)); msg != "" {
		e.logger.Debug("plugin stderr", "plugin", e.info.Name, "output", msg)
	}

	var out jsonOutput
	if err := json.Unmarshal(stdout, &out); err == nil && out.Files != nil {
		files := make(map[string][]byte, len(out.Files))
		for name, content := range out.Files {
			files[name] = []byte(content)
		}
		return files, nil
	}

	e.logger.Debug("plugin output is not a files object, using fallback", "file", FallbackFilename)
	result := make(map[string][]byte)
	if len(stdout) > 0 {
		result[FallbackFilename] = stdout
	}
	return result, nil
}

// preExecuteJSON maps exit codes: 0 continues, 1 skips with stdout as the
// reason, anything else is an error.
func (e *PluginExecutor) preExecuteJSON(ctx context.Context) (bool, string, error) {
	execCtx, cancel := context.WithTimeout(ctx, preExecuteTimeout)
	defer cancel()

	stdout, stderr, err := e.runner.Run(execCtx, e.path, []string{"--pre-execute"}, nil)
	if err == nil {
		return false, "", nil
	}

	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return false, "", fmt.Errorf("pre-execute failed: %w", err)
	}

	if exitErr.ExitCode() == 1 {
		reason := strings.TrimSpace(string(stdout))
		if reason == "" {
			reason = "plugin requested skip"
		}
		return true, reason, nil
	}

	errMsg := strings.TrimSpace(string(stderr))
	if errMsg == "" {
		errMsg = fmt.Sprintf("exit code %d", exitErr.ExitCode())
	}
	return false, "", fmt.Errorf("pre-execute failed: %s", errMsg)
}

func (e *PluginExecutor) postExecuteJSON(ctx context.Context, writtenFiles []string) error {
	execCtx, cancel := context.WithTimeout(ctx, postExecuteTimeout)
	defer cancel()

	filesJSON, err := json.Marshal(map[string]any{
		"written_files": writtenFiles,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal files: %w", err)
	}

	_, stderr, err := e.runner.Run(execCtx, e.path, []string{"--post-execute"}, bytes.NewReader(filesJSON))
	if err != nil {
		errMsg := strings.TrimSpace(string(stderr))
		if errMsg == "" {
			errMsg = err.Error()
		}
		return fmt.Errorf("post-execute failed: %s", errMsg)
	}
	return nil
}
