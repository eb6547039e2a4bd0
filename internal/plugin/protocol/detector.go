package protocol

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"time"

	"github.com/jmylchreest/swatch/pkg/plugin"
)

// DetectTimeout bounds the --plugin-info query.
const DetectTimeout = 5 * time.Second

// DetectorResult contains information about a detected plugin protocol.
type DetectorResult struct {
	// Type indicates which protocol the plugin uses.
	Type PluginType

	// PluginInfo contains metadata from --plugin-info.
	PluginInfo plugin.PluginInfo
}

// DetectProtocol runs the plugin with --plugin-info and reads its metadata.
func DetectProtocol(ctx context.Context, pluginPath string) (*DetectorResult, error) {
	ctx, cancel := context.WithTimeout(ctx, DetectTimeout)
	defer cancel()

	output, err := exec.CommandContext(ctx, pluginPath, "--plugin-info").Output()
	if err != nil {
		return nil, fmt.Errorf("failed to query plugin: %w", err)
	}

	return ParseInfo(output)
}

// ParseInfo decodes --plugin-info output and validates it.
func ParseInfo(output []byte) (*DetectorResult, error) {
	var info plugin.PluginInfo
	if err := json.Unmarshal(output, &info); err != nil {
		return nil, fmt.Errorf("failed to parse plugin info: %w", err)
	}

	if info.Name == "" {
		return nil, fmt.Errorf("plugin info has no name")
	}
	if info.Type != "" && info.Type != "output" {
		return nil, fmt.Errorf("plugin %s has type %q, only output plugins are supported", info.Name, info.Type)
	}
	if info.ProtocolVersion != "" {
		if _, err := IsCompatible(info.ProtocolVersion); err != nil {
			return nil, fmt.Errorf("plugin %s: %w", info.Name, err)
		}
	}

	result := &DetectorResult{PluginInfo: info}

	switch PluginType(info.PluginProtocol) {
	case PluginTypeGoPlugin:
		result.Type = PluginTypeGoPlugin
	case PluginTypeJSON, "":
		// Empty defaults to json-stdio.
		result.Type = PluginTypeJSON
	default:
		return nil, fmt.Errorf("unknown plugin_protocol: %s", info.PluginProtocol)
	}

	return result, nil
}
