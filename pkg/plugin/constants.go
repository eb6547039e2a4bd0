// Package plugin provides the public API for swatch output plugins.
// External plugins should import this package instead of internal packages.
package plugin

import (
	"github.com/hashicorp/go-plugin"
)

const (
	// ProtocolVersion defines the current plugin API version.
	// Format: MAJOR.MINOR.PATCH.
	// - Increment MAJOR for breaking changes.
	// - Increment MINOR for backward-compatible additions.
	// - Increment PATCH for backward-compatible fixes.
	ProtocolVersion = "0.1.0"

	// MinCompatibleVersion is the oldest protocol version this swatch version can work with.
	MinCompatibleVersion = "0.1.0"
)

// Handshake is the go-plugin handshake shared by swatch and its plugins.
var Handshake = plugin.HandshakeConfig{
	ProtocolVersion:  0, // Major version from ProtocolVersion
	MagicCookieKey:   "SWATCH_PLUGIN",
	MagicCookieValue: "swatch_lch_palette",
}

// PluginType defines the type of plugin communication protocol.
type PluginType string

const (
	// PluginTypeGoPlugin indicates the plugin uses HashiCorp go-plugin RPC protocol.
	PluginTypeGoPlugin PluginType = "go-plugin"

	// PluginTypeJSON indicates the plugin uses simple JSON over stdin/stdout.
	PluginTypeJSON PluginType = "json-stdio"
)

// PluginMapKey is the name output plugins are dispensed under.
const PluginMapKey = "output"
