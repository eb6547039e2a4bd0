package protocol

import (
	"github.com/jmylchreest/swatch/pkg/plugin"
)

// Handshake is the go-plugin handshake used when launching RPC plugins.
//
// go-plugin compares ProtocolVersion as a single integer, so only the major
// version takes part in the handshake. Minor and patch compatibility are
// checked against --plugin-info with IsCompatible.
var Handshake = plugin.Handshake

// PluginType aliases the public protocol type.
type PluginType = plugin.PluginType

const (
	PluginTypeGoPlugin = plugin.PluginTypeGoPlugin
	PluginTypeJSON     = plugin.PluginTypeJSON
)
