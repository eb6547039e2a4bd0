package plugin

// FlagHelp describes a single plugin flag.
type FlagHelp struct {
	Name        string `json:"name"`
	Shorthand   string `json:"shorthand"`
	Type        string `json:"type"` // "string", "int", "bool"
	Default     string `json:"default"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
}

// PluginInfo contains metadata about a plugin, as printed by --plugin-info.
type PluginInfo struct {
	Name            string `json:"name"`
	Type            string `json:"type"` // always "output"
	Version         string `json:"version"`
	ProtocolVersion string `json:"protocol_version"`
	Description     string `json:"description"`
	PluginProtocol  string `json:"plugin_protocol"` // "json-stdio" or "go-plugin"
}
