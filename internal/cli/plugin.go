package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/plugin/manager"
	"github.com/jmylchreest/swatch/internal/plugin/protocol"
)

const (
	pluginTypeBuiltin  = "built-in"
	pluginTypeExternal = "external"
)

func (a *app) newPluginsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plugins",
		Short: "Inspect output plugins",
		Long: `Inspect the built-in and external output plugins.

Plugins can be controlled via:
  1. The config file (disabled_plugins, enabled_plugins, [[plugins]])
  2. Environment variables (SWATCH_ENABLED_PLUGINS, SWATCH_DISABLED_PLUGINS)

When an enabled list is set, only those plugins are enabled (whitelist mode).
Disabled entries always win. Entries are a plugin name, "output:<name>" or "all".`,
	}

	cmd.AddCommand(
		a.newPluginListCmd(),
		newPluginInfoCmd(),
		a.newPluginTemplatesCmd(),
	)
	return cmd
}

// pluginInfo holds information about a plugin for display.
type pluginInfo struct {
	name        string
	pluginType  string
	status      string
	description string
	path        string
}

// collectPlugins returns display rows for every registered plugin, sorted by name.
func collectPlugins(mgr *manager.Manager) []pluginInfo {
	names := mgr.Registry().List()
	plugins := make([]pluginInfo, 0, len(names))

	for _, name := range names {
		p, _ := mgr.Registry().Get(name)
		info := pluginInfo{
			name:        name,
			pluginType:  pluginTypeBuiltin,
			status:      "enabled",
			description: p.Description(),
		}
		if !mgr.IsEnabled(name) {
			info.status = "disabled"
		}
		if ext, ok := p.(*manager.ExternalOutputPlugin); ok {
			info.pluginType = pluginTypeExternal
			info.path = ext.Path()
		}
		plugins = append(plugins, info)
	}

	return plugins
}

func (a *app) newPluginListCmd() *cobra.Command {
	var showPath bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all available plugins",
		Long: `List all output plugins with their enabled/disabled state.

Shows both built-in plugins and external plugins declared in the config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			last := "DESCRIPTION"
			if showPath {
				last = "PATH"
			}

			tbl := NewTable([]string{"NAME", "TYPE", "STATUS", last})
			tbl.SetColumnMaxWidth(3, 60)
			for _, p := range collectPlugins(a.manager) {
				lastColumn := p.description
				if showPath {
					lastColumn = p.path
					if lastColumn == "" {
						lastColumn = "(built-in)"
					}
				}
				tbl.AddRow([]string{p.name, p.pluginType, p.status, lastColumn})
			}
			return tbl.Write(cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&showPath, "path", false, "show executable paths instead of descriptions")
	return cmd
}

func newPluginInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <path>",
		Short: "Query an external plugin executable",
		Long: `Run an external plugin with --plugin-info and report its metadata and
whether its protocol version is compatible with this swatch.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := filepath.Abs(args[0])
			if err != nil {
				return err
			}

			result, err := protocol.DetectProtocol(cmd.Context(), path)
			if err != nil {
				return err
			}
			info := result.PluginInfo

			compatible := "yes"
			if ok, err := protocol.IsCompatible(info.ProtocolVersion); !ok {
				compatible = "no"
				if err != nil {
					compatible = fmt.Sprintf("no (%v)", err)
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Name:        %s\n", info.Name)
			fmt.Fprintf(out, "Version:     %s\n", info.Version)
			fmt.Fprintf(out, "Description: %s\n", info.Description)
			fmt.Fprintf(out, "Protocol:    %s (%s)\n", result.Type, info.ProtocolVersion)
			fmt.Fprintf(out, "Compatible:  %s\n", compatible)
			return nil
		},
	}
}
