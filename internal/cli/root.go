// Package cli provides the command-line interface for swatch.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/config"
	"github.com/jmylchreest/swatch/internal/plugin/manager"
	"github.com/jmylchreest/swatch/internal/version"
)

// app holds state shared by every command in one invocation.
type app struct {
	logger  hclog.Logger
	manager *manager.Manager

	// cfg is resolved in PersistentPreRunE; flags only collects flag values.
	cfg        *config.Config
	flags      *config.Config
	configPath string
	verbose    bool
	quiet      bool
}

// Execute runs the root command. This is called by main.main().
func Execute() {
	root, a := newRootCmd()
	err := root.Execute()
	a.close()
	if err != nil {
		os.Exit(1)
	}
}

// NewRootCmd builds a fresh command tree.
func NewRootCmd() *cobra.Command {
	root, _ := newRootCmd()
	return root
}

func newRootCmd() (*cobra.Command, *app) {
	a := &app{
		logger: hclog.NewNullLogger(),
		flags:  &config.Config{},
	}
	a.manager = manager.NewBuilder().WithEnvConfig().Build()

	rootCmd := &cobra.Command{
		Use:   "swatch",
		Short: "Perceptual colour palette generator",
		Long: `swatch builds a 47-token design palette from a primary and an accent colour.

The palette is computed in LCH: brand ramps tuned for contrast, a tinted
neutral ramp and danger/success/warning/info ramps constrained to their hue
bands. Output plugins write it as CSS custom properties, SCSS, Tailwind or
design-tokens JSON; external plugins can add more formats.`,
		Version:           version.Short(),
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")
	pf.BoolVarP(&a.quiet, "quiet", "q", false, "only log errors")
	pf.StringVarP(&a.configPath, "config", "c", "", "config file (default: swatch.toml or swatch.yaml in . or ~/.config/swatch)")
	a.flags.BindFlags(pf)

	rootCmd.SetVersionTemplate(version.String() + "\n")

	rootCmd.AddCommand(
		a.newGenerateCmd(),
		a.newPreviewCmd(),
		a.newAuditCmd(),
		newContrastCmd(),
		newConvertCmd(),
		a.newPluginsCmd(),
		newVersionCmd(),
	)

	return rootCmd, a
}

// setup builds the logger, resolves the config and registers external plugins.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	a.logger = newLogger(cmd.ErrOrStderr(), a.verbose, a.quiet)
	a.manager.SetLogger(a.logger.Named("plugins"))

	cfg, err := config.Resolve(a.configPath, cmd.Flags(), a.flags)
	if err != nil {
		return err
	}
	a.cfg = cfg
	if cfg.Path != "" {
		a.logger.Debug("loaded config", "path", cfg.Path)
	}

	mcfg := a.manager.Config()
	if len(cfg.DisabledPlugins) > 0 {
		mcfg.DisabledPlugins = cfg.DisabledPlugins
	}
	if len(cfg.EnabledPlugins) > 0 {
		mcfg.EnabledPlugins = cfg.EnabledPlugins
	}
	a.manager.UpdateConfig(mcfg)

	for _, p := range cfg.Plugins {
		if err := a.manager.RegisterExternalPlugin(p.Name, p.Path); err != nil {
			a.logger.Warn("failed to register external plugin", "name", p.Name, "path", p.Path, "error", err)
			continue
		}
		if ext := a.externalByPath(p.Path); ext != nil {
			ext.SetArgs(p.Args)
		}
	}

	return nil
}

// externalByPath finds the registered external plugin backed by path.
func (a *app) externalByPath(path string) *manager.ExternalOutputPlugin {
	for _, p := range a.manager.Registry().All() {
		if ext, ok := p.(*manager.ExternalOutputPlugin); ok && ext.Path() == path {
			return ext
		}
	}
	return nil
}

func (a *app) close() {
	a.manager.Close()
}

// newLogger returns the CLI logger: Warn by default, Debug when verbose,
// Error when quiet.
func newLogger(w io.Writer, verbose, quiet bool) hclog.Logger {
	level := hclog.Warn
	switch {
	case verbose:
		level = hclog.Debug
	case quiet:
		level = hclog.Error
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "swatch",
		Level:  level,
		Output: w,
	})
}

func newVersionCmd() *cobra.Command {
	var short bool
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Long:  `Print detailed version information including build date, commit hash, and Go version.`,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			if short {
				fmt.Fprintln(cmd.OutOrStdout(), version.Short())
				return
			}
			fmt.Fprintln(cmd.OutOrStdout(), version.String())
		},
	}
	cmd.Flags().BoolVar(&short, "short", false, "print the version number only")
	return cmd
}
