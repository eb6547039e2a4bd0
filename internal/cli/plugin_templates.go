package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/plugin/output"
	"github.com/jmylchreest/swatch/internal/plugin/output/template"
)

type templateOptions struct {
	plugins  []string
	force    bool
	location string
}

func (a *app) newPluginTemplatesCmd() *cobra.Command {
	opts := &templateOptions{}

	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Manage output plugin templates",
		Long: `Manage output plugin templates including listing and dumping embedded templates.

Templates can be customised by extracting them to ~/.config/swatch/templates/{plugin-name}/
and modifying them. Custom templates are used instead of the embedded ones.

Examples:
  swatch plugins templates list
  swatch plugins templates dump --output-plugins css,tailwind
  swatch plugins templates dump --output-plugins css --force`,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List available plugin templates",
		Long: `List all available templates from output plugins.

Shows which templates are embedded and which have custom overrides.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTemplatesList(cmd, opts)
		},
	}
	listCmd.Flags().StringSliceVar(&opts.plugins, "output-plugins", nil, "comma-separated list of output plugins to list (default: all)")

	dumpCmd := &cobra.Command{
		Use:   "dump",
		Short: "Dump embedded templates to files",
		Long: `Extract embedded plugin templates to ~/.config/swatch/templates/{plugin-name}/

By default every plugin with templates is dumped. Existing overrides are
left alone unless --force is given.

Examples:
  swatch plugins templates dump
  swatch plugins templates dump --output-plugins css,scss
  swatch plugins templates dump -l ./templates`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTemplatesDump(cmd, opts)
		},
	}
	dumpCmd.Flags().StringSliceVar(&opts.plugins, "output-plugins", nil, "comma-separated list of output plugins (default: all)")
	dumpCmd.Flags().BoolVar(&opts.force, "force", false, "overwrite existing custom templates")
	dumpCmd.Flags().StringVarP(&opts.location, "location", "l", "", "custom location to dump templates (default: ~/.config/swatch/templates)")

	cmd.AddCommand(listCmd, dumpCmd)
	return cmd
}

// templateLoaders returns the loaders of the requested plugins, in name
// order. Plugins without templates are left out.
func (a *app) templateLoaders(names []string, customBase string) ([]*template.Loader, error) {
	if len(names) == 0 {
		names = a.manager.Registry().List()
	}

	var loaders []*template.Loader
	for _, name := range names {
		p, err := a.manager.Get(name)
		if err != nil {
			return nil, err
		}
		loader := pluginTemplateLoader(p, customBase)
		if loader == nil {
			a.logger.Debug("plugin has no templates", "plugin", name)
			continue
		}
		loaders = append(loaders, loader)
	}
	return loaders, nil
}

// pluginTemplateLoader returns the plugin's loader, rebased onto customBase
// when set. Returns nil for plugins without templates.
func pluginTemplateLoader(p output.Plugin, customBase string) *template.Loader {
	provider, ok := p.(output.TemplateProvider)
	if !ok {
		return nil
	}
	loader := provider.TemplateLoader()
	if loader != nil && customBase != "" {
		loader = loader.WithCustomBase(customBase)
	}
	return loader
}

func (a *app) runTemplatesList(cmd *cobra.Command, opts *templateOptions) error {
	out := cmd.OutOrStdout()

	loaders, err := a.templateLoaders(opts.plugins, "")
	if err != nil {
		return err
	}
	if len(loaders) == 0 {
		fmt.Fprintln(out, "No plugin templates available")
		return nil
	}

	fmt.Fprintln(out, "Available plugin templates:")
	fmt.Fprintln(out)

	hasCustomTemplates := false
	for _, loader := range loaders {
		templates, err := loader.ListEmbeddedTemplates()
		if err != nil {
			return fmt.Errorf("failed to list templates for %s: %w", loader.PluginName(), err)
		}

		fmt.Fprintf(out, "Plugin: %s\n", loader.PluginName())
		fmt.Fprintf(out, "  Custom template directory: %s\n", loader.CustomDir())
		fmt.Fprintln(out, "  Templates:")
		for _, tmpl := range templates {
			if loader.GetInfo(tmpl).CustomExists {
				fmt.Fprintf(out, "    - %s*\n", tmpl)
				hasCustomTemplates = true
			} else {
				fmt.Fprintf(out, "    - %s\n", tmpl)
			}
		}
		fmt.Fprintln(out)
	}

	fmt.Fprintln(out, "To customise a template, use: swatch plugins templates dump --output-plugins <plugin-name>")
	if hasCustomTemplates {
		fmt.Fprintln(out, "Templates with active overrides are shown with an asterisk (*).")
	}
	return nil
}

func (a *app) runTemplatesDump(cmd *cobra.Command, opts *templateOptions) error {
	out := cmd.OutOrStdout()

	customBase, err := expandHome(opts.location)
	if err != nil {
		return err
	}
	if customBase != "" {
		fmt.Fprintf(out, "Dumping templates to custom location: %s\n\n", customBase)
	}

	loaders, err := a.templateLoaders(opts.plugins, customBase)
	if err != nil {
		return err
	}

	totalDumped := 0
	for _, loader := range loaders {
		fmt.Fprintf(out, "Dumping templates for %s...\n", loader.PluginName())

		dumped, err := loader.DumpAllTemplates(opts.force)
		for _, path := range dumped {
			fmt.Fprintf(out, "   %s\n", path)
		}
		totalDumped += len(dumped)

		if err == nil {
			continue
		}
		if !errors.Is(err, template.ErrTemplateExists) {
			return fmt.Errorf("failed to dump templates for %s: %w", loader.PluginName(), err)
		}
		for _, skipped := range unwrapJoined(err) {
			fmt.Fprintf(out, "   skipped: %v\n", skipped)
		}
	}

	if totalDumped == 0 {
		fmt.Fprintln(out, "No templates were dumped. Custom templates may already exist.")
		fmt.Fprintln(out, "Use --force to overwrite existing templates.")
		return nil
	}

	fmt.Fprintf(out, "\nSuccessfully dumped %d template(s)\n", totalDumped)
	return nil
}

// unwrapJoined splits an errors.Join result into its parts.
func unwrapJoined(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}

// expandHome expands a leading "~/" to the user's home directory.
func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[2:]), nil
}
