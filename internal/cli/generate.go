package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/image"
	"github.com/jmylchreest/swatch/internal/plugin/manager"
	"github.com/jmylchreest/swatch/internal/plugin/output"
	"github.com/jmylchreest/swatch/internal/plugin/output/common"
	"github.com/jmylchreest/swatch/internal/preview"
	"github.com/jmylchreest/swatch/internal/seed"
)

const outputAll = "all"

// errNoSeed is returned when neither a primary colour nor an image is given.
var errNoSeed = errors.New("a primary colour (--primary) or an image (--image) is required")

type generateOptions struct {
	dryRun      bool
	preview     bool
	savePalette string
}

func (a *app) newGenerateCmd() *cobra.Command {
	opts := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a palette and write it through output plugins",
		Long: `Generate the palette from seed colours and write it with the selected output plugins.

Seeds come from --primary and --accent, or are extracted from an image with
--image. A missing accent defaults to the primary's complementary hue.

Examples:
  swatch generate -p '#2563eb' -a '#f97316'
  swatch generate -p '#2563eb' -o css,tailwind --output-dir ./theme
  swatch generate -i ~/wallpapers --seed 7 -o all --format hex
  swatch generate -p 'lch(52% 70 278)' --dry-run --preview`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runGenerate(cmd, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "show what would be written without writing files")
	cmd.Flags().BoolVar(&opts.preview, "preview", false, "print a colour preview of the palette")
	cmd.Flags().StringVar(&opts.savePalette, "save-palette", "", "also save the palette as JSON to this file")

	for _, p := range a.manager.Registry().All() {
		p.RegisterFlags(cmd)
	}

	return cmd
}

func (a *app) runGenerate(cmd *cobra.Command, opts *generateOptions) error {
	palette, err := a.buildPalette()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	format, _ := common.ParseFormat(a.cfg.Format)

	if opts.preview {
		if err := preview.Grid(out, palette, preview.DefaultWidth); err != nil {
			return err
		}
		fmt.Fprintln(out)
	}

	if opts.savePalette != "" && !opts.dryRun {
		if err := savePalette(palette, format, opts.savePalette); err != nil {
			return fmt.Errorf("failed to save palette: %w", err)
		}
		a.logger.Debug("saved palette", "path", opts.savePalette)
	}

	plugins, err := a.selectOutputs()
	if err != nil {
		return err
	}

	a.manager.Registry().SetFormat(format)
	for _, p := range plugins {
		if ext, ok := p.(*manager.ExternalOutputPlugin); ok {
			ext.SetDryRun(opts.dryRun)
		}
	}

	run := &generateRun{
		out:       out,
		logger:    a.logger,
		dryRun:    opts.dryRun,
		outputDir: a.cfg.OutputDir,
	}

	ctx := cmd.Context()
	executions := run.prepare(ctx, plugins)
	successCount := run.generate(executions, palette)
	run.postExecute(ctx, executions)

	return run.summary(successCount)
}

// buildPalette resolves the seed colours and runs the generator.
func (a *app) buildPalette() (*colour.Palette, error) {
	primary, accent, err := a.resolveSeeds()
	if err != nil {
		return nil, err
	}

	opts := colour.DefaultOptions()
	opts.TargetContrast = a.cfg.TargetContrast

	gen := colour.NewGeneratorWithOptions(a.logger.Named("colour"), opts)
	palette, err := gen.CreatePalette(primary, accent)
	if err != nil {
		return nil, fmt.Errorf("failed to create palette: %w", err)
	}
	return palette, nil
}

// resolveSeeds returns the primary and accent seeds from the image or the
// configured colours. An image wins when both are given.
func (a *app) resolveSeeds() (colour.Color, colour.Color, error) {
	if a.cfg.Image != "" {
		return a.seedsFromImage(a.cfg.Image)
	}
	if a.cfg.Primary == "" {
		return nil, nil, errNoSeed
	}

	primary, err := colour.ParseColor(a.cfg.Primary)
	if err != nil {
		return nil, nil, fmt.Errorf("primary: %w", err)
	}

	if a.cfg.Accent != "" {
		accent, err := colour.ParseColor(a.cfg.Accent)
		if err != nil {
			return nil, nil, fmt.Errorf("accent: %w", err)
		}
		return primary, accent, nil
	}

	p, err := colour.ToLCH(primary)
	if err != nil {
		return nil, nil, fmt.Errorf("primary: %w", err)
	}
	accent := seed.Complement(p)
	a.logger.Debug("no accent given, using complement", "accent", accent.String())
	return primary, accent, nil
}

func (a *app) seedsFromImage(path string) (colour.Color, colour.Color, error) {
	if err := image.ValidateImagePath(path); err != nil {
		return nil, nil, err
	}
	resolved, err := image.ResolveImagePath(path, a.cfg.Seed)
	if err != nil {
		return nil, nil, err
	}

	img, err := image.NewFileLoader().Load(resolved)
	if err != nil {
		return nil, nil, err
	}

	opts := seed.DefaultOptions()
	opts.Seed = a.cfg.Seed
	result, err := seed.NewExtractor(opts, a.logger.Named("seed")).Extract(img)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to extract seeds from %s: %w", resolved, err)
	}

	a.logger.Debug("extracted seeds",
		"image", resolved,
		"primary", result.Primary.String(),
		"accent", result.Accent.String(),
		"clusters", len(result.Clusters))

	return result.Primary, result.Accent, nil
}

// selectOutputs resolves the configured outputs. "all" selects every
// enabled plugin.
func (a *app) selectOutputs() ([]output.Plugin, error) {
	names := a.cfg.Outputs
	if slices.Contains(names, outputAll) {
		names = nil
	}

	plugins, err := a.manager.Select(names)
	if err != nil {
		return nil, fmt.Errorf("%w (available: %v)", err, a.manager.Registry().List())
	}
	if len(plugins) == 0 {
		return nil, fmt.Errorf("no output plugins selected (all requested plugins are disabled)")
	}
	return plugins, nil
}

// savePalette writes the palette in the plugin wire format.
func savePalette(p *colour.Palette, format common.Format, path string) error {
	data, err := json.MarshalIndent(common.PaletteData(p, format), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644) // #nosec G306 - palette output is not sensitive
}
