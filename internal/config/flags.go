package config

import (
	"github.com/spf13/pflag"

	"github.com/jmylchreest/swatch/internal/colour"
)

// Flag names bound by BindFlags.
const (
	FlagPrimary        = "primary"
	FlagAccent         = "accent"
	FlagImage          = "image"
	FlagSeed           = "seed"
	FlagOutputs        = "outputs"
	FlagOutputDir      = "output-dir"
	FlagFormat         = "format"
	FlagTargetContrast = "target-contrast"
)

// BindFlags registers the config flags on fs, writing into c. Flags are
// registered before the file is read, so c only collects flag values;
// ApplyFlags copies the ones the user actually set.
func (c *Config) BindFlags(fs *pflag.FlagSet) {
	fs.StringVarP(&c.Primary, FlagPrimary, "p", "", "primary seed colour (hex, lch() or L,C,H)")
	fs.StringVarP(&c.Accent, FlagAccent, "a", "", "accent seed colour (hex, lch() or L,C,H)")
	fs.StringVarP(&c.Image, FlagImage, "i", "", "derive seeds from an image instead of --primary/--accent")
	fs.Int64Var(&c.Seed, FlagSeed, 1, "random seed for image clustering")
	fs.StringSliceVarP(&c.Outputs, FlagOutputs, "o", nil, "output plugins to run (comma-separated)")
	fs.StringVar(&c.OutputDir, FlagOutputDir, "", "write all outputs to this directory")
	fs.StringVarP(&c.Format, FlagFormat, "f", "", "colour value format: lch, hex or rgb")
	fs.Float64Var(&c.TargetContrast, FlagTargetContrast, colour.WCAGAA, "contrast target for brand seeds")
}

// ApplyFlags overlays the values from flags whose names were set on fs.
func (c *Config) ApplyFlags(fs *pflag.FlagSet, flags *Config) {
	if fs == nil || flags == nil {
		return
	}
	changed := func(name string) bool {
		f := fs.Lookup(name)
		return f != nil && f.Changed
	}

	if changed(FlagPrimary) {
		c.Primary = flags.Primary
	}
	if changed(FlagAccent) {
		c.Accent = flags.Accent
	}
	if changed(FlagImage) {
		c.Image = flags.Image
	}
	if changed(FlagSeed) {
		c.Seed = flags.Seed
	}
	if changed(FlagOutputs) {
		c.Outputs = flags.Outputs
	}
	if changed(FlagOutputDir) {
		c.OutputDir = flags.OutputDir
	}
	if changed(FlagFormat) {
		c.Format = flags.Format
	}
	if changed(FlagTargetContrast) {
		c.TargetContrast = flags.TargetContrast
	}
}

// Resolve loads the config at path, then applies the environment and the
// flags set on fs, and validates the result.
func Resolve(path string, fs *pflag.FlagSet, flags *Config) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv()
	cfg.ApplyFlags(fs, flags)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
