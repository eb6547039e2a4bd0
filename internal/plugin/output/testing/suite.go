// Package testing provides shared test helpers for output plugins.
package testing

import (
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/plugin/output"
)

// TestConfig holds configuration for running plugin tests.
type TestConfig struct {
	ExpectedName         string   // Plugin name
	ExpectedFiles        []string // Files that Generate() should return
	ExpectedDirSubstring string   // Optional substring of DefaultOutputDir
}

// CreateTestPalette builds the standard palette from #2563eb and #f97316.
func CreateTestPalette(t *testing.T) *colour.Palette {
	t.Helper()
	p, err := colour.CreatePalette(colour.Hex("#2563eb"), colour.Hex("#f97316"))
	if err != nil {
		t.Fatalf("CreatePalette() error = %v", err)
	}
	return p
}

// IsolateTemplates points the user config directory at a temporary
// directory so local template overrides cannot leak into tests.
func IsolateTemplates(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
}

// TestBasicInterface tests the methods every plugin must implement.
func TestBasicInterface(t *testing.T, p output.Plugin, config TestConfig) {
	t.Run("Name", func(t *testing.T) {
		if p.Name() != config.ExpectedName {
			t.Errorf("Name() = %s, want %s", p.Name(), config.ExpectedName)
		}
	})

	t.Run("Description", func(t *testing.T) {
		if p.Description() == "" {
			t.Error("Description() should not be empty")
		}
	})

	t.Run("DefaultOutputDir", func(t *testing.T) {
		dir := p.DefaultOutputDir()
		if dir == "" {
			t.Error("DefaultOutputDir() should not be empty")
		}
		if config.ExpectedDirSubstring != "" && !strings.Contains(dir, config.ExpectedDirSubstring) {
			t.Errorf("DefaultOutputDir() = %s, should contain %q", dir, config.ExpectedDirSubstring)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		if err := p.Validate(); err != nil {
			t.Errorf("Validate() error = %v, want nil", err)
		}
	})
}

// TestGeneration tests Generate with the standard palette and with nil.
func TestGeneration(t *testing.T, p output.Plugin, expectedFiles []string) {
	t.Run("Generate", func(t *testing.T) {
		IsolateTemplates(t)
		files, err := p.Generate(CreateTestPalette(t))
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}

		if len(files) != len(expectedFiles) {
			t.Fatalf("Generate() returned %d files, want %d", len(files), len(expectedFiles))
		}
		for _, name := range expectedFiles {
			if len(files[name]) == 0 {
				t.Errorf("Generate() did not return %s", name)
			}
		}
	})

	t.Run("GenerateNilPalette", func(t *testing.T) {
		if _, err := p.Generate(nil); err == nil {
			t.Error("Generate() with nil palette should return error")
		}
	})
}

// TestFlags tests that the plugin registers its namespaced output-dir flag.
func TestFlags(t *testing.T, p output.Plugin, expectedFlagPrefix string) {
	t.Run("RegisterFlags", func(t *testing.T) {
		cmd := &cobra.Command{Use: "test"}
		p.RegisterFlags(cmd)

		expected := expectedFlagPrefix + ".output-dir"
		if cmd.Flags().Lookup(expected) == nil {
			t.Errorf("RegisterFlags() did not register %s flag", expected)
		}
	})
}

// TestPreExecuteHook tests the PreExecute hook if the plugin implements it.
func TestPreExecuteHook(t *testing.T, p output.Plugin) {
	hook, ok := p.(output.PreExecuteHook)
	if !ok {
		return
	}

	t.Run("PreExecute", func(t *testing.T) {
		if _, _, err := hook.PreExecute(context.Background()); err != nil {
			t.Errorf("PreExecute() unexpected error = %v", err)
		}
	})
}

// RunAllTests runs all standard tests for a plugin.
func RunAllTests(t *testing.T, p output.Plugin, config TestConfig) {
	TestBasicInterface(t, p, config)
	TestGeneration(t, p, config.ExpectedFiles)
	TestFlags(t, p, config.ExpectedName)
	TestPreExecuteHook(t, p)
}
