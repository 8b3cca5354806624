// Package testing provides shared test utilities for output plugins.
package testing

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/cullax/internal/colour"
	"github.com/jmylchreest/cullax/internal/plugin/output"
)

// TestBasicInterface tests the basic plugin interface methods that all plugins must implement.
func TestBasicInterface(t *testing.T, p output.Plugin, expectedName string, expectedDirSubstring string) {
	t.Run("Name", func(t *testing.T) {
		if p.Name() != expectedName {
			t.Errorf("Name() = %s, want %s", p.Name(), expectedName)
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
		// Use expectedDirSubstring if provided, otherwise fall back to expectedName
		checkString := expectedDirSubstring
		if checkString == "" {
			checkString = expectedName
		}
		if !strings.Contains(dir, checkString) {
			t.Errorf("DefaultOutputDir() = %s, should contain '%s'", dir, checkString)
		}
	})

	t.Run("Validate", func(t *testing.T) {
		if err := p.Validate(); err != nil {
			t.Errorf("Validate() error = %v, want nil", err)
		}
	})
}

// TestGeneration tests the Generate method against dark, light and monochrome palettes.
func TestGeneration(t *testing.T, p output.Plugin, expectedFiles []string) {
	for _, branch := range []colour.Branch{colour.BranchDark, colour.BranchLight} {
		t.Run("Generate_"+branch.String(), func(t *testing.T) {
			files, err := p.Generate(CreateTestThemeData(branch))
			if err != nil {
				t.Fatalf("Generate() error = %v", err)
			}

			if len(files) != len(expectedFiles) {
				t.Fatalf("Generate() returned %d files, want %d", len(files), len(expectedFiles))
			}

			for _, expectedFile := range expectedFiles {
				content, ok := files[expectedFile]
				if !ok {
					t.Errorf("Generate() did not return %s", expectedFile)
					continue
				}
				if len(content) == 0 {
					t.Errorf("Generate() returned empty %s", expectedFile)
				}
			}
		})
	}

	t.Run("GenerateMonochrome", func(t *testing.T) {
		base := colour.NewBaseColor(colour.RGB{R: 128, G: 128, B: 128})
		files, err := p.Generate(colour.NewThemeData(colour.Derive(base), "", "grey"))
		if err != nil {
			t.Fatalf("Generate() error = %v", err)
		}
		if len(files) == 0 {
			t.Error("Generate() returned no files")
		}
	})

	t.Run("GenerateNilThemeData", func(t *testing.T) {
		if _, err := p.Generate(nil); err == nil {
			t.Error("Generate() with nil theme data should return error")
		}
	})
}

// TestLoggingPlugin checks a plugin accepts a logger if it implements output.LoggingPlugin.
func TestLoggingPlugin(t *testing.T, p any) {
	lp, ok := p.(output.LoggingPlugin)
	if !ok {
		t.Log("plugin does not implement SetLogger")
		return
	}

	t.Run("SetLogger", func(_ *testing.T) {
		// Just test that it doesn't panic.
		lp.SetLogger(hclog.NewNullLogger())
		lp.SetLogger(nil)
	})
}

// TestFlags tests plugin-specific flag registration.
func TestFlags(t *testing.T, p output.Plugin, expectedFlagPrefix string) {
	t.Run("RegisterFlags", func(t *testing.T) {
		cmd := &cobra.Command{
			Use: "test",
		}

		p.RegisterFlags(cmd)

		expectedFlag := expectedFlagPrefix + ".output-dir"
		if cmd.Flags().Lookup(expectedFlag) == nil {
			t.Errorf("RegisterFlags() did not register %s flag", expectedFlag)
		}
	})
}

// TestTemplateProvider checks that plugins exposing templates expose at least one.
func TestTemplateProvider(t *testing.T, p any) {
	tp, ok := p.(output.TemplateProvider)
	if !ok {
		t.Log("plugin does not provide templates")
		return
	}

	t.Run("Templates", func(t *testing.T) {
		entries, err := fs.ReadDir(tp.Templates(), ".")
		if err != nil {
			t.Fatalf("ReadDir() error = %v", err)
		}
		if len(entries) == 0 {
			t.Error("Templates() is empty")
		}
	})
}

// CreateTestThemeData derives a palette on the requested branch from a saturated blue base.
func CreateTestThemeData(branch colour.Branch) *colour.ThemeData {
	base := colour.RGB{R: 40, G: 60, B: 160}
	if branch == colour.BranchLight {
		base = colour.RGB{R: 180, G: 200, B: 240}
	}
	return colour.NewThemeData(colour.Derive(colour.NewBaseColor(base)), "/tmp/wallpaper.png", "test")
}

// RunAllTests runs all standard tests for a plugin.
func RunAllTests(t *testing.T, p output.Plugin, config TestConfig) {
	TestBasicInterface(t, p, config.ExpectedName, config.ExpectedDirSubstring)
	TestGeneration(t, p, config.ExpectedFiles)
	TestLoggingPlugin(t, p)
	TestFlags(t, p, config.ExpectedName)
	TestTemplateProvider(t, p)
}

// TestConfig holds configuration for running plugin tests.
type TestConfig struct {
	ExpectedName         string   // Plugin name
	ExpectedFiles        []string // Files that Generate() should return
	ExpectedDirSubstring string   // Optional: substring to check in DefaultOutputDir (defaults to ExpectedName if empty)
}
