package cli_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmylchreest/cullax/internal/cli"
	"github.com/jmylchreest/cullax/internal/colour"
)

// writeTestImage writes a PNG split between a dark blue and a pale grey.
func writeTestImage(t *testing.T) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for y := range 64 {
		for x := range 64 {
			c := color.RGBA{R: 40, G: 64, B: 128, A: 255}
			if x >= 40 {
				c = color.RGBA{R: 220, G: 220, B: 225, A: 255}
			}
			img.Set(x, y, c)
		}
	}

	path := filepath.Join(t.TempDir(), "wallpaper.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create test image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("Failed to encode test image: %v", err)
	}
	return path
}

// run executes the root command with args and returns stdout, stderr and the error.
func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var outBuf, errBuf bytes.Buffer
	rootCmd := cli.NewRootCmd()
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "version")
	if err != nil {
		t.Fatalf("version failed: %v", err)
	}
	if !strings.Contains(out, "cullax") {
		t.Errorf("version output missing program name: %q", out)
	}

	out, _, err = run(t, "version", "--json")
	if err != nil {
		t.Fatalf("version --json failed: %v", err)
	}
	if !json.Valid([]byte(out)) {
		t.Errorf("version --json is not JSON: %q", out)
	}
}

func TestDeriveCommand(t *testing.T) {
	t.Run("Table", func(t *testing.T) {
		out, _, err := run(t, "derive", "#284080")
		if err != nil {
			t.Fatalf("derive failed: %v", err)
		}
		for _, role := range colour.Roles() {
			if !strings.Contains(out, string(role)) {
				t.Errorf("table missing role %s:\n%s", role, out)
			}
		}
		if !strings.Contains(out, "Branch: dark") {
			t.Errorf("expected dark branch:\n%s", out)
		}
	})

	t.Run("Triplet", func(t *testing.T) {
		out, _, err := run(t, "derive", "--format", "triplet", "40,64,128")
		if err != nil {
			t.Fatalf("derive failed: %v", err)
		}
		lines := strings.Split(strings.TrimSpace(out), "\n")
		if len(lines) != len(colour.Roles()) {
			t.Fatalf("got %d lines, want %d:\n%s", len(lines), len(colour.Roles()), out)
		}
		if !strings.HasPrefix(lines[0], "panel_background=") {
			t.Errorf("first line = %q", lines[0])
		}
	})

	t.Run("JSONMatchesEngine", func(t *testing.T) {
		out, _, err := run(t, "derive", "-f", "json", "40,64,128")
		if err != nil {
			t.Fatalf("derive failed: %v", err)
		}
		var doc colour.PaletteJSON
		if err := json.Unmarshal([]byte(out), &doc); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		want := colour.Derive(colour.NewBaseColor(colour.RGB{R: 40, G: 64, B: 128}))
		fg, _ := want.Get(colour.RoleForeground)
		if got := doc.Roles[string(colour.RoleForeground)].Triplet; got != fg.Triplet() {
			t.Errorf("foreground = %s, want %s", got, fg.Triplet())
		}
	})

	t.Run("ReferenceSelectsBranch", func(t *testing.T) {
		out, _, err := run(t, "derive", "--reference", "240,240,240", "40,64,128")
		if err != nil {
			t.Fatalf("derive failed: %v", err)
		}
		if !strings.Contains(out, "Branch: light") {
			t.Errorf("expected light branch from reference:\n%s", out)
		}
	})

	t.Run("InvalidColour", func(t *testing.T) {
		if _, _, err := run(t, "derive", "300,0,0"); err == nil {
			t.Error("expected error for out-of-range triplet")
		}
	})

	t.Run("InvalidFormat", func(t *testing.T) {
		_, _, err := run(t, "derive", "-f", "yaml", "40,64,128")
		if !errors.Is(err, colour.ErrConfiguration) {
			t.Errorf("error = %v, want configuration error", err)
		}
	})
}

func TestExtractCommand(t *testing.T) {
	imagePath := writeTestImage(t)

	t.Run("JSON", func(t *testing.T) {
		out, _, err := run(t, "extract", "-s", "quantize", "-c", "2", "-f", "json", imagePath)
		if err != nil {
			t.Fatalf("extract failed: %v", err)
		}
		var doc struct {
			Base       colour.RGB        `json:"base"`
			Candidates colour.Candidates `json:"candidates"`
		}
		if err := json.Unmarshal([]byte(out), &doc); err != nil {
			t.Fatalf("invalid JSON: %v\n%s", err, out)
		}
		if len(doc.Candidates) == 0 || len(doc.Candidates) > 2 {
			t.Fatalf("got %d candidates, want 1-2", len(doc.Candidates))
		}
		if doc.Base.Sum() > doc.Candidates[0].Colour.Sum() {
			t.Errorf("base %v is not the darkest candidate", doc.Base)
		}
	})

	t.Run("Directory", func(t *testing.T) {
		out, _, err := run(t, "extract", "-f", "triplet", filepath.Dir(imagePath))
		if err != nil {
			t.Fatalf("extract on directory failed: %v", err)
		}
		if strings.TrimSpace(out) == "" {
			t.Error("no candidates printed")
		}
	})

	t.Run("BaseMarker", func(t *testing.T) {
		for _, format := range []string{"triplet", "hex"} {
			t.Run(format, func(t *testing.T) {
				out, _, err := run(t, "extract", "-s", "quantize", "-c", "2", "-f", format, imagePath)
				if err != nil {
					t.Fatalf("extract failed: %v", err)
				}
				lines := strings.Split(strings.TrimSpace(out), "\n")
				if len(lines) < 2 {
					t.Fatalf("got %d lines, want candidates plus base: %q", len(lines), out)
				}
				base, ok := strings.CutPrefix(lines[len(lines)-1], "base=")
				if !ok {
					t.Fatalf("last line %q has no base= marker", lines[len(lines)-1])
				}
				found := false
				for _, line := range lines[:len(lines)-1] {
					if line == base {
						found = true
					}
				}
				if !found {
					t.Errorf("base %q is not among candidates %q", base, lines[:len(lines)-1])
				}
			})
		}
	})

	t.Run("InvalidStrategy", func(t *testing.T) {
		_, _, err := run(t, "extract", "-s", "octree", imagePath)
		if !errors.Is(err, colour.ErrConfiguration) {
			t.Errorf("error = %v, want configuration error", err)
		}
	})

	t.Run("NotAnImage", func(t *testing.T) {
		notes := filepath.Join(t.TempDir(), "notes.txt")
		if err := os.WriteFile(notes, []byte("plain text"), 0o600); err != nil {
			t.Fatal(err)
		}
		_, _, err := run(t, "extract", notes)
		if !errors.Is(err, colour.ErrImageRead) || !strings.Contains(err.Error(), "unsupported or invalid image format") {
			t.Errorf("error = %v, want unsupported image format", err)
		}
	})

	t.Run("MissingImage", func(t *testing.T) {
		_, _, err := run(t, "extract", filepath.Join(t.TempDir(), "missing.png"))
		if !errors.Is(err, colour.ErrImageRead) {
			t.Errorf("error = %v, want image read error", err)
		}
	})
}

func TestGenerateCommand(t *testing.T) {
	imagePath := writeTestImage(t)

	t.Run("DryRun", func(t *testing.T) {
		out, _, err := run(t, "generate", "--dry-run", "--outputs", "jsonfile,plasma", "--output-dir", "/nonexistent", imagePath)
		if err != nil {
			t.Fatalf("generate failed: %v", err)
		}
		for _, want := range []string{
			filepath.Join("/nonexistent", "jsonfile", "palette.json"),
			filepath.Join("/nonexistent", "plasma", "colors"),
			filepath.Join("/nonexistent", "plasma", "kdeglobals"),
		} {
			if !strings.Contains(out, "Would write: "+want) {
				t.Errorf("missing %s in output:\n%s", want, out)
			}
		}
		if strings.Contains(out, "aurorae") {
			t.Errorf("aurorae ran although not selected:\n%s", out)
		}
	})

	t.Run("WritesFiles", func(t *testing.T) {
		dir := t.TempDir()
		if _, _, err := run(t, "generate", "-q", "--outputs", "aurorae", "--aurorae.output-dir", dir, imagePath); err != nil {
			t.Fatalf("generate failed: %v", err)
		}
		content, err := os.ReadFile(filepath.Join(dir, "decoration.svg"))
		if err != nil {
			t.Fatalf("decoration.svg not written: %v", err)
		}
		if strings.Contains(string(content), "TEMPLAT") {
			t.Error("placeholder left in decoration.svg")
		}

		// A second run keeps the previous file as a backup.
		if _, _, err := run(t, "generate", "-q", "--outputs", "aurorae", "--aurorae.output-dir", dir, imagePath); err != nil {
			t.Fatalf("second generate failed: %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "decoration.svg.backup")); err != nil {
			t.Errorf("backup not created: %v", err)
		}
	})

	t.Run("UnknownOutput", func(t *testing.T) {
		_, _, err := run(t, "generate", "--dry-run", "--outputs", "kitty", imagePath)
		if !errors.Is(err, colour.ErrConfiguration) {
			t.Errorf("error = %v, want configuration error", err)
		}
	})

	t.Run("InvalidImage", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.png")
		if err := os.WriteFile(bad, []byte("not an image"), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, _, err := run(t, "generate", "--dry-run", bad); !errors.Is(err, colour.ErrImageRead) {
			t.Errorf("error = %v, want image read error", err)
		}
	})
}

func TestDescribeCommand(t *testing.T) {
	out, _, err := run(t, "describe", "250,5,5")
	if err != nil {
		t.Fatalf("describe failed: %v", err)
	}
	labelled := fmt.Sprintf("%-20s %-12s %s", "250,5,5", "250,5,5", "#fa0505")
	for _, want := range []string{labelled, "RGB:     250,5,5", "Hex:     #fa0505", "Name:    red"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
}

func TestColourOutputDisabledWithoutTerminal(t *testing.T) {
	for _, args := range [][]string{
		{"describe", "250,5,5"},
		{"derive", "--preview", "40,64,128"},
		{"--no-colour", "derive", "--preview", "40,64,128"},
	} {
		out, _, err := run(t, args...)
		if err != nil {
			t.Fatalf("%v failed: %v", args, err)
		}
		if strings.Contains(out, "\x1b[") {
			t.Errorf("%v wrote colour escapes to a non-terminal:\n%q", args, out)
		}
		if !colour.DisableColourOutput {
			t.Errorf("%v left colour output enabled", args)
		}
	}
}

func TestTemplatesCommand(t *testing.T) {
	t.Run("List", func(t *testing.T) {
		out, _, err := run(t, "templates", "list")
		if err != nil {
			t.Fatalf("templates list failed: %v", err)
		}
		for _, want := range []string{"Plugin: plasma", "colors.tmpl", "kdeglobals.tmpl", "Plugin: aurorae"} {
			if !strings.Contains(out, want) {
				t.Errorf("missing %q in:\n%s", want, out)
			}
		}
	})

	t.Run("Dump", func(t *testing.T) {
		dir := t.TempDir()
		if _, _, err := run(t, "templates", "dump", "-o", "plasma", "-l", dir); err != nil {
			t.Fatalf("templates dump failed: %v", err)
		}
		if _, err := os.Stat(filepath.Join(dir, "plasma", "colors.tmpl")); err != nil {
			t.Errorf("colors.tmpl not dumped: %v", err)
		}

		out, _, err := run(t, "templates", "dump", "-o", "plasma", "-l", dir)
		if err != nil {
			t.Fatalf("second dump failed: %v", err)
		}
		if !strings.Contains(out, "No templates were dumped") {
			t.Errorf("existing templates overwritten without --force:\n%s", out)
		}
	})

	t.Run("UnknownPlugin", func(t *testing.T) {
		if _, _, err := run(t, "templates", "list", "-o", "kitty"); err == nil {
			t.Error("expected error for unknown plugin")
		}
	})
}

func TestLogLevelEnv(t *testing.T) {
	t.Setenv(cli.EnvLogLevel, "chatty")
	_, _, err := run(t, "derive", "40,64,128")
	if !errors.Is(err, colour.ErrConfiguration) {
		t.Errorf("error = %v, want configuration error", err)
	}
}
