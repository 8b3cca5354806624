package template

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"colors.tmpl":    {Data: []byte("[Colors:Window]\n")},
		"decoration.svg": {Data: []byte("<svg fill=\"TEMPLAT\"/>")},
		"README.md":      {Data: []byte("not a template")},
	}
}

func newTestLoader(t *testing.T) *Loader {
	t.Helper()
	return New("testplugin", testFS()).WithCustomBase(t.TempDir())
}

func TestLoader_Load(t *testing.T) {
	loader := newTestLoader(t)

	t.Run("loads embedded template when no custom exists", func(t *testing.T) {
		content, fromCustom, err := loader.Load("colors.tmpl")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if fromCustom {
			t.Error("expected embedded template, got custom")
		}
		if string(content) != "[Colors:Window]\n" {
			t.Errorf("unexpected content %q", content)
		}
	})

	t.Run("loads custom template when it exists", func(t *testing.T) {
		customContent := []byte("# custom\n")
		if err := os.MkdirAll(loader.CustomDir(), 0o750); err != nil {
			t.Fatalf("failed to create custom dir: %v", err)
		}
		if err := os.WriteFile(loader.CustomPath("colors.tmpl"), customContent, 0o600); err != nil {
			t.Fatalf("failed to write custom template: %v", err)
		}

		content, fromCustom, err := loader.Load("colors.tmpl")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !fromCustom {
			t.Error("expected custom template, got embedded")
		}
		if string(content) != string(customContent) {
			t.Errorf("expected custom content %q, got %q", customContent, content)
		}
	})

	t.Run("returns error for non-existent template", func(t *testing.T) {
		if _, _, err := loader.Load("nonexistent.tmpl"); err == nil {
			t.Error("expected error for non-existent template")
		}
	})
}

func TestLoader_Paths(t *testing.T) {
	loader := New("plasma", testFS()).WithCustomBase("/home/user/.config/cullax/templates")

	if got, want := loader.CustomPath("colors.tmpl"), "/home/user/.config/cullax/templates/plasma/colors.tmpl"; got != want {
		t.Errorf("CustomPath() = %q, want %q", got, want)
	}
	if got, want := loader.CustomDir(), "/home/user/.config/cullax/templates/plasma"; got != want {
		t.Errorf("CustomDir() = %q, want %q", got, want)
	}
}

func TestDefaultCustomBase(t *testing.T) {
	if got := DefaultCustomBase(); !strings.HasSuffix(got, filepath.Join(".config", "cullax", "templates")) {
		t.Errorf("DefaultCustomBase() = %q", got)
	}
}

func TestLoader_ListEmbeddedTemplates(t *testing.T) {
	templates, err := newTestLoader(t).ListEmbeddedTemplates()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(templates) != 2 {
		t.Errorf("ListEmbeddedTemplates() = %v, want colors.tmpl and decoration.svg", templates)
	}
}

func TestLoader_DumpTemplate(t *testing.T) {
	loader := newTestLoader(t)

	if err := loader.DumpTemplate("colors.tmpl", false); err != nil {
		t.Fatalf("DumpTemplate() error = %v", err)
	}
	if !loader.HasCustomTemplate("colors.tmpl") {
		t.Error("custom template not created")
	}

	if err := loader.DumpTemplate("colors.tmpl", false); !errors.Is(err, ErrTemplateExists) {
		t.Errorf("second DumpTemplate() error = %v, want ErrTemplateExists", err)
	}
	if err := loader.DumpTemplate("colors.tmpl", true); err != nil {
		t.Errorf("forced DumpTemplate() error = %v", err)
	}
	if err := loader.DumpTemplate("nonexistent.tmpl", false); err == nil {
		t.Error("expected error for non-existent template")
	}
}

func TestLoader_DumpAllTemplates(t *testing.T) {
	loader := newTestLoader(t)

	if err := loader.DumpTemplate("colors.tmpl", false); err != nil {
		t.Fatalf("DumpTemplate() error = %v", err)
	}

	dumped, err := loader.DumpAllTemplates(false)
	if !errors.Is(err, ErrTemplateExists) {
		t.Errorf("DumpAllTemplates() error = %v, want ErrTemplateExists", err)
	}
	if len(dumped) != 1 || !strings.HasSuffix(dumped[0], "decoration.svg") {
		t.Errorf("DumpAllTemplates() dumped %v, want only decoration.svg", dumped)
	}

	dumped, err = loader.DumpAllTemplates(true)
	if err != nil {
		t.Fatalf("forced DumpAllTemplates() error = %v", err)
	}
	if len(dumped) != 2 {
		t.Errorf("forced DumpAllTemplates() dumped %d, want 2", len(dumped))
	}
}

func TestLoader_GetInfo(t *testing.T) {
	loader := newTestLoader(t)

	info := loader.GetInfo("colors.tmpl")
	if !info.EmbeddedExists || info.CustomExists {
		t.Errorf("GetInfo() = %+v, want embedded only", info)
	}

	if err := loader.DumpTemplate("colors.tmpl", false); err != nil {
		t.Fatal(err)
	}
	info = loader.GetInfo("colors.tmpl")
	if !info.EmbeddedExists || !info.CustomExists {
		t.Errorf("GetInfo() = %+v, want embedded and custom", info)
	}

	if info := loader.GetInfo("missing.tmpl"); info.EmbeddedExists {
		t.Error("GetInfo(missing) reports embedded template")
	}
}
