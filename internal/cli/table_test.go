package cli

import (
	"strings"
	"testing"

	"github.com/jmylchreest/cullax/internal/colour"
)

func TestTableAddRow(t *testing.T) {
	table := NewTable([]string{"Role", "Triplet"})

	table.AddRow([]string{"foreground", "240,240,240"})
	table.AddRow([]string{"midlight"})
	table.AddRow([]string{"highlight", "1,2,3", "extra"})

	if len(table.rows) != 3 {
		t.Fatalf("Expected 3 rows, got %d", len(table.rows))
	}
	if len(table.rows[1]) != 2 || table.rows[1][1] != "" {
		t.Errorf("short row not padded: %q", table.rows[1])
	}
	if len(table.rows[2]) != 2 {
		t.Errorf("long row not truncated: %q", table.rows[2])
	}
}

func TestTableRender(t *testing.T) {
	table := NewTable([]string{"Role", "Triplet", "Hex"})
	table.AddRow([]string{"panel_background", "20,24,40", "#141828"})
	table.AddRow([]string{"foreground", "240,240,240", "#f0f0f0"})

	lines := strings.Split(table.Render(), "\n")
	if len(lines) != 5 { // header, separator, two rows, trailing newline
		t.Fatalf("Expected 5 lines, got %d: %q", len(lines), lines)
	}
	if !strings.HasPrefix(lines[1], strings.Repeat("-", len("panel_background"))+"  ") {
		t.Errorf("separator does not match widest cell: %q", lines[1])
	}
	for _, line := range lines[:4] {
		if len(line) != len(lines[0]) {
			t.Errorf("line %q has length %d, want %d", line, len(line), len(lines[0]))
		}
	}
}

func TestTableRenderEmpty(t *testing.T) {
	if out := (&Table{}).Render(); out != "" {
		t.Errorf("Expected empty string for empty table, got: %q", out)
	}
	if out := NewTable([]string{"Role"}).Render(); out != "Role\n----\n" {
		t.Errorf("Render() without rows = %q", out)
	}
}

func TestTableColourCellsAlign(t *testing.T) {
	swatch := colour.ColourPreview(colour.RGB{R: 255}, 4)

	table := NewTable([]string{"Swatch", "Role"})
	table.AddRow([]string{swatch, "highlight"})
	table.AddRow([]string{"", "foreground"})

	lines := strings.Split(table.Render(), "\n")
	if got, want := visibleLen(lines[2]), visibleLen(lines[0]); got != want {
		t.Errorf("coloured row is %d columns wide, header is %d", got, want)
	}
	if strings.Index(lines[0], "Role") != strings.Index(lines[3], "foreground") {
		t.Errorf("columns misaligned:\n%s\n%s", lines[0], lines[3])
	}
}

func TestTableWrapsLongCells(t *testing.T) {
	table := NewTable([]string{"Plugin", "Description"})
	table.SetColumnMaxWidth(1, 20)
	table.AddRow([]string{"aurorae", "Generate an Aurorae window decoration SVG tinted with the focus colour"})

	out := table.Render()
	for _, line := range strings.Split(strings.TrimSuffix(out, "\n"), "\n") {
		if visibleLen(line) > len("aurorae")+2+20 {
			t.Errorf("line exceeds wrapped width: %q", line)
		}
	}
	if !strings.Contains(out, "focus colour") {
		t.Errorf("wrapped text lost words:\n%s", out)
	}
}

func TestPadRight(t *testing.T) {
	red := colour.ColourPreview(colour.RGB{R: 255}, 2)
	tests := []struct {
		input    string
		width    int
		expected string
	}{
		{"test", 10, "test      "},
		{"hello", 5, "hello"},
		{"world", 3, "world"},
		{"", 5, "     "},
		{red, 4, red + "  "},
	}

	for _, tt := range tests {
		if result := padRight(tt.input, tt.width); result != tt.expected {
			t.Errorf("padRight(%q, %d) = %q, want %q", tt.input, tt.width, result, tt.expected)
		}
	}
}

func TestWrapText(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  []string
	}{
		{"short", 10, []string{"short"}},
		{"two words here", 9, []string{"two words", "here"}},
		{"abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
	}

	for _, tt := range tests {
		got := wrapText(tt.text, tt.width)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("wrapText(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}
