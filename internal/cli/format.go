package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/cullax/internal/colour"
)

// Output formats shared by extract and derive.
const (
	formatTable   = "table"
	formatTriplet = "triplet"
	formatHex     = "hex"
	formatJSON    = "json"
)

var validFormats = []string{formatTable, formatTriplet, formatHex, formatJSON}

func validateFormat(format string) error {
	for _, f := range validFormats {
		if format == f {
			return nil
		}
	}
	return &colour.ConfigurationError{
		Field:  "format",
		Value:  format,
		Reason: fmt.Sprintf("supported: %s", strings.Join(validFormats, ", ")),
	}
}

// formatPalette renders a derived palette in the requested format.
func formatPalette(p *colour.Palette, format string, preview bool) (string, error) {
	switch format {
	case formatTable:
		return paletteTable(p, preview), nil
	case formatTriplet, formatHex:
		var sb strings.Builder
		for role, c := range p.All() {
			value := c.Triplet()
			if format == formatHex {
				value = c.Hex()
			}
			fmt.Fprintf(&sb, "%s=%s\n", role, value)
		}
		return sb.String(), nil
	case formatJSON:
		data, err := p.ToJSON()
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(data) + "\n", nil
	default:
		return "", validateFormat(format)
	}
}

// paletteTable renders one row per role in display order.
func paletteTable(p *colour.Palette, preview bool) string {
	headers := []string{"ROLE", "TRIPLET", "HEX", "NAME"}
	if preview {
		headers = append(headers, "PREVIEW")
	}

	table := NewTable(headers)
	for role, c := range p.All() {
		row := []string{string(role), c.Triplet(), c.Hex(), colour.ClosestNamedColour(c).Name}
		if preview {
			row = append(row, colour.ColourPreviewWithText(c, string(role), 20))
		}
		table.AddRow(row)
	}

	return fmt.Sprintf("Branch: %s  Monochrome: %t\n\n%s", p.Branch(), p.Monochrome(), table.Render())
}

// candidatesJSON is the extract command's JSON document.
type candidatesJSON struct {
	Path       string            `json:"path,omitempty"`
	Seed       int64             `json:"seed"`
	Base       colour.RGB        `json:"base"`
	Candidates colour.Candidates `json:"candidates"`
}

// formatCandidates renders extracted candidates, marking the selected base.
func formatCandidates(path string, seed int64, base colour.RGB, candidates colour.Candidates, format string, preview bool) (string, error) {
	switch format {
	case formatTable:
		headers := []string{"#", "TRIPLET", "HEX", "WEIGHT", "BASE"}
		if preview {
			headers = append(headers, "PREVIEW")
		}
		table := NewTable(headers)
		for i, cand := range candidates {
			marker := ""
			if cand.Colour == base {
				marker = "*"
			}
			row := []string{
				fmt.Sprintf("%d", i+1),
				cand.Colour.Triplet(),
				cand.Colour.Hex(),
				fmt.Sprintf("%.1f%%", cand.Weight*100),
				marker,
			}
			if preview {
				row = append(row, colour.ColourPreview(cand.Colour, 8))
			}
			table.AddRow(row)
		}
		return table.Render(), nil
	case formatTriplet, formatHex:
		var sb strings.Builder
		for _, cand := range candidates {
			if format == formatHex {
				sb.WriteString(cand.Colour.Hex())
			} else {
				sb.WriteString(cand.Colour.Triplet())
			}
			sb.WriteString("\n")
		}
		if format == formatHex {
			fmt.Fprintf(&sb, "base=%s\n", base.Hex())
		} else {
			fmt.Fprintf(&sb, "base=%s\n", base.Triplet())
		}
		return sb.String(), nil
	case formatJSON:
		data, err := json.MarshalIndent(candidatesJSON{Path: path, Seed: seed, Base: base, Candidates: candidates}, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to convert to JSON: %w", err)
		}
		return string(data) + "\n", nil
	default:
		return "", validateFormat(format)
	}
}

// writeOutput writes content to path, or to the command's stdout when path is empty.
func writeOutput(cmd *cobra.Command, path, content string) error {
	if path == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), content)
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// wantPreview reports whether colour previews were requested and colour output is enabled.
func wantPreview(requested bool) bool {
	return requested && !colour.DisableColourOutput
}
