package colour

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestRGBFormats(t *testing.T) {
	tests := []struct {
		name        string
		rgb         RGB
		wantTriplet string
		wantHex     string
		wantString  string
	}{
		{
			name:        "mixed",
			rgb:         RGB{R: 128, G: 64, B: 32},
			wantTriplet: "128,64,32",
			wantHex:     "#804020",
			wantString:  "rgb(128, 64, 32)",
		},
		{
			name:        "black",
			rgb:         RGB{},
			wantTriplet: "0,0,0",
			wantHex:     "#000000",
			wantString:  "rgb(0, 0, 0)",
		},
		{
			name:        "white",
			rgb:         RGB{R: 255, G: 255, B: 255},
			wantTriplet: "255,255,255",
			wantHex:     "#ffffff",
			wantString:  "rgb(255, 255, 255)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rgb.Triplet(); got != tt.wantTriplet {
				t.Errorf("Triplet() = %q, want %q", got, tt.wantTriplet)
			}
			if got := tt.rgb.Hex(); got != tt.wantHex {
				t.Errorf("Hex() = %q, want %q", got, tt.wantHex)
			}
			if got := tt.rgb.String(); got != tt.wantString {
				t.Errorf("String() = %q, want %q", got, tt.wantString)
			}
		})
	}
}

func TestParseColour(t *testing.T) {
	tests := []struct {
		in      string
		want    RGB
		wantErr bool
	}{
		{in: "128,64,32", want: RGB{R: 128, G: 64, B: 32}},
		{in: " 1, 2, 3 ", want: RGB{R: 1, G: 2, B: 3}},
		{in: "#804020", want: RGB{R: 128, G: 64, B: 32}},
		{in: "804020", want: RGB{R: 128, G: 64, B: 32}},
		{in: "navy", want: RGB{B: 128}},
		{in: "Bright Red", want: RGB{R: 241, G: 76, B: 76}},
		{in: "256,0,0", wantErr: true},
		{in: "1,2", wantErr: true},
		{in: "a,b,c", wantErr: true},
		{in: "#zzzzzz", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColour(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseColour(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseColour(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseTripletRoundTrip(t *testing.T) {
	for _, c := range []RGB{{}, {R: 255, G: 255, B: 255}, {R: 7, G: 77, B: 177}} {
		got, err := ParseTriplet(c.Triplet())
		if err != nil {
			t.Fatalf("ParseTriplet(%q) error = %v", c.Triplet(), err)
		}
		if got != c {
			t.Errorf("ParseTriplet(%q) = %v, want %v", c.Triplet(), got, c)
		}
	}
}

func TestIsValidRole(t *testing.T) {
	for _, role := range Roles() {
		if !IsValidRole(role) {
			t.Errorf("IsValidRole(%q) = false", role)
		}
	}
	if IsValidRole("background") {
		t.Error("IsValidRole(background) = true")
	}
}

func TestPaletteToJSON(t *testing.T) {
	p := Derive(NewBaseColor(RGB{R: 20, G: 40, B: 90}))

	data, err := p.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	var out PaletteJSON
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if out.Branch != "dark" {
		t.Errorf("branch = %q, want dark", out.Branch)
	}
	if len(out.Roles) != len(Roles()) {
		t.Errorf("got %d roles, want %d", len(out.Roles), len(Roles()))
	}
	for _, role := range Roles() {
		entry, ok := out.Roles[string(role)]
		if !ok {
			t.Errorf("missing role %s", role)
			continue
		}
		c, _ := p.Get(role)
		if entry.Triplet != c.Triplet() || entry.Hex != c.Hex() || entry.RGB != c {
			t.Errorf("role %s = %+v, want %v", role, entry, c)
		}
	}
}

func TestPaletteString(t *testing.T) {
	p := Derive(NewBaseColor(RGB{R: 128, G: 128, B: 128}))
	s := p.String()

	if !strings.Contains(s, "dark, monochrome") {
		t.Errorf("String() missing branch header:\n%s", s)
	}
	for _, role := range Roles() {
		if !strings.Contains(s, string(role)) {
			t.Errorf("String() missing role %s", role)
		}
	}
}

func TestPaletteAllOrder(t *testing.T) {
	p := Derive(NewBaseColor(RGB{R: 200, G: 30, B: 30}))

	var got []Role
	for role := range p.All() {
		got = append(got, role)
	}
	want := Roles()
	if len(got) != len(want) {
		t.Fatalf("All() yielded %d roles, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("All()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestPaletteFocusHex(t *testing.T) {
	p := Derive(NewBaseColor(RGB{R: 10, G: 120, B: 60}))
	c, _ := p.Get(RoleFocusDecoration)
	if got := p.FocusHex(); got != c.Hex() {
		t.Errorf("FocusHex() = %q, want %q", got, c.Hex())
	}
}
