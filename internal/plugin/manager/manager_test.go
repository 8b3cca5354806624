package manager

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/cullax/internal/colour"
	"github.com/jmylchreest/cullax/internal/plugin/output"
)

// Mock output plugin for testing.
type mockOutputPlugin struct {
	name string
}

func (m *mockOutputPlugin) Name() string        { return m.name }
func (m *mockOutputPlugin) Description() string { return "mock " + m.name }
func (m *mockOutputPlugin) Generate(_ *colour.ThemeData) (map[string][]byte, error) {
	return nil, nil
}
func (m *mockOutputPlugin) DefaultOutputDir() string       { return "" }
func (m *mockOutputPlugin) RegisterFlags(_ *cobra.Command) {}
func (m *mockOutputPlugin) Validate() error                { return nil }

func TestBuildRegistersBuiltinPlugins(t *testing.T) {
	m := NewBuilder().Build()

	want := []string{"aurorae", "jsonfile", "plasma"}
	if diff := cmp.Diff(want, m.OutputRegistry().List()); diff != "" {
		t.Errorf("registered plugins mismatch (-want +got):\n%s", diff)
	}
	for _, name := range want {
		if _, ok := m.GetOutputPlugin(name); !ok {
			t.Errorf("GetOutputPlugin(%q) not found", name)
		}
	}
}

func TestBuilderWithCustomRegistry(t *testing.T) {
	reg := output.NewRegistry()
	reg.Register(&mockOutputPlugin{name: "test"})
	reg.Register(&mockOutputPlugin{name: "plasma"})

	m := NewBuilder().WithCustomRegistry(reg).Build()

	if _, ok := m.GetOutputPlugin("test"); !ok {
		t.Error("custom plugin not found")
	}
	if p, _ := m.GetOutputPlugin("plasma"); p.Description() != "mock plasma" {
		t.Error("built-in registration replaced a custom plugin")
	}
	if len(m.AllOutputPlugins()) != 4 {
		t.Errorf("AllOutputPlugins() has %d entries, want 4", len(m.AllOutputPlugins()))
	}
}

func TestBuilderWithEnvConfig(t *testing.T) {
	t.Setenv(EnvDisabledOutputs, "output:aurorae, jsonfile")
	t.Setenv(EnvEnabledOutputs, "all")

	m := NewBuilder().WithConfig(Config{EnabledPlugins: []string{"plasma"}}).WithEnvConfig().Build()

	want := Config{
		DisabledPlugins: []string{"output:aurorae", "jsonfile"},
		EnabledPlugins:  []string{"all"},
	}
	if diff := cmp.Diff(want, m.GetConfig()); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"plasma"}, m.ListOutputPlugins()); diff != "" {
		t.Errorf("enabled plugins mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilderWithoutEnvIgnoresEnvironment(t *testing.T) {
	t.Setenv(EnvEnabledOutputs, "all")

	if got := NewBuilder().Build().ListOutputPlugins(); len(got) != 0 {
		t.Errorf("ListOutputPlugins() = %v, want none", got)
	}
}

func TestIsOutputEnabled(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		enabled []string
	}{
		{name: "disabled by default", config: Config{}, enabled: []string{}},
		{name: "whitelist bare", config: Config{EnabledPlugins: []string{"plasma"}}, enabled: []string{"plasma"}},
		{name: "whitelist qualified", config: Config{EnabledPlugins: []string{"output:jsonfile"}}, enabled: []string{"jsonfile"}},
		{name: "all", config: Config{EnabledPlugins: []string{"all"}}, enabled: []string{"aurorae", "jsonfile", "plasma"}},
		{
			name:    "disabled wins over enabled",
			config:  Config{EnabledPlugins: []string{"all"}, DisabledPlugins: []string{"plasma"}},
			enabled: []string{"aurorae", "jsonfile"},
		},
		{
			name:    "disable all wins over everything",
			config:  Config{EnabledPlugins: []string{"plasma"}, DisabledPlugins: []string{"all"}},
			enabled: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewBuilder().WithConfig(tt.config).Build()
			if diff := cmp.Diff(tt.enabled, m.ListOutputPlugins()); diff != "" {
				t.Errorf("ListOutputPlugins() mismatch (-want +got):\n%s", diff)
			}
			if got := len(m.FilterOutputPlugins()); got != len(tt.enabled) {
				t.Errorf("FilterOutputPlugins() has %d entries, want %d", got, len(tt.enabled))
			}
		})
	}
}

func TestSetEnabledAndDisabled(t *testing.T) {
	m := NewBuilder().WithConfig(Config{DisabledPlugins: []string{"plasma"}}).Build()
	plasma, _ := m.GetOutputPlugin("plasma")

	m.SetEnabled("plasma")
	if !m.IsOutputEnabled(plasma) {
		t.Error("plasma not enabled after SetEnabled")
	}
	if len(m.GetConfig().DisabledPlugins) != 0 {
		t.Errorf("DisabledPlugins = %v, want empty", m.GetConfig().DisabledPlugins)
	}

	m.SetEnabled("plasma")
	if len(m.GetConfig().EnabledPlugins) != 1 {
		t.Errorf("SetEnabled twice produced %v", m.GetConfig().EnabledPlugins)
	}

	m.SetDisabled("plasma")
	if m.IsOutputEnabled(plasma) {
		t.Error("plasma enabled after SetDisabled")
	}
	if len(m.GetConfig().EnabledPlugins) != 0 {
		t.Errorf("EnabledPlugins = %v, want empty", m.GetConfig().EnabledPlugins)
	}
}

func TestUpdateConfig(t *testing.T) {
	m := NewBuilder().Build()
	m.UpdateConfig(Config{EnabledPlugins: []string{"aurorae"}})

	if diff := cmp.Diff([]string{"aurorae"}, m.ListOutputPlugins()); diff != "" {
		t.Errorf("ListOutputPlugins() mismatch (-want +got):\n%s", diff)
	}
}

func TestValidateNames(t *testing.T) {
	m := NewBuilder().Build()

	if err := m.ValidateNames([]string{"plasma", "output:aurorae", "all"}); err != nil {
		t.Errorf("ValidateNames() error = %v", err)
	}
	if err := m.ValidateNames([]string{"plasma", "kitty"}); err == nil {
		t.Error("ValidateNames() accepted unknown plugin")
	}
}

func TestParsePluginList(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"plasma", []string{"plasma"}},
		{"plasma,aurorae", []string{"plasma", "aurorae"}},
		{" output:plasma , ,jsonfile ", []string{"output:plasma", "jsonfile"}},
		{"", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, ParsePluginList(tt.input)); diff != "" {
				t.Errorf("ParsePluginList() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
