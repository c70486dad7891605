package viz

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/reactorsim/internal/analysis"
	"github.com/san-kum/reactorsim/internal/reactor"
	"github.com/san-kum/reactorsim/internal/storage"
)

func TestParamsTable(t *testing.T) {
	out := ParamsTable(reactor.Params{
		FlowRate:           2,
		InletConcentration: 10,
		Volume:             5,
		FinalTime:          10,
		TimeStep:           0.5,
	})

	for _, want := range []string{
		"The flow rate is 2.000 m^3/min.",
		"The concentration of the input pipe is 10.000 mg/m^3.",
		"The initial concentration of the substance in the reactor is 0.000 mg/m^3.",
		"The volume of the reactor is 5.000 m^3.",
		"The final time for transient analysis is 10.000 minutes",
		"The time increment step used is 0.50000 minutes",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing line %q", want)
		}
	}
}

func TestSlotTable(t *testing.T) {
	var slots storage.Slots
	slots[0] = storage.FilledSlot(reactor.Params{FlowRate: 2, InletConcentration: 10, Volume: 5, FinalTime: 10, TimeStep: 0.5})

	out := SlotTable(slots)
	for _, want := range []string{"slot", "2.000", "0.50000", "20"} {
		if !strings.Contains(out, want) {
			t.Errorf("table missing %q", want)
		}
	}
}

func TestErrorTable(t *testing.T) {
	out := ErrorTable(analysis.ErrorStats{Samples: 21, MaxAbs: 0.5, RMS: 0.25})
	if !strings.Contains(out, "21") || !strings.Contains(out, "rms error") {
		t.Errorf("unexpected table:\n%s", out)
	}
}

func TestThemes(t *testing.T) {
	defer SetTheme(ThemeLab.Name)

	if got := GetTheme("nope"); got.Name != ThemeLab.Name {
		t.Errorf("unknown theme should fall back to lab, got %s", got.Name)
	}

	SetTheme("ocean")
	if CurrentTheme.Name != "ocean" {
		t.Errorf("expected ocean, got %s", CurrentTheme.Name)
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("theme names out of sync")
	}
}

func TestBodyFollowsThemeText(t *testing.T) {
	defer SetTheme(ThemeLab.Name)

	for _, th := range Themes {
		SetTheme(th.Name)
		if got := Body.GetForeground(); got != th.Text {
			t.Errorf("%s: body color = %v, want %v", th.Name, got, th.Text)
		}
	}
}

func TestSeparator(t *testing.T) {
	tests := []struct {
		width int
		want  int
	}{
		{40, 40},
		{7, 7},
		{0, 7},
	}

	for _, tt := range tests {
		out := Separator(tt.width)
		if !strings.Contains(out, "◆") {
			t.Errorf("Separator(%d) missing center mark: %q", tt.width, out)
		}
		if got := lipgloss.Width(out); got != tt.want {
			t.Errorf("Separator(%d) width = %d, want %d", tt.width, got, tt.want)
		}
	}
}
