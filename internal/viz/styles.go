package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/san-kum/reactorsim/internal/analysis"
	"github.com/san-kum/reactorsim/internal/reactor"
	"github.com/san-kum/reactorsim/internal/storage"
)

// Console styles, rebuilt by SetTheme.
var (
	Title       lipgloss.Style
	Subtle      lipgloss.Style
	Status      lipgloss.Style
	Warn        lipgloss.Style
	Fail        lipgloss.Style
	Body        lipgloss.Style
	MetricValue lipgloss.Style
	KeyHint     lipgloss.Style
)

func init() {
	applyTheme(CurrentTheme)
}

func applyTheme(t Theme) {
	Title = lipgloss.NewStyle().Bold(true).Foreground(t.Primary)
	Subtle = lipgloss.NewStyle().Foreground(t.Muted)
	Status = lipgloss.NewStyle().Bold(true).Foreground(t.Success)
	Warn = lipgloss.NewStyle().Foreground(t.Warning)
	Fail = lipgloss.NewStyle().Bold(true).Foreground(t.Error)
	Body = lipgloss.NewStyle().Foreground(t.Text)
	MetricValue = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	KeyHint = lipgloss.NewStyle().Italic(true).Foreground(t.Muted)
}

// ParamsTable describes a parameter set one line per scalar, in the units
// the prompts ask for.
func ParamsTable(p reactor.Params) string {
	lines := []string{
		fmt.Sprintf("The flow rate is %.3f m^3/min.", p.FlowRate),
		fmt.Sprintf("The concentration of the input pipe is %.3f mg/m^3.", p.InletConcentration),
		fmt.Sprintf("The initial concentration of the substance in the reactor is %.3f mg/m^3.", p.InitialConcentration),
		fmt.Sprintf("The volume of the reactor is %.3f m^3.", p.Volume),
		fmt.Sprintf("The final time for transient analysis is %.3f minutes", p.FinalTime),
		fmt.Sprintf("The time increment step used is %.5f minutes", p.TimeStep),
	}
	for i, l := range lines {
		lines[i] = Body.Render(l)
	}
	return strings.Join(lines, "\n")
}

// SlotTable renders all slots as a bordered table; empty slots show dashes.
func SlotTable(slots storage.Slots) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(Subtle).
		Headers("slot", "q", "c in", "c0", "volume", "final time", "dt", "steps")

	for i, s := range slots {
		p, ok := s.Params()
		if !ok {
			t.Row(fmt.Sprint(i+1), "-", "-", "-", "-", "-", "-", "-")
			continue
		}
		t.Row(
			fmt.Sprint(i+1),
			fmt.Sprintf("%.3f", p.FlowRate),
			fmt.Sprintf("%.3f", p.InletConcentration),
			fmt.Sprintf("%.3f", p.InitialConcentration),
			fmt.Sprintf("%.3f", p.Volume),
			fmt.Sprintf("%.3f", p.FinalTime),
			fmt.Sprintf("%.5f", p.TimeStep),
			fmt.Sprint(p.StepCount()),
		)
	}
	return t.Render()
}

// ErrorTable renders the Euler error summary.
func ErrorTable(stats analysis.ErrorStats) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(Subtle).
		Headers("metric", "value").
		Row("euler nodes", fmt.Sprint(stats.Samples)).
		Row("max abs error", fmt.Sprintf("%.6g", stats.MaxAbs)).
		Row("at time", fmt.Sprintf("%.4g", stats.MaxAt)).
		Row("max rel error", fmt.Sprintf("%.4g%%", stats.MaxRel*100)).
		Row("rms error", fmt.Sprintf("%.6g", stats.RMS)).
		Row("final error", fmt.Sprintf("%.6g", stats.Final))
	return t.Render()
}

// Separator draws a muted horizontal rule.
func Separator(width int) string {
	if width < 7 {
		width = 7
	}
	left := (width - 3) / 2
	return Subtle.Render(strings.Repeat("─", left) + " ◆ " + strings.Repeat("─", width-3-left))
}
