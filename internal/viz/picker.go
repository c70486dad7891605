package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/reactorsim/internal/storage"
)

// SlotPicker is a bubbletea model that lets the user move over the five
// slots and pick a filled one.
type SlotPicker struct {
	slots    storage.Slots
	cursor   int
	chosen   int
	canceled bool
	notice   string
}

func NewSlotPicker(slots storage.Slots) SlotPicker {
	return SlotPicker{slots: slots}
}

// Chosen returns the picked 1-based slot, or 0 when nothing was picked.
func (m SlotPicker) Chosen() int { return m.chosen }

func (m SlotPicker) Canceled() bool { return m.canceled }

func (m SlotPicker) Init() tea.Cmd { return nil }

func (m SlotPicker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "q", "esc", "ctrl+c":
		m.canceled = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		m.notice = ""
	case "down", "j":
		if m.cursor < storage.Capacity-1 {
			m.cursor++
		}
		m.notice = ""
	case "1", "2", "3", "4", "5":
		m.cursor = int(key.String()[0] - '1')
		m.notice = ""
	case "enter", " ":
		if m.slots[m.cursor].IsEmpty() {
			m.notice = fmt.Sprintf("data set %d is empty", m.cursor+1)
			return m, nil
		}
		m.chosen = m.cursor + 1
		return m, tea.Quit
	}
	return m, nil
}

func (m SlotPicker) View() string {
	var b strings.Builder
	b.WriteString("\n    " + Title.Render("REACTORSIM") + "\n    " + Subtle.Render("stored data sets") + "\n    " + Subtle.Render("─────────────────────────") + "\n\n")

	for i, s := range m.slots {
		label := fmt.Sprintf("data set %d", i+1)
		desc := "empty"
		if p, ok := s.Params(); ok {
			desc = fmt.Sprintf("q=%.3f cin=%.3f c0=%.3f v=%.3f tf=%.3f dt=%.5f",
				p.FlowRate, p.InletConcentration, p.InitialConcentration, p.Volume, p.FinalTime, p.TimeStep)
		}
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", Title.Render("▸"), MetricValue.Render(fmt.Sprintf("%-12s", label)), desc))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", Subtle.Render(fmt.Sprintf("%-12s", label)), Subtle.Render(desc)))
		}
	}

	if m.notice != "" {
		b.WriteString("\n    " + Warn.Render(m.notice) + "\n")
	}
	b.WriteString("\n    " + KeyHint.Render("j/k navigate  1-5 jump  enter select  q quit") + "\n")
	return b.String()
}

// RunSlotPicker runs the picker full screen and returns the chosen slot.
// It returns 0 when the user quits without choosing.
func RunSlotPicker(slots storage.Slots) (int, error) {
	final, err := tea.NewProgram(NewSlotPicker(slots), tea.WithAltScreen()).Run()
	if err != nil {
		return 0, err
	}
	return final.(SlotPicker).Chosen(), nil
}
