package components

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"holystreak/internal/modules/streak/domain"
	"holystreak/internal/ui/theme"
)

// ConfirmAcceptMsg is emitted when the user confirms and the gate moved to saving.
type ConfirmAcceptMsg struct{}

// ConfirmCancelMsg is emitted when the user dismisses the modal.
type ConfirmCancelMsg struct{}

// Confirm is the reset confirmation modal. It renders and drives a
// domain.Gate; the owner starts the save on ConfirmAcceptMsg and reports the
// outcome through Resolve.
type Confirm struct {
	prompt string
	gate   domain.Gate
	width  int
}

func NewConfirm(prompt string) Confirm {
	return Confirm{prompt: prompt}
}

// Visible reports whether the modal is shown.
func (c Confirm) Visible() bool { return c.gate.Phase() != domain.GateIdle }

func (c Confirm) Phase() domain.GatePhase { return c.gate.Phase() }

func (c Confirm) Err() error { return c.gate.Err() }

// Open asks for confirmation. It does nothing while the modal is already up.
func (c *Confirm) Open() { c.gate = c.gate.Request() }

// Resolve closes the modal after a successful save, or keeps it open with the
// error after a failed one.
func (c *Confirm) Resolve(err error) { c.gate = c.gate.Resolve(err) }

func (c *Confirm) SetWidth(w int) { c.width = w }

func (c Confirm) Update(msg tea.Msg) (Confirm, tea.Cmd) {
	if !c.Visible() {
		return c, nil
	}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil
	}
	switch key.String() {
	case "y", "Y", "enter":
		next, err := c.gate.Confirm()
		if err != nil {
			// A save is already in flight.
			return c, nil
		}
		c.gate = next
		return c, func() tea.Msg { return ConfirmAcceptMsg{} }
	case "n", "N", "esc", "x":
		if c.gate.Saving() {
			return c, nil
		}
		c.gate = c.gate.Cancel()
		return c, func() tea.Msg { return ConfirmCancelMsg{} }
	}
	return c, nil
}

func (c Confirm) View() string {
	if !c.Visible() {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Danger.Render("✕") + "\n\n")
	sb.WriteString(theme.Title.Render(c.prompt) + "\n\n")
	if c.gate.Saving() {
		sb.WriteString(theme.Muted.Render("ending streak…"))
	} else {
		sb.WriteString(theme.Button.Render("y  Yes") + "\n")
		sb.WriteString(theme.Muted.Render("n/esc: keep going"))
	}
	if err := c.gate.Err(); err != nil {
		sb.WriteString("\n\n" + theme.Danger.Render("reset failed: "+err.Error()))
		sb.WriteString("\n" + theme.Muted.Render("press y to retry"))
	}

	w := c.width
	if w < 20 {
		w = 44
	}
	return theme.Modal.Width(w - 2).Render(sb.String())
}
