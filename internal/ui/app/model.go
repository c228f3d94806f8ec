package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	streakdto "holystreak/internal/modules/streak/dto"
	"holystreak/internal/ui/components"
	"holystreak/internal/ui/theme"
)

// ─── port ────────────────────────────────────────────────────────────────────

type streakPort interface {
	Load(ctx context.Context) (streakdto.StateOutput, error)
	Compute(state streakdto.StateOutput, at time.Time) streakdto.DurationOutput
	Reset(ctx context.Context, previous streakdto.StateOutput) (streakdto.ResetOutput, error)
}

// ─── async messages ───────────────────────────────────────────────────────────

type loadedMsg struct {
	state streakdto.StateOutput
}

// tickMsg carries the generation of the timer that produced it. Ticks from a
// cancelled generation are dropped and never re-armed.
type tickMsg struct {
	gen int
	at  time.Time
}

type resetDoneMsg struct {
	out streakdto.ResetOutput
	err error
}

// ─── key bindings ─────────────────────────────────────────────────────────────

type keyMap struct {
	End  key.Binding
	Help key.Binding
	Quit key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		End:  key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "end streak")),
		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit: key.NewBinding(key.WithKeys("ctrl+c", "q"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.End, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.End}, {k.Help, k.Quit}}
}

// ─── model ───────────────────────────────────────────────────────────────────

// Model is the streak screen. It reads the stored start once, recomputes the
// display on every tick while the terminal has focus, and routes the reset
// through the confirmation modal.
type Model struct {
	streak   streakPort
	now      func() time.Time
	interval time.Duration

	state    streakdto.StateOutput
	duration streakdto.DurationOutput
	loaded   bool

	tickGen int
	ticking bool

	confirm  components.Confirm
	keys     keyMap
	help     help.Model
	showHelp bool
	status   string
	width    int
	height   int
}

func NewModel(streak streakPort, interval time.Duration, now func() time.Time) Model {
	if interval <= 0 {
		interval = time.Second
	}
	if now == nil {
		now = time.Now
	}
	return Model{
		streak:   streak,
		now:      now,
		interval: interval,
		confirm:  components.NewConfirm("Are you sure want to end it?"),
		keys:     defaultKeys(),
		help:     help.New(),
		status:   "loading",
	}
}

func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

// ─── update ───────────────────────────────────────────────────────────────────

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.confirm.SetWidth(min(msg.Width-4, 48))
		return m, nil

	case loadedMsg:
		m.loaded = true
		m.state = msg.state
		if msg.state.Degraded {
			m.status = "stored streak unreadable, counting from zero"
		} else if msg.state.Started {
			m.status = "streak since " + msg.state.StartedAt.Format("Jan 2 2006 15:04")
		} else {
			m.status = "no streak yet: press e to start one"
		}
		m.recompute(m.now())
		return m, m.startTick()

	case tickMsg:
		if !m.ticking || msg.gen != m.tickGen {
			return m, nil
		}
		m.recompute(msg.at)
		return m, m.tickCmd()

	case tea.BlurMsg:
		m.stopTick()
		return m, nil

	case tea.FocusMsg:
		if !m.loaded || m.ticking {
			return m, nil
		}
		m.recompute(m.now())
		return m, m.startTick()

	case components.ConfirmAcceptMsg:
		m.status = "ending streak"
		return m, m.resetCmd(m.state)

	case components.ConfirmCancelMsg:
		m.status = "keep going"
		return m, nil

	case resetDoneMsg:
		m.confirm.Resolve(msg.err)
		if msg.err != nil {
			m.status = "reset failed: " + msg.err.Error()
			return m, nil
		}
		m.state = msg.out.State
		m.recompute(m.now())
		m.status = fmt.Sprintf("streak ended after %d days; a new one starts now", msg.out.Ended.Days)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.stopTick()
			return m, tea.Quit
		}
		if m.confirm.Visible() {
			var cmd tea.Cmd
			m.confirm, cmd = m.confirm.Update(msg)
			return m, cmd
		}
		if m.showHelp {
			if msg.String() == "?" || msg.String() == "esc" {
				m.showHelp = false
			}
			return m, nil
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.stopTick()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = true
		case key.Matches(msg, m.keys.End):
			if m.loaded {
				m.confirm.Open()
			}
		}
	}
	return m, nil
}

func (m *Model) recompute(at time.Time) {
	m.duration = m.streak.Compute(m.state, at)
}

// startTick cancels any running timer and arms a new generation.
func (m *Model) startTick() tea.Cmd {
	m.tickGen++
	m.ticking = true
	return m.tickCmd()
}

func (m *Model) stopTick() {
	m.tickGen++
	m.ticking = false
}

func (m Model) tickCmd() tea.Cmd {
	gen := m.tickGen
	return tea.Tick(m.interval, func(at time.Time) tea.Msg {
		return tickMsg{gen: gen, at: at}
	})
}

// ─── view ────────────────────────────────────────────────────────────────────

func (m Model) View() string {
	statusBar := m.renderStatusBar()
	contentH := m.height - lipgloss.Height(statusBar)
	if contentH < 1 {
		contentH = 1
	}

	var content string
	switch {
	case m.showHelp:
		content = lipgloss.NewStyle().Width(m.width).Height(contentH).Render(m.help.FullHelpView(m.keys.FullHelp()))
	case m.confirm.Visible():
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.confirm.View())
	default:
		content = lipgloss.Place(m.width, contentH, lipgloss.Center, lipgloss.Center, m.renderCounter())
	}
	return lipgloss.JoinVertical(lipgloss.Left, content, statusBar)
}

func (m Model) renderCounter() string {
	if !m.loaded {
		return theme.Muted.Render("loading…")
	}
	title := theme.Title.Render("Days being Holy")
	underline := theme.Underline.Render(strings.Repeat("~", lipgloss.Width(title)))
	lines := []string{
		title,
		underline,
		"",
		theme.Counter.Render(fmt.Sprintf("%d days", m.duration.Days)),
		theme.Counter.Render(fmt.Sprintf("%d hours", m.duration.Hours)),
		theme.Counter.Render(fmt.Sprintf("%d minutes", m.duration.Minutes)),
		theme.Counter.Render(fmt.Sprintf("%d seconds", m.duration.Seconds)),
		"",
		theme.Button.Render("e  End"),
	}
	return theme.Screen.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

func (m Model) renderStatusBar() string {
	left := m.status
	right := theme.Muted.Render(m.help.ShortHelpView(m.keys.ShortHelp()))
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return theme.StatusBar.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

// ─── async commands ───────────────────────────────────────────────────────────

func (m Model) loadCmd() tea.Cmd {
	return func() tea.Msg {
		state, err := m.streak.Load(context.Background())
		if err != nil {
			state = streakdto.StateOutput{Degraded: true}
		}
		return loadedMsg{state: state}
	}
}

func (m Model) resetCmd(previous streakdto.StateOutput) tea.Cmd {
	return func() tea.Msg {
		out, err := m.streak.Reset(context.Background(), previous)
		return resetDoneMsg{out: out, err: err}
	}
}
