// Package tui is the interactive terminal front-end over a running session
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/napolitain/prehistoric-idle/internal/converter"
	"github.com/napolitain/prehistoric-idle/internal/engine"
	"github.com/napolitain/prehistoric-idle/internal/models"
	"github.com/napolitain/prehistoric-idle/internal/session"
)

const maxLog = 6

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true)

	resourceStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EEEEEE")).
			Background(lipgloss.Color("#5F5F87")).
			PaddingLeft(1).
			PaddingRight(1)

	cardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCCCCC"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true)

	lockedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	detailStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	noteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD75F"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5F5F"))
)

type model struct {
	ctx  context.Context
	sess *session.Session
	keys keyMap
	help help.Model

	view   converter.View
	ready  bool
	cursor int
	log    []string
	err    error
	width  int
}

type frameMsg struct {
	frame session.Frame
	ok    bool
}

type actionMsg struct {
	err error
}

func newModel(ctx context.Context, sess *session.Session) model {
	return model{
		ctx:  ctx,
		sess: sess,
		keys: defaultKeyMap(),
		help: help.New(),
	}
}

func (m model) Init() tea.Cmd {
	return m.waitForFrame()
}

func (m model) waitForFrame() tea.Cmd {
	frames := m.sess.Frames()
	return func() tea.Msg {
		f, ok := <-frames
		return frameMsg{frame: f, ok: ok}
	}
}

func (m model) do(fn func(context.Context) (session.Frame, error)) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		_, err := fn(ctx)
		return actionMsg{err: err}
	}
}

func (m model) selected() (converter.CardRow, bool) {
	if m.cursor < 0 || m.cursor >= len(m.view.Cards) {
		return converter.CardRow{}, false
	}
	return m.view.Cards[m.cursor], true
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		if !msg.ok {
			return m, tea.Quit
		}
		m.apply(msg.frame)
		return m, m.waitForFrame()

	case actionMsg:
		m.err = msg.err
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *model) apply(f session.Frame) {
	m.view = converter.ToView(f.State)
	m.ready = true
	if m.cursor >= len(m.view.Cards) {
		m.cursor = len(m.view.Cards) - 1
	}
	for _, n := range f.Notifications {
		m.log = append(m.log, fmt.Sprintf("[%d] %s %s", n.Tick, converter.NotificationIcon(n.Kind), n.Message))
	}
	if len(m.log) > maxLog {
		m.log = m.log[len(m.log)-maxLog:]
	}
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.view.Cards)-1 {
			m.cursor++
		}
		return m, nil
	case key.Matches(msg, m.keys.Pause):
		return m, m.do(m.sess.TogglePause)
	case key.Matches(msg, m.keys.Protect):
		on := !m.view.Resources.Protection
		return m, m.do(func(ctx context.Context) (session.Frame, error) {
			return m.sess.SetProtection(ctx, on)
		})
	}

	card, ok := m.selected()
	if !ok {
		return m, nil
	}
	id := card.ID

	switch {
	case key.Matches(msg, m.keys.Add):
		return m, m.do(func(ctx context.Context) (session.Frame, error) {
			return m.sess.Reassign(ctx, id, engine.Add)
		})
	case key.Matches(msg, m.keys.Remove):
		return m, m.do(func(ctx context.Context) (session.Frame, error) {
			return m.sess.Reassign(ctx, id, engine.Remove)
		})
	case key.Matches(msg, m.keys.Focus):
		return m, m.do(func(ctx context.Context) (session.Frame, error) {
			return m.sess.Focus(ctx, id)
		})
	case key.Matches(msg, m.keys.Research):
		return m, m.do(func(ctx context.Context) (session.Frame, error) {
			return m.sess.StartResearch(ctx, id)
		})
	}

	return m, nil
}

func (m model) View() string {
	if !m.ready {
		return "\n  Waking the tribe...\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Prehistoric Idle · tick %d", m.view.Tick)))
	b.WriteString("\n\n")
	b.WriteString(resourceStyle.Render(m.view.Resources.Text()))
	b.WriteString("\n\n")

	list := make([]string, 0, len(m.view.Cards))
	for i, c := range m.view.Cards {
		list = append(list, m.renderRow(i, c))
	}
	cards := strings.Join(list, "\n")

	if card, ok := m.selected(); ok {
		cards = lipgloss.JoinHorizontal(lipgloss.Top, cards, "  ", detailStyle.Render(m.renderDetail(card)))
	}
	b.WriteString(cards)
	b.WriteString("\n\n")

	for _, line := range m.log {
		b.WriteString(noteStyle.Render(line))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(errStyle.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m model) renderRow(i int, c converter.CardRow) string {
	cursor := "  "
	style := cardStyle
	if i == m.cursor {
		cursor = "▸ "
		style = selectedStyle
	}
	if c.State != models.Discovered && !c.PrerequisitesMet {
		style = lockedStyle
	}
	return cursor + style.Render(c.Text())
}

func (m model) renderDetail(c converter.CardRow) string {
	lines := []string{
		titleStyle.Render(c.Title),
		converter.KindLabel(c.Kind) + " · " + c.StateLabel,
	}
	if c.Description != "" {
		lines = append(lines, c.Description)
	}
	if len(c.Assigned) > 0 {
		lines = append(lines, "Workers: "+c.AssignedText())
	}
	if len(c.MissingPrereqs) > 0 {
		lines = append(lines, "Needs: "+strings.Join(c.MissingPrereqs, ", "))
	}

	var actions []string
	if c.CanAssign {
		actions = append(actions, "[+] [-]")
	}
	if c.CanResearch {
		actions = append(actions, "[s] Think About This")
	}
	if c.CanFocus {
		if c.Focused {
			actions = append(actions, "[f] Stop Focus")
		} else {
			actions = append(actions, "[f] Focus Thinking")
		}
	}
	if len(actions) > 0 {
		lines = append(lines, "", strings.Join(actions, "  "))
	}
	return strings.Join(lines, "\n")
}

// Run starts the terminal UI for a running session and blocks until the
// player quits or the session stops
func Run(ctx context.Context, sess *session.Session) error {
	p := tea.NewProgram(newModel(ctx, sess), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
