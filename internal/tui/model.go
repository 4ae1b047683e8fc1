package tui

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"herdcl/internal/app"
)

const actionTimeout = 30 * time.Second

// Controller defines the subset of app.App behaviour the TUI needs.
type Controller interface {
	Actions() []app.Descriptor
	SetupRun(context.Context, app.RunConfig) error
	ActionFor(app.Kind) (app.Action, error)
}

// Model represents the Bubble Tea state.
type Model struct {
	controller Controller

	list    list.Model
	spinner spinner.Model
	title   string

	running bool
	current app.Kind
	result  string
	err     error

	statusMsg string

	width  int
	height int

	lastRun time.Time
}

// New constructs a TUI model with default styles.
func New(ctrl Controller) *Model {
	descs := ctrl.Actions()
	items := make([]list.Item, 0, len(descs))
	for _, d := range descs {
		items = append(items, actionItem{Descriptor: d})
	}

	delegate := list.NewDefaultDelegate()
	lst := list.New(items, delegate, 0, 0)
	lst.Title = "Actions"
	lst.SetShowHelp(false)
	lst.SetFilteringEnabled(false)
	lst.DisableQuitKeybindings()

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	return &Model{
		controller: ctrl,
		list:       lst,
		spinner:    spin,
		statusMsg:  "Select an action and press enter.",
	}
}

// SetTitle changes the terminal window title shown on start.
func (m *Model) SetTitle(title string) {
	m.title = title
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	if m.title == "" {
		return nil
	}
	return tea.SetWindowTitle(m.title)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.height > 4 {
			m.list.SetSize(msg.Width, (msg.Height-4)/2)
		}

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case actionDoneMsg:
		m.running = false
		m.lastRun = time.Now()
		m.err = msg.err
		m.result = msg.result
		if msg.err != nil {
			m.statusMsg = fmt.Sprintf("%s failed.", msg.kind)
		} else {
			m.statusMsg = fmt.Sprintf("%s completed.", msg.kind)
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "enter":
			return m, m.startSelected()
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) startSelected() tea.Cmd {
	if m.running {
		return nil
	}
	item, ok := m.list.SelectedItem().(actionItem)
	if !ok {
		return nil
	}
	m.running = true
	m.current = item.Kind
	m.err = nil
	m.result = ""
	m.statusMsg = fmt.Sprintf("Running %s…", item.Kind)
	return tea.Batch(runActionCmd(m.controller, item.Kind), m.spinner.Tick)
}

// View implements tea.Model.
func (m *Model) View() string {
	var b strings.Builder

	if m.title != "" {
		b.WriteString(lipgloss.NewStyle().Bold(true).Render(m.title))
		b.WriteByte('\n')
	}

	statusStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	if m.err != nil {
		statusStyle = statusStyle.Foreground(lipgloss.Color("203"))
	}
	status := m.statusMsg
	if m.running {
		status = m.spinner.View() + " " + status
	}
	b.WriteString(statusStyle.Render(status))
	b.WriteByte('\n')

	b.WriteString(m.list.View())
	b.WriteByte('\n')

	switch {
	case m.err != nil:
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
		b.WriteString(errStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteByte('\n')
	case m.result != "":
		resultStyle := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).MarginBottom(1)
		b.WriteString(resultStyle.Render(m.result))
		b.WriteByte('\n')
	}

	help := "Commands: q quit • enter run selected action"
	if !m.lastRun.IsZero() {
		help += fmt.Sprintf(" • last run %s", m.lastRun.Format(time.Kitchen))
	}
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	b.WriteString(helpStyle.Render(help))

	return b.String()
}

// actionItem adapts app.Descriptor to the bubbles list item interface.
type actionItem struct {
	app.Descriptor
}

func (a actionItem) Title() string       { return string(a.Kind) }
func (a actionItem) Description() string { return a.Descriptor.Description }
func (a actionItem) FilterValue() string { return string(a.Kind) }

type actionDoneMsg struct {
	kind   app.Kind
	result string
	err    error
}

// runActionCmd performs one interactive run of kind. It mirrors the console
// path but marks the run as GUI-driven.
func runActionCmd(ctrl Controller, kind app.Kind) tea.Cmd {
	return func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = actionDoneMsg{kind: kind, err: fmt.Errorf("panic: %v", r)}
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()

		if err := ctrl.SetupRun(ctx, app.RunConfig{GUIEnabled: true}); err != nil {
			return actionDoneMsg{kind: kind, err: err}
		}
		action, err := ctrl.ActionFor(kind)
		if err != nil {
			return actionDoneMsg{kind: kind, err: err}
		}
		res, err := action.Execute(ctx)
		if err != nil {
			return actionDoneMsg{kind: kind, err: err}
		}
		pretty, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return actionDoneMsg{kind: kind, err: fmt.Errorf("encode result: %w", err)}
		}
		return actionDoneMsg{kind: kind, result: string(pretty)}
	}
}
