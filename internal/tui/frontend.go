package tui

import tea "github.com/charmbracelet/bubbletea"

// Frontend runs the Bubble Tea program around a Model.
type Frontend struct {
	model *Model
	opts  []tea.ProgramOption
}

// NewFrontend binds a new model to ctrl. With no options the program runs in
// the alternate screen.
func NewFrontend(ctrl Controller, opts ...tea.ProgramOption) *Frontend {
	if len(opts) == 0 {
		opts = []tea.ProgramOption{tea.WithAltScreen()}
	}
	return &Frontend{model: New(ctrl), opts: opts}
}

// SetTitle sets the window title applied when the program starts.
func (f *Frontend) SetTitle(title string) {
	f.model.SetTitle(title)
}

// Start blocks until the user quits.
func (f *Frontend) Start() error {
	prog := tea.NewProgram(f.model, f.opts...)
	_, err := prog.Run()
	return err
}
