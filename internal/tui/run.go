package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hpratama/taskbin/internal/event"
	"github.com/hpratama/taskbin/internal/task"
)

// Run starts the interactive board and blocks until the user quits.
func Run(svc TaskService, gate AccessGate, bus *event.Bus, opts task.Options, defaultStatus string) error {
	m := NewModel(svc, gate, bus, opts, defaultStatus)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
