package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hpratama/taskbin/internal/event"
	"github.com/hpratama/taskbin/internal/task"
)

// tasksMsg carries the collection after a refresh completes
type tasksMsg struct {
	tasks []task.Task
	err   error
}

// opDoneMsg reports the outcome of a mutation
type opDoneMsg struct {
	verb string
	err  error
}

// busMsg wraps an event published on the application bus
type busMsg struct {
	ev event.Event
}

// Commands

// refreshTasks fetches the remote collection and returns the result.
func refreshTasks(svc TaskService) tea.Cmd {
	return func() tea.Msg {
		err := svc.Refresh(context.Background())
		return tasksMsg{tasks: svc.List(), err: err}
	}
}

// createTask persists a new task built from the form draft.
func createTask(svc TaskService, draft task.Draft) tea.Cmd {
	return func() tea.Msg {
		_, err := svc.Create(context.Background(), draft)
		return opDoneMsg{verb: "created", err: err}
	}
}

// updateTask persists edited fields for an existing task.
func updateTask(svc TaskService, id string, draft task.Draft) tea.Cmd {
	return func() tea.Msg {
		_, err := svc.Update(context.Background(), id, draft)
		return opDoneMsg{verb: "updated", err: err}
	}
}

// deleteTask removes a task from the collection.
func deleteTask(svc TaskService, id string) tea.Cmd {
	return func() tea.Msg {
		err := svc.Delete(context.Background(), id)
		return opDoneMsg{verb: "deleted", err: err}
	}
}

// waitEvent blocks on the bus channel until the next event arrives.
func waitEvent(ch <-chan event.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return busMsg{ev: ev}
	}
}
