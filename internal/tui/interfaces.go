package tui

import (
	"context"

	"github.com/hpratama/taskbin/internal/task"
)

// TaskService is the slice of the repository the board needs.
type TaskService interface {
	List() []task.Task
	Refresh(ctx context.Context) error
	Create(ctx context.Context, draft task.Draft) (task.Task, error)
	Update(ctx context.Context, id string, draft task.Draft) (task.Task, error)
	Delete(ctx context.Context, id string) error
}

// AccessGate is the slice of the write gate the board needs.
type AccessGate interface {
	CanWrite() bool
	Grant(passcode string) error
	Revoke() error
}
