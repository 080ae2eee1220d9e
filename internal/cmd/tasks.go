package cmd

import (
	"fmt"
	"strings"

	"github.com/hpratama/taskbin/internal/errors"
	"github.com/hpratama/taskbin/internal/task"
)

// resolveID matches a user-supplied identifier against the fetched
// collection. Full IDs match exactly; shorter strings match as a unique
// prefix, so the abbreviated IDs printed by 'taskbin list' can be pasted
// back into edit and rm.
func resolveID(tasks []task.Task, arg string) (string, error) {
	var matches []string
	for _, t := range tasks {
		if t.ID == arg {
			return t.ID, nil
		}
		if strings.HasPrefix(t.ID, arg) {
			matches = append(matches, t.ID)
		}
	}

	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", errors.NewNotFoundError("task", arg)
	default:
		return "", fmt.Errorf("id %q is ambiguous: matches %d tasks", arg, len(matches))
	}
}

// findTask returns the task with the given resolved id.
func findTask(tasks []task.Task, id string) (task.Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return task.Task{}, false
}

// decorateWriteError adds a login hint to permission denials; everything
// else passes through unchanged.
func decorateWriteError(err error) error {
	if errors.Is(err, errors.ErrPermissionDenied) {
		return fmt.Errorf("%w (run 'taskbin login' first)", err)
	}
	return err
}
