// Package filter computes filtered and sorted projections of the task
// collection for presentation. Projections are pure: they never touch the
// remote bin, never mutate their input, and always return a fresh slice,
// so the UI can recompute them on every render.
package filter

import (
	"sort"

	"github.com/hpratama/taskbin/internal/task"
)

// Query describes one projection of the collection. The zero Query matches
// every task. All set predicates are ANDed together.
type Query struct {
	// Text is a case-insensitive substring matched against every
	// searchable field; a task matches if any field contains it.
	Text string
	// Statuses keeps tasks whose status is a member. Empty means all.
	Statuses []string
	// Project keeps tasks in exactly this project. Empty means all.
	Project string
	// Due keeps tasks whose deadline falls on this calendar day.
	// The zero Date means all.
	Due task.Date
}

// Apply returns the tasks matching the query, in their collection order.
// The result is always a new slice, even when every task matches.
func Apply(tasks []task.Task, q Query) []task.Task {
	out := make([]task.Task, 0, len(tasks))
	for _, t := range tasks {
		if matches(t, q) {
			out = append(out, t)
		}
	}
	return out
}

// matches applies every predicate of the query to one task.
func matches(t task.Task, q Query) bool {
	if q.Text != "" && !t.ContainsFold(q.Text) {
		return false
	}
	if len(q.Statuses) > 0 && !containsString(q.Statuses, t.Status) {
		return false
	}
	if q.Project != "" && t.Project != q.Project {
		return false
	}
	if !q.Due.IsZero() && !t.Deadline.SameDay(q.Due) {
		return false
	}
	return true
}

// SortByDeadline returns the tasks ordered by deadline ascending, then by
// name for equal days. Ordering is a derived, presentation-only property:
// the bin document keeps whatever order mutations produced.
func SortByDeadline(tasks []task.Task) []task.Task {
	out := task.Clone(tasks)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Deadline.SameDay(out[j].Deadline) {
			return out[i].Deadline.Before(out[j].Deadline.Time)
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func containsString(set []string, value string) bool {
	for _, s := range set {
		if s == value {
			return true
		}
	}
	return false
}
