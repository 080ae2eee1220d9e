// Package task defines the task record tracked by taskbin, the draft type
// used for user input before an identifier is assigned, and validation of
// drafts against the configured closed option sets.
package task

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Lifecycle labels used as the default status set. The set is configurable;
// these match the labels the shared bin has always used.
const (
	StatusCompleted  = "completed"
	StatusInProgress = "in progress"
	StatusPending    = "pending"
	StatusNotStarted = "not started"
)

// dateLayout is the wire format for deadlines. Deadlines are calendar dates
// with no time component.
const dateLayout = "2006-01-02"

// Date is a calendar date with no time component. It marshals to and from
// the "YYYY-MM-DD" wire format the bin document uses.
type Date struct {
	time.Time
}

// ParseDate parses a "YYYY-MM-DD" string into a Date.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return Date{Time: t}, nil
}

// NewDate creates a Date from year, month, and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// String returns the date in wire format.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}

// SameDay reports whether two dates fall on the same calendar day.
func (d Date) SameDay(other Date) bool {
	y1, m1, d1 := d.Date()
	y2, m2, d2 := other.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// MarshalJSON encodes the date as a "YYYY-MM-DD" JSON string.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes a "YYYY-MM-DD" JSON string. An empty string decodes
// to the zero Date.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Task is one trackable unit of work. A task's ID is assigned once at
// creation and never changes; every other field is replaced wholesale on
// update. Deploy and Note are optional; Deploy may be absent on records
// created before deployment targets were tracked.
type Task struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Project     string `json:"project"`
	Deploy      string `json:"deploy,omitempty"`
	Deadline    Date   `json:"deadline"`
	Status      string `json:"status"`
	Note        string `json:"note,omitempty"`
}

// Draft is the user-supplied field set for a task before an identifier is
// assigned. Drafts are validated against the configured option sets before
// any remote call is made.
type Draft struct {
	Name        string
	Description string
	Project     string
	Deploy      string
	Deadline    Date
	Status      string
	Note        string
}

// New builds a Task from a validated draft and an assigned identifier.
func New(id string, d Draft) Task {
	return Task{
		ID:          id,
		Name:        d.Name,
		Description: d.Description,
		Project:     d.Project,
		Deploy:      d.Deploy,
		Deadline:    d.Deadline,
		Status:      d.Status,
		Note:        d.Note,
	}
}

// DraftOf returns the draft equivalent of an existing task, used to pre-fill
// edit forms and to carry unchanged fields through a partial edit.
func DraftOf(t Task) Draft {
	return Draft{
		Name:        t.Name,
		Description: t.Description,
		Project:     t.Project,
		Deploy:      t.Deploy,
		Deadline:    t.Deadline,
		Status:      t.Status,
		Note:        t.Note,
	}
}

// Clone returns a copy of the collection. The repository hands clones to
// callers so no consumer can alias its internal state.
func Clone(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	return out
}

// ContainsFold reports whether any searchable field of the task contains
// substr, case-insensitively. Used by the view filter's free-text match.
func (t Task) ContainsFold(substr string) bool {
	needle := strings.ToLower(substr)
	for _, field := range []string{t.Name, t.Description, t.Project, t.Status, t.Note, t.Deploy} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}
