package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hpratama/taskbin/internal/task"
)

// Form field order.
const (
	fieldName = iota
	fieldDescription
	fieldProject
	fieldDeploy
	fieldDeadline
	fieldStatus
	fieldNote
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Name",
	"Description",
	"Project",
	"Deploy",
	"Deadline",
	"Status",
	"Note",
}

// taskForm is the create/edit overlay. It edits a draft as plain text
// fields; validation happens in the repository when the form submits.
type taskForm struct {
	title  string
	taskID string // empty for create
	inputs [fieldCount]textinput.Model
	focus  int
}

// newTaskForm builds a form pre-filled from a draft. The option sets are
// shown as placeholders so the closed-set fields are discoverable.
func newTaskForm(title, taskID string, draft task.Draft, opts task.Options) *taskForm {
	f := &taskForm{title: title, taskID: taskID}

	for i := range f.inputs {
		ti := textinput.New()
		ti.CharLimit = 200
		ti.Width = 40
		f.inputs[i] = ti
	}

	f.inputs[fieldName].SetValue(draft.Name)
	f.inputs[fieldDescription].SetValue(draft.Description)
	f.inputs[fieldProject].SetValue(draft.Project)
	f.inputs[fieldProject].Placeholder = strings.Join(opts.Projects, " | ")
	f.inputs[fieldDeploy].SetValue(draft.Deploy)
	f.inputs[fieldDeploy].Placeholder = strings.Join(opts.Deploys, " | ")
	f.inputs[fieldDeadline].SetValue(draft.Deadline.String())
	f.inputs[fieldDeadline].Placeholder = "YYYY-MM-DD"
	f.inputs[fieldStatus].SetValue(draft.Status)
	f.inputs[fieldStatus].Placeholder = strings.Join(opts.Statuses, " | ")
	f.inputs[fieldNote].SetValue(draft.Note)

	f.inputs[fieldName].Focus()
	return f
}

// Update routes a keypress to the focused input and handles focus moves.
func (f *taskForm) Update(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "tab", "down":
		f.setFocus((f.focus + 1) % fieldCount)
		return nil
	case "shift+tab", "up":
		f.setFocus((f.focus + fieldCount - 1) % fieldCount)
		return nil
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *taskForm) setFocus(i int) {
	f.inputs[f.focus].Blur()
	f.focus = i
	f.inputs[f.focus].Focus()
}

// Draft assembles the field values. The deadline is parsed here so a typo
// surfaces before the form tries to write.
func (f *taskForm) Draft() (task.Draft, error) {
	draft := task.Draft{
		Name:        strings.TrimSpace(f.inputs[fieldName].Value()),
		Description: strings.TrimSpace(f.inputs[fieldDescription].Value()),
		Project:     strings.TrimSpace(f.inputs[fieldProject].Value()),
		Deploy:      strings.TrimSpace(f.inputs[fieldDeploy].Value()),
		Status:      strings.TrimSpace(f.inputs[fieldStatus].Value()),
		Note:        strings.TrimSpace(f.inputs[fieldNote].Value()),
	}

	raw := strings.TrimSpace(f.inputs[fieldDeadline].Value())
	if raw != "" {
		deadline, err := task.ParseDate(raw)
		if err != nil {
			return task.Draft{}, err
		}
		draft.Deadline = deadline
	}

	return draft, nil
}

// View renders the form overlay.
func (f *taskForm) View() string {
	var b strings.Builder

	b.WriteString(primaryStyle.Bold(true).Render(f.title))
	b.WriteString("\n\n")

	for i, input := range f.inputs {
		label := fmt.Sprintf("%-12s", fieldLabels[i])
		if i == f.focus {
			b.WriteString(textStyle.Bold(true).Render(label))
		} else {
			b.WriteString(mutedStyle.Render(label))
		}
		b.WriteString(input.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("tab/shift+tab move, enter save, esc cancel"))

	return overlayBox.Render(b.String())
}
