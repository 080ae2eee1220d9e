package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/hpratama/taskbin/internal/util"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderFilterBar())
	b.WriteString("\n\n")

	switch m.mode {
	case modeForm:
		b.WriteString(m.form.View())
	case modeConfirm:
		b.WriteString(m.renderConfirm())
	case modeLogin:
		b.WriteString(m.renderLogin())
	default:
		b.WriteString(m.renderRows())
	}

	b.WriteString("\n")
	if m.errorMsg != "" {
		b.WriteString(errorStyle.Render("Error: " + m.errorMsg))
		b.WriteString("\n")
	}
	if m.infoMsg != "" {
		b.WriteString(infoStyle.Render(m.infoMsg))
		b.WriteString("\n")
	}

	b.WriteString(m.renderHelp())
	return b.String()
}

func (m Model) renderHeader() string {
	title := titleStyle.Render("taskbin")

	badge := readOnlyBadge.Render("READ-ONLY")
	if m.canWrite {
		badge = writableBadge.Render("WRITABLE")
	}

	count := mutedStyle.Render(fmt.Sprintf("%d/%d tasks", len(m.visible), len(m.tasks)))
	if m.loading {
		count = mutedStyle.Render("loading...")
	}

	return lipgloss.JoinHorizontal(lipgloss.Center, title, " ", badge, "  ", count)
}

func (m Model) renderFilterBar() string {
	var parts []string

	if m.searching || m.search.Value() != "" {
		parts = append(parts, "/"+m.search.View())
	}
	if status := m.statuses[m.statusIdx]; status != "" {
		parts = append(parts, primaryStyle.Render("status:"+status))
	}
	if project := m.projects[m.projectIdx]; project != "" {
		parts = append(parts, primaryStyle.Render("project:"+project))
	}

	if len(parts) == 0 {
		return mutedStyle.Render("no filters")
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderRows() string {
	if len(m.visible) == 0 {
		return mutedStyle.Render("  No tasks match.")
	}

	var b strings.Builder
	for i, t := range m.visible {
		badge := statusBadge.
			Background(statusColor(t.Status)).
			Foreground(textColor).
			Render(fmt.Sprintf("%-11s", t.Status))

		deadline := t.Deadline.String()
		if deadline == "" {
			deadline = "-"
		}

		line := fmt.Sprintf("%s %-8s %-30s %-10s %s",
			badge, util.ShortID(t.ID), util.Truncate(t.Name, 30), util.Truncate(t.Project, 10), deadline)

		if i == m.cursor {
			b.WriteString(selectedRow.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}

	// Detail pane for the selected task
	if t, ok := m.selectedTask(); ok {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("  " + t.Description))
		if t.Note != "" {
			b.WriteString("\n")
			b.WriteString(mutedStyle.Render("  note: " + t.Note))
		}
		if t.Deploy != "" {
			b.WriteString("\n")
			b.WriteString(mutedStyle.Render("  deploy: " + t.Deploy))
		}
	}

	return b.String()
}

func (m Model) renderConfirm() string {
	content := fmt.Sprintf("Delete task %s (%s)?\n\n", util.ShortID(m.confirm.ID), m.confirm.Name)
	content += mutedStyle.Render("y to delete, n to cancel")
	return overlayBox.BorderForeground(errorColor).Render(content)
}

func (m Model) renderLogin() string {
	content := "Enter passcode to unlock writes:\n\n"
	content += m.login.View() + "\n\n"
	content += mutedStyle.Render("enter to confirm, esc to cancel")
	return overlayBox.Render(content)
}

func (m Model) renderHelp() string {
	keys := "j/k move  / search  s status  p project  x clear  r refresh  a add  e edit  d delete  L login  O logout  q quit"
	return mutedStyle.Render(keys)
}
