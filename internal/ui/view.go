package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"taskpad/internal/service"
)

// EmptyMessage is shown when the collection has no tasks.
const EmptyMessage = "No tasks available. Add some tasks to get started!"

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	flashStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	labelStyle    = lipgloss.NewStyle().Bold(true)

	statusStyles = map[service.Status]lipgloss.Style{
		service.StatusPending:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		service.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		service.StatusCompleted:  lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
	}
)

func (m *Model) View() string {
	var b strings.Builder

	switch m.screen {
	case screenList:
		m.viewList(&b)
	case screenDetail:
		m.viewDetail(&b)
	case screenForm:
		m.viewForm(&b)
	}

	if m.flash != "" {
		b.WriteString("\n" + flashStyle.Render(m.flash) + "\n")
	}
	return b.String()
}

func writeHeader(b *strings.Builder, title string) {
	b.WriteString(headerStyle.Render(title) + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func writeFooter(b *strings.Builder, keys string) {
	b.WriteString("\n" + dimStyle.Render(keys) + "\n")
}

// writeState writes the loading or error state and reports whether it did.
func (m *Model) writeState(b *strings.Builder) bool {
	switch {
	case m.loading:
		b.WriteString("Loading...\n")
	case m.loadErr != nil:
		b.WriteString(errorStyle.Render("Failed to load tasks:") + "\n")
		b.WriteString("  " + m.loadErr.Error() + "\n")
	default:
		return false
	}
	return true
}

func (m *Model) viewList(b *strings.Builder) {
	writeHeader(b, "Task List")

	if !m.writeState(b) {
		if len(m.tasks) == 0 {
			b.WriteString(EmptyMessage + "\n")
		}
		for i, t := range m.tasks {
			line := fmt.Sprintf("%s  %s  due %s", t.Title, renderStatus(t.Status), t.DueDate.Format(m.layout))
			if i == m.cursor {
				b.WriteString(selectedStyle.Render("> ") + line + "\n")
			} else {
				b.WriteString("  " + line + "\n")
			}
			b.WriteString("    " + dimStyle.Render(firstLine(t.Description)) + "\n")
		}
	}

	writeFooter(b, "enter: view  n: new  r: refresh  q: quit")
}

func (m *Model) viewDetail(b *strings.Builder) {
	writeHeader(b, "View Task")

	switch {
	case m.writeState(b):
	case m.notFound || m.task == nil:
		b.WriteString("Task not found\n")
		writeFooter(b, "esc: go back")
		return
	default:
		t := m.task
		writeField(b, "Title", t.Title)
		writeField(b, "Description", t.Description)
		writeField(b, "Due date", t.DueDate.Format(m.layout))
		writeField(b, "Status", renderStatus(t.Status))
	}

	writeFooter(b, "e: edit  c: complete  d: delete  esc: back")
}

func (m *Model) viewForm(b *strings.Builder) {
	if m.form != nil && m.form.editID != "" {
		writeHeader(b, "Edit Task")
	} else {
		writeHeader(b, "New Task")
	}

	switch {
	case m.writeState(b):
		writeFooter(b, "esc: cancel")
		return
	case m.notFound || m.form == nil:
		b.WriteString("Task not found\n")
		writeFooter(b, "esc: go back")
		return
	}

	f := m.form
	for i := 0; i < fieldCount; i++ {
		label := fieldLabels[i] + ":"
		if i == f.focus {
			label = selectedStyle.Render(label)
		} else {
			label = labelStyle.Render(label)
		}
		b.WriteString(label + "\n")

		if i == fieldStatus {
			b.WriteString("  " + renderStatusChoice(f.status) + "\n")
		} else {
			b.WriteString("  " + f.inputs[i].View() + "\n")
		}
		if msg, ok := f.errors[fieldNames[i]]; ok {
			b.WriteString("  " + errorStyle.Render(msg) + "\n")
		}
	}

	if f.saving {
		b.WriteString("\nSaving...\n")
	}
	writeFooter(b, "tab: next field  ctrl+s: cycle status  enter: save  esc: cancel")
}

func writeField(b *strings.Builder, label, value string) {
	b.WriteString(labelStyle.Render(label+":") + "\n")
	for _, line := range strings.Split(value, "\n") {
		b.WriteString("  " + line + "\n")
	}
}

func renderStatus(s service.Status) string {
	style, ok := statusStyles[s]
	if !ok {
		return "[" + s.Label() + "]"
	}
	return style.Render("[" + s.Label() + "]")
}

// renderStatusChoice shows every status with the selected one highlighted.
func renderStatusChoice(selected service.Status) string {
	parts := make([]string, len(service.Statuses))
	for i, s := range service.Statuses {
		if s == selected {
			parts[i] = selectedStyle.Render("(" + s.Label() + ")")
		} else {
			parts[i] = dimStyle.Render(" " + s.Label() + " ")
		}
	}
	return strings.Join(parts, " ")
}

func firstLine(s string) string {
	if i := strings.IndexAny(s, "\r\n"); i >= 0 {
		return s[:i] + "..."
	}
	return s
}
