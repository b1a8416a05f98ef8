// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"taskpad/internal/service"
)

const (
	// DetailSeparator is the separator line around a task detail view.
	DetailSeparator = "------------"
)

// FormatTask formats a task line for the list.
// Format: "{N:>4}  {TITLE}  [{STATUS}]  due {DATE}\n"
func FormatTask(w io.Writer, num int, task service.Task, layout string) {
	title := normalizeText(task.Title)
	fmt.Fprintf(w, "%4d  %s  [%s]  due %s\n", num, title, task.Status.Label(), task.DueDate.Format(layout))
}

// FormatTaskDetail formats the full view of a single task.
func FormatTaskDetail(w io.Writer, task service.Task, layout string) {
	fmt.Fprintln(w, DetailSeparator)
	fmt.Fprintln(w, normalizeText(task.Title))
	fmt.Fprintln(w, DetailSeparator)
	fmt.Fprintf(w, "id:          %s\n", task.ID)
	fmt.Fprintf(w, "status:      %s\n", task.Status.Label())
	fmt.Fprintf(w, "due:         %s\n", task.DueDate.Format(layout))
	fmt.Fprintln(w, "description:")
	for _, line := range strings.Split(task.Description, "\n") {
		fmt.Fprintf(w, "  %s\n", strings.TrimRight(line, "\r"))
	}
}

// FormatValidationErrors writes one "error: <field>: <message>" line per
// field, in a stable field order.
func FormatValidationErrors(w io.Writer, fields map[string]string) {
	for _, name := range service.FieldOrder {
		if msg, ok := fields[name]; ok {
			fmt.Fprintf(w, "error: %s: %s\n", name, msg)
		}
	}
}

// normalizeText normalizes a single-line title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeText(title string) string {
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
