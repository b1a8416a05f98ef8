package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"taskpad/internal/service"
)

// Form field positions, in tab order.
const (
	fieldTitle = iota
	fieldDescription
	fieldDue
	fieldStatus
	fieldCount
)

var fieldNames = [fieldCount]string{
	fieldTitle:       service.FieldTitle,
	fieldDescription: service.FieldDescription,
	fieldDue:         service.FieldDueDate,
	fieldStatus:      service.FieldStatus,
}

var fieldLabels = [fieldCount]string{
	fieldTitle:       "Title",
	fieldDescription: "Description",
	fieldDue:         "Due date",
	fieldStatus:      "Status",
}

// form is the create/edit screen state. An empty editID means create.
// An edit form stays unready until the stored task has loaded.
type form struct {
	ready  bool
	editID string
	inputs [fieldStatus]textinput.Model
	status service.Status
	focus  int
	errors map[string]string
	saving bool
}

func newForm(d service.Draft, editID string) *form {
	f := &form{editID: editID, ready: true}

	placeholders := [fieldStatus]string{
		fieldTitle:       "Enter task title",
		fieldDescription: "Enter task description",
		fieldDue:         "YYYY-MM-DD",
	}
	values := [fieldStatus]string{
		fieldTitle:       d.Title,
		fieldDescription: d.Description,
		fieldDue:         d.DueDate,
	}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 256
		ti.Width = 40
		ti.SetValue(values[i])
		f.inputs[i] = ti
	}

	f.status = service.StatusPending
	if st, err := service.ParseStatus(d.Status); err == nil {
		f.status = st
	}
	f.setFocus(fieldTitle)
	return f
}

// setFocus moves focus to field i, wrapping around.
func (f *form) setFocus(i int) {
	f.focus = (i + fieldCount) % fieldCount
	for j := range f.inputs {
		if j == f.focus {
			f.inputs[j].Focus()
		} else {
			f.inputs[j].Blur()
		}
	}
}

func (f *form) updateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	delete(f.errors, fieldNames[f.focus])
	return cmd
}

func (f *form) draft() service.Draft {
	return service.Draft{
		Title:       f.inputs[fieldTitle].Value(),
		Description: f.inputs[fieldDescription].Value(),
		DueDate:     f.inputs[fieldDue].Value(),
		Status:      string(f.status),
	}
}
