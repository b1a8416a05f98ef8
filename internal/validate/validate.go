// Package validate checks user-entered task drafts before they reach storage.
package validate

import (
	"strings"

	"taskpad/internal/service"
)

// Messages reported for each field.
const (
	MsgTitleRequired       = "Title is required"
	MsgDescriptionRequired = "Description is required"
	MsgDueDateRequired     = "Due date is required"
	MsgStatusRequired      = "Status is required"
)

// Result is the outcome of validating a draft.
// Fields is only meaningful when Valid reports true.
type Result struct {
	Fields service.Fields
	Errors map[string]string
}

// Valid reports whether the draft passed every rule.
func (r Result) Valid() bool {
	return len(r.Errors) == 0
}

// Err returns a *service.ValidationError for an invalid result, nil otherwise.
func (r Result) Err() error {
	if r.Valid() {
		return nil
	}
	return &service.ValidationError{Fields: r.Errors}
}

// Validate applies the task rule set to d. It has no side effects.
func Validate(d service.Draft) Result {
	res := Result{Errors: make(map[string]string)}

	res.Fields.Title = strings.TrimSpace(d.Title)
	if res.Fields.Title == "" {
		res.Errors[service.FieldTitle] = MsgTitleRequired
	}

	res.Fields.Description = strings.TrimSpace(d.Description)
	if res.Fields.Description == "" {
		res.Errors[service.FieldDescription] = MsgDescriptionRequired
	}

	due, err := service.ParseDate(d.DueDate)
	if err != nil {
		res.Errors[service.FieldDueDate] = MsgDueDateRequired
	}
	res.Fields.DueDate = due

	status, err := service.ParseStatus(d.Status)
	if err != nil {
		res.Errors[service.FieldStatus] = MsgStatusRequired
	}
	res.Fields.Status = status

	return res
}

// FromTask returns the draft that reproduces t, used to pre-fill edit forms.
func FromTask(t service.Task) service.Draft {
	return service.Draft{
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate.String(),
		Status:      string(t.Status),
	}
}

// Check reports whether a stored task satisfies the rule set.
func Check(t service.Task) error {
	return Validate(FromTask(t)).Err()
}
