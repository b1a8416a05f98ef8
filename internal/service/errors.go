package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned when no task has the requested ID.
	ErrNotFound = errors.New("task not found")

	// ErrValidationFailed matches every *ValidationError.
	ErrValidationFailed = errors.New("validation failed")

	// ErrConflict is returned when the stored collection changed between
	// load and save and revision checking is enabled.
	ErrConflict = errors.New("task collection changed since it was loaded")
)

// FieldOrder is the order fields are reported in.
var FieldOrder = []string{FieldTitle, FieldDescription, FieldDueDate, FieldStatus}

// Field names used as keys in ValidationError.Fields.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldDueDate     = "dueDate"
	FieldStatus      = "status"
)

// ValidationError carries field-level messages for a rejected draft.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	var parts []string
	for _, name := range FieldOrder {
		if msg, ok := e.Fields[name]; ok {
			parts = append(parts, fmt.Sprintf("%s: %s", name, msg))
		}
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Is reports whether target is ErrValidationFailed.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
