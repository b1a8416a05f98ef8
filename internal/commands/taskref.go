package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	"taskpad/internal/service"
)

// MinPrefixLen is the shortest id prefix accepted as a task reference.
const MinPrefixLen = 4

var (
	// ErrTaskRefRequired indicates no task reference was provided.
	ErrTaskRefRequired = errors.New("task reference required")

	// ErrInvalidTaskRef is returned for references that are neither a
	// number nor an id.
	ErrInvalidTaskRef = errors.New("invalid task reference")

	// ErrAmbiguousTaskRef is returned when an id prefix matches several tasks.
	ErrAmbiguousTaskRef = errors.New("ambiguous task reference")
)

// TaskRef is a parsed task reference: either a 1-based position in the
// task list or an id (full or prefix). Text keeps a positional reference
// as typed, since migrated collections can carry all-digit ids.
type TaskRef struct {
	Num  int
	ID   string
	Text string
}

// IsNum reports whether the reference is positional.
func (r TaskRef) IsNum() bool { return r.ID == "" }

func (r TaskRef) String() string {
	switch {
	case !r.IsNum():
		return r.ID
	case r.Text != "":
		return r.Text
	}
	return strconv.Itoa(r.Num)
}

// ParseTaskRef parses a task reference from args.
//
// An all-digit first argument is a task number, unless a task has exactly
// that id; anything else is taken as an id or id prefix. Extra arguments
// are rejected.
func ParseTaskRef(args []string) (TaskRef, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return TaskRef{}, ErrTaskRefRequired
	}
	if len(args) > 1 {
		return TaskRef{}, fmt.Errorf("%w: %s", ErrInvalidTaskRef, strings.Join(args, " "))
	}

	ref := strings.TrimSpace(args[0])
	if isAllDigits(ref) {
		num, err := strconv.Atoi(ref)
		if err != nil {
			return TaskRef{}, fmt.Errorf("%w: %s", ErrInvalidTaskRef, ref)
		}
		return TaskRef{Num: num, Text: ref}, nil
	}
	return TaskRef{ID: ref}, nil
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// ResolveTask finds the task ref points at in the current collection.
// Unknown ids and out-of-range numbers wrap service.ErrNotFound.
func ResolveTask(ctx context.Context, svc service.Service, ref TaskRef) (service.Task, error) {
	tasks, err := svc.ListTasks(ctx)
	if err != nil {
		return service.Task{}, err
	}
	return matchTask(tasks, ref)
}

func matchTask(tasks []service.Task, ref TaskRef) (service.Task, error) {
	if ref.IsNum() {
		for _, t := range tasks {
			if t.ID == ref.String() {
				return t, nil
			}
		}
		if ref.Num < 1 || ref.Num > len(tasks) {
			return service.Task{}, fmt.Errorf("%w: %d", service.ErrNotFound, ref.Num)
		}
		return tasks[ref.Num-1], nil
	}

	for _, t := range tasks {
		if t.ID == ref.ID {
			return t, nil
		}
	}

	if len(ref.ID) >= MinPrefixLen {
		var matches []service.Task
		for _, t := range tasks {
			if strings.HasPrefix(t.ID, ref.ID) {
				matches = append(matches, t)
			}
		}
		switch len(matches) {
		case 1:
			return matches[0], nil
		case 0:
		default:
			return service.Task{}, fmt.Errorf("%w: %s matches %d tasks", ErrAmbiguousTaskRef, ref.ID, len(matches))
		}
	}

	return service.Task{}, fmt.Errorf("%w: %s", service.ErrNotFound, ref.ID)
}

// lookupTask parses args and resolves the task, reporting any failure to
// errOut. ok is false when the command should exit with code.
func lookupTask(ctx context.Context, svc service.Service, args []string, errOut io.Writer) (task service.Task, code int, ok bool) {
	ref, err := ParseTaskRef(args)
	if err != nil {
		return service.Task{}, reportError(errOut, err), false
	}
	task, err = ResolveTask(ctx, svc, ref)
	if err != nil {
		return service.Task{}, reportError(errOut, err), false
	}
	return task, 0, true
}
