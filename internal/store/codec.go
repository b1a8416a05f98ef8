package store

import (
	"encoding/json"
	"fmt"

	"taskpad/internal/service"
	"taskpad/internal/validate"
)

// record is the stored shape of a task. Completed is only present in data
// written before tasks had a status.
type record struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	DueDate     service.Date `json:"dueDate"`
	Status      *string      `json:"status,omitempty"`
	Completed   *bool        `json:"completed,omitempty"`
}

// Encode serializes the collection as a JSON array.
func Encode(tasks []service.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []service.Task{}
	}
	return json.Marshal(tasks)
}

// Decode parses a stored blob. Records that carry the old completed flag
// instead of a status are migrated: true becomes Completed, false Pending.
// migrated counts those records.
func Decode(data []byte) (tasks []service.Task, migrated int, err error) {
	if err := checkSchema(data); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}

	var records []record
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrCorruptData, err)
	}

	tasks = make([]service.Task, 0, len(records))
	seen := make(map[string]bool, len(records))
	for i, r := range records {
		if seen[r.ID] {
			return nil, 0, fmt.Errorf("%w: duplicate id %q", ErrCorruptData, r.ID)
		}
		seen[r.ID] = true

		t := service.Task{
			ID:          r.ID,
			Title:       r.Title,
			Description: r.Description,
			DueDate:     r.DueDate,
		}
		switch {
		case r.Status != nil:
			st, err := service.ParseStatus(*r.Status)
			if err != nil {
				return nil, 0, fmt.Errorf("%w: task %d: %v", ErrCorruptData, i, err)
			}
			t.Status = st
		case r.Completed != nil:
			t.Status = service.StatusPending
			if *r.Completed {
				t.Status = service.StatusCompleted
			}
			migrated++
		}

		if err := validate.Check(t); err != nil {
			return nil, 0, fmt.Errorf("%w: task %d: %v", ErrCorruptData, i, err)
		}
		tasks = append(tasks, t)
	}
	return tasks, migrated, nil
}
