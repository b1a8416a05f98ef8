package output

import (
	"bytes"
	"testing"
	"time"

	"taskpad/internal/service"
)

func TestFormatTask(t *testing.T) {
	var buf bytes.Buffer
	task := service.Task{
		ID:      "a",
		Title:   "Buy\nmilk",
		DueDate: service.NewDate(2024, time.January, 2),
		Status:  service.StatusInProgress,
	}
	FormatTask(&buf, 3, task, service.DisplayDate)

	want := "   3  Buy milk  [In Progress]  due 02/01/2024\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestFormatTask_Untitled(t *testing.T) {
	var buf bytes.Buffer
	FormatTask(&buf, 1, service.Task{Title: "  ", Status: service.StatusPending}, service.ISODate)

	want := "   1  (untitled)  [Pending]  due \n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestFormatTaskDetail(t *testing.T) {
	var buf bytes.Buffer
	task := service.Task{
		ID:          "abc",
		Title:       "Buy milk",
		Description: "2%\nfrom the corner shop",
		DueDate:     service.NewDate(2024, time.January, 1),
		Status:      service.StatusPending,
	}
	FormatTaskDetail(&buf, task, service.ISODate)

	want := "------------\n" +
		"Buy milk\n" +
		"------------\n" +
		"id:          abc\n" +
		"status:      Pending\n" +
		"due:         2024-01-01\n" +
		"description:\n" +
		"  2%\n" +
		"  from the corner shop\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestFormatValidationErrors(t *testing.T) {
	var buf bytes.Buffer
	FormatValidationErrors(&buf, map[string]string{
		"status": "Status is required",
		"title":  "Title is required",
	})

	want := "error: title: Title is required\nerror: status: Status is required\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}
