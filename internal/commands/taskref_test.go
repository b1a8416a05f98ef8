package commands

import (
	"errors"
	"testing"

	"taskpad/internal/service"
)

func TestParseTaskRef(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want TaskRef
	}{
		{"number", []string{"5"}, TaskRef{Num: 5, Text: "5"}},
		{"multi digit", []string{"12"}, TaskRef{Num: 12, Text: "12"}},
		{"zero is still a number", []string{"0"}, TaskRef{Num: 0, Text: "0"}},
		{"uuid", []string{"3f2b8c1e-9a4d-4b7e-8f00-1234567890ab"}, TaskRef{ID: "3f2b8c1e-9a4d-4b7e-8f00-1234567890ab"}},
		{"prefix", []string{"3f2b"}, TaskRef{ID: "3f2b"}},
		{"trimmed", []string{"  7 "}, TaskRef{Num: 7, Text: "7"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTaskRef(tt.args)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %+v, got %+v", tt.want, got)
			}
		})
	}
}

func TestParseTaskRef_NoArgs_Error(t *testing.T) {
	for _, args := range [][]string{nil, {}, {"  "}} {
		if _, err := ParseTaskRef(args); err != ErrTaskRefRequired {
			t.Errorf("%q: expected ErrTaskRefRequired, got %v", args, err)
		}
	}
}

func TestParseTaskRef_ExtraArgs_Error(t *testing.T) {
	_, err := ParseTaskRef([]string{"1", "2"})
	if !errors.Is(err, ErrInvalidTaskRef) {
		t.Fatalf("expected ErrInvalidTaskRef, got %v", err)
	}
	if err.Error() != "invalid task reference: 1 2" {
		t.Errorf("unexpected message %q", err.Error())
	}
}

func TestTaskRef_String(t *testing.T) {
	if s := (TaskRef{Num: 3}).String(); s != "3" {
		t.Errorf("expected 3, got %q", s)
	}
	if s := (TaskRef{Num: 7, Text: "007"}).String(); s != "007" {
		t.Errorf("expected 007, got %q", s)
	}
	if s := (TaskRef{ID: "abcd"}).String(); s != "abcd" {
		t.Errorf("expected abcd, got %q", s)
	}
}

func TestMatchTask(t *testing.T) {
	tasks := []service.Task{
		{ID: "abcd1111", Title: "one"},
		{ID: "abcd2222", Title: "two"},
		{ID: "ef01", Title: "three"},
		{ID: "ef", Title: "four"},
	}

	tests := []struct {
		name    string
		ref     TaskRef
		want    string
		wantErr error
	}{
		{"first by number", TaskRef{Num: 1}, "one", nil},
		{"last by number", TaskRef{Num: 4}, "four", nil},
		{"number zero", TaskRef{Num: 0}, "", service.ErrNotFound},
		{"number past end", TaskRef{Num: 5}, "", service.ErrNotFound},
		{"exact id", TaskRef{ID: "abcd2222"}, "two", nil},
		{"unique prefix", TaskRef{ID: "abcd1"}, "one", nil},
		{"ambiguous prefix", TaskRef{ID: "abcd"}, "", ErrAmbiguousTaskRef},
		{"short exact id wins", TaskRef{ID: "ef"}, "four", nil},
		{"short prefix rejected", TaskRef{ID: "abc"}, "", service.ErrNotFound},
		{"exact id beats prefix", TaskRef{ID: "ef01"}, "three", nil},
		{"unknown id", TaskRef{ID: "zzzz"}, "", service.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := matchTask(tasks, tt.ref)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Title != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got.Title)
			}
		})
	}
}

// Migrated collections use small integer ids; an exact id match takes
// precedence over the list position.
func TestMatchTask_DigitIDs(t *testing.T) {
	tasks := []service.Task{
		{ID: "2", Title: "second"},
		{ID: "3", Title: "third"},
		{ID: "10", Title: "tenth"},
	}

	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr error
	}{
		{"id beats position", []string{"2"}, "second", nil},
		{"id past end of list", []string{"10"}, "tenth", nil},
		{"id three", []string{"3"}, "third", nil},
		{"position when no id matches", []string{"1"}, "second", nil},
		{"leading zeros are not the id", []string{"03"}, "third", nil},
		{"neither id nor position", []string{"4"}, "", service.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := ParseTaskRef(tt.args)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			got, err := matchTask(tasks, ref)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Title != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got.Title)
			}
		})
	}
}
