package exitcode_test

import (
	"testing"

	"taskpad/internal/exitcode"
)

func TestAllIsOrderedAndDistinct(t *testing.T) {
	all := exitcode.All()
	if len(all) != 5 {
		t.Fatalf("expected 5 codes, got %d", len(all))
	}
	for i := 1; i < len(all); i++ {
		if all[i].Value <= all[i-1].Value {
			t.Errorf("codes not strictly ascending at %d: %d after %d", i, all[i].Value, all[i-1].Value)
		}
	}
}

func TestAllReturnsCopy(t *testing.T) {
	all := exitcode.All()
	all[0].Description = "changed"
	if exitcode.Describe(exitcode.Success) != "success" {
		t.Error("mutating All() result leaked into package state")
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{exitcode.StorageError, "task storage unavailable or write failed"},
		{exitcode.RemoteError, "Google Tasks request failed"},
		{42, "unknown"},
	}
	for _, tt := range tests {
		if got := exitcode.Describe(tt.code); got != tt.want {
			t.Errorf("Describe(%d) = %q, want %q", tt.code, got, tt.want)
		}
	}
}
