package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv(EnvBackend, "")
	t.Setenv(EnvDataDir, "")
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend != DefaultBackend {
		t.Errorf("expected backend %q, got %q", DefaultBackend, cfg.Backend)
	}
	if cfg.DataDir != filepath.Join("/tmp/xdg-data", AppName) {
		t.Errorf("unexpected data dir %q", cfg.DataDir)
	}
	if cfg.DisplayLayout() != "02/01/2006" {
		t.Errorf("unexpected date layout %q", cfg.DisplayLayout())
	}
	if cfg.CheckRevision {
		t.Error("expected revision checking off by default")
	}
	if cfg.ExportList != DefaultExportList {
		t.Errorf("expected export list %q, got %q", DefaultExportList, cfg.ExportList)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	content := `
backend = "sqlite"
data_dir = "/srv/tasks"
date_format = "2006-01-02"
check_revision = true

[export]
list = "Phone"
`
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv(EnvBackend, "bolt")
	t.Setenv(EnvDataDir, "")

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Backend != "bolt" {
		t.Errorf("expected env to override backend, got %q", cfg.Backend)
	}
	if cfg.DataDir != "/srv/tasks" {
		t.Errorf("expected data dir from file, got %q", cfg.DataDir)
	}
	if cfg.DateFormat != "2006-01-02" {
		t.Errorf("unexpected date format %q", cfg.DateFormat)
	}
	if !cfg.CheckRevision {
		t.Error("expected check_revision from file")
	}
	if cfg.ExportList != "Phone" {
		t.Errorf("expected export list Phone, got %q", cfg.ExportList)
	}
}

func TestLoad_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFile), []byte("backend = ["), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if _, err := Load(dir); err == nil {
		t.Fatal("expected error for malformed config")
	}
}

func TestLogger_DefaultDiscards(t *testing.T) {
	cfg := &Config{}
	if cfg.Logger() == nil {
		t.Fatal("expected non-nil logger")
	}
	cfg.Logger().Info("dropped")
}
