package store

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "qsolog.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

func TestLoadConfig_AppliesDefaults(t *testing.T) {
	path := writeConfigFile(t, "path: /tmp/qsos.db\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if cfg.Path != "/tmp/qsos.db" {
		t.Errorf("Path = %q, want /tmp/qsos.db", cfg.Path)
	}
	if cfg.BusyTimeoutMS != 5000 {
		t.Errorf("BusyTimeoutMS = %d, want default 5000", cfg.BusyTimeoutMS)
	}
	if cfg.Synchronous != "NORMAL" {
		t.Errorf("Synchronous = %q, want default NORMAL", cfg.Synchronous)
	}
}

func TestLoadConfig_FullFile(t *testing.T) {
	path := writeConfigFile(t, "path: qsos.db\nbusy_timeout_ms: 250\nsynchronous: FULL\n")

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() failed: %v", err)
	}
	if cfg.BusyTimeoutMS != 250 {
		t.Errorf("BusyTimeoutMS = %d, want 250", cfg.BusyTimeoutMS)
	}
	if cfg.Synchronous != "FULL" {
		t.Errorf("Synchronous = %q, want FULL", cfg.Synchronous)
	}
}

func TestLoadConfig_RejectsBadSynchronous(t *testing.T) {
	path := writeConfigFile(t, "path: qsos.db\nsynchronous: SOMETIMES\n")

	if _, err := LoadConfig(path); err == nil {
		t.Error("expected error for bad synchronous mode, got nil")
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig("/nonexistent/qsolog.yaml"); err == nil {
		t.Error("expected error for missing file, got nil")
	}
}

func TestOpenConfig_RejectsEmptyPath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Path = ""
	if _, err := OpenConfig(cfg); err == nil {
		t.Error("expected error for empty path, got nil")
	}
}
