package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFileMissingUsesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.UserName != DefaultUserName {
		t.Errorf("Expected default user name, got %q", cfg.UserName)
	}
	if cfg.Storage.Backend != "file" {
		t.Errorf("Expected file backend, got %q", cfg.Storage.Backend)
	}
	if cfg.Timer.Pomodoro != 25*time.Minute {
		t.Errorf("Expected 25m pomodoro, got %v", cfg.Timer.Pomodoro)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "user_name: Asha\nstorage:\n  backend: sqlite\nquotes:\n  timeout: 1s\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.UserName != "Asha" {
		t.Errorf("Expected user name Asha, got %q", cfg.UserName)
	}
	if cfg.Storage.Backend != "sqlite" {
		t.Errorf("Expected sqlite backend, got %q", cfg.Storage.Backend)
	}
	if cfg.Quotes.Timeout != time.Second {
		t.Errorf("Expected 1s timeout, got %v", cfg.Quotes.Timeout)
	}
	if cfg.Quotes.URL != DefaultQuoteURL {
		t.Errorf("Expected default quote URL to be filled, got %q", cfg.Quotes.URL)
	}
}

func TestLoadLayersSecretsAndEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("STUDYDESK_CONFIG_DIR", dir)
	t.Setenv("STUDYDESK_USER_NAME", "")
	t.Setenv("STUDYDESK_DATA_DIR", "")

	if err := os.WriteFile(filepath.Join(dir, "secrets.env"), []byte("# display name\nUSER_NAME=\"Ravi\"\n"), 0600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.UserName != "Ravi" {
		t.Errorf("Expected name from secrets, got %q", cfg.UserName)
	}

	t.Setenv("STUDYDESK_USER_NAME", "Meera")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.UserName != "Meera" {
		t.Errorf("Expected env to win over secrets, got %q", cfg.UserName)
	}
}

func TestSaveAndSet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	if err := cfg.Set("calendar.name", "Semester"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := cfg.Set("storage.backend", "floppy"); err == nil {
		t.Error("Expected unknown backend to be rejected")
	}
	if err := cfg.Set("no.such.key", "x"); err == nil {
		t.Error("Expected unknown key to be rejected")
	}
	if err := SaveFile(path, cfg); err != nil {
		t.Fatalf("SaveFile failed: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if loaded.Calendar.Name != "Semester" {
		t.Errorf("Expected calendar name Semester, got %q", loaded.Calendar.Name)
	}
	if loaded.Timer.Break != 5*time.Minute {
		t.Errorf("Expected break duration to round-trip, got %v", loaded.Timer.Break)
	}
}
