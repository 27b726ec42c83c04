package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PageSize != 3 {
		t.Fatalf("PageSize = %d, want 3", cfg.PageSize)
	}
	if cfg.AutoArchiveDays != 30 {
		t.Fatalf("AutoArchiveDays = %d, want 30", cfg.AutoArchiveDays)
	}
	if cfg.Timing.ChordTimeoutMS != 500 {
		t.Fatalf("ChordTimeoutMS = %d, want 500", cfg.Timing.ChordTimeoutMS)
	}
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(filepath.Join(dir, "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PageSize != 3 {
		t.Fatalf("PageSize = %d, want default 3", cfg.PageSize)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "claudatui.yaml")
	contents := "page_size: 5\nauto_archive_days: 7\ntiming:\n  chord_timeout_ms: 750\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.PageSize != 5 {
		t.Fatalf("PageSize = %d, want 5", cfg.PageSize)
	}
	if cfg.AutoArchiveDays != 7 {
		t.Fatalf("AutoArchiveDays = %d, want 7", cfg.AutoArchiveDays)
	}
	if cfg.Timing.ChordTimeoutMS != 750 {
		t.Fatalf("ChordTimeoutMS = %d, want 750", cfg.Timing.ChordTimeoutMS)
	}
	// Unset fields keep their struct defaults.
	if cfg.LogLevel != "info" {
		t.Fatalf("LogLevel = %q, want default %q", cfg.LogLevel, "info")
	}
}

func TestDurationHelpers(t *testing.T) {
	cfg := Default()
	if cfg.ChordTimeout().Milliseconds() != 500 {
		t.Fatalf("ChordTimeout = %v, want 500ms", cfg.ChordTimeout())
	}
	if cfg.EscapeTimeout().Milliseconds() != 150 {
		t.Fatalf("EscapeTimeout = %v, want 150ms", cfg.EscapeTimeout())
	}
	if cfg.SettleDuration().Seconds() != 3 {
		t.Fatalf("SettleDuration = %v, want 3s", cfg.SettleDuration())
	}
}
