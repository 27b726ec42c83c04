// Package config loads claudatui.yaml via koanf, layering file overrides on
// top of struct-provided defaults, the way the teacher's configuration
// loader layers providers.
package config

import (
	"os"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// TimingConfig holds the timing constants spec.md §4.5 fixes as defaults but
// leaves overridable for deterministic tests.
type TimingConfig struct {
	ChordTimeoutMS      int `koanf:"chord_timeout_ms"`
	EscapeTimeoutMS     int `koanf:"escape_timeout_ms"`
	LeaderRootTimeoutMS int `koanf:"leader_root_timeout_ms"`
	InputPollTimeoutMS  int `koanf:"input_poll_timeout_ms"`
	StatusInferenceHz   int `koanf:"status_inference_hz"`
	SettleDurationMS    int `koanf:"settle_duration_ms"`
}

// Config is the fully decoded configuration consumed by cmd/claudatui.
// File I/O that produces it is a thin adapter; the core only ever sees this
// struct (spec.md §1 Non-goals: configuration file I/O is an external
// collaborator).
type Config struct {
	ClaudeDir         string       `koanf:"claude_dir"`
	LogLevel          string       `koanf:"log_level"`
	LogFile           string       `koanf:"log_file"`
	EventLoopTickMS   int          `koanf:"event_loop_tick_ms"`
	PageSize          int          `koanf:"page_size"`
	AutoArchiveDays   int          `koanf:"auto_archive_days"`
	WorkspacePrefixes []string     `koanf:"workspace_prefixes"`
	DangerousDefault  bool         `koanf:"dangerous_default"`
	ScrollbackLines   int          `koanf:"scrollback_lines"`
	Timing            TimingConfig `koanf:"timing"`
}

// Default returns the built-in defaults, matching the constants spec.md
// names inline (PAGE_SIZE=3, 500ms chord, 150ms escape, 2s leader root,
// 50ms input poll, 1Hz status inference, 3s settle window, 10000 scrollback
// lines, 30-day auto-archive).
func Default() Config {
	return Config{
		LogLevel:        "info",
		EventLoopTickMS: 50,
		PageSize:        3,
		AutoArchiveDays: 30,
		ScrollbackLines: 10000,
		Timing: TimingConfig{
			ChordTimeoutMS:      500,
			EscapeTimeoutMS:     150,
			LeaderRootTimeoutMS: 2000,
			InputPollTimeoutMS:  50,
			StatusInferenceHz:   1,
			SettleDurationMS:    3000,
		},
	}
}

// Load builds a Config from built-in defaults overridden by an optional YAML
// file at path. A missing file is not an error; it just means defaults win.
func Load(path string) (Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return Config{}, err
	}

	if path != "" {
		if _, statErr := os.Stat(path); statErr == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return Config{}, err
			}
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ChordTimeout returns the chord timeout as a time.Duration.
func (c Config) ChordTimeout() time.Duration {
	return time.Duration(c.Timing.ChordTimeoutMS) * time.Millisecond
}

// EscapeTimeout returns the jk/kj escape timeout as a time.Duration.
func (c Config) EscapeTimeout() time.Duration {
	return time.Duration(c.Timing.EscapeTimeoutMS) * time.Millisecond
}

// LeaderRootTimeout returns the leader-root auto-cancel timeout.
func (c Config) LeaderRootTimeout() time.Duration {
	return time.Duration(c.Timing.LeaderRootTimeoutMS) * time.Millisecond
}

// InputPollTimeout returns the event loop's input-poll timeout.
func (c Config) InputPollTimeout() time.Duration {
	return time.Duration(c.Timing.InputPollTimeoutMS) * time.Millisecond
}

// SettleDuration returns the status-inference settle window.
func (c Config) SettleDuration() time.Duration {
	return time.Duration(c.Timing.SettleDurationMS) * time.Millisecond
}

// EventLoopTick returns the event loop's tick interval.
func (c Config) EventLoopTick() time.Duration {
	return time.Duration(c.EventLoopTickMS) * time.Millisecond
}
