// Package archive persists conversation archive state to
// <claude_dir>/claudatui-archive.json, grounded on
// original_source/src/claude/archive.rs. Writes are atomic: write to a
// temp file, then rename over the target (spec.md §6/§7).
package archive

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"claudatui/internal/errs"
)

// DefaultAutoArchiveDays is the default eligibility threshold for
// auto-archiving an idle conversation (spec.md §6).
const DefaultAutoArchiveDays = 30

const fileName = "claudatui-archive.json"

// Entry is the persisted record for one archived session.
type Entry struct {
	ArchivedAt   time.Time `json:"archived_at"`
	AutoArchived bool      `json:"auto_archived"`
}

// State is the on-disk shape of claudatui-archive.json.
type State struct {
	Version          int              `json:"version"`
	AutoArchiveDays  *int             `json:"auto_archive_days"`
	ArchivedSessions map[string]Entry `json:"archived_sessions"`
}

func defaultState() State {
	days := DefaultAutoArchiveDays
	return State{
		Version:          1,
		AutoArchiveDays:  &days,
		ArchivedSessions: make(map[string]Entry),
	}
}

// Manager loads, mutates, and persists archive state for a claude_dir.
type Manager struct {
	path  string
	state State
	dirty bool
}

// Load reads claudatui-archive.json from claudeDir, or returns a Manager
// seeded with default state if the file does not yet exist.
func Load(claudeDir string) (*Manager, error) {
	path := filepath.Join(claudeDir, fileName)

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Manager{path: path, state: defaultState()}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading archive file: %w", err)
	}

	var state State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("parsing archive file: %w", err)
	}
	if state.ArchivedSessions == nil {
		state.ArchivedSessions = make(map[string]Entry)
	}
	return &Manager{path: path, state: state}, nil
}

// IsArchived reports whether sessionID currently has an archive entry.
func (m *Manager) IsArchived(sessionID string) bool {
	_, ok := m.state.ArchivedSessions[sessionID]
	return ok
}

// Entry returns the archive entry for sessionID, if archived.
func (m *Manager) Entry(sessionID string) (Entry, bool) {
	e, ok := m.state.ArchivedSessions[sessionID]
	return e, ok
}

// Archive marks sessionID archived at the current instant.
func (m *Manager) Archive(sessionID string, autoArchived bool) {
	m.state.ArchivedSessions[sessionID] = Entry{ArchivedAt: time.Now().UTC(), AutoArchived: autoArchived}
	m.dirty = true
}

// Unarchive removes sessionID's archive entry, if present.
func (m *Manager) Unarchive(sessionID string) {
	if _, ok := m.state.ArchivedSessions[sessionID]; ok {
		delete(m.state.ArchivedSessions, sessionID)
		m.dirty = true
	}
}

// ShouldAutoArchive reports whether a conversation last modified at
// timestampMS is eligible for auto-archiving under the current
// AutoArchiveDays setting (spec.md §6's auto-archive eligibility rule,
// minus the not-already-archived/PTY-not-running/status-Idle checks the
// caller must also apply).
func (m *Manager) ShouldAutoArchive(timestampMS int64) bool {
	if m.state.AutoArchiveDays == nil {
		return false
	}
	convTime := time.UnixMilli(timestampMS)
	daysOld := time.Since(convTime).Hours() / 24
	return daysOld >= float64(*m.state.AutoArchiveDays)
}

// SetAutoArchiveDays changes the eligibility threshold; nil disables
// auto-archiving.
func (m *Manager) SetAutoArchiveDays(days *int) {
	m.state.AutoArchiveDays = days
	m.dirty = true
}

// AutoArchiveDays returns the current threshold, or nil if disabled.
func (m *Manager) AutoArchiveDays() *int {
	return m.state.AutoArchiveDays
}

// ArchivedSessions returns a snapshot of every archived session id and its
// entry.
func (m *Manager) ArchivedSessions() map[string]Entry {
	out := make(map[string]Entry, len(m.state.ArchivedSessions))
	for k, v := range m.state.ArchivedSessions {
		out[k] = v
	}
	return out
}

// IsDirty reports whether there are unsaved changes.
func (m *Manager) IsDirty() bool {
	return m.dirty
}

// Save writes the current state to disk atomically (write-temp-then-rename)
// if dirty; a no-op otherwise. Wraps any failure in errs.ErrArchiveSaveFailed
// so the caller can surface exactly one failure toast (spec.md §7).
func (m *Manager) Save() error {
	if !m.dirty {
		return nil
	}

	data, err := json.MarshalIndent(m.state, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", errs.ErrArchiveSaveFailed, err)
	}

	tempPath := m.path + ".tmp"
	if err := os.WriteFile(tempPath, data, 0o644); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrArchiveSaveFailed, err)
	}
	if err := os.Rename(tempPath, m.path); err != nil {
		return fmt.Errorf("%w: %v", errs.ErrArchiveSaveFailed, err)
	}

	m.dirty = false
	return nil
}
