// Package loader scans the project store and parses per-project session
// indexes into SessionEntry records, grounded on
// original_source/src/claude/sessions.rs.
package loader

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"

	"claudatui/internal/obslog"
)

// SessionEntry is the normalized projection of one raw sessions-index.json
// record (spec.md §6). IsSidechain entries are filtered out before this
// type is ever constructed.
type SessionEntry struct {
	SessionID    string
	FullPath     string
	FileMtimeMS  int64
	FirstPrompt  string
	Summary      string
	MessageCount int
	CreatedMS    int64
	ModifiedMS   int64
	GitBranch    string // empty means absent
	ProjectPath  string
}

// rawEntry mirrors the on-disk JSON shape of spec.md §6 exactly, field for
// field, before GitBranch empty-string normalization.
type rawEntry struct {
	SessionID    string `json:"sessionId"`
	FullPath     string `json:"fullPath"`
	FileMtime    int64  `json:"fileMtime"`
	FirstPrompt  string `json:"firstPrompt"`
	Summary      string `json:"summary"`
	MessageCount int    `json:"messageCount"`
	Created      int64  `json:"created"`
	Modified     int64  `json:"modified"`
	GitBranch    string `json:"gitBranch"`
	ProjectPath  string `json:"projectPath"`
	IsSidechain  bool   `json:"isSidechain"`
}

type sessionsIndex struct {
	Version int        `json:"version"`
	Entries []rawEntry `json:"entries"`
}

// ParseAllSessions scans claudeDir/projects/*/sessions-index.json and
// returns every non-sidechain entry across all projects, sorted by
// ModifiedMS descending. A missing projects/ directory yields an empty,
// non-error result (sessions.rs: "returns empty if projects/ missing").
// Per-file parse errors are logged and skipped, never fatal.
func ParseAllSessions(claudeDir string) []SessionEntry {
	logger := obslog.Logger()
	projectsDir := filepath.Join(claudeDir, "projects")

	dirEntries, err := os.ReadDir(projectsDir)
	if err != nil {
		return nil
	}

	var all []SessionEntry
	for _, dirEntry := range dirEntries {
		if !dirEntry.IsDir() {
			continue
		}
		indexPath := filepath.Join(projectsDir, dirEntry.Name(), "sessions-index.json")
		entries, err := parseSessionsIndex(indexPath)
		if err != nil {
			if !os.IsNotExist(err) {
				logger.Warn("skipping malformed sessions index",
					zap.String("path", indexPath), zap.Error(err))
			}
			continue
		}
		all = append(all, entries...)
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].ModifiedMS > all[j].ModifiedMS
	})
	return all
}

func parseSessionsIndex(path string) ([]SessionEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var idx sessionsIndex
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, err
	}

	entries := make([]SessionEntry, 0, len(idx.Entries))
	for _, raw := range idx.Entries {
		if raw.IsSidechain {
			continue
		}
		entries = append(entries, SessionEntry{
			SessionID:    raw.SessionID,
			FullPath:     raw.FullPath,
			FileMtimeMS:  raw.FileMtime,
			FirstPrompt:  raw.FirstPrompt,
			Summary:      raw.Summary,
			MessageCount: raw.MessageCount,
			CreatedMS:    raw.Created,
			ModifiedMS:   raw.Modified,
			GitBranch:    raw.GitBranch,
			ProjectPath:  raw.ProjectPath,
		})
	}
	return entries, nil
}

// EscapeProjectPath replaces "/" with "-", matching spec.md §6's
// escaped_path rule for locating a project's index directory.
func EscapeProjectPath(projectPath string) string {
	return strings.ReplaceAll(projectPath, "/", "-")
}

// IsTemporarySessionID reports whether id is a placeholder used before a
// new session's transcript has been assigned a real id (spec.md §4.2 edge
// cases: "Temporary transcript IDs (prefix __new_session_) -> skipped
// entirely").
func IsTemporarySessionID(id string) bool {
	return strings.HasPrefix(id, "__new_session_")
}
