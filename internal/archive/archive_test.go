package archive

import (
	"testing"
	"time"
)

func TestLoadMissingFileYieldsDefaultState(t *testing.T) {
	m, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.AutoArchiveDays() == nil || *m.AutoArchiveDays() != DefaultAutoArchiveDays {
		t.Fatalf("AutoArchiveDays() = %v, want %d", m.AutoArchiveDays(), DefaultAutoArchiveDays)
	}
	if len(m.ArchivedSessions()) != 0 {
		t.Fatalf("expected no archived sessions by default")
	}
}

func TestArchiveThenUnarchiveTogglesSessionState(t *testing.T) {
	m, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if m.IsArchived("session-1") {
		t.Fatalf("session-1 should not be archived yet")
	}

	m.Archive("session-1", false)
	if !m.IsArchived("session-1") {
		t.Fatalf("session-1 should be archived")
	}
	if !m.IsDirty() {
		t.Fatalf("manager should be dirty after Archive")
	}

	entry, ok := m.Entry("session-1")
	if !ok || entry.AutoArchived {
		t.Fatalf("entry = %+v, ok=%v, want AutoArchived=false", entry, ok)
	}

	m.Unarchive("session-1")
	if m.IsArchived("session-1") {
		t.Fatalf("session-1 should no longer be archived")
	}
}

func TestShouldAutoArchiveRespectsThresholdAndDisabledState(t *testing.T) {
	m, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	days := 7
	m.SetAutoArchiveDays(&days)

	now := time.Now()
	eightDaysAgo := now.Add(-8 * 24 * time.Hour).UnixMilli()
	fiveDaysAgo := now.Add(-5 * 24 * time.Hour).UnixMilli()

	if !m.ShouldAutoArchive(eightDaysAgo) {
		t.Fatalf("expected eight-day-old conversation to be eligible")
	}
	if m.ShouldAutoArchive(fiveDaysAgo) {
		t.Fatalf("expected five-day-old conversation to not be eligible")
	}

	m.SetAutoArchiveDays(nil)
	if m.ShouldAutoArchive(eightDaysAgo) {
		t.Fatalf("auto-archive disabled should never be eligible")
	}
}

func TestSaveAndLoadRoundTripsArchiveEntriesAndSettings(t *testing.T) {
	dir := t.TempDir()

	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	m.Archive("session-1", false)
	m.Archive("session-2", true)
	days := 14
	m.SetAutoArchiveDays(&days)
	if err := m.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reloaded, err := Load(dir)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if !reloaded.IsArchived("session-1") || !reloaded.IsArchived("session-2") {
		t.Fatalf("expected both sessions archived after reload")
	}
	entry1, ok := reloaded.Entry("session-1")
	if !ok || entry1.AutoArchived {
		t.Fatalf("entry1 = %+v, ok=%v, want AutoArchived=false", entry1, ok)
	}
	entry2, ok := reloaded.Entry("session-2")
	if !ok || !entry2.AutoArchived {
		t.Fatalf("entry2 = %+v, ok=%v, want AutoArchived=true", entry2, ok)
	}
	if reloaded.AutoArchiveDays() == nil || *reloaded.AutoArchiveDays() != 14 {
		t.Fatalf("AutoArchiveDays() = %v, want 14", reloaded.AutoArchiveDays())
	}
}

func TestSaveIsNoopWhenNotDirty(t *testing.T) {
	dir := t.TempDir()
	m, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if err := m.Save(); err != nil {
		t.Fatalf("Save on clean state: %v", err)
	}
}
