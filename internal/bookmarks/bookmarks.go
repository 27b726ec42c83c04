// Package bookmarks persists the nine numbered bookmark slots via
// gorm/sqlite, a supplemented feature (SPEC_FULL.md §12) grounded on
// original_source/src/bookmarks/manager.rs and the teacher's
// utils/model_base + utils/db_tools/sqlite gorm wiring.
package bookmarks

import (
	"errors"
	"fmt"
	"sort"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// TargetKind discriminates what a bookmark points at.
type TargetKind string

const (
	TargetProject      TargetKind = "project"
	TargetConversation TargetKind = "conversation"
)

// record is the gorm row for one bookmark slot.
type record struct {
	Slot        int `gorm:"primaryKey"`
	Label       string
	TargetKind  TargetKind
	ProjectPath string
	GroupKey    string
	SessionID   string
}

func (record) TableName() string { return "bookmarks" }

// Bookmark is the public, gorm-agnostic view of one occupied slot.
type Bookmark struct {
	Slot        int
	Label       string
	TargetKind  TargetKind
	ProjectPath string // set when TargetKind == TargetProject
	GroupKey    string // set when TargetKind == TargetProject
	SessionID   string // set when TargetKind == TargetConversation
}

func fromRecord(r record) Bookmark {
	return Bookmark{
		Slot:        r.Slot,
		Label:       r.Label,
		TargetKind:  r.TargetKind,
		ProjectPath: r.ProjectPath,
		GroupKey:    r.GroupKey,
		SessionID:   r.SessionID,
	}
}

// Manager is the bookmark store for one bookmarks.db file.
type Manager struct {
	db *gorm.DB
}

// Open opens (creating if necessary) the sqlite database at path and
// migrates the bookmarks table.
func Open(path string) (*Manager, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening bookmarks database: %w", err)
	}
	if err := db.AutoMigrate(&record{}); err != nil {
		return nil, fmt.Errorf("migrating bookmarks table: %w", err)
	}
	return &Manager{db: db}, nil
}

// Close releases the underlying sqlite connection.
func (m *Manager) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Get returns the bookmark at slot, if occupied.
func (m *Manager) Get(slot int) (Bookmark, bool) {
	var r record
	if err := m.db.First(&r, "slot = ?", slot).Error; err != nil {
		return Bookmark{}, false
	}
	return fromRecord(r), true
}

// GetAll returns every occupied slot, sorted ascending by slot.
func (m *Manager) GetAll() []Bookmark {
	var records []record
	m.db.Find(&records)
	sort.Slice(records, func(i, j int) bool { return records[i].Slot < records[j].Slot })

	out := make([]Bookmark, len(records))
	for i, r := range records {
		out[i] = fromRecord(r)
	}
	return out
}

// Set creates or replaces the bookmark at b.Slot. Uses an upsert (rather
// than gorm's Save, which issues a plain UPDATE for a non-zero primary key
// and would silently affect zero rows for a slot that isn't occupied yet).
func (m *Manager) Set(b Bookmark) error {
	r := record{
		Slot:        b.Slot,
		Label:       b.Label,
		TargetKind:  b.TargetKind,
		ProjectPath: b.ProjectPath,
		GroupKey:    b.GroupKey,
		SessionID:   b.SessionID,
	}
	return m.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&r).Error
}

// Remove deletes the bookmark at slot, reporting whether one was present.
func (m *Manager) Remove(slot int) (bool, error) {
	result := m.db.Delete(&record{}, "slot = ?", slot)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// HasSlot reports whether slot is occupied.
func (m *Manager) HasSlot(slot int) bool {
	_, ok := m.Get(slot)
	return ok
}

// Count returns the number of occupied slots.
func (m *Manager) Count() int {
	var count int64
	m.db.Model(&record{}).Count(&count)
	return int(count)
}

// IsGroupBookmarked returns the slot bookmarking groupKey, if any.
func (m *Manager) IsGroupBookmarked(groupKey string) (int, bool) {
	var r record
	err := m.db.First(&r, "target_kind = ? AND group_key = ?", TargetProject, groupKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || err != nil {
		return 0, false
	}
	return r.Slot, true
}

// IsConversationBookmarked returns the slot bookmarking sessionID, if any.
func (m *Manager) IsConversationBookmarked(sessionID string) (int, bool) {
	var r record
	err := m.db.First(&r, "target_kind = ? AND session_id = ?", TargetConversation, sessionID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) || err != nil {
		return 0, false
	}
	return r.Slot, true
}
