// Package ptymgr owns PTY-backed child processes and their per-session VT
// emulators, grounded on the teacher's service/terminal/session.go and
// service/terminal/manager.go, generalized from a kanban-board terminal
// feature to the session/runtime kernel of spec.md §4.1.
package ptymgr

import (
	"context"
	"fmt"
	"sync"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"

	"claudatui/internal/conversation"
)

// Manager owns every ManagedSession and the claim map linking internal
// session ids to conversation session ids (spec.md §3 invariants).
type Manager struct {
	logger *zap.Logger

	mu       sync.Mutex // guards sessions/claims; only ever touched from the main loop goroutine
	sessions map[string]*ManagedSession
	claims   conversation.ClaimMap

	scrollbackLimit int
}

// NewManager builds an empty Manager.
func NewManager(logger *zap.Logger, scrollbackLimit int) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if scrollbackLimit <= 0 {
		scrollbackLimit = 10000
	}
	return &Manager{
		logger:          logger,
		sessions:        make(map[string]*ManagedSession),
		claims:          make(conversation.ClaimMap),
		scrollbackLimit: scrollbackLimit,
	}
}

// Spawn allocates a PTY pair, spawns the assistant CLI, and registers a new
// ManagedSession under a freshly minted internal id (spec.md §4.1 spawn
// contract). The new entry's claim starts unset ("ephemeral").
func (m *Manager) Spawn(ctx context.Context, workingDir string, rows, cols int, resumeToken string, dangerous bool) (string, error) {
	id, err := gonanoid.New()
	if err != nil {
		return "", fmt.Errorf("generate session id: %w", err)
	}

	session := newManagedSession(SpawnParams{
		ID:              id,
		WorkingDir:      workingDir,
		Rows:            rows,
		Cols:            cols,
		ResumeToken:     resumeToken,
		Dangerous:       dangerous,
		ScrollbackLimit: m.scrollbackLimit,
		Logger:          m.logger,
	})

	if err := session.Start(ctx); err != nil {
		return "", fmt.Errorf("spawn session: %w", err)
	}

	m.mu.Lock()
	m.sessions[id] = session
	m.mu.Unlock()

	return id, nil
}

// Write writes bytes to the given session's PTY master.
func (m *Manager) Write(id string, p []byte) (int, error) {
	session, ok := m.get(id)
	if !ok {
		return 0, fmt.Errorf("session %s not found", id)
	}
	return session.Write(p)
}

// ProcessAllOutput drains every session's pending output in arbitrary
// session order, each atomically (spec.md §5 ordering guarantees).
func (m *Manager) ProcessAllOutput() {
	for _, session := range m.snapshot() {
		session.ProcessOutput()
	}
}

// Resize resizes one session.
func (m *Manager) Resize(id string, rows, cols int) error {
	session, ok := m.get(id)
	if !ok {
		return fmt.Errorf("session %s not found", id)
	}
	return session.Resize(rows, cols)
}

// ResizeAll resizes every session, e.g. on a terminal-wide resize event.
func (m *Manager) ResizeAll(rows, cols int) {
	for _, session := range m.snapshot() {
		_ = session.Resize(rows, cols)
	}
}

// CloseSession closes and unregisters a session, dropping any claim it held.
func (m *Manager) CloseSession(id string) error {
	m.mu.Lock()
	session, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
		delete(m.claims, id)
	}
	m.mu.Unlock()
	if !ok {
		return nil
	}
	return session.Close()
}

// CloseAll closes and unregisters every session, e.g. on shutdown.
func (m *Manager) CloseAll() {
	for _, session := range m.snapshot() {
		_ = m.CloseSession(session.ID)
	}
}

// IsAlive reports whether a session is alive.
func (m *Manager) IsAlive(id string) bool {
	session, ok := m.get(id)
	return ok && session.IsAlive()
}

// CleanupDead removes every session whose alive flag is false, along with
// its claim-map entry, and returns their ids (spec.md §3 invariant: "A dead
// ManagedSession is removed within one event-loop tick after detection").
func (m *Manager) CleanupDead() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var dead []string
	for id, session := range m.sessions {
		if !session.IsAlive() && !processAlive(session.PID()) {
			dead = append(dead, id)
		}
	}
	for _, id := range dead {
		delete(m.sessions, id)
		delete(m.claims, id)
	}
	return dead
}

// Claim associates an internal session id with a conversation session id.
// Returns false if that conversation is already claimed by a different
// entry (spec.md §3: "Exactly one conversation session_id can be claimed by
// at most one Manager entry at any time").
func (m *Manager) Claim(id, convSessionID string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.claims[id]; ok && existing == convSessionID {
		return true
	}
	if m.claims.IsClaimed(convSessionID) {
		return false
	}
	m.claims[id] = convSessionID
	return true
}

// ConversationFor returns the conversation session id claimed by id, if any.
func (m *Manager) ConversationFor(id string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	conv, ok := m.claims[id]
	return conv, ok
}

// SessionForConversation reverse-looks-up the internal session id that has
// claimed convSessionID, if any.
func (m *Manager) SessionForConversation(convSessionID string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, conv := range m.claims {
		if conv == convSessionID {
			return id, true
		}
	}
	return "", false
}

// Claims returns a snapshot copy of the claim map, for reconciliation.
func (m *Manager) Claims() conversation.ClaimMap {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(conversation.ClaimMap, len(m.claims))
	for k, v := range m.claims {
		out[k] = v
	}
	return out
}

// ScrollUp/ScrollDown/ScrollToBottom forward to the named session (spec.md
// §4.1 scroll semantics).
func (m *Manager) ScrollUp(id string, n int) {
	if session, ok := m.get(id); ok {
		session.ScrollUp(n)
	}
}

func (m *Manager) ScrollDown(id string, n int) {
	if session, ok := m.get(id); ok {
		session.ScrollDown(n)
	}
}

func (m *Manager) ScrollToBottom(id string) {
	if session, ok := m.get(id); ok {
		session.ScrollToBottom()
	}
}

// State returns the renderer-facing SessionState snapshot for id.
func (m *Manager) State(id string) (SessionState, bool) {
	session, ok := m.get(id)
	if !ok {
		return SessionState{}, false
	}
	return session.State(), true
}

func (m *Manager) get(id string) (*ManagedSession, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	session, ok := m.sessions[id]
	return session, ok
}

func (m *Manager) snapshot() []*ManagedSession {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*ManagedSession, 0, len(m.sessions))
	for _, session := range m.sessions {
		out = append(out, session)
	}
	return out
}
