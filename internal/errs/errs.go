// Package errs centralizes the error taxonomy and toast queue described in
// spec.md §7: recoverable-local errors are logged and swallowed,
// recoverable-surfaced errors become a toast, non-fatal-terminal errors mark
// a session dead, and fatal errors propagate to main.
package errs

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

// Sentinel errors for the session/runtime kernel. Wrap with fmt.Errorf("%w")
// at call sites that need extra context, the way the teacher's
// service/terminal/errors.go and api/terminal/errors.go do.
var (
	ErrHomeDirUnavailable = errors.New("claudatui: cannot locate user home directory")
	ErrSpawnFailed        = errors.New("claudatui: failed to spawn session")
	ErrResizeFailed       = errors.New("claudatui: failed to resize session")
	ErrWorktreeFailed     = errors.New("claudatui: failed to create worktree")
	ErrArchiveSaveFailed  = errors.New("claudatui: failed to save archive state")
	ErrSessionNotFound    = errors.New("claudatui: session not found")
)

// Toast is a single user-visible, transient notification. ID is a stable
// per-toast identifier so an external renderer can key dismiss/animate
// state across frames without relying on slice position.
type Toast struct {
	ID      string
	Message string
	IsError bool
}

// ToastQueue is a bounded FIFO of pending toasts. The event loop appends to
// it; the (external, out-of-scope) rendering layer drains it on each tick.
// One toast per user-initiated action that can fail, per spec §7.
type ToastQueue struct {
	mu       sync.Mutex
	pending  []Toast
	capacity int
}

// NewToastQueue builds a queue that drops the oldest entry once capacity is
// exceeded, so a stuck renderer cannot leak memory.
func NewToastQueue(capacity int) *ToastQueue {
	if capacity <= 0 {
		capacity = 32
	}
	return &ToastQueue{capacity: capacity}
}

// Push enqueues a success or failure toast.
func (q *ToastQueue) Push(message string, isError bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pending = append(q.pending, Toast{ID: uuid.NewString(), Message: message, IsError: isError})
	if len(q.pending) > q.capacity {
		q.pending = q.pending[len(q.pending)-q.capacity:]
	}
}

// Success is shorthand for Push(message, false).
func (q *ToastQueue) Success(message string) { q.Push(message, false) }

// Failure is shorthand for Push(message, true).
func (q *ToastQueue) Failure(message string) { q.Push(message, true) }

// Drain removes and returns all pending toasts.
func (q *ToastQueue) Drain() []Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.pending) == 0 {
		return nil
	}
	out := q.pending
	q.pending = nil
	return out
}
