package ptymgr

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/x/xpty"
	"github.com/hinshun/vt10x"
	"go.uber.org/zap"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

const readBlockSize = 4 * 1024

// chunkQueue is the unbounded single-producer/single-consumer queue spec.md
// §4.1 describes: the reader thread pushes, the main thread drains with a
// non-blocking pull-everything call (§5: "drained with try_recv").
type chunkQueue struct {
	mu     sync.Mutex
	chunks [][]byte
}

func (q *chunkQueue) push(b []byte) {
	q.mu.Lock()
	q.chunks = append(q.chunks, b)
	q.mu.Unlock()
}

func (q *chunkQueue) drainAll() [][]byte {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.chunks) == 0 {
		return nil
	}
	out := q.chunks
	q.chunks = nil
	return out
}

// ManagedSession is the runtime state of one child process (spec.md §3).
type ManagedSession struct {
	ID          string
	WorkingDir  string
	ResumeToken string
	Dangerous   bool

	cmd    *exec.Cmd
	pty    xpty.Pty
	cancel context.CancelFunc

	queue *chunkQueue
	alive atomic.Bool

	encoding encoding.Encoding

	mu           sync.Mutex
	term         vt10x.Terminal
	rows, cols   int
	scrollOffset int
	scrollLocked bool

	// scrollbackLines is a proxy count of newline-delimited lines emitted
	// since spawn, used only to clamp scroll_up — actual historical
	// screen content reconstruction is a rendering-layer concern (spec.md
	// §1 Non-goals: "rendering widgets... only emulates it").
	scrollbackLines int
	scrollbackLimit int

	logger *zap.Logger
}

// SpawnParams are the inputs to Spawn (spec.md §4.1 spawn contract).
type SpawnParams struct {
	ID              string
	WorkingDir      string
	Rows, Cols      int
	ResumeToken     string
	Dangerous       bool
	AssistantCmd    string // not read by newManagedSession; sessions always resolve "claude"
	ScrollbackLimit int
	Encoding        encoding.Encoding // nil (or encoding.Nop) means pass-through UTF-8
	Logger          *zap.Logger
}

func newManagedSession(params SpawnParams) *ManagedSession {
	rows, cols := params.Rows, params.Cols
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	limit := params.ScrollbackLimit
	if limit <= 0 {
		limit = 10000
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	enc := params.Encoding
	if enc == nil {
		enc = encoding.Nop
	}

	s := &ManagedSession{
		ID:              params.ID,
		WorkingDir:      params.WorkingDir,
		ResumeToken:     params.ResumeToken,
		Dangerous:       params.Dangerous,
		queue:           &chunkQueue{},
		rows:            rows,
		cols:            cols,
		scrollbackLimit: limit,
		encoding:        enc,
		logger:          logger,
	}
	s.term = vt10x.New(vt10x.WithSize(cols, rows))
	s.alive.Store(false)
	return s
}

// Start allocates a PTY pair and spawns the assistant CLI (spec.md §4.1).
func (s *ManagedSession) Start(ctx context.Context) error {
	argv, err := ResolveAssistantCommand(s.resolveAssistantOverride())
	if err != nil {
		return err
	}
	argv = BuildArgs(argv, s.ResumeToken, s.Dangerous)

	ptyDevice, err := xpty.NewPty(s.cols, s.rows)
	if err != nil {
		return err
	}

	sessionCtx, cancel := context.WithCancel(ctx)
	cmd := exec.CommandContext(sessionCtx, argv[0], argv[1:]...)
	cmd.Dir = s.WorkingDir
	cmd.Env = append(os.Environ(), "TERM=xterm-256color", "COLORTERM=truecolor")

	if err := ptyDevice.Start(cmd); err != nil {
		cancel()
		_ = ptyDevice.Close()
		return err
	}

	if version, compatible := CheckAssistantVersion(argv[0]); !compatible {
		s.logger.Warn("assistant CLI version may be unsupported",
			zap.String("session", s.ID), zap.String("version", version),
			zap.String("min_supported", MinSupportedAssistantVersion))
	}

	s.cmd = cmd
	s.pty = ptyDevice
	s.cancel = cancel
	s.alive.Store(true)

	go s.readLoop()
	go s.wait(sessionCtx)

	return nil
}

// wait reaps the child process once it exits, mirroring the teacher's
// service/terminal/session.go wait() (there built on the same
// xpty.WaitProcess call). Without this, cmd.Wait() is never called and the
// child becomes a zombie in the process table, which in turn keeps
// processAlive reporting it as running forever.
func (s *ManagedSession) wait(ctx context.Context) {
	err := xpty.WaitProcess(ctx, s.cmd)
	if err != nil {
		s.logger.Debug("assistant CLI exited with error", zap.String("session", s.ID), zap.Error(err))
	} else {
		s.logger.Debug("assistant CLI exited", zap.String("session", s.ID))
	}
	s.alive.Store(false)
}

// resolveAssistantOverride is a seam for tests; it returns no override, so
// sessions always spawn the default "claude" binary.
func (s *ManagedSession) resolveAssistantOverride() string { return "" }

func (s *ManagedSession) readLoop() {
	defer s.alive.Store(false)

	buf := make([]byte, readBlockSize)
	for {
		n, err := s.pty.Read(buf)
		if n > 0 {
			chunk := NormalizeOutput(buf[:n], s.encoding)
			owned := make([]byte, len(chunk))
			copy(owned, chunk)
			s.queue.push(owned)
		}
		if err != nil {
			return
		}
	}
}

// Write writes bytes to the PTY master; safe to call while readLoop runs
// (spec.md §4.1 write contract).
func (s *ManagedSession) Write(p []byte) (int, error) {
	if s.pty == nil {
		return 0, io.ErrClosedPipe
	}
	return s.pty.Write(p)
}

// IsAlive reads the atomic liveness flag.
func (s *ManagedSession) IsAlive() bool {
	return s.alive.Load()
}

// PID returns the child process id, or 0 if the session never started.
func (s *ManagedSession) PID() int {
	if s.cmd == nil || s.cmd.Process == nil {
		return 0
	}
	return s.cmd.Process.Pid
}

// ProcessOutput drains all pending chunks and feeds them to the VT emulator
// in arrival order (spec.md §4.1 process-output contract).
func (s *ManagedSession) ProcessOutput() {
	chunks := s.queue.drainAll()
	if len(chunks) == 0 {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, chunk := range chunks {
		s.scrollbackLines += bytes.Count(chunk, []byte{'\n'})
		s.term.Write(chunk)
	}
	if s.scrollbackLines > s.scrollbackLimit {
		s.scrollbackLines = s.scrollbackLimit
	}
	if !s.scrollLocked {
		s.scrollOffset = 0
	}
}

// Resize resizes the PTY and re-creates the VT emulator at the new size
// (spec.md §4.1 resize contract). Scroll state resets to live.
func (s *ManagedSession) Resize(rows, cols int) error {
	if rows < 1 || cols < 1 {
		return nil
	}
	if s.pty != nil {
		if err := s.pty.Resize(cols, rows); err != nil {
			return err
		}
	}

	s.mu.Lock()
	s.rows, s.cols = rows, cols
	s.term = vt10x.New(vt10x.WithSize(cols, rows))
	s.scrollOffset = 0
	s.scrollLocked = false
	s.mu.Unlock()
	return nil
}

// Close drops the reader's ability to keep running and closes the PTY,
// causing the child to receive SIGHUP (spec.md §4.1 close contract). No
// wait on child exit.
func (s *ManagedSession) Close() error {
	if s.cancel != nil {
		s.cancel()
	}
	s.alive.Store(false)
	if s.pty != nil {
		return s.pty.Close()
	}
	return nil
}

// ScrollUp raises the scroll offset by n, clamped by the tracked scrollback
// line count, and locks scrolling.
func (s *ManagedSession) ScrollUp(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scrollOffset += n
	if s.scrollOffset > s.scrollbackLines {
		s.scrollOffset = s.scrollbackLines
	}
	s.scrollLocked = true
}

// ScrollDown lowers the scroll offset by n, saturating at 0, and unlocks at 0.
func (s *ManagedSession) ScrollDown(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scrollOffset -= n
	if s.scrollOffset <= 0 {
		s.scrollOffset = 0
		s.scrollLocked = false
	}
}

// ScrollToBottom forces offset 0 and unlocks.
func (s *ManagedSession) ScrollToBottom() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scrollOffset = 0
	s.scrollLocked = false
}

// State returns a renderer-agnostic SessionState snapshot (spec.md §4.1
// state-snapshot contract).
func (s *ManagedSession) State() SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SessionState{
		ID:            s.ID,
		Rows:          s.rows,
		Cols:          s.cols,
		ScrollOffset:  s.scrollOffset,
		ScrollLocked:  s.scrollLocked,
		ScrollbackLen: s.scrollbackLines,
		Alive:         s.alive.Load(),
		Screen:        screenStateFromTerminal(s.term, s.rows, s.cols),
	}
}

// NormalizeOutput passes UTF-8 output through unchanged; non-UTF-8 legacy
// encodings are transcoded via golang.org/x/text before VT ingestion,
// generalizing the teacher's per-session encoding negotiation.
func NormalizeOutput(data []byte, enc encoding.Encoding) []byte {
	if enc == nil || enc == encoding.Nop {
		return data
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), data)
	if err != nil {
		return data
	}
	return out
}

// SessionState is the renderer-facing snapshot of one ManagedSession.
type SessionState struct {
	ID            string
	Rows, Cols    int
	ScrollOffset  int
	ScrollLocked  bool
	ScrollbackLen int
	Alive         bool
	Screen        ScreenState
}
