package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/x/term"

	"claudatui/internal/kernel"
)

// stdinInputSource is the minimal InputSource implementation backing
// claudatui's entrypoint: raw-mode stdin bytes plus SIGWINCH for resize,
// satisfying kernel.InputSource's "one blocking 50ms poll" contract
// (spec.md §5) without pulling in a full rendering/input chrome library,
// since that layer is an external collaborator (spec.md §1).
// taggedKey is one decoded keystroke plus whatever modifier bits readKeys
// could recover from the raw byte stream.
type taggedKey struct {
	key   rune
	ctrl  bool
	alt   bool
	shift bool
}

type stdinInputSource struct {
	keys    chan taggedKey
	resizes chan kernel.InputEvent
	restore func() error
}

func newStdinInputSource() (*stdinInputSource, error) {
	fd := int(os.Stdin.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}

	s := &stdinInputSource{
		keys:    make(chan taggedKey, 16),
		resizes: make(chan kernel.InputEvent, 4),
		restore: func() error { return term.Restore(fd, state) },
	}

	go s.readKeys()
	go s.watchResize(fd)

	return s, nil
}

const (
	byteCtrlQ = 0x11 // DC1
	byteCtrlB = 0x02 // STX; approximates Ctrl+Shift+B since raw-mode terminals
	// rarely distinguish Shift on a Ctrl+letter combo.
	byteEsc = 0x1b
)

// altKeyWindow bounds how long readKeys waits after a lone ESC byte before
// deciding it was a standalone Escape rather than the first half of an
// Alt+key sequence (terminals encode Alt+key as ESC followed immediately by
// the key).
const altKeyWindow = 25 * time.Millisecond

func (s *stdinInputSource) readKeys() {
	raw := make(chan byte, 16)
	go func() {
		buf := make([]byte, 1)
		for {
			n, err := os.Stdin.Read(buf)
			if err != nil {
				close(raw)
				return
			}
			if n > 0 {
				raw <- buf[0]
			}
		}
	}()

	for b := range raw {
		switch b {
		case byteCtrlQ:
			s.keys <- taggedKey{key: 'q', ctrl: true}
		case byteCtrlB:
			s.keys <- taggedKey{key: 'b', ctrl: true}
		case byteEsc:
			select {
			case b2, ok := <-raw:
				if !ok {
					return
				}
				if b2 == ',' || b2 == '.' {
					s.keys <- taggedKey{key: rune(b2), alt: true}
				} else {
					s.keys <- taggedKey{key: rune(byteEsc)}
					raw <- b2
				}
			case <-time.After(altKeyWindow):
				s.keys <- taggedKey{key: rune(byteEsc)}
			}
		default:
			s.keys <- taggedKey{key: rune(b)}
		}
	}
}

func (s *stdinInputSource) watchResize(fd int) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGWINCH)
	for range sigs {
		if w, h, err := term.GetSize(fd); err == nil {
			s.resizes <- kernel.InputEvent{Resized: true, Rows: h, Cols: w}
		}
	}
}

// PollEvent implements kernel.InputSource.
func (s *stdinInputSource) PollEvent(timeout time.Duration) (kernel.InputEvent, bool) {
	select {
	case tk := <-s.keys:
		return kernel.InputEvent{Key: tk.key, Ctrl: tk.ctrl, Alt: tk.alt, Shift: tk.shift}, true
	case resize := <-s.resizes:
		return resize, true
	case <-time.After(timeout):
		return kernel.InputEvent{}, false
	}
}

// Close restores the terminal's original mode.
func (s *stdinInputSource) Close() error {
	return s.restore()
}
