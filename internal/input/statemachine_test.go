package input

import (
	"testing"
	"time"
)

func TestInsertModeJKWithin150msExitsInsert(t *testing.T) {
	m := NewMachine()
	m.EnterInsert(FocusTerminal)

	t0 := time.Now()
	emitted := m.HandleKey('j', t0)
	if len(emitted) != 0 {
		t.Fatalf("buffering first trigger key should emit nothing, got %+v", emitted)
	}

	emitted = m.HandleKey('k', t0.Add(100*time.Millisecond))
	if len(emitted) != 1 || emitted[0].Kind != ActionKindExitInsert {
		t.Fatalf("emitted = %+v, want [ExitInsert]", emitted)
	}
	if m.Mode != ModeNormal || m.Focus != FocusSidebar {
		t.Fatalf("mode/focus = %v/%v, want Normal/Sidebar", m.Mode, m.Focus)
	}
}

func TestInsertModeJKAt151msFlushesBothToPTY(t *testing.T) {
	m := NewMachine()
	m.EnterInsert(FocusTerminal)

	t0 := time.Now()
	m.HandleKey('j', t0)
	emitted := m.HandleKey('k', t0.Add(151*time.Millisecond))

	if len(emitted) != 2 {
		t.Fatalf("emitted = %+v, want 2 pass-through actions", emitted)
	}
	if emitted[0].Kind != ActionKindPassThrough || string(emitted[0].Bytes) != "j" {
		t.Fatalf("emitted[0] = %+v, want pass-through 'j'", emitted[0])
	}
	if m.Mode != ModeInsert {
		t.Fatalf("mode = %v, want still Insert (both flushed, no exit)", m.Mode)
	}
}

func TestInsertModeNonTriggerKeyPassesThroughImmediately(t *testing.T) {
	m := NewMachine()
	m.EnterInsert(FocusTerminal)
	emitted := m.HandleKey('x', time.Now())
	if len(emitted) != 1 || emitted[0].Kind != ActionKindPassThrough || string(emitted[0].Bytes) != "x" {
		t.Fatalf("emitted = %+v, want pass-through 'x'", emitted)
	}
}

func TestInsertModeSameTriggerKeyTwiceFlushesFirstBuffersSecond(t *testing.T) {
	m := NewMachine()
	m.EnterInsert(FocusTerminal)
	t0 := time.Now()
	m.HandleKey('j', t0)
	emitted := m.HandleKey('j', t0.Add(50*time.Millisecond))
	if len(emitted) != 1 || string(emitted[0].Bytes) != "j" {
		t.Fatalf("emitted = %+v, want pass-through 'j'", emitted)
	}
	if !m.escape.Pending || m.escape.FirstKey != 'j' {
		t.Fatalf("second 'j' should now be buffered as pending")
	}
}

func TestTickFlushesExpiredPendingEscapeKey(t *testing.T) {
	m := NewMachine()
	m.EnterInsert(FocusTerminal)
	t0 := time.Now()
	m.HandleKey('j', t0)

	emitted := m.Tick(t0.Add(200 * time.Millisecond))
	if len(emitted) != 1 || emitted[0].Kind != ActionKindPassThrough || string(emitted[0].Bytes) != "j" {
		t.Fatalf("Tick emitted = %+v, want pass-through 'j'", emitted)
	}
	if m.escape.Pending {
		t.Fatalf("escape state should be cleared after flush")
	}
}

func TestNormalModeCountPrefixMotion(t *testing.T) {
	m := NewMachine()
	t0 := time.Now()
	m.HandleKey('5', t0)
	emitted := m.HandleKey('j', t0.Add(10*time.Millisecond))
	if len(emitted) != 1 || emitted[0].Kind != ActionKindMoveDown || emitted[0].Count != 5 {
		t.Fatalf("emitted = %+v, want MoveDown(5)", emitted)
	}
}

func TestNormalModeMultiDigitCountPrefix(t *testing.T) {
	m := NewMachine()
	t0 := time.Now()
	m.HandleKey('1', t0)
	m.HandleKey('2', t0.Add(10*time.Millisecond))
	emitted := m.HandleKey('k', t0.Add(20*time.Millisecond))
	if len(emitted) != 1 || emitted[0].Kind != ActionKindMoveUp || emitted[0].Count != 12 {
		t.Fatalf("emitted = %+v, want MoveUp(12)", emitted)
	}
}

func TestNormalModeZeroAccumulatesMidChordButNeverStartsOne(t *testing.T) {
	m := NewMachine()
	t0 := time.Now()

	// A leading '0' with no chord in progress must not start a count chord.
	emitted := m.HandleKey('0', t0)
	if emitted != nil {
		t.Fatalf("emitted = %+v, want nil (0 must not start a chord)", emitted)
	}
	emitted = m.HandleKey('j', t0.Add(10*time.Millisecond))
	if len(emitted) != 1 || emitted[0].Kind != ActionKindMoveDown || emitted[0].Count != 1 {
		t.Fatalf("emitted = %+v, want MoveDown(1)", emitted)
	}

	// "5" then "0" mid-chord accumulates to 50, per spec.md's count-prefix rule.
	m2 := NewMachine()
	m2.HandleKey('5', t0)
	m2.HandleKey('0', t0.Add(10*time.Millisecond))
	emitted = m2.HandleKey('j', t0.Add(20*time.Millisecond))
	if len(emitted) != 1 || emitted[0].Kind != ActionKindMoveDown || emitted[0].Count != 50 {
		t.Fatalf("emitted = %+v, want MoveDown(50)", emitted)
	}
}

func TestNormalModeJWithNoCountPrefixMovesOne(t *testing.T) {
	m := NewMachine()
	emitted := m.HandleKey('j', time.Now())
	if len(emitted) != 1 || emitted[0].Count != 1 {
		t.Fatalf("emitted = %+v, want MoveDown(1)", emitted)
	}
}

func TestNormalModeDDClosesWithin500ms(t *testing.T) {
	m := NewMachine()
	t0 := time.Now()
	emitted := m.HandleKey('d', t0)
	if len(emitted) != 0 {
		t.Fatalf("first 'd' should emit nothing, got %+v", emitted)
	}
	emitted = m.HandleKey('d', t0.Add(100*time.Millisecond))
	if len(emitted) != 1 || emitted[0].Kind != ActionKindCloseSelected {
		t.Fatalf("emitted = %+v, want CloseSelected", emitted)
	}
}

func TestNormalModeDDExpiresAfter500ms(t *testing.T) {
	m := NewMachine()
	t0 := time.Now()
	m.HandleKey('d', t0)
	emitted := m.Tick(t0.Add(600 * time.Millisecond))
	if len(emitted) != 0 {
		t.Fatalf("tick emitted = %+v, want none", emitted)
	}
	emitted = m.HandleKey('d', t0.Add(600*time.Millisecond))
	if len(emitted) != 0 {
		t.Fatalf("expired chord should not close on a fresh single 'd', got %+v", emitted)
	}
}

func TestNormalModeOtherKeyCancelsChord(t *testing.T) {
	m := NewMachine()
	t0 := time.Now()
	m.HandleKey('d', t0)
	m.HandleKey('x', t0.Add(10*time.Millisecond))
	emitted := m.HandleKey('d', t0.Add(20*time.Millisecond))
	if len(emitted) != 0 {
		t.Fatalf("chord should have been cancelled by the intervening key, got %+v", emitted)
	}
}

func TestNormalModeSpaceEntersLeader(t *testing.T) {
	m := NewMachine()
	emitted := m.HandleKey(' ', time.Now())
	if len(emitted) != 1 || emitted[0].Kind != ActionKindEnterLeader {
		t.Fatalf("emitted = %+v, want EnterLeader", emitted)
	}
	if m.Mode != ModeLeader {
		t.Fatalf("mode = %v, want ModeLeader", m.Mode)
	}
}

func TestLeaderModeExecutesRootAction(t *testing.T) {
	m := NewMachine()
	m.HandleKey(' ', time.Now())
	emitted := m.HandleKey('/', time.Now())
	if len(emitted) != 1 || emitted[0].Kind != ActionKindLeaderCommand || emitted[0].Leader != ActionSearchOpen {
		t.Fatalf("emitted = %+v, want LeaderCommand(SearchOpen)", emitted)
	}
	if m.Mode != ModeNormal {
		t.Fatalf("mode = %v, want Normal after executing a leader command", m.Mode)
	}
}

func TestLeaderModeNavigatesIntoSubmenuThenExecutes(t *testing.T) {
	m := NewMachine()
	m.HandleKey(' ', time.Now())
	emitted := m.HandleKey('b', time.Now())
	if len(emitted) != 0 {
		t.Fatalf("navigating into a submenu should emit nothing, got %+v", emitted)
	}
	if m.Mode != ModeLeader {
		t.Fatalf("mode = %v, want still ModeLeader inside a submenu", m.Mode)
	}
	emitted = m.HandleKey('3', time.Now())
	if len(emitted) != 1 || emitted[0].Leader != ActionBookmarkJump || emitted[0].Slot != 3 {
		t.Fatalf("emitted = %+v, want LeaderCommand(BookmarkJump, slot=3)", emitted)
	}
}

func TestLeaderModeEscCancels(t *testing.T) {
	m := NewMachine()
	m.HandleKey(' ', time.Now())
	emitted := m.HandleKey(27, time.Now())
	if len(emitted) != 1 || emitted[0].Kind != ActionKindCancelLeader {
		t.Fatalf("emitted = %+v, want CancelLeader", emitted)
	}
	if m.Mode != ModeNormal {
		t.Fatalf("mode = %v, want Normal after Esc", m.Mode)
	}
}

func TestLeaderModeUnboundKeyCancels(t *testing.T) {
	m := NewMachine()
	m.HandleKey(' ', time.Now())
	emitted := m.HandleKey('z', time.Now())
	if len(emitted) != 1 || emitted[0].Kind != ActionKindCancelLeader {
		t.Fatalf("emitted = %+v, want CancelLeader", emitted)
	}
}

func TestLeaderModeRootTimeoutCancelsAfter2s(t *testing.T) {
	m := NewMachine()
	t0 := time.Now()
	m.HandleKey(' ', t0)
	emitted := m.Tick(t0.Add(2001 * time.Millisecond))
	if len(emitted) != 1 || emitted[0].Kind != ActionKindCancelLeader {
		t.Fatalf("emitted = %+v, want CancelLeader on root timeout", emitted)
	}
	if m.Mode != ModeNormal {
		t.Fatalf("mode = %v, want Normal after root timeout", m.Mode)
	}
}

func TestLeaderModeSubmenuHasNoAutoTimeout(t *testing.T) {
	m := NewMachine()
	t0 := time.Now()
	m.HandleKey(' ', t0)
	m.HandleKey('b', t0)
	emitted := m.Tick(t0.Add(10 * time.Second))
	if len(emitted) != 0 {
		t.Fatalf("submenu should not auto-timeout, got %+v", emitted)
	}
	if m.Mode != ModeLeader {
		t.Fatalf("mode = %v, want still ModeLeader inside a submenu", m.Mode)
	}
}
