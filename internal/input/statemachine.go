package input

import "time"

// Mode is one of the three global modes of spec.md §4.5.
type Mode int

const (
	ModeNormal Mode = iota
	ModeInsert
	ModeLeader
)

// Focus is the target a keystroke is routed to outside of explicit state
// machine handling.
type Focus int

const (
	FocusSidebar Focus = iota
	FocusTerminal
	FocusMosaic
)

// ChordKind discriminates the Normal-mode chord state.
type ChordKind int

const (
	ChordNone ChordKind = iota
	ChordDeletePending
	ChordCountPending
)

// ChordState is the disjoint-sum chord state of spec.md §4.5.
type ChordState struct {
	Kind  ChordKind
	Count int
	At    time.Time
}

// ChordTimeout is the 500 ms window after which a pending chord expires.
const ChordTimeout = 500 * time.Millisecond

// EscapeState buffers the first half of a jk/kj Insert-mode exit.
type EscapeState struct {
	Pending  bool
	FirstKey rune
	At       time.Time
}

// EscapeTimeout is the 150 ms window for the dual-key Insert exit trick.
const EscapeTimeout = 150 * time.Millisecond

// triggerKeys are the two characters that can begin or complete the
// jk/kj Insert-mode escape.
func isTriggerKey(r rune) bool {
	return r == 'j' || r == 'k'
}

func complementTrigger(r rune) rune {
	if r == 'j' {
		return 'k'
	}
	return 'j'
}

// Action is emitted by Machine.HandleKey / Machine.Tick for the caller to
// execute; the machine itself never touches the Manager, sidebar, or any
// other live resource.
type ActionKind int

const (
	ActionKindNone ActionKind = iota
	ActionKindPassThrough      // forward the rune(s) to the focused PTY/modal
	ActionKindExitInsert
	ActionKindEnterInsert
	ActionKindEnterLeader
	ActionKindCancelLeader
	ActionKindMoveDown
	ActionKindMoveUp
	ActionKindCloseSelected
	ActionKindLeaderCommand
)

// Emitted is the result of processing one key or one tick.
type Emitted struct {
	Kind   ActionKind
	Bytes  []byte       // for ActionKindPassThrough
	Count  int          // for ActionKindMoveDown/Up
	Leader LeaderAction // for ActionKindLeaderCommand
	Slot   int          // bookmark slot, for ActionKindLeaderCommand
}

// Machine is the Normal/Insert/Leader input state machine of spec.md §4.5.
// It is driven by HandleKey (one keystroke) and Tick (timeout expiry,
// called once per event-loop iteration per spec.md §4.6 step 1). It holds
// no references to live resources; the caller interprets Emitted values.
type Machine struct {
	Mode  Mode
	Focus Focus

	chord    ChordState
	escape   EscapeState
	leader   []rune
	leaderAt time.Time

	whichKey WhichKeyConfig
}

// NewMachine builds a Machine starting in Normal mode with sidebar focus.
func NewMachine() *Machine {
	return &Machine{Mode: ModeNormal, Focus: FocusSidebar, whichKey: NewWhichKeyConfig()}
}

// Tick expires chord/leader/escape timeouts (spec.md §4.6 step 1). now is
// injected for deterministic tests. If a buffered escape key expired, it is
// flushed as a pass-through action.
func (m *Machine) Tick(now time.Time) []Emitted {
	var out []Emitted

	if m.chord.Kind != ChordNone && now.Sub(m.chord.At) >= ChordTimeout {
		m.chord = ChordState{}
	}

	if m.Mode == ModeLeader {
		if len(m.leader) == 0 && now.Sub(m.leaderAt) >= RootTimeoutMS*time.Millisecond {
			m.Mode = ModeNormal
			out = append(out, Emitted{Kind: ActionKindCancelLeader})
		}
	}

	if m.escape.Pending && now.Sub(m.escape.At) >= EscapeTimeout {
		out = append(out, Emitted{Kind: ActionKindPassThrough, Bytes: []byte(string(m.escape.FirstKey))})
		m.escape = EscapeState{}
	}

	return out
}

// HandleKey processes one keystroke and returns zero or more actions for
// the caller to execute, in order.
func (m *Machine) HandleKey(key rune, now time.Time) []Emitted {
	switch m.Mode {
	case ModeInsert:
		return m.handleInsertKey(key, now)
	case ModeLeader:
		return m.handleLeaderKey(key, now)
	default:
		return m.handleNormalKey(key, now)
	}
}

func (m *Machine) handleInsertKey(key rune, now time.Time) []Emitted {
	if !m.escape.Pending {
		if isTriggerKey(key) {
			m.escape = EscapeState{Pending: true, FirstKey: key, At: now}
			return nil
		}
		return []Emitted{{Kind: ActionKindPassThrough, Bytes: []byte(string(key))}}
	}

	// Pending; check timeout first.
	if now.Sub(m.escape.At) >= EscapeTimeout {
		flushed := m.escape.FirstKey
		m.escape = EscapeState{}
		out := []Emitted{{Kind: ActionKindPassThrough, Bytes: []byte(string(flushed))}}
		if key == complementTrigger(flushed) {
			// The complementary key arrived too late to complete the escape:
			// both keys go to the target.
			return append(out, Emitted{Kind: ActionKindPassThrough, Bytes: []byte(string(key))})
		}
		out = append(out, m.handleInsertKey(key, now)...)
		return out
	}

	first := m.escape.FirstKey
	if isTriggerKey(key) {
		if key == complementTrigger(first) {
			m.escape = EscapeState{}
			m.Mode = ModeNormal
			m.Focus = FocusSidebar
			return []Emitted{{Kind: ActionKindExitInsert}}
		}
		// Same trigger key repeated: flush the first, buffer the second.
		out := []Emitted{{Kind: ActionKindPassThrough, Bytes: []byte(string(first))}}
		m.escape = EscapeState{Pending: true, FirstKey: key, At: now}
		return out
	}

	// Non-trigger key while pending, within the window: flush then process.
	m.escape = EscapeState{}
	return []Emitted{
		{Kind: ActionKindPassThrough, Bytes: []byte(string(first))},
		{Kind: ActionKindPassThrough, Bytes: []byte(string(key))},
	}
}

// LeaderSubmenuTitle returns the which-key title for the current Leader
// path, or "" outside Leader mode, for the renderer's which-key popup.
func (m *Machine) LeaderSubmenuTitle() string {
	if m.Mode != ModeLeader {
		return ""
	}
	return m.whichKey.SubmenuTitle(m.leader)
}

// EnterInsert switches to Insert mode with the given focus, for use when
// the caller selects a session or opens a modal text field from Normal
// mode (spec.md §4.5's invariant: Focus=Terminal implies Mode=Insert).
func (m *Machine) EnterInsert(focus Focus) {
	m.Mode = ModeInsert
	m.Focus = focus
	m.escape = EscapeState{}
}

// ToNormal switches back to Normal mode with sidebar focus, discarding any
// pending chord/escape state.
func (m *Machine) ToNormal() {
	m.Mode = ModeNormal
	m.Focus = FocusSidebar
	m.chord = ChordState{}
	m.escape = EscapeState{}
	m.leader = nil
}

func (m *Machine) handleLeaderKey(key rune, now time.Time) []Emitted {
	if key == 27 /* Esc */ || key == ' ' {
		m.Mode = ModeNormal
		m.leader = nil
		return []Emitted{{Kind: ActionKindCancelLeader}}
	}

	result := m.whichKey.ProcessKey(m.leader, key)
	switch result.Kind {
	case LeaderExecute:
		m.Mode = ModeNormal
		m.leader = nil
		return []Emitted{{Kind: ActionKindLeaderCommand, Leader: result.Action, Slot: result.Slot}}
	case LeaderSubmenu:
		m.leader = append(m.leader, key)
		m.leaderAt = now
		return nil
	default:
		if isTriggerKey(key) {
			m.escape = EscapeState{Pending: true, FirstKey: key, At: now}
			return nil
		}
		m.Mode = ModeNormal
		m.leader = nil
		return []Emitted{{Kind: ActionKindCancelLeader}}
	}
}

func (m *Machine) handleNormalKey(key rune, now time.Time) []Emitted {
	if key == ' ' {
		m.Mode = ModeLeader
		m.leader = nil
		m.leaderAt = now
		return []Emitted{{Kind: ActionKindEnterLeader}}
	}

	chordContinuing := m.chord.Kind == ChordCountPending && now.Sub(m.chord.At) < ChordTimeout
	if (key >= '1' && key <= '9') || (key == '0' && chordContinuing) {
		if chordContinuing {
			m.chord.Count = m.chord.Count*10 + int(key-'0')
			if m.chord.Count > 9999 {
				m.chord.Count = 9999
			}
		} else {
			m.chord = ChordState{Kind: ChordCountPending, Count: int(key - '0'), At: now}
		}
		m.chord.At = now
		return nil
	}

	if key == 'd' {
		if m.chord.Kind == ChordDeletePending && now.Sub(m.chord.At) < ChordTimeout {
			m.chord = ChordState{}
			return []Emitted{{Kind: ActionKindCloseSelected}}
		}
		m.chord = ChordState{Kind: ChordDeletePending, At: now}
		return nil
	}

	if key == 'j' || key == 'k' {
		count := 1
		if m.chord.Kind == ChordCountPending && now.Sub(m.chord.At) < ChordTimeout {
			count = m.chord.Count
		}
		m.chord = ChordState{}
		kind := ActionKindMoveDown
		if key == 'k' {
			kind = ActionKindMoveUp
		}
		return []Emitted{{Kind: kind, Count: count}}
	}

	// Any other key cancels a pending chord.
	m.chord = ChordState{}
	return nil
}
