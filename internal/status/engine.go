package status

import (
	"path/filepath"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"claudatui/internal/loader"
	"claudatui/internal/model"
)

// trackingState is the per-conversation record spec.md §9 describes:
// "Organize the three pieces of per-session tracked state (resume_baseline,
// prev_size, last_growth) as one record."
type trackingState struct {
	hasResumeBaseline bool
	resumeBaseline    int64
	prevSize          int64
	lastGrowth        time.Time
}

// settleDuration is the 3-second window spec.md §4.2 step 4 and the
// GLOSSARY's "Settle duration" entry name.
const settleDuration = 3 * time.Second

// cacheTTL bounds how long an untouched conversation's tracking state
// survives; every loaded conversation is re-inferred about once per second,
// far inside this window, so it only reclaims memory for conversations
// that have dropped out of the loaded set.
const cacheTTL = 24 * time.Hour

// Engine runs the five-step status-inference algorithm of spec.md §4.2,
// caching per-conversation tracking state with patrickmn/go-cache in place
// of the teacher's hand-rolled utils/cache TTL map.
type Engine struct {
	tracking *gocache.Cache
}

// NewEngine builds an Engine with an empty tracking cache.
func NewEngine() *Engine {
	return &Engine{tracking: gocache.New(cacheTTL, cacheTTL/2)}
}

// MarkResumed records a resume baseline for sessionID at the given file
// size, so the next Infer call forces WaitingForInput until the file grows
// past it (spec.md §4.2 step 2).
func (e *Engine) MarkResumed(sessionID string, baselineSize int64) {
	state := e.stateFor(sessionID)
	state.hasResumeBaseline = true
	state.resumeBaseline = baselineSize
	e.tracking.SetDefault(sessionID, state)
}

// Forget drops tracking state for a conversation no longer in the index.
func (e *Engine) Forget(sessionID string) {
	e.tracking.Delete(sessionID)
}

func (e *Engine) stateFor(sessionID string) trackingState {
	if v, ok := e.tracking.Get(sessionID); ok {
		return v.(trackingState)
	}
	return trackingState{}
}

// Infer runs one pass of the five-step algorithm for a single conversation
// and returns its new status. transcriptPath is the on-disk JSONL file;
// ptyAlive reports whether this conversation's claimed PTY (if any) is
// currently alive; now is the wall-clock instant of this pass (injected for
// deterministic tests, per the teacher's fake-clock test idiom).
func (e *Engine) Infer(sessionID, transcriptPath string, ptyAlive bool, now time.Time) model.Status {
	// Step 1: read current byte length.
	cur, exists := FileSize(transcriptPath)
	if !exists {
		// Edge case: missing file -> Idle (spec.md §4.2 edge cases).
		e.Forget(sessionID)
		return model.StatusIdle
	}

	state := e.stateFor(sessionID)

	// Step 2: resume-baseline check precedes the growth-debounce check.
	if state.hasResumeBaseline {
		if cur <= state.resumeBaseline {
			state.prevSize = cur
			e.tracking.SetDefault(sessionID, state)
			return model.StatusWaitingForInput
		}
		state.hasResumeBaseline = false
	}

	// Step 3: track growth.
	if cur > state.prevSize {
		state.lastGrowth = now
	}
	state.prevSize = cur
	e.tracking.SetDefault(sessionID, state)

	// Step 5 precondition: file-based WaitingForInput is only trusted for
	// conversations with a live PTY; otherwise force Idle regardless of the
	// tail probe.
	if !ptyAlive {
		return model.StatusIdle
	}

	// Step 4: tentative status from the tail-probe oracle, overridden by
	// the settle window.
	role, err := ProbeTranscriptTail(transcriptPath)
	if err != nil {
		return model.StatusIdle
	}
	tentative := TentativeStatus(role)

	if tentative == model.StatusWaitingForInput && now.Sub(state.lastGrowth) < settleDuration {
		return model.StatusActive
	}
	return tentative
}

// TranscriptPath reconstructs the on-disk path for a conversation's
// transcript from claudeDir, its project path, and session id, following
// spec.md §6's escaped_path rule.
func TranscriptPath(claudeDir, projectPath, sessionID string) string {
	escaped := loader.EscapeProjectPath(projectPath)
	return filepath.Join(claudeDir, "projects", escaped, sessionID+".jsonl")
}
