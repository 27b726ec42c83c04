package status

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"claudatui/internal/model"
)

func writeTranscript(t *testing.T, dir string, contents string) string {
	t.Helper()
	path := filepath.Join(dir, "transcript.jsonl")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestInferMissingFileIsIdle(t *testing.T) {
	e := NewEngine()
	got := e.Infer("s1", filepath.Join(t.TempDir(), "missing.jsonl"), true, time.Now())
	if got != model.StatusIdle {
		t.Fatalf("got %v, want Idle", got)
	}
}

func TestInferResumedSessionWithoutGrowthIsWaiting(t *testing.T) {
	dir := t.TempDir()
	path := writeTranscript(t, dir, `{"type":"assistant"}`+"\n")

	e := NewEngine()
	size, _ := FileSize(path)
	e.MarkResumed("s1", size)

	got := e.Infer("s1", path, true, time.Now())
	if got != model.StatusWaitingForInput {
		t.Fatalf("got %v, want WaitingForInput", got)
	}
}

func TestInferResumedSessionDropsBaselineOnceGrown(t *testing.T) {
	dir := t.TempDir()
	path := writeTranscript(t, dir, `{"type":"assistant"}`+"\n")

	e := NewEngine()
	size, _ := FileSize(path)
	e.MarkResumed("s1", size)

	// Grow the file past the baseline.
	if err := os.WriteFile(path, []byte(`{"type":"assistant"}`+"\n"+`{"type":"user"}`+"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	now := time.Now()
	got := e.Infer("s1", path, true, now)
	// Tail probe now sees "user" last -> tentative Active.
	if got != model.StatusActive {
		t.Fatalf("got %v, want Active", got)
	}
}

func TestInferNoLivePTYForcesIdle(t *testing.T) {
	dir := t.TempDir()
	path := writeTranscript(t, dir, `{"type":"assistant"}`+"\n")

	e := NewEngine()
	got := e.Infer("s1", path, false, time.Now())
	if got != model.StatusIdle {
		t.Fatalf("got %v, want Idle (no live PTY)", got)
	}
}

func TestInferSettleWindowOverridesWaitingForInput(t *testing.T) {
	dir := t.TempDir()
	path := writeTranscript(t, dir, `{"type":"user"}`+"\n")

	e := NewEngine()
	t0 := time.Now()
	// First pass: establish prevSize (the jump from 0 records growth at t0).
	e.Infer("s1", path, true, t0)

	// Grow the file, then immediately probe again with an assistant tail
	// entry - tentative would be WaitingForInput, but growth was just now.
	if err := os.WriteFile(path, []byte(`{"type":"user"}`+"\n"+`{"type":"assistant"}`+"\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	got := e.Infer("s1", path, true, t0.Add(1*time.Second))
	if got != model.StatusActive {
		t.Fatalf("got %v, want Active (within 3s settle window)", got)
	}

	// After the settle window has elapsed with no further growth, the
	// tail-probe verdict should stand.
	got = e.Infer("s1", path, true, t0.Add(5*time.Second))
	if got != model.StatusWaitingForInput {
		t.Fatalf("got %v, want WaitingForInput (settle window elapsed)", got)
	}
}

func TestProbeTranscriptTailScansBackwardForRole(t *testing.T) {
	dir := t.TempDir()
	path := writeTranscript(t, dir, `{"type":"user"}`+"\n"+`{"other":"field"}`+"\n"+`{"type":"assistant"}`+"\n")

	role, err := ProbeTranscriptTail(path)
	if err != nil {
		t.Fatalf("ProbeTranscriptTail: %v", err)
	}
	if role != TailRoleAssistant {
		t.Fatalf("role = %v, want TailRoleAssistant", role)
	}
}

func TestTranscriptPathEscapesProjectPath(t *testing.T) {
	got := TranscriptPath("/home/me/.claude", "/home/me/p1", "sess-1")
	want := "/home/me/.claude/projects/-home-me-p1/sess-1.jsonl"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
