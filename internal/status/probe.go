// Package status implements the status-inference engine of spec.md §4.2: a
// five-step algorithm classifying each conversation as Active /
// WaitingForInput / Idle without parsing transcript entries, grounded on
// the teacher's utils/ai_assistant2/tracker.go state machine and the
// JSONL-tail role probe pattern from the pack's agent_session.go.
package status

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"strings"

	"claudatui/internal/model"
)

// tailProbeBytes bounds how much of the transcript tail we read to answer
// "who spoke last", mirroring the pack's 2 MiB tail-read budget.
const tailProbeBytes = 2 * 1024 * 1024

// TailRole is the role recovered from the last well-formed JSONL entry.
type TailRole int

const (
	TailRoleUnknown TailRole = iota
	TailRoleUser
	TailRoleAssistant
)

// ProbeTranscriptTail reads the last tailProbeBytes of path and returns the
// role of the most recent entry whose "type" field is "user" or
// "assistant", scanning backward from the end (the existing "oracle"
// capability spec.md §4.2 step 4 builds on; this package does not attempt
// to parse more of the transcript than that one field).
func ProbeTranscriptTail(path string) (TailRole, error) {
	lines, err := readTailLines(path, tailProbeBytes)
	if err != nil {
		return TailRoleUnknown, err
	}

	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		var entry struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			continue
		}
		switch entry.Type {
		case "assistant":
			return TailRoleAssistant, nil
		case "user":
			return TailRoleUser, nil
		}
	}
	return TailRoleUnknown, nil
}

// readTailLines reads up to maxBytes from the end of path, dropping a
// leading partial line when the read started mid-file.
func readTailLines(path string, maxBytes int64) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, err
	}
	size := info.Size()
	if size == 0 {
		return nil, nil
	}

	start := int64(0)
	if size > maxBytes {
		start = size - maxBytes
	}
	if start > 0 {
		if _, err := file.Seek(start, io.SeekStart); err != nil {
			return nil, err
		}
	}

	data, err := io.ReadAll(bufio.NewReader(file))
	if err != nil {
		return nil, err
	}

	lines := strings.Split(string(data), "\n")
	if start > 0 && len(lines) > 0 {
		lines = lines[1:]
	}
	return lines, nil
}

// TentativeStatus maps a TailRole to the tentative status spec.md §4.2 step
// 4 derives from the tail probe: an assistant-authored last entry means the
// assistant has finished its turn and is waiting on the user; a
// user-authored last entry (or no determinable entry) means work is
// presumed ongoing.
func TentativeStatus(role TailRole) model.Status {
	if role == TailRoleAssistant {
		return model.StatusWaitingForInput
	}
	return model.StatusActive
}

// FileSize returns the current byte length of path, or 0 if it does not
// exist (spec.md §4.2: "Missing file -> Idle").
func FileSize(path string) (int64, bool) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, false
	}
	return info.Size(), true
}
