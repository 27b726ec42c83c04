package ptymgr

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/google/shlex"
)

// ResolveAssistantCommand splits an assistant CLI override into argv,
// defaulting to the bare "claude" binary (spec.md §6: "Executable name: the
// assistant CLI (claude)"), grounded on the teacher's ResolveShellCommand.
func ResolveAssistantCommand(override string) ([]string, error) {
	override = strings.TrimSpace(override)
	if override == "" {
		override = "claude"
	}

	parts, err := shlex.Split(override)
	if err != nil {
		return nil, fmt.Errorf("invalid assistant command %q: %w", override, err)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty assistant command")
	}
	if _, err := exec.LookPath(parts[0]); err != nil {
		return nil, fmt.Errorf("assistant binary %q not found: %w", parts[0], err)
	}
	return parts, nil
}

// BuildArgs appends --resume <token> and the dangerous-mode flag to argv,
// per spec.md §4.1's spawn contract.
func BuildArgs(argv []string, resumeToken string, dangerous bool) []string {
	args := append([]string{}, argv...)
	if resumeToken != "" {
		args = append(args, "--resume", resumeToken)
	}
	if dangerous {
		args = append(args, "--dangerously-skip-permissions")
	}
	return args
}
