package ptymgr

import (
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// MinSupportedAssistantVersion is the earliest assistant-CLI version this
// package assumes when it builds --resume/--dangerously-skip-permissions
// argv (spec.md §6: "Executable name: the assistant CLI (claude)").
const MinSupportedAssistantVersion = "1.0.0"

// CheckAssistantVersion runs "<argv0> --version", parses the first
// semver-shaped token out of its output, and reports the parsed version
// plus whether it satisfies MinSupportedAssistantVersion. A version string
// the CLI doesn't emit in a recognizable form is treated as compatible
// (fail-open), mirroring the teacher's VersionChecker's
// graceful-degradation-on-parse-failure stance in utils/version_checker.go.
func CheckAssistantVersion(argv0 string) (version string, compatible bool) {
	out, err := exec.Command(argv0, "--version").Output()
	if err != nil {
		return "", true
	}

	constraint, err := semver.NewConstraint(">=" + MinSupportedAssistantVersion)
	if err != nil {
		return "", true
	}

	for _, field := range strings.Fields(string(out)) {
		v, err := semver.NewVersion(field)
		if err != nil {
			continue
		}
		return v.String(), constraint.Check(v)
	}
	return "", true
}
