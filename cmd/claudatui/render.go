package main

import (
	"fmt"
	"os"

	"claudatui/internal/kernel"
)

// renderPlain is a deliberately minimal stand-in for the rendering chrome
// spec.md §1 treats as an external collaborator: it only surfaces toasts,
// enough to drive the kernel end-to-end from a real terminal without
// pulling a layout/widget library into the core.
func renderPlain(snap kernel.Snapshot) {
	for _, toast := range snap.Toasts {
		prefix := "claudatui"
		if toast.IsError {
			prefix = "claudatui: error"
		}
		fmt.Fprintf(os.Stderr, "\r\n%s: %s", prefix, toast.Message)
	}
}
