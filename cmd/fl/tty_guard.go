package main

import (
	"os"
	"strings"
)

// init runs before Bubble Tea acquires the terminal.
//
// In PTY capture environments, Bubble Tea's init triggers Lipgloss/Termenv
// background detection, which can emit OSC/DSR control sequences to stdout.
// Those sequences are harmless in a real terminal but corrupt the plain-text
// output of non-interactive invocations like --stats or --export-svg.
//
// Termenv uses CI to disable TTY probing, so set it early for invocations
// that never start the TUI.
func init() {
	if os.Getenv("CI") != "" {
		return
	}

	if !shouldSuppressTTYQueries(os.Args, os.Getenv("FL_TEST_MODE") != "") {
		return
	}

	_ = os.Setenv("CI", "1")
}

func shouldSuppressTTYQueries(args []string, envTest bool) bool {
	if envTest {
		return true
	}

	for _, arg := range args {
		switch strings.TrimPrefix(arg, "-") {
		case "-version", "-help", "-stats", "version", "help", "stats":
			return true
		}
		if strings.HasPrefix(arg, "--export-svg") || strings.HasPrefix(arg, "-export-svg") {
			return true
		}
	}

	return false
}
