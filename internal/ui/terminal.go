// Package ui holds small terminal presentation helpers for the CLI.
package ui

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// ShouldUseColor returns true when ANSI colors should be used on stdout.
// It respects NO_COLOR, CLICOLOR_FORCE, CLICOLOR, and TTY detection.
func ShouldUseColor() bool {
	// https://no-color.org — any non-empty value disables color.
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	// CLICOLOR_FORCE=1 forces color even without a TTY.
	if strings.TrimSpace(os.Getenv("CLICOLOR_FORCE")) == "1" {
		return true
	}
	// CLICOLOR=0 explicitly disables color.
	if strings.TrimSpace(os.Getenv("CLICOLOR")) == "0" {
		return false
	}
	// Default: color if stdout is a terminal.
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// IsInteractive reports whether stdin is a terminal. The device-code
// prompt is pointless when nobody is there to read it.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// Bold wraps s in bold ANSI codes when color is enabled.
func Bold(s string) string {
	if !ShouldUseColor() {
		return s
	}
	return fmt.Sprintf("\x1b[1m%s\x1b[0m", s)
}
