// Package terminal wraps the few terminal queries the renderers need.
package terminal

import (
	"os"

	"golang.org/x/term"
)

const (
	DefaultWidth = 80
	MaxRuleWidth = 120
)

// GetWidth returns the current width of stdout.
// Falls back to DefaultWidth if the width cannot be determined.
func GetWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return DefaultWidth
	}
	return width
}

// RuleWidth returns the width used for horizontal rules: the terminal width capped at MaxRuleWidth
func RuleWidth() int {
	return min(GetWidth(), MaxRuleWidth)
}

// IsInteractive reports whether stdout is attached to a terminal.
// Renderers disable colour when it is not.
func IsInteractive() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
