// Package renderer defines the diagnostic display of a running battle.
// Rendering is informational only; nothing in the simulation depends on it.
package renderer

import (
	"skirmish/pkg/game/battle"
)

// TextStyle represents different text styling options
type TextStyle int

const (
	StyleNormal TextStyle = iota
	StyleWall
	StyleFloor
	StyleGoblin
	StyleElf
	StyleHeader
	StyleSubtle
	StyleDenied
)

// Renderer defines the interface for battle rendering backends
type Renderer interface {
	// Init initializes the renderer (colors, etc.)
	Init()

	// RenderRound renders the board and unit stats of one snapshot
	RenderRound(s battle.Snapshot)

	// StyleText applies a style to text and returns the styled string
	StyleText(text string, style TextStyle) string

	// ShowMessage displays a message to the user
	ShowMessage(msg string)
}

// Current holds the active renderer instance
var Current Renderer

// SetRenderer sets the active renderer
func SetRenderer(r Renderer) {
	Current = r
}

// Init initializes the current renderer
func Init() {
	if Current != nil {
		Current.Init()
	}
}

// RenderRound renders a snapshot with the current renderer
func RenderRound(s battle.Snapshot) {
	if Current != nil {
		Current.RenderRound(s)
	}
}

// ShowMessage displays a message with the current renderer
func ShowMessage(msg string) {
	if Current != nil {
		Current.ShowMessage(msg)
	}
}

// StyleText applies a style to text
func StyleText(text string, style TextStyle) string {
	if Current != nil {
		return Current.StyleText(text, style)
	}
	return text
}

// Every returns a battle option that renders every n-th completed round and the final board.
// n <= 1 renders every round.
func Every(n int) battle.Option {
	return battle.WithRoundObserver(func(s battle.Snapshot) {
		if s.State == battle.BattleOver || n <= 1 || s.Round%n == 0 {
			RenderRound(s)
		}
	})
}
