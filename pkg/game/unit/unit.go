// Package unit holds the combatants of a battle: who they are, where they stand and how hurt they are.
package unit

import (
	"fmt"
	"strings"

	"skirmish/pkg/engine/world"
)

// ID is a stable unit identifier, assigned in board reading order at load time
type ID int

// Faction is the side a unit fights for
type Faction int

// Faction constants
const (
	Goblin Faction = iota
	Elf
)

// Default stats for freshly loaded units
const (
	DefaultHitPoints   = 200
	DefaultAttackPower = 3
)

// Factions returns both factions in a fixed order
func Factions() []Faction {
	return []Faction{Goblin, Elf}
}

// String returns the faction name
func (f Faction) String() string {
	switch f {
	case Goblin:
		return "Goblin"
	case Elf:
		return "Elf"
	default:
		return "Unknown"
	}
}

// Glyph returns the board character for the faction
func (f Faction) Glyph() rune {
	switch f {
	case Goblin:
		return 'G'
	case Elf:
		return 'E'
	default:
		return '?'
	}
}

// Enemy returns the opposing faction
func (f Faction) Enemy() Faction {
	if f == Goblin {
		return Elf
	}
	return Goblin
}

// ParseFaction accepts a faction name ("elf", "Elves", "goblin", ...) or its glyph.
func ParseFaction(s string) (Faction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "e", "elf", "elves":
		return Elf, nil
	case "g", "goblin", "goblins":
		return Goblin, nil
	}
	return 0, fmt.Errorf("unknown faction %q", s)
}

// FactionForGlyph maps a board character to its faction
func FactionForGlyph(r rune) (Faction, bool) {
	switch r {
	case 'G':
		return Goblin, true
	case 'E':
		return Elf, true
	}
	return 0, false
}

// Stats are the starting values given to every loaded unit
type Stats struct {
	HitPoints   int
	AttackPower int
}

// DefaultStats returns 200 hit points and 3 attack power
func DefaultStats() Stats {
	return Stats{HitPoints: DefaultHitPoints, AttackPower: DefaultAttackPower}
}

// Unit is one combatant
type Unit struct {
	ID          ID
	Pos         world.Position
	Faction     Faction
	HitPoints   int
	AttackPower int
	Alive       bool
}

// IsEnemyOf reports whether o is alive and on the other side
func (u *Unit) IsEnemyOf(o *Unit) bool {
	return o != nil && o.Alive && o.Faction != u.Faction
}

// String renders the unit as G(200): (x, y), column first.
func (u *Unit) String() string {
	return fmt.Sprintf("%c(%d): (%d, %d)", u.Faction.Glyph(), u.HitPoints, u.Pos.Col, u.Pos.Row)
}
