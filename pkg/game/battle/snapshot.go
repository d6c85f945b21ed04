package battle

import (
	"fmt"
	"strings"

	"skirmish/pkg/engine/world"
	"skirmish/pkg/game/board"
	"skirmish/pkg/game/unit"
)

// UnitStat is the visible state of one living unit
type UnitStat struct {
	ID        unit.ID
	Faction   unit.Faction
	Pos       world.Position
	HitPoints int
}

// Label renders the stat as G(200)
func (s UnitStat) Label() string {
	return fmt.Sprintf("%c(%d)", s.Faction.Glyph(), s.HitPoints)
}

// Snapshot is a read-only picture of the board, used for diagnostics only
type Snapshot struct {
	Round int
	State State
	// Rows holds one string of board glyphs per grid row
	Rows []string
	// Units lists living units per row, in reading order
	Units [][]UnitStat
}

// Snapshot captures the current board
func (b *Battle) Snapshot() Snapshot {
	s := Snapshot{
		Round: b.round,
		State: b.state,
		Rows:  make([]string, b.grid.Rows()),
		Units: make([][]UnitStat, b.grid.Rows()),
	}
	for row := range s.Rows {
		s.Rows[row] = board.FormatRow(b.grid, b.units, row)
	}
	for _, id := range b.units.InReadingOrder() {
		u := b.units.Get(id)
		s.Units[u.Pos.Row] = append(s.Units[u.Pos.Row], UnitStat{
			ID:        u.ID,
			Faction:   u.Faction,
			Pos:       u.Pos,
			HitPoints: u.HitPoints,
		})
	}
	return s
}

// Board returns the glyph rows joined by newlines
func (s Snapshot) Board() string {
	return strings.Join(s.Rows, "\n") + "\n"
}

// Annotated returns the board with each row followed by its units' stats
func (s Snapshot) Annotated() string {
	var sb strings.Builder
	for row, line := range s.Rows {
		sb.WriteString(line)
		if stats := s.Units[row]; len(stats) > 0 {
			labels := make([]string, len(stats))
			for i, st := range stats {
				labels[i] = st.Label()
			}
			sb.WriteString("   ")
			sb.WriteString(strings.Join(labels, ", "))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// String renders the round header, the board and one line per living unit
func (s Snapshot) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Round: %d\n", s.Round)
	sb.WriteString(s.Board())
	for _, row := range s.Units {
		for _, st := range row {
			fmt.Fprintf(&sb, "%s: (%d, %d)\n", st.Label(), st.Pos.Col, st.Pos.Row)
		}
	}
	return sb.String()
}
