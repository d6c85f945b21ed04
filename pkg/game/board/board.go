// Package board loads the text battle map format:
//
//	#  wall
//	.  open floor
//	G  goblin standing on open floor
//	E  elf standing on open floor
//
// Every row must have the same width. Trailing blank lines and carriage returns are ignored.
package board

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"skirmish/pkg/engine/world"
	"skirmish/pkg/game/unit"
)

// Board glyphs
const (
	GlyphWall = '#'
	GlyphOpen = '.'
)

var (
	// ErrInvalidGlyph is returned for any character outside the board alphabet
	ErrInvalidGlyph = errors.New("invalid board character")
	// ErrRaggedRow is returned when a row is wider or narrower than the first one
	ErrRaggedRow = errors.New("row width differs from first row")
	// ErrEmptyBoard is returned when the input holds no rows
	ErrEmptyBoard = errors.New("board is empty")
)

// Load reads a board from a file
func Load(path string, stats unit.Stats) (*world.Grid, *unit.Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open board: %w", err)
	}
	defer f.Close()

	grid, units, err := Parse(f, stats)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return grid, units, nil
}

// ParseString parses a board held in memory
func ParseString(s string, stats unit.Stats) (*world.Grid, *unit.Set, error) {
	return Parse(strings.NewReader(s), stats)
}

// Parse reads the board text and returns the sealed grid plus its units.
// Units get ids in reading order and the given starting stats.
func Parse(r io.Reader, stats unit.Stats) (*world.Grid, *unit.Set, error) {
	lines, err := readRows(r)
	if err != nil {
		return nil, nil, err
	}

	cols := utf8.RuneCountInString(lines[0])
	grid := world.NewGrid(len(lines), cols)

	type placement struct {
		faction unit.Faction
		pos     world.Position
	}
	var placements []placement

	for row, line := range lines {
		if n := utf8.RuneCountInString(line); n != cols {
			return nil, nil, fmt.Errorf("row %d has width %d, want %d: %w", row, n, cols, ErrRaggedRow)
		}
		col := 0
		for _, ch := range line {
			switch ch {
			case GlyphWall:
			case GlyphOpen:
				if err := grid.MarkOpen(row, col); err != nil {
					return nil, nil, err
				}
			default:
				faction, ok := unit.FactionForGlyph(ch)
				if !ok {
					return nil, nil, fmt.Errorf("row %d col %d %q: %w", row, col, ch, ErrInvalidGlyph)
				}
				if err := grid.MarkOpen(row, col); err != nil {
					return nil, nil, err
				}
				placements = append(placements, placement{faction: faction, pos: world.Pos(row, col)})
			}
			col++
		}
	}
	grid.Seal()

	units := unit.NewSet(grid)
	for _, p := range placements {
		if _, err := units.Add(p.faction, p.pos, stats); err != nil {
			return nil, nil, err
		}
	}
	return grid, units, nil
}

func readRows(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read board: %w", err)
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	if len(lines) == 0 {
		return nil, ErrEmptyBoard
	}
	return lines, nil
}

// Format renders a grid and its living units back into board text
func Format(grid *world.Grid, units *unit.Set) string {
	var sb strings.Builder
	for row := 0; row < grid.Rows(); row++ {
		sb.WriteString(FormatRow(grid, units, row))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatRow renders a single row of the board
func FormatRow(grid *world.Grid, units *unit.Set, row int) string {
	var sb strings.Builder
	for col := 0; col < grid.Cols(); col++ {
		sb.WriteRune(Glyph(grid, units, world.Pos(row, col)))
	}
	return sb.String()
}

// Glyph returns the board character for a single position
func Glyph(grid *world.Grid, units *unit.Set, pos world.Position) rune {
	if !grid.IsOpenTerrain(pos) {
		return GlyphWall
	}
	if units != nil {
		if id, ok := units.Occupant(pos); ok {
			return units.Get(id).Faction.Glyph()
		}
	}
	return GlyphOpen
}
