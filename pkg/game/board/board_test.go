package board

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skirmish/pkg/engine/world"
	"skirmish/pkg/game/unit"
)

const sample = `#######
#.G...#
#...EG#
#.#.#G#
#..G#E#
#.....#
#######
`

func TestParse_Sample(t *testing.T) {
	grid, units, err := ParseString(sample, unit.DefaultStats())
	require.NoError(t, err)

	assert.Equal(t, 7, grid.Rows())
	assert.Equal(t, 7, grid.Cols())
	assert.True(t, grid.Sealed())
	assert.True(t, grid.HasSolidBorder())
	assert.Equal(t, 6, units.Len())
	assert.Equal(t, 4, units.AliveCount(unit.Goblin))
	assert.Equal(t, 2, units.AliveCount(unit.Elf))

	first := units.Get(0)
	assert.Equal(t, unit.Goblin, first.Faction)
	assert.Equal(t, world.Pos(1, 2), first.Pos)

	for _, u := range units.All() {
		assert.Equal(t, 200, u.HitPoints)
		assert.Equal(t, 3, u.AttackPower)
	}
	assert.False(t, grid.IsOpenTerrain(world.Pos(3, 2)))
	assert.True(t, grid.IsOpenTerrain(world.Pos(4, 3)))
}

func TestParse_RoundTrip(t *testing.T) {
	grid, units, err := ParseString(sample, unit.DefaultStats())
	require.NoError(t, err)
	assert.Equal(t, sample, Format(grid, units))
}

func TestParse_CustomStats(t *testing.T) {
	_, units, err := ParseString("####\n#GE#\n####", unit.Stats{HitPoints: 50, AttackPower: 7})
	require.NoError(t, err)
	for _, u := range units.All() {
		assert.Equal(t, 50, u.HitPoints)
		assert.Equal(t, 7, u.AttackPower)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"invalid glyph", "####\n#GX#\n####", ErrInvalidGlyph},
		{"ragged row", "####\n#G.E#\n####", ErrRaggedRow},
		{"empty", "\n\n", ErrEmptyBoard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseString(tt.input, unit.DefaultStats())
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParse_IgnoresCarriageReturnsAndTrailingLines(t *testing.T) {
	grid, units, err := ParseString("####\r\n#GE#\r\n####\r\n\r\n", unit.DefaultStats())
	require.NoError(t, err)
	assert.Equal(t, 3, grid.Rows())
	assert.Equal(t, 2, units.Len())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "board.txt")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))

	_, units, err := Load(path, unit.DefaultStats())
	require.NoError(t, err)
	assert.Equal(t, 6, units.Len())

	_, _, err = Load(filepath.Join(t.TempDir(), "missing.txt"), unit.DefaultStats())
	assert.Error(t, err)
}
