package unit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skirmish/pkg/engine/world"
)

// corridor returns a 3 x (n+2) grid with a single open row of n cells.
func corridor(t *testing.T, n int) *world.Grid {
	t.Helper()
	g := world.NewGrid(3, n+2)
	for c := 1; c <= n; c++ {
		require.NoError(t, g.MarkOpen(1, c))
	}
	g.Seal()
	return g
}

func TestAdd(t *testing.T) {
	s := NewSet(corridor(t, 3))

	id, err := s.Add(Elf, world.Pos(1, 1), DefaultStats())
	require.NoError(t, err)
	assert.Equal(t, ID(0), id)

	u := s.Get(id)
	require.NotNil(t, u)
	assert.Equal(t, 200, u.HitPoints)
	assert.Equal(t, 3, u.AttackPower)
	assert.True(t, u.Alive)

	_, err = s.Add(Goblin, world.Pos(1, 1), DefaultStats())
	assert.ErrorIs(t, err, ErrCellOccupied)

	_, err = s.Add(Goblin, world.Pos(0, 1), DefaultStats())
	assert.ErrorIs(t, err, ErrCellBlocked)
}

func TestOccupantAndIsOpen(t *testing.T) {
	s := NewSet(corridor(t, 3))
	id, err := s.Add(Goblin, world.Pos(1, 2), DefaultStats())
	require.NoError(t, err)

	got, ok := s.Occupant(world.Pos(1, 2))
	assert.True(t, ok)
	assert.Equal(t, id, got)

	_, ok = s.Occupant(world.Pos(1, 1))
	assert.False(t, ok)

	assert.False(t, s.IsOpen(world.Pos(1, 2)), "occupied cell")
	assert.False(t, s.IsOpen(world.Pos(0, 2)), "wall")
	assert.False(t, s.IsOpen(world.Pos(9, 9)), "out of bounds")
	assert.True(t, s.IsOpen(world.Pos(1, 3)))
}

func TestMove(t *testing.T) {
	s := NewSet(corridor(t, 4))
	a, _ := s.Add(Elf, world.Pos(1, 1), DefaultStats())
	b, _ := s.Add(Goblin, world.Pos(1, 3), DefaultStats())

	require.NoError(t, s.Move(a, world.Pos(1, 1), world.Pos(1, 2)))
	assert.Equal(t, world.Pos(1, 2), s.Get(a).Pos)
	assert.True(t, s.IsOpen(world.Pos(1, 1)))

	assert.ErrorIs(t, s.Move(a, world.Pos(1, 2), world.Pos(1, 3)), ErrCellOccupied)
	assert.ErrorIs(t, s.Move(a, world.Pos(1, 2), world.Pos(0, 2)), ErrCellBlocked)
	assert.ErrorIs(t, s.Move(a, world.Pos(1, 1), world.Pos(1, 2)), ErrPositionMismatch)
	assert.ErrorIs(t, s.Move(b, world.Pos(1, 3), world.Pos(1, 1)), ErrNotAdjacent)

	s.Remove(b)
	assert.ErrorIs(t, s.Move(b, world.Pos(1, 3), world.Pos(1, 4)), ErrUnknownUnit)
	require.NoError(t, s.Check())
}

func TestRemove_VacatesCell(t *testing.T) {
	s := NewSet(corridor(t, 2))
	id, _ := s.Add(Goblin, world.Pos(1, 1), DefaultStats())

	s.Remove(id)

	u := s.Get(id)
	assert.False(t, u.Alive)
	assert.Equal(t, 0, u.HitPoints)
	assert.True(t, s.IsOpen(world.Pos(1, 1)))
	assert.Equal(t, 1, s.Casualties(Goblin))
	assert.Equal(t, 0, s.AliveCount(Goblin))
	assert.Empty(t, s.InReadingOrder())
}

func TestInReadingOrder(t *testing.T) {
	g := world.NewGrid(4, 4)
	for r := 1; r <= 2; r++ {
		for c := 1; c <= 2; c++ {
			require.NoError(t, g.MarkOpen(r, c))
		}
	}
	g.Seal()
	s := NewSet(g)
	late, _ := s.Add(Elf, world.Pos(2, 1), DefaultStats())
	early, _ := s.Add(Goblin, world.Pos(1, 2), DefaultStats())

	assert.Equal(t, []ID{early, late}, s.InReadingOrder())
}

func TestClone_IsIndependent(t *testing.T) {
	s := NewSet(corridor(t, 3))
	elf, _ := s.Add(Elf, world.Pos(1, 1), DefaultStats())
	gob, _ := s.Add(Goblin, world.Pos(1, 3), DefaultStats())

	c := s.Clone()
	c.SetAttackPower(Elf, 15)
	require.NoError(t, c.Move(elf, world.Pos(1, 1), world.Pos(1, 2)))
	c.Remove(gob)

	assert.Equal(t, 3, s.Get(elf).AttackPower)
	assert.Equal(t, world.Pos(1, 1), s.Get(elf).Pos)
	assert.True(t, s.Get(gob).Alive)
	assert.Equal(t, 400, s.TotalHitPoints())
	assert.Equal(t, 200, c.TotalHitPoints())
	assert.Same(t, s.Grid(), c.Grid())
	require.NoError(t, s.Check())
	require.NoError(t, c.Check())
}

func TestParseFaction(t *testing.T) {
	for _, in := range []string{"elf", "Elves", "E"} {
		f, err := ParseFaction(in)
		require.NoError(t, err, in)
		assert.Equal(t, Elf, f, in)
	}
	f, err := ParseFaction(" goblin ")
	require.NoError(t, err)
	assert.Equal(t, Goblin, f)
	assert.Equal(t, Elf, f.Enemy())

	_, err = ParseFaction("orc")
	assert.Error(t, err)
}

func TestUnitString(t *testing.T) {
	u := &Unit{Faction: Goblin, HitPoints: 131, Pos: world.Pos(2, 5)}
	assert.Equal(t, "G(131): (5, 2)", u.String())
}
