package unit

import (
	"errors"
	"fmt"

	"skirmish/pkg/engine/world"
)

var (
	// ErrCellBlocked is returned when a unit would be placed on a wall or outside the grid
	ErrCellBlocked = errors.New("cell is not open terrain")
	// ErrCellOccupied is returned when a unit would be placed on another living unit
	ErrCellOccupied = errors.New("cell is occupied")
	// ErrPositionMismatch is returned when a move names a source cell the unit is not on
	ErrPositionMismatch = errors.New("unit is not at the given position")
	// ErrNotAdjacent is returned for moves longer than one orthogonal step
	ErrNotAdjacent = errors.New("destination is not adjacent")
	// ErrUnknownUnit is returned for ids that were never added or belong to a dead unit
	ErrUnknownUnit = errors.New("unknown or dead unit")
)

// Set owns every unit of one battle.
// Units live in an arena indexed by ID; the occupancy map only holds ids of living units.
type Set struct {
	grid      *world.Grid
	units     []*Unit
	occupancy map[world.Position]ID
}

// NewSet creates an empty unit set on top of grid
func NewSet(grid *world.Grid) *Set {
	return &Set{
		grid:      grid,
		occupancy: make(map[world.Position]ID),
	}
}

// Grid returns the topology the units stand on
func (s *Set) Grid() *world.Grid {
	return s.grid
}

// Add places a new living unit at pos and returns its id
func (s *Set) Add(f Faction, pos world.Position, stats Stats) (ID, error) {
	if !s.grid.IsOpenTerrain(pos) {
		return 0, fmt.Errorf("add %v at %v: %w", f, pos, ErrCellBlocked)
	}
	if other, ok := s.occupancy[pos]; ok {
		return 0, fmt.Errorf("add %v at %v (unit %d): %w", f, pos, other, ErrCellOccupied)
	}
	id := ID(len(s.units))
	s.units = append(s.units, &Unit{
		ID:          id,
		Pos:         pos,
		Faction:     f,
		HitPoints:   stats.HitPoints,
		AttackPower: stats.AttackPower,
		Alive:       true,
	})
	s.occupancy[pos] = id
	return id, nil
}

// Get returns the unit with the given id, or nil
func (s *Set) Get(id ID) *Unit {
	if id < 0 || int(id) >= len(s.units) {
		return nil
	}
	return s.units[id]
}

// Len returns the number of units ever added, dead ones included
func (s *Set) Len() int {
	return len(s.units)
}

// All returns every unit in id order, dead ones included
func (s *Set) All() []*Unit {
	return s.units
}

// Occupant returns the id of the living unit standing on pos
func (s *Set) Occupant(pos world.Position) (ID, bool) {
	id, ok := s.occupancy[pos]
	return id, ok
}

// IsOpen reports whether pos is open terrain with nobody on it
func (s *Set) IsOpen(pos world.Position) bool {
	if !s.grid.IsOpenTerrain(pos) {
		return false
	}
	_, taken := s.occupancy[pos]
	return !taken
}

// Move steps a living unit from one cell to an adjacent open cell.
func (s *Set) Move(id ID, from, to world.Position) error {
	u := s.Get(id)
	if u == nil || !u.Alive {
		return fmt.Errorf("move unit %d: %w", id, ErrUnknownUnit)
	}
	if u.Pos != from {
		return fmt.Errorf("move unit %d from %v (at %v): %w", id, from, u.Pos, ErrPositionMismatch)
	}
	if !from.Adjacent(to) {
		return fmt.Errorf("move unit %d %v -> %v: %w", id, from, to, ErrNotAdjacent)
	}
	if !s.grid.IsOpenTerrain(to) {
		return fmt.Errorf("move unit %d to %v: %w", id, to, ErrCellBlocked)
	}
	if other, ok := s.occupancy[to]; ok {
		return fmt.Errorf("move unit %d to %v (unit %d): %w", id, to, other, ErrCellOccupied)
	}
	delete(s.occupancy, from)
	s.occupancy[to] = id
	u.Pos = to
	return nil
}

// Remove kills the unit and vacates its cell
func (s *Set) Remove(id ID) {
	u := s.Get(id)
	if u == nil || !u.Alive {
		return
	}
	u.Alive = false
	u.HitPoints = 0
	if s.occupancy[u.Pos] == id {
		delete(s.occupancy, u.Pos)
	}
}

// InReadingOrder returns the ids of living units sorted by their position in reading order
func (s *Set) InReadingOrder() []ID {
	order := make([]ID, 0, len(s.occupancy))
	s.grid.ForEachCell(func(row, col int, cell *world.Cell) {
		if id, ok := s.occupancy[cell.Position()]; ok {
			order = append(order, id)
		}
	})
	return order
}

// AliveCount returns the number of living units of faction f
func (s *Set) AliveCount(f Faction) int {
	n := 0
	for _, u := range s.units {
		if u.Alive && u.Faction == f {
			n++
		}
	}
	return n
}

// Casualties returns the number of dead units of faction f
func (s *Set) Casualties(f Faction) int {
	n := 0
	for _, u := range s.units {
		if !u.Alive && u.Faction == f {
			n++
		}
	}
	return n
}

// SetAttackPower sets the attack power of every unit of faction f
func (s *Set) SetAttackPower(f Faction, power int) {
	for _, u := range s.units {
		if u.Faction == f {
			u.AttackPower = power
		}
	}
}

// TotalHitPoints sums the hit points of all living units
func (s *Set) TotalHitPoints() int {
	total := 0
	for _, u := range s.units {
		if u.Alive {
			total += u.HitPoints
		}
	}
	return total
}

// FactionHitPoints sums the hit points of the living units of faction f
func (s *Set) FactionHitPoints(f Faction) int {
	total := 0
	for _, u := range s.units {
		if u.Alive && u.Faction == f {
			total += u.HitPoints
		}
	}
	return total
}

// Clone returns a deep copy sharing only the immutable grid
func (s *Set) Clone() *Set {
	c := &Set{
		grid:      s.grid,
		units:     make([]*Unit, len(s.units)),
		occupancy: make(map[world.Position]ID, len(s.occupancy)),
	}
	for i, u := range s.units {
		cp := *u
		c.units[i] = &cp
	}
	for pos, id := range s.occupancy {
		c.occupancy[pos] = id
	}
	return c
}

// Check verifies the occupancy map against the arena. A non-nil result means the simulation is broken.
func (s *Set) Check() error {
	living := 0
	for _, u := range s.units {
		if u.HitPoints < 0 {
			return fmt.Errorf("unit %d has negative hit points %d", u.ID, u.HitPoints)
		}
		if !u.Alive {
			continue
		}
		living++
		if !s.grid.IsOpenTerrain(u.Pos) {
			return fmt.Errorf("unit %d at %v: %w", u.ID, u.Pos, ErrCellBlocked)
		}
		if id, ok := s.occupancy[u.Pos]; !ok || id != u.ID {
			return fmt.Errorf("unit %d at %v missing from occupancy", u.ID, u.Pos)
		}
	}
	if living != len(s.occupancy) {
		return fmt.Errorf("occupancy holds %d cells for %d living units", len(s.occupancy), living)
	}
	return nil
}
