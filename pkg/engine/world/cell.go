// Package world provides generic 2D grid-based world primitives.
// These are engine-level constructs usable by any tile-based simulation.
package world

// Terrain is the static kind of a cell
type Terrain int

// Terrain constants
const (
	Wall Terrain = iota
	Open
)

// String returns the terrain name
func (t Terrain) String() string {
	switch t {
	case Wall:
		return "Wall"
	case Open:
		return "Open"
	default:
		return "Unknown"
	}
}

// Cell represents a single cell/tile in the grid.
// Cells never move and never hold occupants; occupancy is tracked by whoever owns the units.
type Cell struct {
	// Grid position
	Row int
	Col int

	Terrain Terrain

	// Navigation - links to adjacent cells
	North *Cell
	East  *Cell
	South *Cell
	West  *Cell
}

// NewCell creates a new wall cell at the given position
func NewCell(row, col int) *Cell {
	return &Cell{
		Row:     row,
		Col:     col,
		Terrain: Wall,
	}
}

// Position returns the cell's coordinates
func (c *Cell) Position() Position {
	return Position{Row: c.Row, Col: c.Col}
}

// IsOpen returns true if units may stand on this cell
func (c *Cell) IsOpen() bool {
	return c != nil && c.Terrain == Open
}

// GetNeighbor returns the neighboring cell in the given direction
func (c *Cell) GetNeighbor(dir Direction) *Cell {
	if c == nil {
		return nil
	}
	switch dir {
	case North:
		return c.North
	case East:
		return c.East
	case South:
		return c.South
	case West:
		return c.West
	default:
		return nil
	}
}

// SetNeighbor sets the neighboring cell in the given direction
func (c *Cell) SetNeighbor(dir Direction, neighbor *Cell) {
	if c == nil {
		return
	}
	switch dir {
	case North:
		c.North = neighbor
	case East:
		c.East = neighbor
	case South:
		c.South = neighbor
	case West:
		c.West = neighbor
	}
}

// GetNeighbors returns all non-nil adjacent cells in reading order
func (c *Cell) GetNeighbors() []*Cell {
	var neighbors []*Cell
	for _, dir := range ReadingOrder() {
		if n := c.GetNeighbor(dir); n != nil {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}

// OpenNeighbors returns the adjacent open cells in reading order
func (c *Cell) OpenNeighbors() []*Cell {
	var neighbors []*Cell
	for _, n := range c.GetNeighbors() {
		if n.IsOpen() {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}
