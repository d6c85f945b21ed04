package world

import (
	"errors"
	"fmt"
)

// ErrGridSealed is returned when terrain is changed after the grid was sealed
var ErrGridSealed = errors.New("grid is sealed")

// Grid is the static wall/open layout of a map.
// Once sealed the terrain never changes, so a single Grid may be shared by any number of simulations.
type Grid struct {
	cells  [][]*Cell
	rows   int
	cols   int
	sealed bool
}

// NewGrid creates a new grid with the given dimensions. Every cell starts as a wall.
func NewGrid(rows, cols int) *Grid {
	g := &Grid{}
	g.Build(rows, cols)
	return g
}

// Rows returns the number of rows in the grid
func (g *Grid) Rows() int {
	return g.rows
}

// Cols returns the number of columns in the grid
func (g *Grid) Cols() int {
	return g.cols
}

// IsValidPosition checks if a row/col position is within grid bounds
func (g *Grid) IsValidPosition(row, col int) bool {
	return row >= 0 && row < g.rows && col >= 0 && col < g.cols
}

// IsOnPerimeter checks if a position is on the edge of the grid
func (g *Grid) IsOnPerimeter(row, col int) bool {
	return g.IsValidPosition(row, col) &&
		(row == 0 || row == g.rows-1 || col == 0 || col == g.cols-1)
}

// GetCell returns the cell at the given position, or nil if out of bounds
func (g *Grid) GetCell(row, col int) *Cell {
	if !g.IsValidPosition(row, col) {
		return nil
	}
	return g.cells[row][col]
}

// CellAt returns the cell at p, or nil if out of bounds
func (g *Grid) CellAt(p Position) *Cell {
	return g.GetCell(p.Row, p.Col)
}

// GetCellRelative returns the cell adjacent to the given cell in the specified direction
func (g *Grid) GetCellRelative(c *Cell, dir Direction) *Cell {
	if c == nil {
		return nil
	}
	if !dir.IsValid() {
		return nil
	}
	rowRel, colRel := dir.Delta()
	return g.GetCell(c.Row+rowRel, c.Col+colRel)
}

// IsOpenTerrain reports whether p is inside the grid and not a wall.
// Out-of-bounds positions count as walls.
func (g *Grid) IsOpenTerrain(p Position) bool {
	return g.CellAt(p).IsOpen()
}

// MarkOpen marks the cell at the given position as open floor.
func (g *Grid) MarkOpen(row, col int) error {
	if g.sealed {
		return ErrGridSealed
	}
	cell := g.GetCell(row, col)
	if cell == nil {
		return fmt.Errorf("mark open %d:%d: out of bounds (%dx%d)", row, col, g.rows, g.cols)
	}
	cell.Terrain = Open
	return nil
}

// Seal freezes the terrain and links every cell to its neighbours.
// Neighbour links are only available on a sealed grid.
func (g *Grid) Seal() {
	if g.sealed {
		return
	}
	g.BuildAllCellConnections()
	g.sealed = true
}

// Sealed reports whether Seal has been called
func (g *Grid) Sealed() bool {
	return g.sealed
}

// Build initializes the grid with the given dimensions
func (g *Grid) Build(rows, cols int) {
	if rows <= 0 || cols <= 0 {
		panic("Grid dimensions must be positive")
	}

	g.rows = rows
	g.cols = cols
	g.sealed = false

	g.cells = make([][]*Cell, rows)
	for currentRow := 0; currentRow < rows; currentRow++ {
		g.cells[currentRow] = make([]*Cell, cols)
		for currentCol := 0; currentCol < cols; currentCol++ {
			g.cells[currentRow][currentCol] = NewCell(currentRow, currentCol)
		}
	}
}

// BuildAllCellConnections connects all cells to their neighbors
func (g *Grid) BuildAllCellConnections() {
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			cell := g.GetCell(row, col)
			if cell != nil {
				g.buildCellConnections(cell)
			}
		}
	}
}

func (g *Grid) buildCellConnections(current *Cell) {
	if current == nil {
		return
	}

	for _, dir := range AllDirections() {
		adj := g.GetCellRelative(current, dir)

		if adj == nil {
			continue
		}

		current.SetNeighbor(dir, adj)
		adj.SetNeighbor(dir.Opposite(), current)
	}
}

// ForEachCell iterates over all cells in reading order, calling the provided function for each
func (g *Grid) ForEachCell(fn func(row, col int, cell *Cell)) {
	for row := 0; row < g.rows; row++ {
		for col := 0; col < g.cols; col++ {
			cell := g.GetCell(row, col)
			if cell != nil {
				fn(row, col, cell)
			}
		}
	}
}

// CountOpen returns the number of open cells
func (g *Grid) CountOpen() int {
	n := 0
	g.ForEachCell(func(row, col int, cell *Cell) {
		if cell.IsOpen() {
			n++
		}
	})
	return n
}

// HasSolidBorder returns true if every perimeter cell is a wall.
// Simulations assume this; nothing in the engine enforces it.
func (g *Grid) HasSolidBorder() bool {
	solid := true
	g.ForEachCell(func(row, col int, cell *Cell) {
		if g.IsOnPerimeter(row, col) && cell.IsOpen() {
			solid = false
		}
	})
	return solid
}
