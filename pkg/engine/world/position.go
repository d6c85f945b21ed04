package world

import "fmt"

// Position addresses a cell by row and column
type Position struct {
	Row int
	Col int
}

// Pos is shorthand for Position{Row: row, Col: col}
func Pos(row, col int) Position {
	return Position{Row: row, Col: col}
}

// Step returns the position one cell away in the given direction
func (p Position) Step(dir Direction) Position {
	dr, dc := dir.Delta()
	return Position{Row: p.Row + dr, Col: p.Col + dc}
}

// Neighbors returns the four orthogonal neighbours in reading order.
func (p Position) Neighbors() [4]Position {
	var out [4]Position
	for i, dir := range ReadingOrder() {
		out[i] = p.Step(dir)
	}
	return out
}

// Less reports whether p comes before o in reading order (top-to-bottom, then left-to-right)
func (p Position) Less(o Position) bool {
	if p.Row != o.Row {
		return p.Row < o.Row
	}
	return p.Col < o.Col
}

// Adjacent reports whether o is one orthogonal step away from p
func (p Position) Adjacent(o Position) bool {
	dr, dc := p.Row-o.Row, p.Col-o.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	return dr+dc == 1
}

// String renders the position as "row:col"
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Row, p.Col)
}
