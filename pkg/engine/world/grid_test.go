package world

import (
	"errors"
	"testing"
)

// makeRoom creates a rows x cols grid with a wall border and open interior.
func makeRoom(t *testing.T, rows, cols int) *Grid {
	t.Helper()
	g := NewGrid(rows, cols)
	for r := 1; r < rows-1; r++ {
		for c := 1; c < cols-1; c++ {
			if err := g.MarkOpen(r, c); err != nil {
				t.Fatalf("MarkOpen(%d, %d) = %v", r, c, err)
			}
		}
	}
	g.Seal()
	return g
}

func TestNewGrid_AllWalls(t *testing.T) {
	g := NewGrid(3, 4)
	if g.Rows() != 3 || g.Cols() != 4 {
		t.Fatalf("dimensions = %dx%d, want 3x4", g.Rows(), g.Cols())
	}
	if n := g.CountOpen(); n != 0 {
		t.Errorf("CountOpen() = %d, want 0", n)
	}
	if got := g.GetCell(1, 2).Position(); got != Pos(1, 2) {
		t.Errorf("cell position = %v, want 1:2", got)
	}
}

func TestGetCell_OutOfBounds(t *testing.T) {
	g := NewGrid(2, 2)
	for _, p := range []Position{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		if c := g.CellAt(p); c != nil {
			t.Errorf("CellAt(%v) = %v, want nil", p, c)
		}
		if g.IsOpenTerrain(p) {
			t.Errorf("IsOpenTerrain(%v) = true, want false", p)
		}
	}
}

func TestSeal_LinksNeighborsAndFreezes(t *testing.T) {
	g := makeRoom(t, 4, 4)
	center := g.GetCell(1, 1)
	if center.East != g.GetCell(1, 2) || center.South != g.GetCell(2, 1) {
		t.Fatal("neighbours not linked after Seal")
	}
	if err := g.MarkOpen(0, 0); !errors.Is(err, ErrGridSealed) {
		t.Errorf("MarkOpen after Seal = %v, want ErrGridSealed", err)
	}
	if g.GetCell(0, 0).IsOpen() {
		t.Error("sealed grid terrain changed")
	}
}

func TestOpenNeighbors_ReadingOrder(t *testing.T) {
	g := makeRoom(t, 5, 5)
	center := g.GetCell(2, 2)
	got := center.OpenNeighbors()
	want := []Position{{1, 2}, {2, 1}, {2, 3}, {3, 2}}
	if len(got) != len(want) {
		t.Fatalf("len(OpenNeighbors) = %d, want %d", len(got), len(want))
	}
	for i, c := range got {
		if c.Position() != want[i] {
			t.Errorf("OpenNeighbors[%d] = %v, want %v", i, c.Position(), want[i])
		}
	}

	corner := g.GetCell(1, 1)
	if n := len(corner.OpenNeighbors()); n != 2 {
		t.Errorf("corner OpenNeighbors = %d, want 2", n)
	}
}

func TestHasSolidBorder(t *testing.T) {
	g := makeRoom(t, 4, 5)
	if !g.HasSolidBorder() {
		t.Error("HasSolidBorder() = false for walled room")
	}

	leaky := NewGrid(3, 3)
	if err := leaky.MarkOpen(1, 1); err != nil {
		t.Fatal(err)
	}
	if err := leaky.MarkOpen(0, 1); err != nil {
		t.Fatal(err)
	}
	leaky.Seal()
	if leaky.HasSolidBorder() {
		t.Error("HasSolidBorder() = true with an open perimeter cell")
	}
}

func TestCountOpen(t *testing.T) {
	if n := makeRoom(t, 4, 5).CountOpen(); n != 6 {
		t.Errorf("CountOpen() = %d, want 6", n)
	}
}

func TestOpenNeighbors_UnsealedGridHasNoLinks(t *testing.T) {
	g := NewGrid(3, 3)
	if err := g.MarkOpen(1, 1); err != nil {
		t.Fatal(err)
	}
	if err := g.MarkOpen(1, 2); err != nil {
		t.Fatal(err)
	}
	if n := len(g.GetCell(1, 1).OpenNeighbors()); n != 0 {
		t.Errorf("OpenNeighbors before Seal = %d, want 0", n)
	}
	g.Seal()
	if n := len(g.GetCell(1, 1).OpenNeighbors()); n != 1 {
		t.Errorf("OpenNeighbors after Seal = %d, want 1", n)
	}
}

func TestForEachCell_ReadingOrder(t *testing.T) {
	g := NewGrid(2, 3)
	var prev *Position
	count := 0
	g.ForEachCell(func(row, col int, cell *Cell) {
		p := cell.Position()
		if prev != nil && !prev.Less(p) {
			t.Errorf("ForEachCell visited %v after %v", p, *prev)
		}
		prev = &p
		count++
	})
	if count != 6 {
		t.Errorf("visited %d cells, want 6", count)
	}
}
