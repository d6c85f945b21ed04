package battle

import (
	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"

	"skirmish/pkg/engine/world"
	"skirmish/pkg/game/unit"
)

// distanceMap holds BFS step counts from one origin
type distanceMap map[world.Position]int

// freeNeighbors returns the open, unoccupied cells next to p, up, left, right, down.
// It follows the grid's cell links, so out-of-bounds and wall cells never show up.
func freeNeighbors(units *unit.Set, p world.Position) []world.Position {
	var out []world.Position
	for _, c := range units.Grid().CellAt(p).OpenNeighbors() {
		if _, taken := units.Occupant(c.Position()); !taken {
			out = append(out, c.Position())
		}
	}
	return out
}

// distancesFrom runs a breadth-first search from origin over open, unoccupied cells.
func distancesFrom(units *unit.Set, origin world.Position) distanceMap {
	dist := distanceMap{origin: 0}
	frontier := queue.New[world.Position]()
	frontier.Enqueue(origin)

	for !frontier.Empty() {
		current := frontier.Dequeue()
		for _, n := range freeNeighbors(units, current) {
			if _, seen := dist[n]; seen {
				continue
			}
			dist[n] = dist[current] + 1
			frontier.Enqueue(n)
		}
	}
	return dist
}

// adjacentEnemy reports whether any living enemy stands next to u
func adjacentEnemy(units *unit.Set, u *unit.Unit) bool {
	for _, n := range u.Pos.Neighbors() {
		if id, ok := units.Occupant(n); ok && u.IsEnemyOf(units.Get(id)) {
			return true
		}
	}
	return false
}

// targetCells collects the open, unoccupied cells next to a living enemy of u
func targetCells(units *unit.Set, u *unit.Unit) mapset.Set[world.Position] {
	targets := mapset.New[world.Position]()
	for _, other := range units.All() {
		if !u.IsEnemyOf(other) {
			continue
		}
		for _, n := range freeNeighbors(units, other.Pos) {
			targets.Put(n)
		}
	}
	return targets
}

// chooseTarget picks the nearest reachable target cell, ties broken by reading order
func chooseTarget(dist distanceMap, targets mapset.Set[world.Position]) (world.Position, int, bool) {
	var best world.Position
	bestDist := -1
	targets.Each(func(p world.Position) {
		d, reachable := dist[p]
		if !reachable {
			return
		}
		if bestDist < 0 || d < bestDist || (d == bestDist && p.Less(best)) {
			best, bestDist = p, d
		}
	})
	return best, bestDist, bestDist >= 0
}

// NextStep decides where the unit moves this turn.
// It returns false when an enemy is already adjacent or no enemy can be reached.
func NextStep(units *unit.Set, id unit.ID) (world.Position, bool) {
	u := units.Get(id)
	if u == nil || !u.Alive || adjacentEnemy(units, u) {
		return world.Position{}, false
	}

	targets := targetCells(units, u)
	if targets.Size() == 0 {
		return world.Position{}, false
	}

	target, d, ok := chooseTarget(distancesFrom(units, u.Pos), targets)
	if !ok {
		return world.Position{}, false
	}

	// Walk back from the target: the first neighbour in reading order that is one step closer wins.
	back := distancesFrom(units, target)
	for _, n := range freeNeighbors(units, u.Pos) {
		if nd, ok := back[n]; ok && nd == d-1 {
			return n, true
		}
	}
	return world.Position{}, false
}
