// Package pathfinder computes the move-resolver's path from a
// player's origin to a target square, annotating each step with
// whether it requires a dodge roll (leaving a square threatened by
// enemy tacklezones) or a Go-For-It roll (stepping beyond the
// player's movement allowance), per spec.md §4.3.
//
// Per spec.md §9's "Pathfinder safety vs minimality" design note, the
// only contract that matters is that the returned path is the one the
// move resolver actually attempts and its annotations are accurate;
// this implementation explores all step-for-step routes up to the
// movement+2 cap and picks the one minimizing (dodges, then GFIs),
// breaking remaining ties by path length and then lexicographic
// (x,y) of the route, rather than the teacher's no-lookahead style
// (the teacher has no pathfinder of its own — card games have no
// grid — so this is grounded directly in spec.md's own algorithm
// description).
package pathfinder

import (
	"sort"

	"github.com/huddlesim/gridiron/geometry"
	"github.com/huddlesim/gridiron/state"
	"github.com/huddlesim/gridiron/tacklezone"
)

// Step is one square of a path plus the rolls it requires.
type Step struct {
	Position     geometry.Position
	RequiresDodge bool
	RequiresGFI   bool
}

// Path is the ordered list of steps from just after the origin to the
// destination (the origin square itself is not included).
type Path []Step

// TotalDodges counts how many steps in the path require a dodge.
func (p Path) TotalDodges() int {
	n := 0
	for _, s := range p {
		if s.RequiresDodge {
			n++
		}
	}
	return n
}

// TotalGFIs counts how many steps in the path require a GFI.
func (p Path) TotalGFIs() int {
	n := 0
	for _, s := range p {
		if s.RequiresGFI {
			n++
		}
	}
	return n
}

type cost struct {
	dodges int
	gfis   int
}

func (c cost) less(o cost) bool {
	if c.dodges != o.dodges {
		return c.dodges < o.dodges
	}
	return c.gfis < o.gfis
}

type node struct {
	pos  geometry.Position
	cost cost
	prev geometry.Position
	has  bool // whether prev is meaningful (false only for the origin's own layer-0 node)
}

// Find searches for the best path from origin to target for a mover
// on forSide with movementRemaining squares of allowance, allowing up
// to two additional Go-For-It squares. It returns ok=false if target
// is unreachable within the budget (origin==target also returns
// ok=false: there is nothing to path).
func Find(g state.GameState, origin, target geometry.Position, movementRemaining int, forSide string) (Path, bool) {
	if origin.Equal(target) {
		return nil, false
	}
	maxSteps := movementRemaining + 2
	if maxSteps <= 0 {
		return nil, false
	}

	occupied := occupiedSquares(g)

	// layers[k] holds, for every square reachable in exactly k steps,
	// the best (cost, predecessor-in-layer-k-1) found so far.
	layers := make([]map[geometry.Position]node, maxSteps+1)
	layers[0] = map[geometry.Position]node{origin: {pos: origin, cost: cost{}}}

	for k := 0; k < maxSteps; k++ {
		if layers[k] == nil || len(layers[k]) == 0 {
			continue
		}
		if layers[k+1] == nil {
			layers[k+1] = map[geometry.Position]node{}
		}
		srcSquares := sortedKeys(layers[k])
		for _, src := range srcSquares {
			srcNode := layers[k][src]
			dodgeFromSrc := tacklezone.IsThreatened(g, src, forSide)
			requiresGFI := (k + 1) > movementRemaining

			neighbors := geometry.Adjacent(src)
			sort.Slice(neighbors, func(i, j int) bool {
				if neighbors[i].X != neighbors[j].X {
					return neighbors[i].X < neighbors[j].X
				}
				return neighbors[i].Y < neighbors[j].Y
			})
			for _, dst := range neighbors {
				if dst.Equal(origin) {
					continue
				}
				if occupied[dst] {
					// A square occupied by any on-pitch player, friend
					// or foe, cannot be stepped onto; a loose ball does
					// not occupy a square.
					continue
				}
				candidate := cost{
					dodges: srcNode.cost.dodges + boolToInt(dodgeFromSrc),
					gfis:   srcNode.cost.gfis + boolToInt(requiresGFI),
				}
				existing, ok := layers[k+1][dst]
				if !ok || candidate.less(existing.cost) || (candidate == existing.cost && lexLess(src, existing.prev)) {
					layers[k+1][dst] = node{pos: dst, cost: candidate, prev: src, has: true}
				}
			}
		}
	}

	var bestCost cost
	bestLayer := -1
	found := false
	for k := 1; k <= maxSteps; k++ {
		n, ok := layers[k][target]
		if !ok {
			continue
		}
		if !found || n.cost.less(bestCost) || (n.cost == bestCost && k < bestLayer) {
			bestCost = n.cost
			bestLayer = k
			found = true
		}
	}
	if !found {
		return nil, false
	}

	// Reconstruct the path backward from target at bestLayer.
	path := make(Path, bestLayer)
	cur := target
	for k := bestLayer; k >= 1; k-- {
		n := layers[k][cur]
		requiresGFI := k > movementRemaining
		requiresDodge := tacklezone.IsThreatened(g, n.prev, forSide)
		path[k-1] = Step{Position: cur, RequiresDodge: requiresDodge, RequiresGFI: requiresGFI}
		cur = n.prev
	}
	return path, true
}

func occupiedSquares(g state.GameState) map[geometry.Position]bool {
	occ := map[geometry.Position]bool{}
	for _, p := range g.Players {
		if p.OnPitch() {
			occ[*p.Position] = true
		}
	}
	return occ
}

func sortedKeys(m map[geometry.Position]node) []geometry.Position {
	keys := make([]geometry.Position, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return lexLess(keys[i], keys[j]) })
	return keys
}

func lexLess(a, b geometry.Position) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Y < b.Y
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
