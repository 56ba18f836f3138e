// Package scatter implements the 8-direction ball deviation used by
// bounces, inaccurate passes, and kickoff placement, plus the
// throw-in resolution when a scattered or bounced ball leaves the
// pitch (spec.md §4.7, §4.9).
package scatter

import "github.com/huddlesim/gridiron/geometry"

// eightDirections maps a d8 result (1..8) to a unit offset, walking
// the Moore neighborhood clockwise from north the way the physical
// scatter template does.
var eightDirections = [9]geometry.Position{
	{}, // unused, d8 is 1-indexed
	{X: 0, Y: -1},  // 1: N
	{X: 1, Y: -1},  // 2: NE
	{X: 1, Y: 0},   // 3: E
	{X: 1, Y: 1},   // 4: SE
	{X: 0, Y: 1},   // 5: S
	{X: -1, Y: 1},  // 6: SW
	{X: -1, Y: 0},  // 7: W
	{X: -1, Y: -1}, // 8: NW
}

// Direction returns the unit offset for a d8 roll in [1,8].
func Direction(d8 int) geometry.Position {
	if d8 < 1 || d8 > 8 {
		return geometry.Position{}
	}
	return eightDirections[d8]
}

// Deviate returns from translated one square in the d8 direction.
func Deviate(from geometry.Position, d8 int) geometry.Position {
	dir := Direction(d8)
	return geometry.Position{X: from.X + dir.X, Y: from.Y + dir.Y}
}

// ThrowInDirection returns the unit vector pointing straight back in
// from the edge the ball crossed at 'out'; it does not choose among
// angled throw-in lanes. When out is beyond a corner, both edges
// contribute and the vector points diagonally inward.
func ThrowInDirection(out geometry.Position) geometry.Position {
	dir := geometry.Position{}
	switch {
	case out.X < 0:
		dir.X = 1
	case out.X >= geometry.Width:
		dir.X = -1
	}
	switch {
	case out.Y < 0:
		dir.Y = 1
	case out.Y >= geometry.Height:
		dir.Y = -1
	}
	if dir.X == 0 && dir.Y == 0 {
		// Ball technically still in bounds; nothing to throw in.
		return dir
	}
	return dir
}

// ThrowIn resolves a ball that left the pitch at 'out' with a d3
// distance roll: clamp to the nearest in-bounds square on the edge it
// crossed, then travel d3 squares along the inward vector.
func ThrowIn(out geometry.Position, d3Distance int) geometry.Position {
	clamped := geometry.Position{X: clamp(out.X, 0, geometry.Width-1), Y: clamp(out.Y, 0, geometry.Height-1)}
	dir := ThrowInDirection(out)
	p := geometry.Position{
		X: clamped.X + dir.X*d3Distance,
		Y: clamped.Y + dir.Y*d3Distance,
	}
	p.X = clamp(p.X, 0, geometry.Width-1)
	p.Y = clamp(p.Y, 0, geometry.Height-1)
	return p
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
