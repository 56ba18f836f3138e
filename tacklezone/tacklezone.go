// Package tacklezone computes enemy tacklezone pressure at a square,
// per spec.md §4.2: a standing, active player projects a tacklezone
// onto its 8 adjacent squares unless it has lost its tacklezones for
// the turn or carries the Titchy skill.
package tacklezone

import (
	"github.com/huddlesim/gridiron/geometry"
	"github.com/huddlesim/gridiron/state"
)

// CountAt returns the number of forSide's *enemy* tacklezones bearing
// on square, i.e. the tacklezones projected by standing opponents of
// forSide.
func CountAt(g state.GameState, square geometry.Position, forSide string) int {
	enemySide := state.OtherSide(forSide)
	count := 0
	for _, p := range g.OnPitchPlayers(enemySide) {
		if !p.ProjectsTacklezone() {
			continue
		}
		if geometry.IsAdjacent(*p.Position, square) {
			count++
		}
	}
	return count
}

// IsThreatened reports whether any enemy tacklezone bears on square.
func IsThreatened(g state.GameState, square geometry.Position, forSide string) bool {
	return CountAt(g, square, forSide) > 0
}
