// Package strength computes assist counts and block-die selection for
// the block resolver, per spec.md §4.6 and the "Strength calculator"
// row of spec.md §2.
package strength

import (
	"github.com/huddlesim/gridiron/geometry"
	"github.com/huddlesim/gridiron/state"
)

// Assists counts standing teammates of attacker that are adjacent to
// defender and not themselves negated by another enemy's tacklezone,
// per the classic assist rule: an assisting player must be free of any
// opposing tacklezone other than the defender's own.
func Assists(g state.GameState, attacker, defender state.Player) int {
	teammates := g.OnPitchPlayers(attacker.TeamSide)
	opponents := g.OnPitchPlayers(defender.TeamSide)

	n := 0
	for _, mate := range teammates {
		if mate.ID == attacker.ID {
			continue
		}
		if mate.Condition != state.Standing {
			continue
		}
		if !geometry.IsAdjacent(*mate.Position, *defender.Position) {
			continue
		}
		if negatedByOtherTacklezone(mate, defender, opponents) {
			continue
		}
		n++
	}
	return n
}

func negatedByOtherTacklezone(assister, target state.Player, opponents []state.Player) bool {
	for _, opp := range opponents {
		if opp.ID == target.ID {
			continue
		}
		if !opp.ProjectsTacklezone() {
			continue
		}
		if geometry.IsAdjacent(*opp.Position, *assister.Position) {
			return true
		}
	}
	return false
}

// DiceCount returns how many block dice are rolled and whether the
// attacker (rather than the defender) chooses the result, given each
// side's effective strength (stats.Strength + assists).
func DiceCount(attackerStrength, defenderStrength int) (dice int, attackerChooses bool) {
	diff := attackerStrength - defenderStrength
	dice = abs(diff) + 1
	if dice < 1 {
		dice = 1
	}
	if dice > 3 {
		dice = 3
	}
	attackerChooses = diff >= 0
	return dice, attackerChooses
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
