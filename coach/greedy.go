package coach

import (
	"github.com/huddlesim/gridiron/action"
	"github.com/huddlesim/gridiron/geometry"
	"github.com/huddlesim/gridiron/reroll"
	"github.com/huddlesim/gridiron/rules"
	"github.com/huddlesim/gridiron/state"
)

// Greedy always prefers the highest-value legal action by a static
// valuation — advancing the ball carrier toward the end zone beats
// any other move, a block against a weaker target beats a neutral
// move, scoring beats everything — grounded in the teacher's
// GreedyAI tier (a one-ply static evaluator, no search).
type Greedy struct{}

func (Greedy) DecideAction(g state.GameState, side string, available []rules.Action) (action.Kind, action.Params) {
	if carrierMove, ok := bestCarrierAdvance(g, side); ok {
		return rules.ActionMove, carrierMove
	}
	for _, act := range available {
		switch act {
		case rules.ActionBlitz, rules.ActionBlock:
			if p, target, ok := weakestAdjacentTarget(g, side); ok {
				return act, action.Params{PlayerID: p, TargetID: target}
			}
		}
	}
	if best, ok := bestNonCarrierMove(g, side); ok {
		return rules.ActionMove, best
	}
	return rules.ActionEndTurn, action.Params{}
}

func (Greedy) SetupFormation(g state.GameState, side string) state.GameState {
	return defaultFormation(g, side)
}

func (Greedy) AcceptTeamReroll(reroll.Context) bool { return true }

func (Greedy) UseApothecary(string, string) bool { return true }

// bestCarrierAdvance returns the carrier's move that brings the ball
// closest to the opposing end zone, if the carrier can legally move.
func bestCarrierAdvance(g state.GameState, side string) (action.Params, bool) {
	if g.Ball.Kind != state.BallHeld {
		return action.Params{}, false
	}
	carrier, ok := g.Players[g.Ball.CarrierID]
	if !ok || carrier.TeamSide != side {
		return action.Params{}, false
	}
	moves := rules.ValidMovesFor(g, carrier.ID)
	if len(moves) == 0 {
		return action.Params{}, false
	}
	best := moves[0]
	bestDist := distanceToOpposingEndZone(geometry.Position{X: best.X, Y: best.Y}, side)
	for _, m := range moves[1:] {
		d := distanceToOpposingEndZone(geometry.Position{X: m.X, Y: m.Y}, side)
		if d < bestDist {
			best = m
			bestDist = d
		}
	}
	return action.Params{PlayerID: carrier.ID, X: best.X, Y: best.Y}, true
}

func distanceToOpposingEndZone(pos geometry.Position, side string) int {
	if side == "home" {
		return geometry.Width - 1 - pos.X
	}
	return pos.X
}

// weakestAdjacentTarget finds the block target with the lowest armour
// among any of side's standing players' legal block targets.
func weakestAdjacentTarget(g state.GameState, side string) (string, string, bool) {
	bestPlayer, bestTarget := "", ""
	bestArmour := 999
	found := false
	for _, p := range g.OnPitchPlayers(side) {
		for _, targetID := range rules.BlockTargetsFor(g, p.ID) {
			target := g.Players[targetID]
			if !found || target.Stats.Armour < bestArmour {
				bestPlayer, bestTarget, bestArmour, found = p.ID, targetID, target.Stats.Armour, true
			}
		}
	}
	return bestPlayer, bestTarget, found
}

// bestNonCarrierMove advances any movable player toward the opposing
// end zone when there's no carrier action available.
func bestNonCarrierMove(g state.GameState, side string) (action.Params, bool) {
	found := false
	var best action.Params
	bestDist := 1 << 30
	for _, p := range g.OnPitchPlayers(side) {
		for _, m := range rules.ValidMovesFor(g, p.ID) {
			d := distanceToOpposingEndZone(geometry.Position{X: m.X, Y: m.Y}, side)
			if !found || d < bestDist {
				best = action.Params{PlayerID: p.ID, X: m.X, Y: m.Y}
				bestDist = d
				found = true
			}
		}
	}
	return best, found
}
