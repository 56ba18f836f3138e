// Package coach implements the external Coach interface spec.md §6
// describes only abstractly ("the AI is specified only as a `Coach`
// interface the engine drives during headless simulation"), with
// three concrete, headless-friendly strategies grounded in the
// teacher's own AI tiers (simulation.RandomAI, GreedyAI, MCTSnAI):
// Random, Greedy, and an epsilon-greedy Weighted coach. A fourth,
// MCTS (coach/mcts.go), adapts the mcts package's tree search.
package coach

import (
	"sort"

	"github.com/huddlesim/gridiron/action"
	"github.com/huddlesim/gridiron/geometry"
	"github.com/huddlesim/gridiron/reroll"
	"github.com/huddlesim/gridiron/rules"
	"github.com/huddlesim/gridiron/state"
)

// Coach is the engine's external AI collaborator. Implementations
// choose actions, place reserves during setup, and answer the small
// set of yes/no decisions the sub-resolvers consult (team reroll,
// apothecary) — the interface spec.md §6 calls for, expanded with
// those decision hooks since the engine must expose them somewhere.
type Coach interface {
	DecideAction(g state.GameState, side string, available []rules.Action) (action.Kind, action.Params)
	SetupFormation(g state.GameState, side string) state.GameState
	reroll.TeamRerollDecider
	UseApothecary(playerID, teamSide string) bool
}

// candidateMove pairs a MOVE target with the player attempting it, so
// every coach can reason over the union of all movable players' legal
// destinations.
type candidateMove struct {
	playerID string
	opt      rules.MoveOption
}

// allMoves collects every legal MOVE destination for side's on-pitch,
// not-yet-moved players, in a stable (playerID, then x, y) order.
func allMoves(g state.GameState, side string) []candidateMove {
	out := []candidateMove{}
	players := g.OnPitchPlayers(side)
	ids := make([]string, len(players))
	for i, p := range players {
		ids[i] = p.ID
	}
	sort.Strings(ids)
	for _, id := range ids {
		for _, opt := range rules.ValidMovesFor(g, id) {
			out = append(out, candidateMove{playerID: id, opt: opt})
		}
	}
	return out
}

// defaultFormation places up to 11 reserves on side's own half: the
// first three on the line of scrimmage (rows spread through the
// middle), the rest filling the remaining non-wide rows first and
// only then spilling into the wide zones, at most 2 players in the two
// wide bands together, per spec.md §6's
// formation constraints (>=3 on LoS, <=2 per wide zone).
func defaultFormation(g state.GameState, side string) state.GameState {
	losX := 12
	backfieldX := 10
	if side == "away" {
		losX = 13
		backfieldX = 15
	}

	reserves := []string{}
	for id, p := range g.Players {
		if p.TeamSide == side && !p.OnPitch() {
			reserves = append(reserves, id)
		}
	}
	sort.Strings(reserves)
	if len(reserves) > 11 {
		reserves = reserves[:11]
	}

	rows := make([]int, 0, geometry.Height)
	for y := 4; y < geometry.Height-4; y++ {
		rows = append(rows, y)
	}
	for y := 0; y < 4; y++ {
		rows = append(rows, y, geometry.Height-1-y)
	}

	wideUsed := 0
	rowIdx := 0
	for i, id := range reserves {
		x := losX
		if i >= 3 {
			x = backfieldX
		}
		var y int
		for {
			if rowIdx >= len(rows) {
				rowIdx = 0
			}
			y = rows[rowIdx]
			rowIdx++
			pos := geometry.Position{X: x, Y: y}
			if geometry.IsWideZone(pos) {
				if wideUsed >= 2 {
					continue
				}
				wideUsed++
			}
			break
		}
		pos := geometry.Position{X: x, Y: y}
		g = g.WithPlayer(id, g.Players[id].WithCondition(state.Standing).WithPosition(&pos))
	}
	return g
}
