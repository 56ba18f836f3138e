package coach

import (
	"math/rand"

	"github.com/huddlesim/gridiron/action"
	"github.com/huddlesim/gridiron/reroll"
	"github.com/huddlesim/gridiron/rules"
	"github.com/huddlesim/gridiron/state"
)

// Random picks uniformly among the legal actions currently available,
// grounded in the teacher's simulation.RandomAI tier: the cheapest
// baseline opponent for smoke-testing the engine end to end.
type Random struct {
	rng *rand.Rand
}

// NewRandom builds a Random coach seeded for reproducible smoke runs.
func NewRandom(seed int64) *Random {
	return &Random{rng: rand.New(rand.NewSource(seed))}
}

func (r *Random) DecideAction(g state.GameState, side string, available []rules.Action) (action.Kind, action.Params) {
	moves := allMoves(g, side)
	choices := make([]func() (action.Kind, action.Params), 0, len(available)+len(moves))

	for _, m := range moves {
		m := m
		choices = append(choices, func() (action.Kind, action.Params) {
			return rules.ActionMove, action.Params{PlayerID: m.playerID, X: m.opt.X, Y: m.opt.Y}
		})
	}
	for _, act := range available {
		if act == rules.ActionMove {
			continue
		}
		act := act
		choices = append(choices, func() (action.Kind, action.Params) {
			return decideFallback(g, side, act)
		})
	}

	if len(choices) == 0 {
		return rules.ActionEndTurn, action.Params{}
	}
	return choices[r.rng.Intn(len(choices))]()
}

func (r *Random) SetupFormation(g state.GameState, side string) state.GameState {
	return defaultFormation(g, side)
}

func (r *Random) AcceptTeamReroll(reroll.Context) bool { return true }

func (r *Random) UseApothecary(string, string) bool { return true }

// decideFallback builds a minimal legal Params for action kinds that
// don't need the candidateMove machinery (BLOCK, PASS, HAND_OFF,
// FOUL, END_TURN): the first eligible player/target pairing found, or
// END_TURN if none materializes (legality is re-checked by the
// resolver regardless).
func decideFallback(g state.GameState, side string, act rules.Action) (action.Kind, action.Params) {
	switch act {
	case rules.ActionBlock, rules.ActionBlitz:
		for _, p := range g.OnPitchPlayers(side) {
			if targets := rules.BlockTargetsFor(g, p.ID); len(targets) > 0 {
				return act, action.Params{PlayerID: p.ID, TargetID: targets[0]}
			}
		}
	case rules.ActionPass:
		for _, p := range g.OnPitchPlayers(side) {
			if targets := rules.PassTargetsFor(g, p.ID); len(targets) > 0 {
				return act, action.Params{PlayerID: p.ID, TargetX: targets[0].X, TargetY: targets[0].Y}
			}
		}
	case rules.ActionHandOff:
		for _, p := range g.OnPitchPlayers(side) {
			if targets := rules.HandoffTargetsFor(g, p.ID); len(targets) > 0 {
				return act, action.Params{PlayerID: p.ID, TargetID: targets[0]}
			}
		}
	case rules.ActionFoul:
		for _, p := range g.OnPitchPlayers(side) {
			if targets := rules.FoulTargetsFor(g, p.ID); len(targets) > 0 {
				return act, action.Params{PlayerID: p.ID, TargetID: targets[0]}
			}
		}
	}
	return rules.ActionEndTurn, action.Params{}
}
