// Package rules exposes pure, side-effect-free legality queries over
// a GameState: candidate moves, block/pass/handoff/foul targets, and
// the set of actions available right now. Nothing here mutates state;
// callers (the UI and AI coaches) use it to enumerate choices before
// ever calling the action resolver, per spec.md §4.12.
package rules

import (
	"sort"

	"github.com/huddlesim/gridiron/geometry"
	"github.com/huddlesim/gridiron/pathfinder"
	"github.com/huddlesim/gridiron/state"
)

// MoveOption is one legal destination for a MOVE action.
type MoveOption struct {
	X, Y   int
	Dodges int
	GFIs   int
}

// ValidMovesFor enumerates every square playerId could move to right
// now, each annotated with the dodge/GFI cost the pathfinder computed.
func ValidMovesFor(g state.GameState, playerID string) []MoveOption {
	p, ok := g.Players[playerID]
	if !ok || !p.OnPitch() || p.TeamSide != g.ActiveTeam || p.Flags.HasMoved {
		return nil
	}
	if p.Condition != state.Standing && p.Condition != state.Prone {
		return nil
	}

	movement := p.Flags.MovementRemaining
	if p.Condition == state.Prone {
		if movement < 3 {
			return nil
		}
		movement -= 3
	}

	out := []MoveOption{}
	for x := 0; x < geometry.Width; x++ {
		for y := 0; y < geometry.Height; y++ {
			target := geometry.Position{X: x, Y: y}
			if target.Equal(*p.Position) {
				continue
			}
			if _, occupied := g.PlayerAt(target); occupied {
				continue
			}
			path, ok := pathfinder.Find(g, *p.Position, target, movement, p.TeamSide)
			if !ok {
				continue
			}
			out = append(out, MoveOption{X: x, Y: y, Dodges: path.TotalDodges(), GFIs: path.TotalGFIs()})
		}
	}
	sortMoveOptions(out)
	return out
}

// BlockTargetsFor lists adjacent standing enemies playerId may block.
func BlockTargetsFor(g state.GameState, playerID string) []string {
	p, ok := g.Players[playerID]
	if !ok || !p.OnPitch() || p.Condition != state.Standing || p.TeamSide != g.ActiveTeam {
		return nil
	}
	enemySide := state.OtherSide(p.TeamSide)
	out := []string{}
	for _, enemy := range g.OnPitchPlayers(enemySide) {
		if enemy.Condition == state.Standing && geometry.IsAdjacent(*p.Position, *enemy.Position) {
			out = append(out, enemy.ID)
		}
	}
	sort.Strings(out)
	return out
}

// PassTargetsFor lists squares within long-bomb range (13) that a
// standing, ball-carrying playerId could target with a PASS action.
func PassTargetsFor(g state.GameState, playerID string) []geometry.Position {
	p, ok := g.Players[playerID]
	if !ok || !p.OnPitch() || p.Condition != state.Standing || !g.Ball.IsHeldBy(playerID) || p.TeamSide != g.ActiveTeam {
		return nil
	}
	out := []geometry.Position{}
	for x := 0; x < geometry.Width; x++ {
		for y := 0; y < geometry.Height; y++ {
			target := geometry.Position{X: x, Y: y}
			if geometry.Distance(*p.Position, target) <= 13 && !target.Equal(*p.Position) {
				out = append(out, target)
			}
		}
	}
	return out
}

// HandoffTargetsFor lists adjacent standing teammates eligible to
// receive a hand-off from playerId.
func HandoffTargetsFor(g state.GameState, playerID string) []string {
	p, ok := g.Players[playerID]
	if !ok || !p.OnPitch() || p.Condition != state.Standing || !g.Ball.IsHeldBy(playerID) || p.TeamSide != g.ActiveTeam {
		return nil
	}
	out := []string{}
	for _, mate := range g.OnPitchPlayers(p.TeamSide) {
		if mate.ID != playerID && mate.Condition == state.Standing && geometry.IsAdjacent(*p.Position, *mate.Position) {
			out = append(out, mate.ID)
		}
	}
	sort.Strings(out)
	return out
}

// FoulTargetsFor lists adjacent prone/stunned enemies playerId may foul.
func FoulTargetsFor(g state.GameState, playerID string) []string {
	p, ok := g.Players[playerID]
	if !ok || !p.OnPitch() || p.Condition != state.Standing || p.TeamSide != g.ActiveTeam {
		return nil
	}
	enemySide := state.OtherSide(p.TeamSide)
	out := []string{}
	for _, enemy := range g.OnPitchPlayers(enemySide) {
		if (enemy.Condition == state.Prone || enemy.Condition == state.Stunned) && geometry.IsAdjacent(*p.Position, *enemy.Position) {
			out = append(out, enemy.ID)
		}
	}
	sort.Strings(out)
	return out
}

// Action tags one of the top-level action kinds the resolver accepts.
type Action string

const (
	ActionSetupPlayer    Action = "SETUP_PLAYER"
	ActionEndSetup       Action = "END_SETUP"
	ActionMove           Action = "MOVE"
	ActionBlock          Action = "BLOCK"
	ActionBlitz          Action = "BLITZ"
	ActionMultipleBlock  Action = "MULTIPLE_BLOCK"
	ActionPass           Action = "PASS"
	ActionHandOff        Action = "HAND_OFF"
	ActionFoul           Action = "FOUL"
	ActionEndTurn        Action = "END_TURN"
)

// AvailableActions lists which top-level action kinds have at least
// one legal target right now, given the match's current phase.
func AvailableActions(g state.GameState) []Action {
	if g.Phase == state.PhaseSetup {
		return []Action{ActionSetupPlayer, ActionEndSetup}
	}
	if g.Phase != state.PhasePlay {
		return nil
	}

	out := []Action{ActionEndTurn}
	for _, p := range g.OnPitchPlayers(g.ActiveTeam) {
		if len(ValidMovesFor(g, p.ID)) > 0 {
			out = appendUnique(out, ActionMove)
		}
		if len(BlockTargetsFor(g, p.ID)) > 0 {
			out = appendUnique(out, ActionBlock)
			if !g.TeamBySide(g.ActiveTeam).BlitzUsedThisTurn {
				out = appendUnique(out, ActionBlitz)
			}
		}
		if len(PassTargetsFor(g, p.ID)) > 0 {
			out = appendUnique(out, ActionPass)
		}
		if len(HandoffTargetsFor(g, p.ID)) > 0 {
			out = appendUnique(out, ActionHandOff)
		}
		if len(FoulTargetsFor(g, p.ID)) > 0 && !g.TeamBySide(g.ActiveTeam).FoulUsedThisTurn {
			out = appendUnique(out, ActionFoul)
		}
	}
	return out
}

func appendUnique(actions []Action, a Action) []Action {
	for _, existing := range actions {
		if existing == a {
			return actions
		}
	}
	return append(actions, a)
}

func sortMoveOptions(opts []MoveOption) {
	sort.Slice(opts, func(i, j int) bool {
		if opts[i].X != opts[j].X {
			return opts[i].X < opts[j].X
		}
		return opts[i].Y < opts[j].Y
	})
}
