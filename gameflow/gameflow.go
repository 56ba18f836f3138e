// Package gameflow implements the turn/half/touchdown transitions
// that sit above individual actions: EndTurn, Turnover, Touchdown and
// HalfTime, per spec.md §4.11.
package gameflow

import (
	"sort"

	"github.com/huddlesim/gridiron/dice"
	"github.com/huddlesim/gridiron/geometry"
	"github.com/huddlesim/gridiron/state"
)

// Result carries the new state and events any game-flow transition produces.
type Result struct {
	State  state.GameState
	Events []state.Event
}

// EndTurn increments the ending team's turn number (never past 8),
// resets the ending team's per-turn flags, recovers the incoming team's
// stunned players to prone, clears every player's movement/action
// flags, and hands the active side to the other team. A turn that ends
// with both teams' counters at 8 ends the half: half_time in half 1,
// game_over in half 2.
func EndTurn(g state.GameState) Result {
	events := []state.Event{}
	endingSide := g.ActiveTeam
	incomingSide := state.OtherSide(endingSide)

	endingTeam := g.TeamBySide(endingSide).ResetTurnFlags()
	halfOver := endingTeam.TurnNumber >= 8 && g.TeamBySide(incomingSide).TurnNumber >= 8
	if endingTeam.TurnNumber < 8 {
		endingTeam = endingTeam.AdvanceTurnNumber()
	}
	g = g.WithTeam(endingSide, endingTeam)

	updates := map[string]state.Player{}
	for id, p := range g.Players {
		if p.TeamSide != incomingSide && p.TeamSide != endingSide {
			continue
		}
		np := p
		if p.TeamSide == incomingSide && p.Condition == state.Stunned {
			np = np.WithCondition(state.Prone)
		}
		np = np.ResetTurnFlags()
		updates[id] = np
	}
	g = g.WithPlayers(updates)

	g = g.WithActiveTeam(incomingSide)
	events = append(events, state.NewEvent(state.EventEndTurn, "turn ends", map[string]interface{}{
		"endingSide": endingSide, "nextActiveSide": incomingSide, "turnNumber": endingTeam.TurnNumber,
	}))

	if halfOver {
		if g.Half == 1 {
			g = g.WithPhase(state.PhaseHalfTime)
		} else {
			g = g.WithPhase(state.PhaseGameOver)
		}
	}

	return Result{State: g, Events: events}
}

// Turnover marks turnoverPending and immediately ends the turn, per
// spec.md's list of turnover-triggering outcomes (failed dodge/GFI/
// pickup/pass/catch while carrier, certain block results, failed
// hand-off, illegal procedure).
func Turnover(g state.GameState) Result {
	g = g.WithTurnoverPending(true)
	endResult := EndTurn(g)
	endResult.State = endResult.State.WithTurnoverPending(false)
	return Result{State: endResult.State, Events: append([]state.Event{
		state.NewEvent(state.EventTurnover, "turnover", map[string]interface{}{"side": g.ActiveTeam}),
	}, endResult.Events...)}
}

// Touchdown scores the carrier's team, clears the ball, resets every
// on-pitch player to off_pitch, and transitions to setup with the
// scoring team kicking next.
func Touchdown(g state.GameState, carrierID string) Result {
	p := g.Players[carrierID]
	team := g.TeamBySide(p.TeamSide)
	team.Score++
	g = g.WithTeam(p.TeamSide, team)
	g = g.WithBall(state.OffPitchBall())

	updates := map[string]state.Player{}
	for id, pl := range g.Players {
		if pl.OnPitch() {
			updates[id] = pl.WithCondition(state.OffPitch).WithPosition(nil)
		}
	}
	g = g.WithPlayers(updates)
	g = g.WithPhase(state.PhaseSetup)
	g = g.WithKickingTeam(p.TeamSide)

	events := []state.Event{state.NewEvent(state.EventTouchdown, "touchdown", map[string]interface{}{
		"side": p.TeamSide, "playerId": carrierID,
	})}
	return Result{State: g, Events: events}
}

// HalfTime rolls KO recovery (4+ returns to reserves as standing, off
// pitch) for every KO'd player, in player-id order, resets per-turn
// flags, restarts both teams' turn counters at 1, and moves the match
// into half 2's setup phase.
func HalfTime(g state.GameState, d dice.Source) Result {
	events := []state.Event{}
	updates := map[string]state.Player{}
	ids := make([]string, 0, len(g.Players))
	for id := range g.Players {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		p := g.Players[id]
		if p.Condition != state.KO {
			continue
		}
		roll := d.RollD6()
		recovered := roll >= 4
		events = append(events, state.NewEvent("ko_recovery", "KO recovery roll", map[string]interface{}{
			"playerId": id, "roll": roll, "recovered": recovered,
		}))
		if recovered {
			updates[id] = p.WithCondition(state.Standing).WithPosition(nil)
		}
	}
	g = g.WithPlayers(updates)

	homeTeam := g.HomeTeam.ResetTurnFlags()
	homeTeam.TurnNumber = 1
	awayTeam := g.AwayTeam.ResetTurnFlags()
	awayTeam.TurnNumber = 1
	g = g.WithTeam("home", homeTeam)
	g = g.WithTeam("away", awayTeam)
	g = g.WithHalf(2)
	g = g.WithPhase(state.PhaseSetup)

	return Result{State: g, Events: events}
}

// IsTouchdown reports whether the ball is held by a standing player
// in the opposing end zone, per spec.md §4.11.
func IsTouchdown(g state.GameState) (string, bool) {
	if g.Ball.Kind != state.BallHeld {
		return "", false
	}
	p, ok := g.Players[g.Ball.CarrierID]
	if !ok || p.Condition != state.Standing || p.Position == nil {
		return "", false
	}
	if geometry.IsOpposingEndZone(*p.Position, p.TeamSide) {
		return p.ID, true
	}
	return "", false
}
