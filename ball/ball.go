// Package ball implements pickup, catch, bounce, throw-in and drop:
// the loose-ball cascades of spec.md §4.7. Turnover semantics are a
// property of the *caller* (a failed pickup during a MOVE is a
// turnover, a failed catch on a kickoff is not) so this package only
// reports success/failure and the resulting state; it never sets
// TurnoverPending itself.
package ball

import (
	"github.com/huddlesim/gridiron/dice"
	"github.com/huddlesim/gridiron/geometry"
	"github.com/huddlesim/gridiron/reroll"
	"github.com/huddlesim/gridiron/scatter"
	"github.com/huddlesim/gridiron/skills"
	"github.com/huddlesim/gridiron/state"
	"github.com/huddlesim/gridiron/tacklezone"
)

// Result is the outcome of any ball-resolver operation.
type Result struct {
	State   state.GameState
	Events  []state.Event
	Success bool
	// UsedSkillReroll reports whether this call (or one of the
	// catch/bounce calls it cascaded into) consumed the calling
	// action's one skill reroll, so the caller can carry the flag
	// into whatever roll comes next in the same action.
	UsedSkillReroll bool
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

// Pickup resolves a standing player stepping onto a loose ball.
// usedSkillReroll carries the calling action's "has a skill reroll
// already been spent" flag in, and the returned Result reports it
// back out, across any cascade into Bounce/Catch this call triggers.
func Pickup(g state.GameState, playerID string, d dice.Source, decider reroll.TeamRerollDecider, usedSkillReroll bool) Result {
	p := g.Players[playerID]
	tz := tacklezone.CountAt(g, *p.Position, p.TeamSide)
	modifier := 0
	if p.Skills.Has(skills.SureHands) {
		modifier = 1
	}
	target := clamp(7-p.Stats.Agility-modifier+tz, 2, 6)

	roll := d.RollD6()
	events := []state.Event{}
	success := roll >= target

	if !success {
		team := g.TeamBySide(p.TeamSide)
		onTurn := g.ActiveTeam == p.TeamSide
		dec, newTeam := reroll.Arbitrate(d, p.Skills, skills.RollPickup, team, onTurn, usedSkillReroll, p.Flags.ProUsedThisTurn, decider, reroll.Context{PlayerID: playerID, Team: p.TeamSide, Kind: skills.RollPickup})
		g = g.WithTeam(p.TeamSide, newTeam)
		if dec.Granted {
			events = append(events, state.NewEvent(state.EventReroll, "reroll: "+dec.Source, map[string]interface{}{"source": dec.Source, "rollKind": string(skills.RollPickup)}))
			if dec.Source != reroll.SourceTeam {
				usedSkillReroll = true
			}
			if dec.ProConsumed {
				g = g.WithPlayer(playerID, g.Players[playerID].WithProUsed())
			}
			roll = d.RollD6()
			success = roll >= target
		}
	}

	events = append(events, state.NewEvent(state.EventPickup, "pickup attempt", map[string]interface{}{
		"playerId": playerID, "roll": roll, "target": target, "success": success,
	}))

	if success {
		g = g.WithBall(state.HeldBall(playerID))
		return Result{State: g, Events: events, Success: true, UsedSkillReroll: usedSkillReroll}
	}

	bounceResult := Bounce(g, *p.Position, d, decider, usedSkillReroll)
	events = append(events, bounceResult.Events...)
	return Result{State: bounceResult.State, Events: events, Success: false, UsedSkillReroll: bounceResult.UsedSkillReroll}
}

// Catch resolves a standing player receiving a thrown, handed-off, or
// deflected ball onto their square. usedSkillReroll threads the same
// per-action flag Pickup does.
func Catch(g state.GameState, playerID string, accurateModifier bool, d dice.Source, decider reroll.TeamRerollDecider, usedSkillReroll bool) Result {
	p := g.Players[playerID]
	tz := tacklezone.CountAt(g, *p.Position, p.TeamSide)
	modifier := 0
	if accurateModifier {
		modifier = 1
	}
	target := clamp(7-p.Stats.Agility+tz-modifier, 2, 6)

	roll := d.RollD6()
	events := []state.Event{}
	success := roll >= target

	if !success {
		team := g.TeamBySide(p.TeamSide)
		onTurn := g.ActiveTeam == p.TeamSide
		dec, newTeam := reroll.Arbitrate(d, p.Skills, skills.RollCatch, team, onTurn, usedSkillReroll, p.Flags.ProUsedThisTurn, decider, reroll.Context{PlayerID: playerID, Team: p.TeamSide, Kind: skills.RollCatch})
		g = g.WithTeam(p.TeamSide, newTeam)
		if dec.Granted {
			events = append(events, state.NewEvent(state.EventReroll, "reroll: "+dec.Source, map[string]interface{}{"source": dec.Source, "rollKind": string(skills.RollCatch)}))
			if dec.Source != reroll.SourceTeam {
				usedSkillReroll = true
			}
			if dec.ProConsumed {
				g = g.WithPlayer(playerID, g.Players[playerID].WithProUsed())
			}
			roll = d.RollD6()
			success = roll >= target
		}
	}

	events = append(events, state.NewEvent(state.EventCatch, "catch attempt", map[string]interface{}{
		"playerId": playerID, "roll": roll, "target": target, "success": success,
	}))

	if success {
		g = g.WithBall(state.HeldBall(playerID))
		return Result{State: g, Events: events, Success: true, UsedSkillReroll: usedSkillReroll}
	}

	bounceResult := Bounce(g, *p.Position, d, decider, usedSkillReroll)
	events = append(events, bounceResult.Events...)
	return Result{State: bounceResult.State, Events: events, Success: false, UsedSkillReroll: bounceResult.UsedSkillReroll}
}

// Bounce rolls a d8 direction and translates the ball from 'from'. If
// it lands on a standing player, a catch is triggered. If it leaves
// the pitch, a throw-in is resolved. Otherwise it simply rests there.
func Bounce(g state.GameState, from geometry.Position, d dice.Source, decider reroll.TeamRerollDecider, usedSkillReroll bool) Result {
	direction := d.RollD8()
	to := scatter.Deviate(from, direction)

	events := []state.Event{state.NewEvent(state.EventBounce, "ball bounces", map[string]interface{}{
		"from": from, "direction": direction, "to": to,
	})}

	if !to.InPitch() {
		distance := d.RollD3()
		landing := scatter.ThrowIn(to, distance)
		events[0].Data["throwInDistance"] = distance
		events[0].Data["to"] = landing
		to = landing
	}

	if occupant, ok := g.PlayerAt(to); ok && occupant.Condition == state.Standing {
		g = g.WithBall(state.OnGroundBall(to))
		catchResult := Catch(g, occupant.ID, false, d, decider, usedSkillReroll)
		return Result{State: catchResult.State, Events: append(events, catchResult.Events...), Success: catchResult.Success, UsedSkillReroll: catchResult.UsedSkillReroll}
	}

	g = g.WithBall(state.OnGroundBall(to))
	return Result{State: g, Events: events, Success: false, UsedSkillReroll: usedSkillReroll}
}

// Drop is invoked when a carrier falls during a move (a failed dodge
// or GFI): the ball becomes loose at the carrier's square, then
// bounces once.
func Drop(g state.GameState, carrierID string, d dice.Source, decider reroll.TeamRerollDecider, usedSkillReroll bool) Result {
	p := g.Players[carrierID]
	pos := *p.Position
	g = g.WithBall(state.OnGroundBall(pos))
	return Bounce(g, pos, d, decider, usedSkillReroll)
}

