// Package pass resolves the PASS action: range banding, accuracy
// roll, interception, and the scatter-then-land cascade for an
// inaccurate throw, per spec.md §4.8.
package pass

import (
	"github.com/huddlesim/gridiron/ball"
	"github.com/huddlesim/gridiron/dice"
	"github.com/huddlesim/gridiron/geometry"
	"github.com/huddlesim/gridiron/reroll"
	"github.com/huddlesim/gridiron/scatter"
	"github.com/huddlesim/gridiron/skills"
	"github.com/huddlesim/gridiron/state"
	"github.com/huddlesim/gridiron/tacklezone"
)

// Range is one of the four named pass bands, set by Chebyshev distance.
type Range string

const (
	RangeQuick     Range = "quick"
	RangeShort     Range = "short"
	RangeLong      Range = "long"
	RangeLongBomb  Range = "long_bomb"
	RangeOutOfBounds Range = "out_of_range"
)

// Band classifies a Chebyshev distance into a named pass range.
func Band(distance int) Range {
	switch {
	case distance <= 3:
		return RangeQuick
	case distance <= 6:
		return RangeShort
	case distance <= 10:
		return RangeLong
	case distance <= 13:
		return RangeLongBomb
	default:
		return RangeOutOfBounds
	}
}

// rangeModifier is the accuracy modifier for each band, subtracted
// from the target: quick passes are easier, long passes harder.
func rangeModifier(r Range) int {
	switch r {
	case RangeQuick:
		return 1
	case RangeShort:
		return 0
	case RangeLong:
		return -1
	case RangeLongBomb:
		return -2
	default:
		return -99
	}
}

// Result is the outcome of a PASS action.
type Result struct {
	State    state.GameState
	Events   []state.Event
	Success  bool
	Turnover bool
}

// Resolve throws the ball from thrower's square toward (targetX,
// targetY). The caller has already checked thrower carries the ball
// and is on the active team.
func Resolve(g state.GameState, throwerID string, targetX, targetY int, d dice.Source, decider reroll.TeamRerollDecider) Result {
	thrower := g.Players[throwerID]
	target := geometry.Position{X: targetX, Y: targetY}
	distance := geometry.Distance(*thrower.Position, target)
	band := Band(distance)
	events := []state.Event{}

	if interceptor, ok := findInterceptor(g, *thrower.Position, target, thrower.TeamSide); ok {
		interceptTarget := clamp(7-interceptor.Stats.Agility+2+tacklezone.CountAt(g, *interceptor.Position, interceptor.TeamSide), 2, 6)
		roll := d.RollD6()
		events = append(events, state.NewEvent(state.EventPass, "interception attempt", map[string]interface{}{
			"interceptorId": interceptor.ID, "roll": roll, "target": interceptTarget,
		}))
		if roll >= interceptTarget {
			g = g.WithBall(state.HeldBall(interceptor.ID))
			return Result{State: g, Events: events, Success: false, Turnover: true}
		}
	}

	weatherModifier := 0
	if g.Weather == state.WeatherBlizzard {
		weatherModifier = -1
	}
	tz := tacklezone.CountAt(g, *thrower.Position, thrower.TeamSide)
	accuracyTarget := clamp(7-thrower.Stats.Agility-rangeModifier(band)+tz+weatherModifier, 2, 6)

	roll := d.RollD6()
	fumble := roll == 1
	usedSkillReroll := false

	if !fumble && roll < accuracyTarget {
		dec, newTeam := reroll.Arbitrate(d, thrower.Skills, skills.RollPassAccuracy, g.TeamBySide(thrower.TeamSide), g.ActiveTeam == thrower.TeamSide, usedSkillReroll, thrower.Flags.ProUsedThisTurn, decider, reroll.Context{PlayerID: throwerID, Team: thrower.TeamSide, Kind: skills.RollPassAccuracy})
		g = g.WithTeam(thrower.TeamSide, newTeam)
		if dec.Granted {
			events = append(events, state.NewEvent(state.EventReroll, "reroll: "+dec.Source, map[string]interface{}{"source": dec.Source, "rollKind": string(skills.RollPassAccuracy)}))
			if dec.Source != reroll.SourceTeam {
				usedSkillReroll = true
			}
			if dec.ProConsumed {
				g = g.WithPlayer(throwerID, g.Players[throwerID].WithProUsed())
			}
			roll = d.RollD6()
			fumble = roll == 1
		}
	}

	events = append(events, state.NewEvent(state.EventPass, "pass accuracy", map[string]interface{}{
		"throwerId": throwerID, "roll": roll, "target": accuracyTarget, "range": string(band), "fumble": fumble,
	}))

	if fumble {
		bounceResult := ball.Bounce(g, *thrower.Position, d, decider, usedSkillReroll)
		events = append(events, bounceResult.Events...)
		return Result{State: bounceResult.State, Events: events, Success: false, Turnover: true}
	}

	landing := target
	accurate := roll >= accuracyTarget
	if !accurate {
		for i := 0; i < 3; i++ {
			d8 := d.RollD8()
			landing = scatter.Deviate(landing, d8)
		}
		events = append(events, state.NewEvent(state.EventPass, "inaccurate pass scatters", map[string]interface{}{
			"landedAt": landing,
		}))
	}

	if occupant, ok := g.PlayerAt(landing); ok && occupant.Condition == state.Standing {
		g = g.WithBall(state.OnGroundBall(landing))
		catchResult := ball.Catch(g, occupant.ID, accurate, d, decider, usedSkillReroll)
		events = append(events, catchResult.Events...)
		return Result{State: catchResult.State, Events: events, Success: catchResult.Success, Turnover: !catchResult.Success}
	}

	g = g.WithBall(state.OnGroundBall(landing))
	return Result{State: g, Events: events, Success: false, Turnover: false}
}

// findInterceptor returns the closest eligible enemy standing player
// on a square intersected by the thrower->target line, breaking ties
// by distance to thrower then lexicographic (x,y).
func findInterceptor(g state.GameState, from, to geometry.Position, throwerSide string) (state.Player, bool) {
	line := lineSquares(from, to)
	enemySide := state.OtherSide(throwerSide)
	var best state.Player
	found := false
	bestDist := -1
	for _, sq := range line {
		occupant, ok := g.PlayerAt(sq)
		if !ok || occupant.TeamSide != enemySide || occupant.Condition != state.Standing {
			continue
		}
		dist := geometry.Distance(from, sq)
		if !found || dist < bestDist ||
			(dist == bestDist && (sq.X < best.Position.X || (sq.X == best.Position.X && sq.Y < best.Position.Y))) {
			best = occupant
			bestDist = dist
			found = true
		}
	}
	return best, found
}

// lineSquares enumerates the integer squares on the straight line from
// from to to, using a simple Bresenham-style walk.
func lineSquares(from, to geometry.Position) []geometry.Position {
	dx := to.X - from.X
	dy := to.Y - from.Y
	steps := abs(dx)
	if abs(dy) > steps {
		steps = abs(dy)
	}
	if steps == 0 {
		return nil
	}
	out := make([]geometry.Position, 0, steps)
	for i := 1; i < steps; i++ {
		x := from.X + dx*i/steps
		y := from.Y + dy*i/steps
		out = append(out, geometry.Position{X: x, Y: y})
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
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
