// Package kickoff resolves the KICKOFF phase: ball placement and
// scatter, touchback handling, and the 2d6 kickoff event table, per
// spec.md §4.9.
package kickoff

import (
	"github.com/huddlesim/gridiron/ball"
	"github.com/huddlesim/gridiron/dice"
	"github.com/huddlesim/gridiron/geometry"
	"github.com/huddlesim/gridiron/scatter"
	"github.com/huddlesim/gridiron/state"
)

// EventName tags one of the eleven named 2d6 kickoff events, one for
// each total from 2 to 12.
type EventName string

const (
	EventGetTheRef        EventName = "get_the_ref"
	EventRiot             EventName = "riot"
	EventPerfectDefense   EventName = "perfect_defense"
	EventHighKick         EventName = "high_kick"
	EventCheeringFans     EventName = "cheering_fans"
	EventChangingWeather  EventName = "changing_weather"
	EventBrilliantCoaching EventName = "brilliant_coaching"
	EventQuickSnap        EventName = "quick_snap"
	EventBlitz            EventName = "blitz"
	EventThrowARock       EventName = "throw_a_rock"
	EventPitchInvasion    EventName = "pitch_invasion"
)

// eventTable maps a 2d6 total to its named event: each total from 2
// to 12 maps to exactly one event.
var eventTable = map[int]EventName{
	2:  EventGetTheRef,
	3:  EventRiot,
	4:  EventPerfectDefense,
	5:  EventHighKick,
	6:  EventCheeringFans,
	7:  EventChangingWeather,
	8:  EventBrilliantCoaching,
	9:  EventQuickSnap,
	10: EventBlitz,
	11: EventThrowARock,
	12: EventPitchInvasion,
}

// Result is the outcome of resolving a kickoff.
type Result struct {
	State     state.GameState
	Events    []state.Event
	Touchback bool
}

// Resolve first rolls the 2d6 kickoff event table, then places the
// kicking team's ball at (targetX, targetY), scatters it d8 direction
// + d6 distance, and settles the ball: touchback, a catch roll by a
// standing player on the landing square (a failed catch bounces), or
// loose on the landing square, where no bounce is rolled for it.
func Resolve(g state.GameState, targetX, targetY int, d dice.Source) Result {
	events := []state.Event{}

	roll := d.RollD6() + d.RollD6()
	name := eventTable[roll]
	g, eventEvents := applyKickoffEvent(g, name, d)
	events = append(events, state.NewEvent(state.EventKickoff, "kickoff event", map[string]interface{}{
		"roll": roll, "event": string(name),
	}))
	events = append(events, eventEvents...)

	landing := geometry.Position{X: targetX, Y: targetY}
	direction := d.RollD8()
	distance := d.RollD6()
	for i := 0; i < distance; i++ {
		landing = scatter.Deviate(landing, direction)
	}

	receivingSide := state.OtherSide(g.KickingTeam)
	touchback := !landing.InPitch() || geometry.HalfOf(landing.X) == g.KickingTeam

	events = append(events, state.NewEvent(state.EventKickoff, "ball scattered", map[string]interface{}{
		"to": landing, "touchback": touchback,
	}))

	if touchback {
		holder, ok := firstStanding(g, receivingSide)
		if ok {
			g = g.WithBall(state.HeldBall(holder))
		} else {
			g = g.WithBall(state.OffPitchBall())
		}
		return Result{State: g, Events: events, Touchback: true}
	}

	if occupant, ok := g.PlayerAt(landing); ok && occupant.Condition == state.Standing {
		g = g.WithBall(state.OnGroundBall(landing))
		catchRes := ball.Catch(g, occupant.ID, false, d, nil, false)
		events = append(events, catchRes.Events...)
		return Result{State: catchRes.State, Events: events, Touchback: false}
	}

	g = g.WithBall(state.OnGroundBall(landing))
	return Result{State: g, Events: events, Touchback: false}
}

// firstStanding returns the lowest-id standing on-pitch player of
// side, the receiving captain's default pick for a touchback.
func firstStanding(g state.GameState, side string) (string, bool) {
	for _, p := range g.OnPitchPlayers(side) {
		if p.Condition == state.Standing {
			return p.ID, true
		}
	}
	return "", false
}

// applyKickoffEvent mutates state for the named event. Events this
// engine does not model a full rule for (Perfect Defense's re-setup
// prompt, Pitch Invasion's per-player sent-off roll, Get the Ref's
// banned-player pick) are recorded via their event name but are
// otherwise no-ops, per spec.md §4.9 ("unknown or inapplicable events
// are no-ops").
func applyKickoffEvent(g state.GameState, name EventName, d dice.Source) (state.GameState, []state.Event) {
	switch name {
	case EventChangingWeather:
		roll := d.RollD6() + d.RollD6()
		w := weatherFromRoll(roll)
		g = g.WithWeather(w)
		return g, []state.Event{state.NewEvent(state.EventWeatherChange, "weather changes", map[string]interface{}{"roll": roll, "weather": string(w)})}
	case EventCheeringFans, EventBrilliantCoaching:
		receiving := state.OtherSide(g.KickingTeam)
		rt := g.TeamBySide(receiving)
		rt = rt.WithRerolls(rt.Rerolls + 1)
		g = g.WithTeam(receiving, rt)
		return g, []state.Event{state.NewEvent(string(name), "bonus team reroll", map[string]interface{}{"side": receiving})}
	default:
		return g, nil
	}
}

func weatherFromRoll(roll int) state.Weather {
	switch {
	case roll == 2:
		return state.WeatherSweltering
	case roll <= 5:
		return state.WeatherVerySunny
	case roll <= 9:
		return state.WeatherNice
	case roll <= 11:
		return state.WeatherPouring
	default:
		return state.WeatherBlizzard
	}
}
