// Package injury resolves the armour-to-injury cascade after a knock
// down: armour roll, injury table, casualty sub-roll, and the
// apothecary's one-shot reroll, per spec.md §4.10.
package injury

import (
	"github.com/huddlesim/gridiron/dice"
	"github.com/huddlesim/gridiron/state"
)

// ApothecaryDecider is consulted when the owning team has an unused
// apothecary, the armour broke and the injury roll came back worse
// than stunned: it decides whether to
// spend it (spec.md's SPEC_FULL note: "Apothecary choice is modeled
// as a Coach decision").
type ApothecaryDecider interface {
	UseApothecary(playerID, teamSide string) bool
}

// NeverUse always declines the apothecary; used when a team has none
// or a test wants the raw roll to stand.
type NeverUse struct{}

func (NeverUse) UseApothecary(string, string) bool { return false }

// Lookup resolves which ApothecaryDecider governs a given team side.
// A single knock-down cascade (e.g. a BothDown block) can injure
// players on both teams in one call, and the apothecary choice always
// belongs to the injured player's own team — never to whichever side
// is on turn — so callers thread a Lookup rather than one decider
// bound ahead of time.
type Lookup func(teamSide string) ApothecaryDecider

// Always returns a Lookup that ignores teamSide and always yields d,
// for callers (and tests) where only one decider applies.
func Always(d ApothecaryDecider) Lookup {
	return func(string) ApothecaryDecider { return d }
}

// CasualtyKind is the sub-roll outcome when injury rolls a casualty.
type CasualtyKind string

const (
	CasualtyNone     CasualtyKind = ""
	CasualtyTemporary CasualtyKind = "temporary"
	CasualtyLasting   CasualtyKind = "lasting"
	CasualtySerious   CasualtyKind = "serious"
	CasualtyDead      CasualtyKind = "dead"
)

// Outcome is the full result of resolving one knock-down's injury.
type Outcome struct {
	ArmourBroken bool
	Condition    state.PlayerCondition // Prone (armour held), Stunned, KO, Injured, Dead
	Casualty     CasualtyKind
}

// Result bundles the new state and events alongside the Outcome.
type Result struct {
	State   state.GameState
	Events  []state.Event
	Outcome Outcome
}

// Resolve rolls armour then, if broken, the injury table for the
// knocked-down player. armourModifier and injuryModifier fold in
// Mighty Blow/Claw style bonuses the caller has already computed.
func Resolve(g state.GameState, playerID string, armourModifier, injuryModifier int, d dice.Source, apoth ApothecaryDecider) Result {
	p := g.Players[playerID]
	events := []state.Event{}

	armourRoll := d.RollD6() + d.RollD6()
	broken := armourRoll+armourModifier > p.Stats.Armour
	events = append(events, state.NewEvent(state.EventArmour, "armour roll", map[string]interface{}{
		"playerId": playerID, "roll": armourRoll, "modifier": armourModifier, "armour": p.Stats.Armour, "broken": broken,
	}))

	if !broken {
		return Result{State: g, Events: events, Outcome: Outcome{ArmourBroken: false, Condition: state.Prone}}
	}

	condition, casualty, injuryEvents := rollInjury(playerID, injuryModifier, d)
	events = append(events, injuryEvents...)

	team := g.TeamBySide(p.TeamSide)
	if condition != state.Stunned && team.HasApothecary && !team.ApothecaryUsed && apoth != nil && apoth.UseApothecary(playerID, p.TeamSide) {
		team = team.SpendApothecary()
		g = g.WithTeam(p.TeamSide, team)
		condition, casualty, injuryEvents = rollInjury(playerID, injuryModifier, d)
		events = append(events, injuryEvents...)
	}

	return Result{State: g, Events: events, Outcome: Outcome{ArmourBroken: true, Condition: condition, Casualty: casualty}}
}

func rollInjury(playerID string, modifier int, d dice.Source) (state.PlayerCondition, CasualtyKind, []state.Event) {
	roll := d.RollD6() + d.RollD6() + modifier
	events := []state.Event{state.NewEvent(state.EventInjury, "injury roll", map[string]interface{}{
		"playerId": playerID, "roll": roll,
	})}

	switch {
	case roll <= 7:
		return state.Stunned, CasualtyNone, events
	case roll <= 9:
		return state.KO, CasualtyNone, events
	default:
		kind := casualtySubRoll(d)
		condition := state.Injured
		if kind == CasualtyDead {
			condition = state.Dead
		}
		events = append(events, state.NewEvent("casualty", "casualty sub-roll", map[string]interface{}{
			"playerId": playerID, "kind": string(kind),
		}))
		return condition, kind, events
	}
}

// casualtySubRoll resolves the dead/serious/lasting/temporary split on
// a single d6, the edition variant this engine picked (spec.md §9
// notes the source's own table may use d68/d16 depending on edition;
// we do not have that table, so we record this choice rather than
// guess at it).
func casualtySubRoll(d dice.Source) CasualtyKind {
	switch roll := d.RollD6(); {
	case roll <= 2:
		return CasualtyTemporary
	case roll <= 4:
		return CasualtyLasting
	case roll == 5:
		return CasualtySerious
	default:
		return CasualtyDead
	}
}

func (o Outcome) String() string {
	return string(o.Condition)
}
