// Package block resolves BLOCK, BLITZ and MULTIPLE_BLOCK actions:
// dice count, die selection, and the five block-die outcomes with
// their cascading push/injury effects, per spec.md §4.6.
package block

import (
	"github.com/huddlesim/gridiron/dice"
	"github.com/huddlesim/gridiron/geometry"
	"github.com/huddlesim/gridiron/injury"
	"github.com/huddlesim/gridiron/reroll"
	"github.com/huddlesim/gridiron/skills"
	"github.com/huddlesim/gridiron/state"
	"github.com/huddlesim/gridiron/strength"
)

// Result is the outcome of resolving one block.
type Result struct {
	State        state.GameState
	Events       []state.Event
	Turnover     bool
	DefenderDown bool
}

// attackerFaceScore and defenderFaceScore rank block-die faces from
// each side's perspective; the chooser picks the rolled face with the
// highest score, ties broken by roll order.
var attackerFaceScore = map[dice.BlockDieFace]int{
	dice.DefenderDown:      5,
	dice.DefenderStumbles:  4,
	dice.Push:              3,
	dice.BothDown:          2,
	dice.AttackerDown:      1,
}

var defenderFaceScore = map[dice.BlockDieFace]int{
	dice.AttackerDown:     5,
	dice.BothDown:         4,
	dice.Push:             3,
	dice.DefenderStumbles: 2,
	dice.DefenderDown:     1,
}

// chooseFace picks the best rolled face for the chooser, ties broken
// by earliest roll.
func chooseFace(faces []dice.BlockDieFace, attackerChooses bool) dice.BlockDieFace {
	scores := attackerFaceScore
	if !attackerChooses {
		scores = defenderFaceScore
	}
	best := faces[0]
	bestScore := scores[best]
	for _, f := range faces[1:] {
		if scores[f] > bestScore {
			best = f
			bestScore = scores[f]
		}
	}
	return best
}

// Resolve rolls the block dice for attacker against defender and
// applies the chosen face's effects, including the push and any
// knock-downs. A knocked-down carrier's ball is left loose on that
// player's square; no bounce is rolled for it. apothFor
// resolves each knocked-down player's own team's apothecary decider —
// a BothDown result knocks down both attacker and defender, who are
// frequently on different teams, so one decider can't serve both.
func Resolve(g state.GameState, attackerID, defenderID string, d dice.Source, decider reroll.TeamRerollDecider, apothFor injury.Lookup) Result {
	attacker := g.Players[attackerID]
	defender := g.Players[defenderID]

	attackerStrength := attacker.Stats.Strength + strength.Assists(g, attacker, defender)
	defenderStrength := defender.Stats.Strength + strength.Assists(g, defender, attacker)
	diceCount, attackerChooses := strength.DiceCount(attackerStrength, defenderStrength)

	faces := make([]dice.BlockDieFace, diceCount)
	for i := range faces {
		faces[i] = d.RollBlockDie()
	}
	events := []state.Event{state.NewEvent(state.EventBlock, "block dice rolled", map[string]interface{}{
		"attackerId": attackerID, "defenderId": defenderID, "diceCount": diceCount,
		"attackerChooses": attackerChooses, "faces": faceStrings(faces),
	})}

	face := chooseFace(faces, attackerChooses)
	events = append(events, state.NewEvent(state.EventBlock, "block die chosen", map[string]interface{}{"result": face.String()}))

	switch face {
	case dice.AttackerDown:
		g, moreEvents := knockDown(g, attackerID, d, apothFor)
		events = append(events, moreEvents...)
		return Result{State: g, Events: events, Turnover: true, DefenderDown: false}

	case dice.BothDown:
		turnover := !attacker.Skills.Has(skills.Block)
		if turnover {
			var moreEvents []state.Event
			g, moreEvents = knockDown(g, attackerID, d, apothFor)
			events = append(events, moreEvents...)
		}
		g2, moreEvents2 := knockDown(g, defenderID, d, apothFor)
		events = append(events, moreEvents2...)
		return Result{State: g2, Events: events, Turnover: turnover, DefenderDown: true}

	case dice.Push:
		g, pushEvents := pushChain(g, attackerID, defenderID, d)
		events = append(events, pushEvents...)
		return Result{State: g, Events: events, Turnover: false, DefenderDown: false}

	case dice.DefenderStumbles:
		if defender.Skills.Has(skills.Dodge) {
			g, pushEvents := pushChain(g, attackerID, defenderID, d)
			events = append(events, pushEvents...)
			return Result{State: g, Events: events, Turnover: false, DefenderDown: false}
		}
		fallthrough

	case dice.DefenderDown:
		g, pushEvents := pushChain(g, attackerID, defenderID, d)
		events = append(events, pushEvents...)
		g, moreEvents := knockDown(g, defenderID, d, apothFor)
		events = append(events, moreEvents...)
		return Result{State: g, Events: events, Turnover: false, DefenderDown: true}
	}

	return Result{State: g, Events: events}
}

// knockDown drops a standing player prone, leaves their ball loose on
// their square (without a bounce) if carried, and runs the injury cascade against the knocked-down
// player's own team's apothecary decider. Turnover semantics for which
// knockdowns count as a turnover are decided by the caller per
// spec.md §4.6.
func knockDown(g state.GameState, playerID string, d dice.Source, apothFor injury.Lookup) (state.GameState, []state.Event) {
	p := g.Players[playerID]
	events := []state.Event{}
	wasCarrier := g.Ball.IsHeldBy(playerID)

	g = g.WithPlayer(playerID, p.WithCondition(state.Prone))
	events = append(events, state.NewEvent(state.EventKnockedDown, "player knocked down", map[string]interface{}{"playerId": playerID}))

	if wasCarrier {
		pos := *p.Position
		g = g.WithBall(state.OnGroundBall(pos))
	}

	var apoth injury.ApothecaryDecider
	if apothFor != nil {
		apoth = apothFor(p.TeamSide)
	}
	injuryRes := injury.Resolve(g, playerID, 0, 0, d, apoth)
	g = injuryRes.State
	events = append(events, injuryRes.Events...)
	g = g.WithPlayer(playerID, g.Players[playerID].WithCondition(injuryRes.Outcome.Condition))

	return g, events
}

// pushChain resolves a single defender push, cascading into further
// pushes if the landing square is itself occupied by a standing
// player. The direction is the vector from attacker through defender,
// with the two diagonal neighbors as fallback candidates, per spec.md
// §4.6 ("three squares behind defender relative to attacker").
func pushChain(g state.GameState, attackerID, defenderID string, d dice.Source) (state.GameState, []state.Event) {
	attacker := g.Players[attackerID]
	defender := g.Players[defenderID]
	events := []state.Event{}

	dest, ok := resolvePushDestination(g, *attacker.Position, *defender.Position)
	if !ok {
		// Crowd: no legal square, defender stays put against the edge.
		return g, events
	}

	if occupant, found := g.PlayerAt(dest); found && occupant.Condition == state.Standing {
		var chained []state.Event
		g, chained = pushChain(g, defenderID, occupant.ID, d)
		events = append(events, chained...)
	}

	defender = g.Players[defenderID]
	wasCarrier := g.Ball.IsHeldBy(defenderID)
	g = g.WithPlayer(defenderID, defender.WithPosition(&dest))
	events = append(events, state.NewEvent(state.EventMove, "pushed", map[string]interface{}{"playerId": defenderID, "to": dest}))

	if wasCarrier {
		g = g.WithBall(state.HeldBall(defenderID))
	}

	return g, events
}

// resolvePushDestination picks the first in-pitch, unoccupied-or-
// standing candidate square behind defender relative to attacker.
func resolvePushDestination(g state.GameState, attackerPos, defenderPos geometry.Position) (geometry.Position, bool) {
	dx := defenderPos.X - attackerPos.X
	dy := defenderPos.Y - attackerPos.Y
	dx = sign(dx)
	dy = sign(dy)

	candidates := []geometry.Position{
		{X: defenderPos.X + dx, Y: defenderPos.Y + dy},
	}
	if dx != 0 && dy != 0 {
		candidates = append(candidates,
			geometry.Position{X: defenderPos.X + dx, Y: defenderPos.Y},
			geometry.Position{X: defenderPos.X, Y: defenderPos.Y + dy},
		)
	} else if dx == 0 {
		candidates = append(candidates,
			geometry.Position{X: defenderPos.X + 1, Y: defenderPos.Y + dy},
			geometry.Position{X: defenderPos.X - 1, Y: defenderPos.Y + dy},
		)
	} else {
		candidates = append(candidates,
			geometry.Position{X: defenderPos.X + dx, Y: defenderPos.Y + 1},
			geometry.Position{X: defenderPos.X + dx, Y: defenderPos.Y - 1},
		)
	}

	for _, c := range candidates {
		if !c.InPitch() {
			continue
		}
		if occupant, found := g.PlayerAt(c); found && occupant.Condition != state.Standing {
			continue
		}
		return c, true
	}
	return geometry.Position{}, false
}

func sign(n int) int {
	if n > 0 {
		return 1
	}
	if n < 0 {
		return -1
	}
	return 0
}

func faceStrings(faces []dice.BlockDieFace) []string {
	out := make([]string, len(faces))
	for i, f := range faces {
		out[i] = f.String()
	}
	return out
}
