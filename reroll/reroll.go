// Package reroll implements the central reroll arbitrator, spec.md
// §4.4 and the §9 design note: "Reroll arbitration crosses many
// sub-resolvers — model as a small pure function arbitrate(roll,
// context, team_state) -> Decision". Every sub-resolver that rolls
// dice on behalf of a player consults Arbitrate exactly once per
// failure; its own second roll (if Arbitrate grants one) is never
// itself arbitrated.
package reroll

import (
	"github.com/huddlesim/gridiron/dice"
	"github.com/huddlesim/gridiron/skills"
	"github.com/huddlesim/gridiron/state"
)

// Context describes the failing roll being arbitrated.
type Context struct {
	PlayerID string
	Team     string // "home" or "away"
	Kind     skills.RollKind
}

// TeamRerollDecider is consulted when no skill reroll applies and the
// team still has rerolls available. Production code asks the acting
// Coach; scripted tests auto-accept.
type TeamRerollDecider interface {
	AcceptTeamReroll(ctx Context) bool
}

// AutoAccept always accepts a team reroll offer; used by scripted
// dice tests per spec.md §4.4 ("auto for scripted dice tests").
type AutoAccept struct{}

func (AutoAccept) AcceptTeamReroll(Context) bool { return true }

// Source identifies which mechanism granted a reroll.
const (
	SourceNone  = "none"
	SourceTeam  = "team"
	SourceLoner = "loner_failed"
)

// Decision is the outcome of arbitration: whether a second roll is
// granted, and what to record as the reroll event's source.
type Decision struct {
	Granted bool
	Source  string
	// ProConsumed reports that the grant came from Pro, which spends
	// its own once-per-turn budget rather than the per-action one: the
	// caller must mark the player's Flags.ProUsedThisTurn on a granted
	// decision with this set.
	ProConsumed bool
}

// Arbitrate first applies the Loner gate: a player with Loner rolls an
// extra d6 and, on a 1, gets no reroll of any kind (Source
// SourceLoner). It then runs spec.md §4.4's three-step policy in order:
//  1. a skill reroll (Dodge/Sure Hands/Catch/Pass/Pro), if not
//     already used this action, and — for Pro specifically — not
//     already used this turn;
//  2. else a team reroll, if the team has one, hasn't used it this
//     turn, and is the team currently on turn;
//  3. else the failure stands.
//
// usedSkillRerollThisAction must be supplied by the caller (an action
// may only consume one skill reroll; a skill reroll may not itself be
// rerolled). proUsedThisTurn gates Pro's separate once-per-turn cap.
// On a granted skill reroll the caller is expected to mark its own
// "used this action" bookkeeping, and — when Decision.ProConsumed is
// set — the player's Flags.ProUsedThisTurn.
func Arbitrate(d dice.Source, playerSkills skills.Set, kind skills.RollKind, team state.Team, onTurn bool, usedSkillRerollThisAction bool, proUsedThisTurn bool, decider TeamRerollDecider, ctx Context) (Decision, state.Team) {
	rerollSkills := playerSkills
	if playerSkills.Has(skills.Loner) {
		if d.RollD6() < 2 {
			return Decision{Granted: false, Source: SourceLoner}, team
		}
		rerollSkills = skills.Set{}
		for sk := range playerSkills {
			if sk != skills.Loner {
				rerollSkills[sk] = true
			}
		}
	}
	if !usedSkillRerollThisAction {
		if sk, ok := skills.OffersRerollFor(rerollSkills, kind); ok && !(sk == skills.Pro && proUsedThisTurn) {
			return Decision{Granted: true, Source: string(sk), ProConsumed: sk == skills.Pro}, team
		}
	}

	if onTurn && team.Rerolls > 0 && !team.RerollUsedThisTurn {
		if decider != nil && decider.AcceptTeamReroll(ctx) {
			return Decision{Granted: true, Source: SourceTeam}, team.ConsumeTeamReroll()
		}
	}

	return Decision{Granted: false, Source: SourceNone}, team
}
