// Package rulestest operationalizes spec.md §4.12's consistency
// property as a reusable checker: every target rules.ValidMovesFor,
// BlockTargetsFor, PassTargetsFor, HandoffTargetsFor, and
// FoulTargetsFor names as legal must actually be accepted by
// action.Resolve, never come back an IllegalActionError.
package rulestest

import (
	"fmt"
	"testing"

	"github.com/huddlesim/gridiron/action"
	"github.com/huddlesim/gridiron/dice"
	"github.com/huddlesim/gridiron/injury"
	"github.com/huddlesim/gridiron/reroll"
	"github.com/huddlesim/gridiron/rules"
	"github.com/huddlesim/gridiron/state"
	"github.com/stretchr/testify/require"
)

// AssertConsistent dispatches every legal target rules.go reports for
// playerID through action.Resolve and fails t if any comes back
// illegal. The dice source should be generous (PRNGSource or a long
// scripted queue) since exercising every target may consume rolls.
func AssertConsistent(t *testing.T, g state.GameState, playerID string, d dice.Source) {
	t.Helper()
	deps := action.Deps{Dice: d, Reroll: reroll.AutoAccept{}, Apothecary: injury.Always(injury.NeverUse{})}

	for _, m := range rules.ValidMovesFor(g, playerID) {
		res := action.Resolve(g, rules.ActionMove, action.Params{PlayerID: playerID, X: m.X, Y: m.Y}, deps)
		require.Nil(t, res.Err, fmt.Sprintf("MOVE to (%d,%d) reported legal but rejected: %v", m.X, m.Y, res.Err))
	}
	for _, targetID := range rules.BlockTargetsFor(g, playerID) {
		res := action.Resolve(g, rules.ActionBlock, action.Params{PlayerID: playerID, TargetID: targetID}, deps)
		require.Nil(t, res.Err, fmt.Sprintf("BLOCK on %s reported legal but rejected: %v", targetID, res.Err))
	}
	for _, target := range rules.PassTargetsFor(g, playerID) {
		res := action.Resolve(g, rules.ActionPass, action.Params{PlayerID: playerID, TargetX: target.X, TargetY: target.Y}, deps)
		require.Nil(t, res.Err, fmt.Sprintf("PASS to (%d,%d) reported legal but rejected: %v", target.X, target.Y, res.Err))
	}
	for _, targetID := range rules.HandoffTargetsFor(g, playerID) {
		res := action.Resolve(g, rules.ActionHandOff, action.Params{PlayerID: playerID, TargetID: targetID}, deps)
		require.Nil(t, res.Err, fmt.Sprintf("HAND_OFF to %s reported legal but rejected: %v", targetID, res.Err))
	}
	for _, targetID := range rules.FoulTargetsFor(g, playerID) {
		res := action.Resolve(g, rules.ActionFoul, action.Params{PlayerID: playerID, TargetID: targetID}, deps)
		require.Nil(t, res.Err, fmt.Sprintf("FOUL on %s reported legal but rejected: %v", targetID, res.Err))
	}
}
