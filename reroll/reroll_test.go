package reroll

import (
	"testing"

	"github.com/huddlesim/gridiron/dice"
	"github.com/huddlesim/gridiron/skills"
	"github.com/huddlesim/gridiron/state"
	"github.com/stretchr/testify/assert"
)

func TestSkillRerollTakesPriorityOverTeam(t *testing.T) {
	d := dice.NewScriptedSource(nil, nil, nil, nil)
	team := state.Team{Rerolls: 3}
	dec, newTeam := Arbitrate(d, skills.NewSet(skills.Dodge), skills.RollDodge, team, true, false, false, AutoAccept{}, Context{})
	assert.True(t, dec.Granted)
	assert.Equal(t, string(skills.Dodge), dec.Source)
	assert.Equal(t, 3, newTeam.Rerolls, "skill reroll must not touch the team pool")
}

func TestSkillRerollFailureDoesNotFallThroughToTeam(t *testing.T) {
	d := dice.NewScriptedSource(nil, nil, nil, nil)
	team := state.Team{Rerolls: 3}
	dec, newTeam := Arbitrate(d, skills.NewSet(skills.SureHands), skills.RollPickup, team, true, false, false, AutoAccept{}, Context{})
	assert.True(t, dec.Granted)
	assert.Equal(t, 3, newTeam.Rerolls)
	// The caller re-rolls once; whatever it produces stands, no further
	// arbitration call is made (enforced by calling convention, not by
	// this package, but the pool must remain untouched here).
	_ = newTeam
}

func TestTeamRerollConsumesPoolAndSetsFlag(t *testing.T) {
	d := dice.NewScriptedSource(nil, nil, nil, nil)
	team := state.Team{Rerolls: 2}
	dec, newTeam := Arbitrate(d, skills.Set{}, skills.RollDodge, team, true, false, false, AutoAccept{}, Context{})
	assert.True(t, dec.Granted)
	assert.Equal(t, SourceTeam, dec.Source)
	assert.Equal(t, 1, newTeam.Rerolls)
	assert.True(t, newTeam.RerollUsedThisTurn)
}

func TestNoRerollWhenOffTurnOrExhausted(t *testing.T) {
	d := dice.NewScriptedSource(nil, nil, nil, nil)
	team := state.Team{Rerolls: 0}
	dec, _ := Arbitrate(d, skills.Set{}, skills.RollDodge, team, true, false, false, AutoAccept{}, Context{})
	assert.False(t, dec.Granted)

	team2 := state.Team{Rerolls: 2, RerollUsedThisTurn: true}
	dec2, _ := Arbitrate(d, skills.Set{}, skills.RollDodge, team2, true, false, false, AutoAccept{}, Context{})
	assert.False(t, dec2.Granted)
}

func TestProDoesNotOfferASecondRerollThisTurn(t *testing.T) {
	d := dice.NewScriptedSource(nil, nil, nil, nil)
	team := state.Team{Rerolls: 0}
	dec, _ := Arbitrate(d, skills.NewSet(skills.Pro), skills.RollDodge, team, true, false, true, AutoAccept{}, Context{})
	assert.False(t, dec.Granted, "Pro already used this turn must not grant a second skill reroll")
	assert.False(t, dec.ProConsumed)
}

func TestProGrantFlagsProConsumed(t *testing.T) {
	d := dice.NewScriptedSource(nil, nil, nil, nil)
	team := state.Team{Rerolls: 3}
	dec, _ := Arbitrate(d, skills.NewSet(skills.Pro), skills.RollDodge, team, true, false, false, AutoAccept{}, Context{})
	assert.True(t, dec.Granted)
	assert.True(t, dec.ProConsumed)
}

func TestLonerRequiresExtraD6(t *testing.T) {
	d := dice.NewScriptedSource([]int{1}, nil, nil, nil)
	team := state.Team{Rerolls: 2}
	dec, newTeam := Arbitrate(d, skills.NewSet(skills.Loner), skills.RollDodge, team, true, false, false, AutoAccept{}, Context{})
	assert.False(t, dec.Granted)
	assert.Equal(t, SourceLoner, dec.Source)
	assert.Equal(t, 2, newTeam.Rerolls)
}
