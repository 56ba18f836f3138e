package ball

import (
	"testing"

	"github.com/huddlesim/gridiron/dice"
	"github.com/huddlesim/gridiron/geometry"
	"github.com/huddlesim/gridiron/reroll"
	"github.com/huddlesim/gridiron/skills"
	"github.com/huddlesim/gridiron/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func playerWith(id, side string, agility int, pos geometry.Position, sk skills.Set) state.Player {
	p := pos
	return state.Player{
		ID: id, TeamSide: side, Condition: state.Standing, Position: &p,
		Stats: state.Stats{Agility: agility}, Skills: sk,
	}
}

func TestPickupSucceedsAndHoldsBall(t *testing.T) {
	pos := geometry.Position{X: 5, Y: 5}
	g := state.GameState{
		ActiveTeam: "home",
		Players:    map[string]state.Player{"h1": playerWith("h1", "home", 3, pos, nil)},
		HomeTeam:   state.Team{Rerolls: 0},
		Ball:       state.OnGroundBall(pos),
	}
	d := dice.NewScriptedSource([]int{5}, nil, nil, nil)
	res := Pickup(g, "h1", d, reroll.AutoAccept{}, false)
	require.True(t, res.Success)
	assert.True(t, res.State.Ball.IsHeldBy("h1"))
}

func TestPickupFailThenSureHandsRerollStillFailsBounces(t *testing.T) {
	pos := geometry.Position{X: 5, Y: 5}
	g := state.GameState{
		ActiveTeam: "home",
		Players:    map[string]state.Player{"h1": playerWith("h1", "home", 3, pos, skills.NewSet(skills.SureHands))},
		HomeTeam:   state.Team{Rerolls: 2},
		Ball:       state.OnGroundBall(pos),
	}
	// target = 7-3-1(sure hands)+0 = 3; roll 2 fails, reroll 1 fails, bounce d8=3(E)
	d := dice.NewScriptedSource([]int{2, 1}, []int{3}, nil, nil)
	res := Pickup(g, "h1", d, reroll.AutoAccept{}, false)
	assert.False(t, res.Success)
	assert.Equal(t, 2, res.State.HomeTeam.Rerolls, "sure hands is a skill reroll, team pool untouched")
	assert.NotEqual(t, state.BallHeld, res.State.Ball.Kind)
}

func TestPickupSkipsSkillRerollWhenAlreadyUsedThisAction(t *testing.T) {
	pos := geometry.Position{X: 5, Y: 5}
	g := state.GameState{
		ActiveTeam: "home",
		Players:    map[string]state.Player{"h1": playerWith("h1", "home", 3, pos, skills.NewSet(skills.SureHands))},
		HomeTeam:   state.Team{Rerolls: 2},
		Ball:       state.OnGroundBall(pos),
	}
	// target = 7-3-1(sure hands)+0 = 3; first roll 2 fails. usedSkillReroll
	// is already true (an earlier roll in this action spent it), so this
	// must fall through straight to a team reroll, never offer SureHands
	// a second time.
	d := dice.NewScriptedSource([]int{2, 5}, nil, nil, nil)
	res := Pickup(g, "h1", d, reroll.AutoAccept{}, true)

	require.True(t, res.Success)
	assert.Equal(t, 1, res.State.HomeTeam.Rerolls, "the team reroll, not a second skill reroll, must be spent")
	assert.True(t, res.State.HomeTeam.RerollUsedThisTurn)
	assert.True(t, res.UsedSkillReroll, "the flag must remain set for the rest of the action")

	for _, ev := range res.Events {
		if ev.Type == state.EventReroll {
			assert.Equal(t, reroll.SourceTeam, ev.Data["source"], "SureHands must not be offered twice in one action")
		}
	}
}

func TestBounceOffPitchResolvesThrowIn(t *testing.T) {
	pos := geometry.Position{X: 0, Y: 5}
	g := state.GameState{Players: map[string]state.Player{}}
	// direction 7 = W (off pitch), throw-in distance 2
	d := dice.NewScriptedSource(nil, []int{7}, []int{2}, nil)
	res := Bounce(g, pos, d, reroll.AutoAccept{}, false)
	assert.Equal(t, state.BallOnGround, res.State.Ball.Kind)
	assert.True(t, res.State.Ball.Position.InPitch())
}

func TestDropBouncesOnceFromCarrierSquare(t *testing.T) {
	pos := geometry.Position{X: 5, Y: 5}
	g := state.GameState{
		Players: map[string]state.Player{"h1": playerWith("h1", "home", 3, pos, nil)},
		Ball:    state.HeldBall("h1"),
	}
	d := dice.NewScriptedSource(nil, []int{3}, nil, nil)
	res := Drop(g, "h1", d, reroll.AutoAccept{}, false)
	assert.Equal(t, state.BallOnGround, res.State.Ball.Kind)
}
