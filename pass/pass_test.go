package pass

import (
	"testing"

	"github.com/huddlesim/gridiron/dice"
	"github.com/huddlesim/gridiron/geometry"
	"github.com/huddlesim/gridiron/reroll"
	"github.com/huddlesim/gridiron/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func thrower(id string, pos geometry.Position) state.Player {
	p := pos
	return state.Player{ID: id, TeamSide: "home", Condition: state.Standing, Position: &p, Stats: state.Stats{Agility: 3}}
}

func TestBandClassifiesDistance(t *testing.T) {
	assert.Equal(t, RangeQuick, Band(3))
	assert.Equal(t, RangeShort, Band(6))
	assert.Equal(t, RangeLong, Band(10))
	assert.Equal(t, RangeLongBomb, Band(13))
	assert.Equal(t, RangeOutOfBounds, Band(14))
}

func TestAccuratePassLandsOnEmptySquare(t *testing.T) {
	g := state.GameState{
		ActiveTeam: "home",
		Players:    map[string]state.Player{"h1": thrower("h1", geometry.Position{X: 5, Y: 5})},
		HomeTeam:   state.Team{},
	}
	d := dice.NewScriptedSource([]int{5}, nil, nil, nil)
	res := Resolve(g, "h1", 7, 5, d, reroll.AutoAccept{})
	assert.True(t, res.Success)
	assert.False(t, res.Turnover)
	require.Equal(t, state.BallOnGround, res.State.Ball.Kind)
	assert.Equal(t, geometry.Position{X: 7, Y: 5}, res.State.Ball.Position)
}

func TestFumbleOnRollOfOneBounces(t *testing.T) {
	g := state.GameState{
		ActiveTeam: "home",
		Players:    map[string]state.Player{"h1": thrower("h1", geometry.Position{X: 5, Y: 5})},
		HomeTeam:   state.Team{},
	}
	d := dice.NewScriptedSource([]int{1}, []int{3}, nil, nil)
	res := Resolve(g, "h1", 7, 5, d, reroll.AutoAccept{})
	assert.False(t, res.Success)
	assert.True(t, res.Turnover)
	assert.Equal(t, state.BallOnGround, res.State.Ball.Kind)
}

func TestInterceptionStealsBall(t *testing.T) {
	interceptorPos := geometry.Position{X: 6, Y: 5}
	ip := interceptorPos
	g := state.GameState{
		ActiveTeam: "home",
		Players: map[string]state.Player{
			"h1": thrower("h1", geometry.Position{X: 5, Y: 5}),
			"a1": {ID: "a1", TeamSide: "away", Condition: state.Standing, Position: &ip, Stats: state.Stats{Agility: 3}},
		},
		HomeTeam: state.Team{},
	}
	d := dice.NewScriptedSource([]int{6}, nil, nil, nil)
	res := Resolve(g, "h1", 8, 5, d, reroll.AutoAccept{})
	assert.False(t, res.Success)
	assert.True(t, res.Turnover)
	assert.True(t, res.State.Ball.IsHeldBy("a1"))
}
