package gameflow

import (
	"testing"

	"github.com/huddlesim/gridiron/dice"
	"github.com/huddlesim/gridiron/geometry"
	"github.com/huddlesim/gridiron/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndTurnAdvancesTurnNumberAndSwapsActive(t *testing.T) {
	g := state.GameState{
		Phase:      state.PhasePlay,
		ActiveTeam: "home",
		Half:       1,
		HomeTeam:   state.Team{TurnNumber: 1},
		AwayTeam:   state.Team{TurnNumber: 1},
		Players:    map[string]state.Player{},
	}
	res := EndTurn(g)
	assert.Equal(t, 2, res.State.HomeTeam.TurnNumber)
	assert.Equal(t, "away", res.State.ActiveTeam)
	assert.Equal(t, state.PhasePlay, res.State.Phase)
}

// Turn 8 second half ends the game: spec.md §8 scenario 4.
func TestEndTurnAtTurnEightHalfTwoEndsGame(t *testing.T) {
	g := state.GameState{
		ActiveTeam: "home",
		Half:       2,
		HomeTeam:   state.Team{TurnNumber: 8},
		AwayTeam:   state.Team{TurnNumber: 8},
		Players:    map[string]state.Player{},
	}
	res := EndTurn(g)
	assert.Equal(t, state.PhaseGameOver, res.State.Phase)
}

func TestEndTurnRecoversStunnedOnIncomingTeam(t *testing.T) {
	pos := geometry.Position{X: 3, Y: 3}
	g := state.GameState{
		ActiveTeam: "home",
		Half:       1,
		HomeTeam:   state.Team{TurnNumber: 1},
		AwayTeam:   state.Team{TurnNumber: 1},
		Players: map[string]state.Player{
			"a1": {ID: "a1", TeamSide: "away", Condition: state.Stunned, Position: &pos},
		},
	}
	res := EndTurn(g)
	assert.Equal(t, state.Prone, res.State.Players["a1"].Condition)
}

func TestBothTeamsPastTurnEightTriggersHalfTime(t *testing.T) {
	g := state.GameState{
		ActiveTeam: "home",
		Half:       1,
		HomeTeam:   state.Team{TurnNumber: 8},
		AwayTeam:   state.Team{TurnNumber: 8},
		Players:    map[string]state.Player{},
	}
	res := EndTurn(g)
	assert.Equal(t, state.PhaseHalfTime, res.State.Phase)
}

func TestTurnoverEndsTurnAndClearsFlag(t *testing.T) {
	g := state.GameState{
		ActiveTeam: "home",
		Half:       1,
		HomeTeam:   state.Team{TurnNumber: 1},
		AwayTeam:   state.Team{TurnNumber: 1},
		Players:    map[string]state.Player{},
	}
	res := Turnover(g)
	assert.False(t, res.State.TurnoverPending)
	assert.Equal(t, "away", res.State.ActiveTeam)
}

func TestTouchdownScoresAndResetsPlayers(t *testing.T) {
	pos := geometry.Position{X: 25, Y: 7}
	g := state.GameState{
		Phase:    state.PhasePlay,
		HomeTeam: state.Team{Score: 0},
		AwayTeam: state.Team{Score: 0},
		Players: map[string]state.Player{
			"h1": {ID: "h1", TeamSide: "home", Condition: state.Standing, Position: &pos},
		},
		Ball: state.HeldBall("h1"),
	}
	res := Touchdown(g, "h1")
	require.Equal(t, 1, res.State.HomeTeam.Score)
	assert.Equal(t, state.OffPitch, res.State.Players["h1"].Condition)
	assert.Nil(t, res.State.Players["h1"].Position)
	assert.Equal(t, state.PhaseSetup, res.State.Phase)
	assert.Equal(t, "home", res.State.KickingTeam)
	assert.Equal(t, state.BallOffPitch, res.State.Ball.Kind)
}

func TestHalfTimeRecoversKOOnFourPlus(t *testing.T) {
	g := state.GameState{
		Half: 1,
		Players: map[string]state.Player{
			"h1": {ID: "h1", TeamSide: "home", Condition: state.KO},
			"h2": {ID: "h2", TeamSide: "home", Condition: state.KO},
		},
		HomeTeam: state.Team{},
		AwayTeam: state.Team{},
	}
	d := dice.NewScriptedSource([]int{4, 2}, nil, nil, nil)
	res := HalfTime(g, d)
	assert.Equal(t, state.Standing, res.State.Players["h1"].Condition)
	assert.Equal(t, state.KO, res.State.Players["h2"].Condition)
	assert.Equal(t, 2, res.State.Half)
}

func TestIsTouchdownDetectsCarrierInOpposingEndZone(t *testing.T) {
	pos := geometry.Position{X: 25, Y: 7}
	g := state.GameState{
		Players: map[string]state.Player{
			"h1": {ID: "h1", TeamSide: "home", Condition: state.Standing, Position: &pos},
		},
		Ball: state.HeldBall("h1"),
	}
	id, ok := IsTouchdown(g)
	assert.True(t, ok)
	assert.Equal(t, "h1", id)
}
