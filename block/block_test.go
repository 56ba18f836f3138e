package block

import (
	"testing"

	"github.com/huddlesim/gridiron/dice"
	"github.com/huddlesim/gridiron/geometry"
	"github.com/huddlesim/gridiron/injury"
	"github.com/huddlesim/gridiron/reroll"
	"github.com/huddlesim/gridiron/skills"
	"github.com/huddlesim/gridiron/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func figure(id, side string, strengthStat int, pos geometry.Position, sk skills.Set) state.Player {
	p := pos
	return state.Player{
		ID: id, TeamSide: side, Condition: state.Standing, Position: &p,
		Stats: state.Stats{Strength: strengthStat, Agility: 3, Armour: 9}, Skills: sk,
	}
}

func baseState(attacker, defender state.Player) state.GameState {
	return state.GameState{
		ActiveTeam: "home",
		Players:    map[string]state.Player{attacker.ID: attacker, defender.ID: defender},
		HomeTeam:   state.Team{},
		AwayTeam:   state.Team{},
	}
}

func TestAttackerChoosesBestOfTwoDiceWhenStronger(t *testing.T) {
	attacker := figure("h1", "home", 4, geometry.Position{X: 5, Y: 5}, nil)
	defender := figure("a1", "away", 3, geometry.Position{X: 6, Y: 5}, nil)
	g := baseState(attacker, defender)

	// diff=1 -> 2 dice, attacker (stronger side) chooses the best face.
	d := dice.NewScriptedSource([]int{4, 4}, nil, nil, []dice.BlockDieFace{dice.Push, dice.DefenderDown})
	res := Resolve(g, "h1", "a1", d, reroll.AutoAccept{}, injury.Always(injury.NeverUse{}))

	assert.False(t, res.Turnover)
	assert.True(t, res.DefenderDown)
	pushed := res.State.Players["a1"]
	assert.Equal(t, state.Prone, pushed.Condition)
	assert.NotEqual(t, geometry.Position{X: 6, Y: 5}, *pushed.Position)
}

func TestAttackerDownIsTurnover(t *testing.T) {
	attacker := figure("h1", "home", 1, geometry.Position{X: 5, Y: 5}, nil)
	defender := figure("a1", "away", 5, geometry.Position{X: 6, Y: 5}, nil)
	g := baseState(attacker, defender)

	// dice = max(1,min(3,|1-5|+1)) = 3 dice, defender stronger so defender chooses.
	d := dice.NewScriptedSource([]int{2, 2}, nil, nil, []dice.BlockDieFace{dice.Push, dice.AttackerDown, dice.Push})
	res := Resolve(g, "h1", "a1", d, reroll.AutoAccept{}, injury.Always(injury.NeverUse{}))

	require.True(t, res.Turnover)
	assert.Equal(t, state.Prone, res.State.Players["h1"].Condition)
}

func TestDefenderStumblesWithDodgeActsAsPush(t *testing.T) {
	attacker := figure("h1", "home", 3, geometry.Position{X: 5, Y: 5}, nil)
	defender := figure("a1", "away", 3, geometry.Position{X: 6, Y: 5}, skills.NewSet(skills.Dodge))
	g := baseState(attacker, defender)

	d := dice.NewScriptedSource(nil, nil, nil, []dice.BlockDieFace{dice.DefenderStumbles})
	res := Resolve(g, "h1", "a1", d, reroll.AutoAccept{}, injury.Always(injury.NeverUse{}))

	assert.False(t, res.DefenderDown)
	assert.Equal(t, state.Standing, res.State.Players["a1"].Condition)
}

type recordingDecider struct {
	calls *[]string
}

func (r recordingDecider) UseApothecary(playerID, teamSide string) bool {
	*r.calls = append(*r.calls, playerID+":"+teamSide)
	return true
}

// A BothDown result can knock down an attacker and defender from
// different teams in one call; the apothecary dispatch must consult
// each knocked-down player's own team, not a single decider bound
// ahead of time to whichever side is on turn.
func TestBothDownConsultsEachInjuredPlayersOwnTeamApothecary(t *testing.T) {
	attacker := figure("h1", "home", 3, geometry.Position{X: 5, Y: 5}, nil)
	defender := figure("a1", "away", 3, geometry.Position{X: 6, Y: 5}, nil)
	g := baseState(attacker, defender)
	g.HomeTeam.HasApothecary = true
	g.AwayTeam.HasApothecary = true

	var homeCalls, awayCalls []string
	apothFor := func(teamSide string) injury.ApothecaryDecider {
		if teamSide == "away" {
			return recordingDecider{calls: &awayCalls}
		}
		return recordingDecider{calls: &homeCalls}
	}

	// Equal strength -> 1 block die. Each knockDown: armour 6+6=12
	// (broken vs armour 9), injury 4+4=8 (KO, apothecary consulted),
	// apothecary reroll 4+4=8 (KO again).
	d := dice.NewScriptedSource(
		[]int{6, 6, 4, 4, 4, 4, 6, 6, 4, 4, 4, 4},
		nil, nil,
		[]dice.BlockDieFace{dice.BothDown},
	)
	res := Resolve(g, "h1", "a1", d, reroll.AutoAccept{}, apothFor)

	require.True(t, res.Turnover, "attacker without Block goes down too on BothDown")
	assert.True(t, res.DefenderDown)
	assert.Equal(t, []string{"h1:home"}, homeCalls)
	assert.Equal(t, []string{"a1:away"}, awayCalls)
	assert.True(t, res.State.HomeTeam.ApothecaryUsed)
	assert.True(t, res.State.AwayTeam.ApothecaryUsed)
}

func TestBallCarryingDefenderDropsBallOnKnockdown(t *testing.T) {
	defenderPos := geometry.Position{X: 6, Y: 5}
	attacker := figure("h1", "home", 4, geometry.Position{X: 5, Y: 5}, nil)
	defender := figure("a1", "away", 1, defenderPos, nil)
	g := baseState(attacker, defender)
	g = g.WithBall(state.HeldBall("a1"))

	d := dice.NewScriptedSource([]int{4, 4}, nil, nil, []dice.BlockDieFace{dice.DefenderDown, dice.DefenderDown, dice.DefenderDown})
	res := Resolve(g, "h1", "a1", d, reroll.AutoAccept{}, injury.Always(injury.NeverUse{}))

	assert.NotEqual(t, state.BallHeld, res.State.Ball.Kind)
}
