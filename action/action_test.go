package action

import (
	"testing"

	"github.com/huddlesim/gridiron/dice"
	"github.com/huddlesim/gridiron/geometry"
	"github.com/huddlesim/gridiron/injury"
	"github.com/huddlesim/gridiron/reroll"
	"github.com/huddlesim/gridiron/rules"
	"github.com/huddlesim/gridiron/skills"
	"github.com/huddlesim/gridiron/state"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mover(id, side string, pos geometry.Position, sk skills.Set) state.Player {
	p := pos
	return state.Player{
		ID: id, TeamSide: side, Condition: state.Standing, Position: &p,
		Stats: state.Stats{Movement: 6, Agility: 3, Armour: 8, Strength: 3},
		Skills: sk, Flags: state.Flags{MovementRemaining: 6},
	}
}

func deps(d dice.Source) Deps {
	return Deps{Dice: d, Reroll: reroll.AutoAccept{}, Apothecary: injury.Always(injury.NeverUse{})}
}

// Dodge-skill reroll saves a dodge: spec.md §8 scenario 1.
func TestMoveDodgeSkillRerollSavesDodge(t *testing.T) {
	enemyPos := geometry.Position{X: 5, Y: 4}
	g := state.GameState{
		Phase:      state.PhasePlay,
		Half:       1,
		ActiveTeam: "home",
		HomeTeam:   state.Team{Rerolls: 2},
		AwayTeam:   state.Team{},
		Players: map[string]state.Player{
			"h1": mover("h1", "home", geometry.Position{X: 5, Y: 5}, skills.NewSet(skills.Dodge)),
			"a1": mover("a1", "away", enemyPos, nil),
		},
	}
	d := dice.NewScriptedSource([]int{2, 5}, nil, nil, nil)
	res := Resolve(g, rules.ActionMove, Params{PlayerID: "h1", X: 5, Y: 6}, deps(d))

	require.True(t, res.Success)
	assert.False(t, res.Turnover)
	assert.Equal(t, geometry.Position{X: 5, Y: 6}, *res.State.Players["h1"].Position)
	assert.Equal(t, 2, res.State.HomeTeam.Rerolls, "skill reroll must not touch the team pool")

	foundRerollEvent := false
	for _, ev := range res.Events {
		if ev.Type == state.EventReroll && ev.Data["source"] == string(skills.Dodge) {
			foundRerollEvent = true
		}
	}
	assert.True(t, foundRerollEvent)
}

// Sure Hands fails, no team-reroll fallthrough: spec.md §8 scenario 2.
func TestMoveSureHandsFailsCausesTurnover(t *testing.T) {
	g := state.GameState{
		Phase:      state.PhasePlay,
		Half:       1,
		ActiveTeam: "home",
		HomeTeam:   state.Team{Rerolls: 2},
		AwayTeam:   state.Team{},
		Players: map[string]state.Player{
			"h1": mover("h1", "home", geometry.Position{X: 5, Y: 5}, skills.NewSet(skills.SureHands)),
		},
		Ball: state.OnGroundBall(geometry.Position{X: 6, Y: 5}),
	}
	d := dice.NewScriptedSource([]int{2, 1}, []int{3}, nil, nil)
	res := Resolve(g, rules.ActionMove, Params{PlayerID: "h1", X: 6, Y: 5}, deps(d))

	require.True(t, res.Success)
	assert.True(t, res.Turnover)
	assert.Equal(t, 2, res.State.HomeTeam.Rerolls, "sure hands is a skill reroll, team pool untouched")
	assert.NotEqual(t, state.BallHeld, res.State.Ball.Kind)
	assert.Equal(t, "away", res.State.ActiveTeam, "turnover hands the turn to the other side")
}

// Short pass with accurate catch: spec.md §8 scenario 3.
func TestPassShortAccurateCatch(t *testing.T) {
	g := state.GameState{
		Phase:      state.PhasePlay,
		Half:       1,
		ActiveTeam: "home",
		HomeTeam:   state.Team{Rerolls: 2},
		AwayTeam:   state.Team{},
		Players: map[string]state.Player{
			"h1": mover("h1", "home", geometry.Position{X: 5, Y: 5}, nil),
			"h2": mover("h2", "home", geometry.Position{X: 10, Y: 5}, nil),
		},
		Ball: state.HeldBall("h1"),
	}
	d := dice.NewScriptedSource([]int{5, 4}, nil, nil, nil)
	res := Resolve(g, rules.ActionPass, Params{PlayerID: "h1", TargetX: 10, TargetY: 5}, deps(d))

	require.True(t, res.Success)
	assert.False(t, res.Turnover)
	assert.True(t, res.State.Ball.IsHeldBy("h2"))
}

// Touchdown on carrier move into end zone: spec.md §8 scenario 5.
func TestMoveIntoEndZoneScoresTouchdown(t *testing.T) {
	carrier := mover("h1", "home", geometry.Position{X: 24, Y: 7}, nil)
	carrier.Flags.MovementRemaining = 1
	g := state.GameState{
		Phase:      state.PhasePlay,
		Half:       1,
		ActiveTeam: "home",
		HomeTeam:   state.Team{TurnNumber: 1},
		AwayTeam:   state.Team{TurnNumber: 1},
		Players:    map[string]state.Player{"h1": carrier},
		Ball:       state.HeldBall("h1"),
	}
	d := dice.NewScriptedSource(nil, nil, nil, nil)
	res := Resolve(g, rules.ActionMove, Params{PlayerID: "h1", X: 25, Y: 7}, deps(d))

	require.True(t, res.Success)
	assert.Equal(t, 1, res.State.HomeTeam.Score)
	assert.Equal(t, state.PhaseSetup, res.State.Phase)
}

// Block "attacker down" is a turnover: spec.md §8 scenario 6.
func TestBlockAttackerDownIsTurnover(t *testing.T) {
	attacker := mover("h1", "home", geometry.Position{X: 5, Y: 5}, nil)
	attacker.Stats.Strength = 3
	defender := mover("a1", "away", geometry.Position{X: 6, Y: 5}, nil)
	defender.Stats.Strength = 3
	g := state.GameState{
		Phase:      state.PhasePlay,
		Half:       1,
		ActiveTeam: "home",
		HomeTeam:   state.Team{TurnNumber: 1},
		AwayTeam:   state.Team{TurnNumber: 1},
		Players:    map[string]state.Player{"h1": attacker, "a1": defender},
	}
	d := dice.NewScriptedSource([]int{4, 4}, nil, nil, []dice.BlockDieFace{dice.AttackerDown})
	res := Resolve(g, rules.ActionBlock, Params{PlayerID: "h1", TargetID: "a1"}, deps(d))

	require.True(t, res.Turnover)
	assert.Equal(t, state.Prone, res.State.Players["h1"].Condition)
	assert.Equal(t, "away", res.State.ActiveTeam)

	foundArmour := false
	for _, ev := range res.Events {
		if ev.Type == state.EventArmour {
			foundArmour = true
			assert.Equal(t, false, ev.Data["broken"])
		}
	}
	assert.True(t, foundArmour, "armour not broken on an 8 vs armour 8")
}

// A single MOVE whose path crosses two separately-threatened squares
// must only ever spend its Dodge skill reroll once: the second failed
// dodge in the same action must fall through to a team reroll (or
// stand), never reuse the skill reroll spec.md §4.4 point 1 caps at
// one per action.
func TestMoveWithTwoDodgesOnlyUsesSkillRerollOnce(t *testing.T) {
	g := state.GameState{
		Phase:      state.PhasePlay,
		Half:       1,
		ActiveTeam: "home",
		HomeTeam:   state.Team{Rerolls: 0},
		AwayTeam:   state.Team{},
		Players: map[string]state.Player{
			"h1": mover("h1", "home", geometry.Position{X: 5, Y: 5}, skills.NewSet(skills.Dodge)),
			"a1": mover("a1", "away", geometry.Position{X: 6, Y: 5}, nil),
			// Fillers wall off every neighbor except the straight
			// corridor south, so the pathfinder cannot detour around
			// a1's threat to avoid the second dodge.
			"f1": mover("f1", "home", geometry.Position{X: 4, Y: 4}, nil),
			"f2": mover("f2", "home", geometry.Position{X: 5, Y: 4}, nil),
			"f3": mover("f3", "home", geometry.Position{X: 6, Y: 4}, nil),
			"f4": mover("f4", "home", geometry.Position{X: 4, Y: 5}, nil),
			"f5": mover("f5", "home", geometry.Position{X: 4, Y: 6}, nil),
			"f6": mover("f6", "home", geometry.Position{X: 6, Y: 6}, nil),
			"f7": mover("f7", "home", geometry.Position{X: 4, Y: 7}, nil),
			"f8": mover("f8", "home", geometry.Position{X: 6, Y: 7}, nil),
		},
	}
	// a1 at (6,5) is adjacent to both (5,5) and (5,6), so
	// leaving either square on the way to (5,7) requires its own dodge
	// — two separate dodges in the same MOVE. target = 7-3+1 = 5.
	// Step 1: roll 2 fails, Dodge skill reroll grants a 5 -> success.
	// Step 2: roll 2 fails again; the skill reroll must not be offered
	// a second time, and with no team rerolls left the dodge stands
	// failed.
	d := dice.NewScriptedSource([]int{2, 5, 2}, nil, nil, nil)
	res := Resolve(g, rules.ActionMove, Params{PlayerID: "h1", X: 5, Y: 7}, deps(d))

	require.True(t, res.Success)
	assert.True(t, res.Turnover)
	assert.Equal(t, geometry.Position{X: 5, Y: 7}, *res.State.Players["h1"].Position, "knocked prone at the destination of the failed second dodge")
	assert.Equal(t, state.Prone, res.State.Players["h1"].Condition)

	rerollEvents := 0
	for _, ev := range res.Events {
		if ev.Type == state.EventReroll {
			rerollEvents++
			assert.Equal(t, string(skills.Dodge), ev.Data["source"])
		}
	}
	assert.Equal(t, 1, rerollEvents, "the Dodge skill reroll must be offered at most once per action")
}

// An invariant violation is an engine bug, not user error: Resolve
// must panic at the boundary rather than silently return corrupted
// state, per spec.md §7's InvalidInvariant policy.
func TestResolvePanicsOnInvariantViolation(t *testing.T) {
	pos := geometry.Position{X: 5, Y: 5}
	g := state.GameState{
		Phase:      state.PhasePlay,
		Half:       1,
		ActiveTeam: "home",
		HomeTeam:   state.Team{TurnNumber: 1},
		AwayTeam:   state.Team{TurnNumber: 1},
		Players: map[string]state.Player{
			"h1": mover("h1", "home", pos, nil),
			// a1 occupies the exact same square as h1: a duplicate
			// on-pitch position, which survives an EndTurn's flag reset.
			"a1": mover("a1", "away", pos, nil),
		},
	}
	d := dice.NewScriptedSource(nil, nil, nil, nil)
	assert.Panics(t, func() {
		Resolve(g, rules.ActionEndTurn, Params{}, deps(d))
	})
}

func TestIllegalMoveWhenNotActiveTeam(t *testing.T) {
	g := state.GameState{
		Phase:      state.PhasePlay,
		Half:       1,
		ActiveTeam: "away",
		Players: map[string]state.Player{
			"h1": mover("h1", "home", geometry.Position{X: 5, Y: 5}, nil),
		},
	}
	d := dice.NewScriptedSource(nil, nil, nil, nil)
	res := Resolve(g, rules.ActionMove, Params{PlayerID: "h1", X: 5, Y: 6}, deps(d))
	assert.False(t, res.Success)
	assert.Empty(t, res.Events)
	require.Error(t, res.Err)
	var illegalErr *rules.IllegalActionError
	assert.ErrorAs(t, res.Err, &illegalErr)
	assert.Equal(t, rules.ActionMove, illegalErr.Action)
}

func TestEndTurnAdvancesActiveTeam(t *testing.T) {
	g := state.GameState{
		Phase:      state.PhasePlay,
		Half:       1,
		ActiveTeam: "home",
		HomeTeam:   state.Team{TurnNumber: 1},
		AwayTeam:   state.Team{TurnNumber: 1},
		Players:    map[string]state.Player{},
	}
	d := dice.NewScriptedSource(nil, nil, nil, nil)
	res := Resolve(g, rules.ActionEndTurn, Params{}, deps(d))
	assert.True(t, res.Success)
	assert.Equal(t, "away", res.State.ActiveTeam)
}
