package driver

import (
	"testing"

	"github.com/huddlesim/gridiron/coach"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunMatchReachesGameOver(t *testing.T) {
	cfg := Config{
		HomeCoach: coach.NewRandom(1),
		AwayCoach: coach.NewRandom(2),
		HomeRace:  "human",
		AwayRace:  "orc",
		Seed:      42,
		MatchID:   "test-match",
	}
	result := RunMatch(cfg)

	require.Contains(t, []string{"home", "away", "draw"}, result.Outcome)
	assert.GreaterOrEqual(t, result.HomeScore, 0)
	assert.GreaterOrEqual(t, result.AwayScore, 0)
	assert.LessOrEqual(t, result.Actions, MaxActionsPerMatch)
}

func TestRunMatchIsDeterministicForFixedSeed(t *testing.T) {
	newCfg := func() Config {
		return Config{
			HomeCoach: coach.NewRandom(7),
			AwayCoach: coach.NewRandom(8),
			HomeRace:  "human",
			AwayRace:  "skaven",
			Seed:      99,
			MatchID:   "deterministic-match",
		}
	}
	a := RunMatch(newCfg())
	b := RunMatch(newCfg())
	assert.Equal(t, a, b)
}

func TestNewRosterBuildsElevenPlayers(t *testing.T) {
	roster := NewRoster("orc", "home")
	assert.Len(t, roster, 11)
	for _, p := range roster {
		assert.Equal(t, "home", p.TeamSide)
	}
}

func TestNewRosterFallsBackToDefaultForUnknownRace(t *testing.T) {
	roster := NewRoster("lizardmen-mystery", "away")
	assert.Len(t, roster, 11)
}
