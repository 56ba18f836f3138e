package driver

import (
	"fmt"

	"github.com/huddlesim/gridiron/skills"
	"github.com/huddlesim/gridiron/state"
)

// raceTemplate is a roster's per-player base stats and skill, fixed
// across the 11 numbered slots a race fields. Kept deliberately small
// (three archetypes) rather than a full roster book, since spec.md's
// data model only names race as a TeamState string, not a stat table.
type raceTemplate struct {
	linemanStats state.Stats
	eliteStats   state.Stats
	eliteSkill   skills.Skill
	eliteCount   int
}

var raceTemplates = map[string]raceTemplate{
	"human": {
		linemanStats: state.Stats{Movement: 6, Strength: 3, Agility: 3, Armour: 8},
		eliteStats:   state.Stats{Movement: 7, Strength: 3, Agility: 4, Armour: 7},
		eliteSkill:   skills.Catch,
		eliteCount:   4,
	},
	"orc": {
		linemanStats: state.Stats{Movement: 5, Strength: 3, Agility: 3, Armour: 9},
		eliteStats:   state.Stats{Movement: 5, Strength: 4, Agility: 2, Armour: 9},
		eliteSkill:   skills.Block,
		eliteCount:   4,
	},
	"skaven": {
		linemanStats: state.Stats{Movement: 7, Strength: 3, Agility: 3, Armour: 7},
		eliteStats:   state.Stats{Movement: 9, Strength: 2, Agility: 3, Armour: 7},
		eliteSkill:   skills.Dodge,
		eliteCount:   2,
	},
}

// defaultTemplate is used for any race name not in raceTemplates, so
// an unrecognized -home-race/-away-race flag still produces a legal
// 11-player roster instead of failing the match.
var defaultTemplate = raceTemplates["human"]

func templateFor(race string) raceTemplate {
	if t, ok := raceTemplates[race]; ok {
		return t
	}
	return defaultTemplate
}

// NewRoster builds 11 reserve (off-pitch) players for side, flavored
// by race: the first eliteCount carry the race's signature skill and
// elite stat line, the rest are plain linemen.
func NewRoster(race, side string) map[string]state.Player {
	t := templateFor(race)
	players := make(map[string]state.Player, 11)
	for n := 1; n <= 11; n++ {
		id := fmt.Sprintf("%s-%d", side, n)
		stats := t.linemanStats
		positional := "Lineman"
		sk := skills.Set{}
		if n <= t.eliteCount {
			stats = t.eliteStats
			positional = string(t.eliteSkill)
			sk = skills.NewSet(t.eliteSkill)
		}
		players[id] = state.Player{
			ID:             id,
			TeamSide:       side,
			Name:           fmt.Sprintf("%s #%d", race, n),
			Number:         n,
			PositionalName: positional,
			Stats:          stats,
			Skills:         sk,
			Condition:      state.OffPitch,
			Flags:          state.Flags{MovementRemaining: stats.Movement},
		}
	}
	return players
}
