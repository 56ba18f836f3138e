package state

import "github.com/huddlesim/gridiron/geometry"

// Phase is one stage of the match lifecycle.
type Phase string

const (
	PhaseCoinToss  Phase = "coin_toss"
	PhaseSetup     Phase = "setup"
	PhaseKickoff   Phase = "kickoff"
	PhasePlay      Phase = "play"
	PhaseTouchdown Phase = "touchdown"
	PhaseHalfTime  Phase = "half_time"
	PhaseGameOver  Phase = "game_over"
)

// Weather is the match-wide weather roll; a Changing Weather kickoff
// result can replace it mid-match.
type Weather string

const (
	WeatherNice       Weather = "nice"
	WeatherSweltering Weather = "sweltering"
	WeatherVerySunny  Weather = "very_sunny"
	WeatherPouring    Weather = "pouring_rain"
	WeatherBlizzard   Weather = "blizzard"
)

// GameState is the complete, immutable state of one match. Every
// field is collectively immutable: transitions always produce a new
// GameState value via the With* methods below (spec.md §3).
type GameState struct {
	MatchID         string
	Half            int // 1 or 2
	Phase           Phase
	ActiveTeam      string // "home" or "away"
	HomeTeam        Team
	AwayTeam        Team
	Players         map[string]Player
	Ball            Ball
	TurnoverPending bool
	KickingTeam     string
	AITeam          string
	Weather         Weather
}

// OtherSide returns the side opposite s.
func OtherSide(s string) string {
	if s == "home" {
		return "away"
	}
	return "home"
}

// TeamBySide returns the Team value for side ("home"/"away").
func (g GameState) TeamBySide(side string) Team {
	if side == "home" {
		return g.HomeTeam
	}
	return g.AwayTeam
}

// WithTeam returns a copy of g with side's Team replaced.
func (g GameState) WithTeam(side string, t Team) GameState {
	ng := g
	if side == "home" {
		ng.HomeTeam = t
	} else {
		ng.AwayTeam = t
	}
	return ng
}

// WithPlayer returns a copy of g with player id's value replaced,
// copy-on-write over the player map.
func (g GameState) WithPlayer(id string, p Player) GameState {
	ng := g
	ng.Players = cloneWithPlayer(g.Players, id, p)
	return ng
}

// WithPlayers returns a copy of g with several players replaced at once,
// cloning the map once instead of once per player.
func (g GameState) WithPlayers(updates map[string]Player) GameState {
	ng := g
	np := make(map[string]Player, len(g.Players))
	for k, v := range g.Players {
		np[k] = v
	}
	for k, v := range updates {
		np[k] = v
	}
	ng.Players = np
	return ng
}

func cloneWithPlayer(src map[string]Player, id string, p Player) map[string]Player {
	dst := make(map[string]Player, len(src)+1)
	for k, v := range src {
		dst[k] = v
	}
	dst[id] = p
	return dst
}

// WithBall returns a copy of g with the ball replaced.
func (g GameState) WithBall(b Ball) GameState {
	ng := g
	ng.Ball = b
	return ng
}

// WithPhase returns a copy of g in phase p.
func (g GameState) WithPhase(p Phase) GameState {
	ng := g
	ng.Phase = p
	return ng
}

// WithActiveTeam returns a copy of g with the active side changed.
func (g GameState) WithActiveTeam(side string) GameState {
	ng := g
	ng.ActiveTeam = side
	return ng
}

// WithHalf returns a copy of g in the given half.
func (g GameState) WithHalf(half int) GameState {
	ng := g
	ng.Half = half
	return ng
}

// WithTurnoverPending returns a copy of g with the turnover flag set.
func (g GameState) WithTurnoverPending(pending bool) GameState {
	ng := g
	ng.TurnoverPending = pending
	return ng
}

// WithKickingTeam returns a copy of g with the kicking side changed.
func (g GameState) WithKickingTeam(side string) GameState {
	ng := g
	ng.KickingTeam = side
	return ng
}

// WithWeather returns a copy of g with the weather changed.
func (g GameState) WithWeather(w Weather) GameState {
	ng := g
	ng.Weather = w
	return ng
}

// OnPitchPlayers returns, in a stable id-sorted order, the players of
// side currently occupying a square.
func (g GameState) OnPitchPlayers(side string) []Player {
	out := make([]Player, 0, 11)
	for _, id := range g.sortedPlayerIDs() {
		p := g.Players[id]
		if p.TeamSide == side && p.OnPitch() {
			out = append(out, p)
		}
	}
	return out
}

// PlayerAt returns the on-pitch player occupying pos, if any.
func (g GameState) PlayerAt(pos geometry.Position) (Player, bool) {
	for _, id := range g.sortedPlayerIDs() {
		p := g.Players[id]
		if p.OnPitch() && p.Position.Equal(pos) {
			return p, true
		}
	}
	return Player{}, false
}

// sortedPlayerIDs gives a deterministic iteration order over the
// player map, since spec.md says map key order is irrelevant to state
// equality but callers still need a reproducible scan order (e.g. for
// interceptor tie-breaking and invariant checks).
func (g GameState) sortedPlayerIDs() []string {
	ids := make([]string, 0, len(g.Players))
	for id := range g.Players {
		ids = append(ids, id)
	}
	insertionSortStrings(ids)
	return ids
}

func insertionSortStrings(s []string) {
	for i := 1; i < len(s); i++ {
		for j := i; j > 0 && s[j-1] > s[j]; j-- {
			s[j-1], s[j] = s[j], s[j-1]
		}
	}
}
