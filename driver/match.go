// Package driver implements the headless CLI driver: it loops a pair
// of Coach implementations against the engine to completion, applying
// the safety valves spec.md §5 assigns to the driver rather than the
// engine (2000-action match cap, 50-action turn cap with an auto
// END_TURN), and reports a per-match MatchResult. Grounded in
// simulation.RunSingleGame's turn-loop shape, generalized from a
// single-switch AI dispatch to the Coach interface.
package driver

import (
	"fmt"

	"github.com/huddlesim/gridiron/action"
	"github.com/huddlesim/gridiron/coach"
	"github.com/huddlesim/gridiron/dice"
	"github.com/huddlesim/gridiron/eventlog"
	"github.com/huddlesim/gridiron/gameflow"
	"github.com/huddlesim/gridiron/injury"
	"github.com/huddlesim/gridiron/kickoff"
	"github.com/huddlesim/gridiron/rules"
	"github.com/huddlesim/gridiron/state"
	"go.uber.org/zap"
)

// MaxActionsPerMatch and MaxActionsPerTurn are the driver-level safety
// valves spec.md §5 calls for; the engine itself has no such limit.
const (
	MaxActionsPerMatch = 2000
	MaxActionsPerTurn  = 50
)

// MatchResult is one match's outcome, the per-match unit cmd/gridiron
// aggregates into its final summary.
type MatchResult struct {
	HomeScore int    `json:"homeScore"`
	AwayScore int    `json:"awayScore"`
	Turns     int    `json:"turns"`
	Actions   int    `json:"actions"`
	Outcome   string `json:"outcome"` // "home", "away", "draw"
}

// Config bundles everything one RunMatch call needs.
type Config struct {
	HomeCoach coach.Coach
	AwayCoach coach.Coach
	HomeRace  string
	AwayRace  string
	Seed      int64
	MatchID   string
	Logger    eventlog.GameLogger // may be nil
	Zap       *zap.SugaredLogger  // may be nil
}

// RunMatch plays one complete match from a fresh roster to
// game_over, returning the final score. Coach panics are recovered per
// spec.md §7's CoachError policy: logged, the acting side's turn is
// forced to end, and the match continues. Panics raised by the engine
// itself (action.Resolve's invariant check) are not recovered.
func RunMatch(cfg Config) MatchResult {
	d := dice.NewPRNGSource(cfg.Seed)
	g := newInitialState(cfg)

	actions := 0
	actionsThisTurn := 0
	iterations := 0
	const maxIterations = MaxActionsPerMatch * 2

	for g.Phase != state.PhaseGameOver && actions < MaxActionsPerMatch && iterations < maxIterations {
		iterations++
		switch g.Phase {
		case state.PhaseSetup:
			g = runSetup(g, cfg, d)
			continue
		case state.PhaseHalfTime:
			res := gameflow.HalfTime(g, d)
			g = res.State
			logTurn(cfg, g, res.Events)
			continue
		}

		deps := action.Deps{Dice: d, Reroll: activeCoach(cfg, g), Apothecary: apothecaryFor(cfg)}
		side := g.ActiveTeam
		available := rules.AvailableActions(g)
		if len(available) == 0 {
			res := action.Resolve(g, rules.ActionEndTurn, action.Params{}, deps)
			g = res.State
			logTurn(cfg, g, res.Events)
			actionsThisTurn = 0
			continue
		}

		kind, params := decideWithRecovery(cfg, g, side, available)
		res := action.Resolve(g, kind, params, deps)
		g = res.State
		logTurn(cfg, g, res.Events)

		actions++
		actionsThisTurn++
		if kind == rules.ActionEndTurn {
			actionsThisTurn = 0
		} else if actionsThisTurn >= MaxActionsPerTurn {
			forced := action.Resolve(g, rules.ActionEndTurn, action.Params{}, deps)
			g = forced.State
			logTurn(cfg, g, forced.Events)
			actionsThisTurn = 0
		}
	}

	if cfg.Logger != nil {
		_ = cfg.Logger.Close()
	}

	outcome := "draw"
	if g.HomeTeam.Score > g.AwayTeam.Score {
		outcome = "home"
	} else if g.AwayTeam.Score > g.HomeTeam.Score {
		outcome = "away"
	}
	return MatchResult{
		HomeScore: g.HomeTeam.Score,
		AwayScore: g.AwayTeam.Score,
		Turns:     g.HomeTeam.TurnNumber + g.AwayTeam.TurnNumber,
		Actions:   actions,
		Outcome:   outcome,
	}
}

// decideWithRecovery calls the active coach, recovering a panic as a
// CoachError: the turn is forced to end and play continues, per
// spec.md §7.
func decideWithRecovery(cfg Config, g state.GameState, side string, available []rules.Action) (kind rules.Action, params action.Params) {
	defer func() {
		if r := recover(); r != nil {
			if cfg.Zap != nil {
				cfg.Zap.Errorw("coach panicked, forcing end turn", "side", side, "recover", r)
			}
			kind, params = rules.ActionEndTurn, action.Params{}
		}
	}()
	c := cfg.HomeCoach
	if side == "away" {
		c = cfg.AwayCoach
	}
	return c.DecideAction(g, side, available)
}

func activeCoach(cfg Config, g state.GameState) coach.Coach {
	if g.ActiveTeam == "away" {
		return cfg.AwayCoach
	}
	return cfg.HomeCoach
}

// apothecaryFor dispatches by the injured player's own team side —
// never by whichever side is active — since a single BothDown block
// or foul can injure either side's player.
func apothecaryFor(cfg Config) injury.Lookup {
	return func(teamSide string) injury.ApothecaryDecider {
		if teamSide == "away" {
			return cfg.AwayCoach
		}
		return cfg.HomeCoach
	}
}

func logTurn(cfg Config, g state.GameState, events []state.Event) {
	if cfg.Logger == nil || len(events) == 0 {
		return
	}
	turnNumber := g.TeamBySide(g.ActiveTeam).TurnNumber
	if err := cfg.Logger.LogTurn(cfg.MatchID, turnNumber, events); err != nil && cfg.Zap != nil {
		cfg.Zap.Warnw("failed to log turn", "error", err)
	}
}

// runSetup places both rosters (only the side with no on-pitch
// players needs it — a fresh match or a post-touchdown/half-time
// reset) and resolves the kickoff, landing in play with the receiving
// side active.
func runSetup(g state.GameState, cfg Config, d dice.Source) state.GameState {
	if len(g.OnPitchPlayers("home")) == 0 {
		g = cfg.HomeCoach.SetupFormation(g, "home")
	}
	if len(g.OnPitchPlayers("away")) == 0 {
		g = cfg.AwayCoach.SetupFormation(g, "away")
	}

	deps := action.Deps{Dice: d, Reroll: cfg.HomeCoach, Apothecary: apothecaryFor(cfg)}
	endRes := action.Resolve(g, rules.ActionEndSetup, action.Params{}, deps)
	g = endRes.State

	kickX, kickY := 6, 7
	if g.KickingTeam == "away" {
		kickX = 19
	}
	kres := kickoff.Resolve(g, kickX, kickY, d)
	g = kres.State
	g = g.WithActiveTeam(state.OtherSide(g.KickingTeam))
	return g
}

func newInitialState(cfg Config) state.GameState {
	players := map[string]state.Player{}
	for id, p := range NewRoster(cfg.HomeRace, "home") {
		players[id] = p
	}
	for id, p := range NewRoster(cfg.AwayRace, "away") {
		players[id] = p
	}

	kickingTeam := "home"
	if cfg.Seed%2 != 0 {
		kickingTeam = "away"
	}

	return state.GameState{
		MatchID:     cfg.MatchID,
		Half:        1,
		Phase:       state.PhaseSetup,
		ActiveTeam:  "home",
		HomeTeam:    state.Team{TeamID: "home", Name: fmt.Sprintf("%s Home", cfg.HomeRace), Race: cfg.HomeRace, Side: "home", Rerolls: 3, HasApothecary: true, TurnNumber: 1},
		AwayTeam:    state.Team{TeamID: "away", Name: fmt.Sprintf("%s Away", cfg.AwayRace), Race: cfg.AwayRace, Side: "away", Rerolls: 3, HasApothecary: true, TurnNumber: 1},
		Players:     players,
		Ball:        state.OffPitchBall(),
		KickingTeam: kickingTeam,
		Weather:     state.WeatherNice,
	}
}
