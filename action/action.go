// Package action implements the top-level resolver: resolve(state,
// action, params) -> ActionResult. It validates legality up front,
// dispatches to the matching sub-resolver, then runs the post-hooks
// spec.md §4.13 requires in order: touchdown check, turnover
// handling, phase transitions, player flag bookkeeping.
package action

import (
	"github.com/huddlesim/gridiron/ball"
	"github.com/huddlesim/gridiron/block"
	"github.com/huddlesim/gridiron/dice"
	"github.com/huddlesim/gridiron/gameflow"
	"github.com/huddlesim/gridiron/geometry"
	"github.com/huddlesim/gridiron/injury"
	"github.com/huddlesim/gridiron/pass"
	"github.com/huddlesim/gridiron/pathfinder"
	"github.com/huddlesim/gridiron/reroll"
	"github.com/huddlesim/gridiron/rules"
	"github.com/huddlesim/gridiron/skills"
	"github.com/huddlesim/gridiron/state"
	"github.com/huddlesim/gridiron/tacklezone"
)

// Kind is the requested top-level action, mirroring rules.Action.
type Kind = rules.Action

// Params is the small, per-action field bag spec.md §6's request
// payload table describes. Unused fields for a given Kind are zero.
type Params struct {
	PlayerID string
	X, Y     int
	TargetID string
	TargetID2 string
	TargetX, TargetY int
}

// Result is what resolve returns: the new state, whether the action
// itself succeeded, whether it produced a turnover, and the ordered
// events emitted along the way. Err is populated only on failure, with
// a *rules.IllegalActionError per spec.md §7's IllegalAction policy.
type Result struct {
	State    state.GameState
	Success  bool
	Turnover bool
	Events   []state.Event
	Err      error
}

// illegal builds the unmutated, no-event failure spec.md §7's
// IllegalAction policy calls for: recoverable, no state change.
func illegal(g state.GameState, act Kind, reason string) Result {
	return Result{State: g, Success: false, Turnover: false, Events: nil, Err: rules.NewIllegalAction(act, reason)}
}

// Deps bundles the collaborators a full resolve call needs beyond the
// dice stream itself: the team-reroll decider and the apothecary
// dispatcher, both ultimately backed by a Coach. Apothecary is a
// Lookup rather than a single decider because one action (a BothDown
// block, a foul) can injure a player on either team, and spec.md
// §4.10 gives that choice to the injured player's own side.
type Deps struct {
	Dice       dice.Source
	Reroll     reroll.TeamRerollDecider
	Apothecary injury.Lookup
}

// Resolve dispatches action against g with params, runs the shared
// post-hooks, then validates the global invariants spec.md §3/§8
// require to hold after every transition. A violation is an engine
// bug, not user error, so it panics here at the boundary rather than
// returning a recoverable error.
func Resolve(g state.GameState, act Kind, p Params, deps Deps) Result {
	var res Result
	switch act {
	case rules.ActionSetupPlayer:
		res = resolveSetupPlayer(g, p)
	case rules.ActionEndSetup:
		res = resolveEndSetup(g)
	case rules.ActionMove:
		res = resolveMove(g, p, deps)
	case rules.ActionBlock:
		res = resolveBlock(g, p, deps, false)
	case rules.ActionBlitz:
		res = resolveBlock(g, p, deps, true)
	case rules.ActionMultipleBlock:
		res = resolveMultipleBlock(g, p, deps)
	case rules.ActionPass:
		res = resolvePass(g, p, deps)
	case rules.ActionHandOff:
		res = resolveHandOff(g, p, deps)
	case rules.ActionFoul:
		res = resolveFoul(g, p, deps)
	case rules.ActionEndTurn:
		res = resolveEndTurn(g)
	default:
		return illegal(g, act, "unknown action kind")
	}

	res = runPostHooks(g, res, p)
	if res.Err == nil {
		if err := state.CheckInvariants(res.State); err != nil {
			panic(err)
		}
	}
	return res
}

// runPostHooks applies, in order: touchdown check, then turnover
// handling. Phase transitions are already folded in by gameflow for the
// actions that need them, and the acting player's per-action flags are
// set by the sub-resolvers themselves.
func runPostHooks(before state.GameState, res Result, p Params) Result {
	if !res.Success && !res.Turnover {
		return res
	}

	if carrierID, ok := gameflow.IsTouchdown(res.State); ok {
		td := gameflow.Touchdown(res.State, carrierID)
		res.State = td.State
		res.Events = append(res.Events, td.Events...)
		return res
	}

	if res.Turnover {
		to := gameflow.Turnover(res.State)
		res.State = to.State
		res.Events = append(res.Events, to.Events...)
	}

	return res
}

func resolveSetupPlayer(g state.GameState, p Params) Result {
	if g.Phase != state.PhaseSetup {
		return illegal(g, rules.ActionSetupPlayer, "not in setup phase")
	}
	player, ok := g.Players[p.PlayerID]
	if !ok {
		return illegal(g, rules.ActionSetupPlayer, "unknown player")
	}
	pos := geometry.Position{X: p.X, Y: p.Y}
	if !pos.InPitch() {
		return illegal(g, rules.ActionSetupPlayer, "position off pitch")
	}
	if _, occupied := g.PlayerAt(pos); occupied {
		return illegal(g, rules.ActionSetupPlayer, "square occupied")
	}
	g = g.WithPlayer(p.PlayerID, player.WithCondition(state.Standing).WithPosition(&pos))
	return Result{State: g, Success: true, Events: []state.Event{
		state.NewEvent("setup_player", "player placed", map[string]interface{}{"playerId": p.PlayerID, "x": p.X, "y": p.Y}),
	}}
}

func resolveEndSetup(g state.GameState) Result {
	if g.Phase != state.PhaseSetup {
		return illegal(g, rules.ActionEndSetup, "not in setup phase")
	}
	g = g.WithPhase(state.PhasePlay)
	return Result{State: g, Success: true, Events: []state.Event{state.NewEvent("end_setup", "setup complete", nil)}}
}

func resolveMove(g state.GameState, p Params, deps Deps) Result {
	player, ok := g.Players[p.PlayerID]
	if !ok || !player.OnPitch() || player.TeamSide != g.ActiveTeam || player.Flags.HasMoved {
		return illegal(g, rules.ActionMove, "player not eligible to move")
	}
	if player.Condition != state.Standing && player.Condition != state.Prone {
		return illegal(g, rules.ActionMove, "player not standing or prone")
	}
	target := geometry.Position{X: p.X, Y: p.Y}
	if !target.InPitch() {
		return illegal(g, rules.ActionMove, "target off pitch")
	}

	events := []state.Event{}
	movementBudget := player.Flags.MovementRemaining
	if player.Condition == state.Prone {
		if movementBudget < 3 {
			return illegal(g, rules.ActionMove, "insufficient movement to stand up")
		}
		movementBudget -= 3
		player = player.WithCondition(state.Standing)
	}

	path, ok := pathfinder.Find(g, *player.Position, target, movementBudget, player.TeamSide)
	if !ok {
		return illegal(g, rules.ActionMove, "no path within movement budget")
	}

	turnover := false
	stepsTaken := 0
	// usedSkillReroll tracks, across every dodge/GFI/pickup roll this
	// single MOVE makes, whether a skill reroll has already been spent
	// this action — spec.md §4.4 point 1 allows at most one.
	usedSkillReroll := false
	for _, step := range path {
		if step.RequiresDodge {
			var success bool
			var ev []state.Event
			success, ev, g, usedSkillReroll = rollDodge(g, player, deps, usedSkillReroll)
			events = append(events, ev...)
			player = g.Players[p.PlayerID]
			if !success {
				player = player.WithCondition(state.Prone).WithPosition(&step.Position)
				g = g.WithPlayer(p.PlayerID, player)
				if g.Ball.IsHeldBy(p.PlayerID) {
					dropRes := ball.Drop(g, p.PlayerID, deps.Dice, deps.Reroll, usedSkillReroll)
					g = dropRes.State
					events = append(events, dropRes.Events...)
					usedSkillReroll = dropRes.UsedSkillReroll
				}
				turnover = true
				stepsTaken++
				break
			}
		}

		if step.RequiresGFI {
			gfiTarget := 2
			if g.Weather == state.WeatherBlizzard {
				gfiTarget = 3
			}
			roll := deps.Dice.RollD6()
			fail := roll < gfiTarget
			if fail {
				dec, newTeam := reroll.Arbitrate(deps.Dice, player.Skills, skills.RollGFI, g.TeamBySide(player.TeamSide), true, usedSkillReroll, player.Flags.ProUsedThisTurn, deps.Reroll, reroll.Context{PlayerID: p.PlayerID, Team: player.TeamSide, Kind: skills.RollGFI})
				g = g.WithTeam(player.TeamSide, newTeam)
				if dec.Granted {
					events = append(events, state.NewEvent(state.EventReroll, "reroll: "+dec.Source, map[string]interface{}{"source": dec.Source, "rollKind": string(skills.RollGFI)}))
					if dec.Source != reroll.SourceTeam {
						usedSkillReroll = true
					}
					if dec.ProConsumed {
						player = player.WithProUsed()
						g = g.WithPlayer(p.PlayerID, player)
					}
					roll = deps.Dice.RollD6()
					fail = roll < gfiTarget
				}
			}
			events = append(events, state.NewEvent(state.EventGFI, "go for it", map[string]interface{}{"playerId": p.PlayerID, "roll": roll, "target": gfiTarget, "success": !fail}))
			if fail {
				player = player.WithCondition(state.Prone).WithPosition(&step.Position)
				g = g.WithPlayer(p.PlayerID, player)
				if g.Ball.IsHeldBy(p.PlayerID) {
					dropRes := ball.Drop(g, p.PlayerID, deps.Dice, deps.Reroll, usedSkillReroll)
					g = dropRes.State
					events = append(events, dropRes.Events...)
					usedSkillReroll = dropRes.UsedSkillReroll
				}
				turnover = true
				stepsTaken++
				break
			}
		}

		landedAt := step.Position
		player = player.WithPosition(&landedAt)
		g = g.WithPlayer(p.PlayerID, player)
		stepsTaken++
		events = append(events, state.NewEvent(state.EventMove, "step", map[string]interface{}{"playerId": p.PlayerID, "to": landedAt}))

		if g.Ball.Kind == state.BallOnGround && g.Ball.Position.Equal(landedAt) {
			pickupRes := ball.Pickup(g, p.PlayerID, deps.Dice, deps.Reroll, usedSkillReroll)
			g = pickupRes.State
			events = append(events, pickupRes.Events...)
			usedSkillReroll = pickupRes.UsedSkillReroll
			player = g.Players[p.PlayerID]
			if !pickupRes.Success {
				turnover = true
				break
			}
		}
	}

	player = g.Players[p.PlayerID]
	flags := player.Flags
	flags.HasMoved = true
	flags.MovementRemaining = movementBudget - stepsTaken
	if flags.MovementRemaining < 0 {
		flags.MovementRemaining = 0
	}
	g = g.WithPlayer(p.PlayerID, player.WithFlags(flags))

	return Result{State: g, Success: true, Turnover: turnover, Events: events}
}

// rollDodge rolls one dodge attempt and returns, alongside success and
// its events, the game state (team-reroll consumption included) and
// the usedSkillReroll flag updated if a skill reroll was spent here.
func rollDodge(g state.GameState, player state.Player, deps Deps, usedSkillReroll bool) (bool, []state.Event, state.GameState, bool) {
	tz := tacklezone.CountAt(g, *player.Position, player.TeamSide)
	modifier := 0
	if player.Skills.Has(skills.BreakTackle) {
		modifier++
	}
	target := clamp(7-player.Stats.Agility-modifier+tz, 2, 6)
	roll := deps.Dice.RollD6()
	events := []state.Event{}
	success := roll >= target

	if !success {
		dec, newTeam := reroll.Arbitrate(deps.Dice, player.Skills, skills.RollDodge, g.TeamBySide(player.TeamSide), true, usedSkillReroll, player.Flags.ProUsedThisTurn, deps.Reroll, reroll.Context{PlayerID: player.ID, Team: player.TeamSide, Kind: skills.RollDodge})
		g = g.WithTeam(player.TeamSide, newTeam)
		if dec.Granted {
			events = append(events, state.NewEvent(state.EventReroll, "reroll: "+dec.Source, map[string]interface{}{"source": dec.Source, "rollKind": string(skills.RollDodge)}))
			if dec.Source != reroll.SourceTeam {
				usedSkillReroll = true
			}
			if dec.ProConsumed {
				g = g.WithPlayer(player.ID, g.Players[player.ID].WithProUsed())
			}
			roll = deps.Dice.RollD6()
			success = roll >= target
		}
	}
	events = append(events, state.NewEvent(state.EventDodge, "dodge attempt", map[string]interface{}{
		"playerId": player.ID, "roll": roll, "target": target, "success": success,
	}))
	return success, events, g, usedSkillReroll
}

func resolveBlock(g state.GameState, p Params, deps Deps, blitz bool) Result {
	attacker, ok := g.Players[p.PlayerID]
	if !ok || attacker.Condition != state.Standing || attacker.TeamSide != g.ActiveTeam {
		return illegal(g, rules.ActionBlock, "attacker not eligible")
	}
	defender, ok := g.Players[p.TargetID]
	if !ok || defender.Condition != state.Standing || defender.TeamSide == attacker.TeamSide {
		return illegal(g, rules.ActionBlock, "defender not a standing enemy")
	}
	if !geometry.IsAdjacent(*attacker.Position, *defender.Position) {
		return illegal(g, rules.ActionBlock, "defender not adjacent")
	}
	if blitz && g.TeamBySide(attacker.TeamSide).BlitzUsedThisTurn {
		return illegal(g, rules.ActionBlitz, "blitz already used this turn")
	}

	res := block.Resolve(g, p.PlayerID, p.TargetID, deps.Dice, deps.Reroll, deps.Apothecary)
	g = res.State
	if blitz {
		team := g.TeamBySide(attacker.TeamSide)
		team.BlitzUsedThisTurn = true
		g = g.WithTeam(attacker.TeamSide, team)
	}
	player := g.Players[p.PlayerID]
	flags := player.Flags
	flags.HasActed = true
	g = g.WithPlayer(p.PlayerID, player.WithFlags(flags))

	return Result{State: g, Success: true, Turnover: res.Turnover, Events: res.Events}
}

func resolveMultipleBlock(g state.GameState, p Params, deps Deps) Result {
	attacker, ok := g.Players[p.PlayerID]
	if !ok || !attacker.Skills.Has(skills.MultipleBlock) {
		return illegal(g, rules.ActionMultipleBlock, "attacker lacks Multiple Block")
	}
	first := resolveBlock(g, p, deps, false)
	if !first.Success {
		return first
	}
	g = first.State
	second := resolveBlock(g, Params{PlayerID: p.PlayerID, TargetID: p.TargetID2}, deps, false)
	events := append(first.Events, second.Events...)
	return Result{State: second.State, Success: second.Success, Turnover: first.Turnover || second.Turnover, Events: events}
}

func resolvePass(g state.GameState, p Params, deps Deps) Result {
	thrower, ok := g.Players[p.PlayerID]
	if !ok || thrower.Condition != state.Standing || !g.Ball.IsHeldBy(p.PlayerID) || thrower.TeamSide != g.ActiveTeam {
		return illegal(g, rules.ActionPass, "thrower not eligible")
	}
	res := pass.Resolve(g, p.PlayerID, p.TargetX, p.TargetY, deps.Dice, deps.Reroll)
	team := g.TeamBySide(thrower.TeamSide)
	team.PassUsedThisTurn = true
	g = res.State.WithTeam(thrower.TeamSide, team)
	return Result{State: g, Success: true, Turnover: res.Turnover, Events: res.Events}
}

func resolveHandOff(g state.GameState, p Params, deps Deps) Result {
	giver, ok := g.Players[p.PlayerID]
	if !ok || giver.Condition != state.Standing || !g.Ball.IsHeldBy(p.PlayerID) || giver.TeamSide != g.ActiveTeam {
		return illegal(g, rules.ActionHandOff, "giver not eligible")
	}
	receiver, ok := g.Players[p.TargetID]
	if !ok || receiver.Condition != state.Standing || receiver.TeamSide != giver.TeamSide {
		return illegal(g, rules.ActionHandOff, "receiver not a standing teammate")
	}
	if !geometry.IsAdjacent(*giver.Position, *receiver.Position) {
		return illegal(g, rules.ActionHandOff, "receiver not adjacent")
	}
	g = g.WithBall(state.OnGroundBall(*receiver.Position))
	catchRes := ball.Catch(g, p.TargetID, true, deps.Dice, deps.Reroll, false)
	return Result{State: catchRes.State, Success: true, Turnover: !catchRes.Success, Events: catchRes.Events}
}

func resolveFoul(g state.GameState, p Params, deps Deps) Result {
	fouler, ok := g.Players[p.PlayerID]
	if !ok || fouler.Condition != state.Standing || fouler.TeamSide != g.ActiveTeam {
		return illegal(g, rules.ActionFoul, "fouler not eligible")
	}
	victim, ok := g.Players[p.TargetID]
	if !ok || (victim.Condition != state.Prone && victim.Condition != state.Stunned) {
		return illegal(g, rules.ActionFoul, "victim not down")
	}
	if g.TeamBySide(fouler.TeamSide).FoulUsedThisTurn {
		return illegal(g, rules.ActionFoul, "foul already used this turn")
	}
	team := g.TeamBySide(fouler.TeamSide)
	team.FoulUsedThisTurn = true
	g = g.WithTeam(fouler.TeamSide, team)

	var apoth injury.ApothecaryDecider
	if deps.Apothecary != nil {
		apoth = deps.Apothecary(victim.TeamSide)
	}
	injuryRes := injury.Resolve(g, p.TargetID, 0, 0, deps.Dice, apoth)
	g = injuryRes.State
	g = g.WithPlayer(p.TargetID, g.Players[p.TargetID].WithCondition(injuryRes.Outcome.Condition))

	return Result{State: g, Success: true, Turnover: false, Events: injuryRes.Events}
}

func resolveEndTurn(g state.GameState) Result {
	res := gameflow.EndTurn(g)
	return Result{State: res.State, Success: true, Turnover: false, Events: res.Events}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
