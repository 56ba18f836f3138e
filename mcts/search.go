package mcts

import (
	"math/rand"

	"github.com/huddlesim/gridiron/action"
	"github.com/huddlesim/gridiron/dice"
	"github.com/huddlesim/gridiron/injury"
	"github.com/huddlesim/gridiron/reroll"
	"github.com/huddlesim/gridiron/rules"
	"github.com/huddlesim/gridiron/state"
)

// DefaultExplorationParam is the conventional UCB1 constant, sqrt(2).
const DefaultExplorationParam = 1.414

// Search runs iterations rounds of select/expand/simulate/backpropagate
// from g with side to decide, and returns the most-visited root child's
// action. d supplies the dice rolls action.Resolve consumes along both
// the real tree-building path and the random playouts; rng only orders
// the playouts' random move choices, kept separate from d so rollout
// exploration never perturbs the engine's own dice stream.
func Search(g state.GameState, side string, d dice.Source, rng *rand.Rand, iterations int, explorationParam float64) (rules.Action, action.Params) {
	if explorationParam == 0 {
		explorationParam = DefaultExplorationParam
	}

	root := getNode()
	defer putNode(root)
	root.State = g
	root.RootSide = side
	root.UntriedMoves = legalChoices(g, side)

	for i := 0; i < iterations; i++ {
		node := root
		for !node.isTerminal() && node.isFullyExpanded() && len(node.Children) > 0 {
			next := node.bestChild(explorationParam)
			if next == nil {
				break
			}
			node = next
		}

		if !node.isTerminal() && len(node.UntriedMoves) > 0 {
			node = expand(node, d, rng)
		}

		winner := simulate(node.State, side, d, rng)
		backpropagate(node, winner)
	}

	best := root.mostVisitedChild()
	if best == nil || best.Move == nil {
		if len(root.UntriedMoves) > 0 {
			return root.UntriedMoves[0].Kind, root.UntriedMoves[0].Params
		}
		return rules.ActionEndTurn, action.Params{}
	}
	return best.Move.Kind, best.Move.Params
}

func expand(node *Node, d dice.Source, rng *rand.Rand) *Node {
	idx := rng.Intn(len(node.UntriedMoves))
	choice := node.UntriedMoves[idx]
	node.UntriedMoves[idx] = node.UntriedMoves[len(node.UntriedMoves)-1]
	node.UntriedMoves = node.UntriedMoves[:len(node.UntriedMoves)-1]

	res := action.Resolve(node.State, choice.Kind, choice.Params, rolloutDeps(d))
	turnSide := node.RootSide

	child := getNode()
	child.State = res.State
	child.Move = &choice
	child.Parent = node
	child.RootSide = turnSide
	child.UntriedMoves = legalChoices(res.State, res.State.ActiveTeam)
	node.Children = append(node.Children, child)
	return child
}

// simulate plays random legal actions from g until the match ends or a
// turn budget is exhausted, returning 1 if side eventually leads on the
// scoreboard, 0 if it trails, and 0.5 for a tie — playing the stand-in
// for the teacher's CheckWinConditions/ApplyMove rollout loop.
func simulate(g state.GameState, side string, d dice.Source, rng *rand.Rand) float64 {
	const maxRolloutActions = 60
	for i := 0; i < maxRolloutActions && g.Phase != state.PhaseGameOver; i++ {
		choices := legalChoices(g, g.ActiveTeam)
		if len(choices) == 0 {
			break
		}
		choice := choices[rng.Intn(len(choices))]
		res := action.Resolve(g, choice.Kind, choice.Params, rolloutDeps(d))
		g = res.State
	}

	home := g.HomeTeam.Score
	away := g.AwayTeam.Score
	switch {
	case home == away:
		return 0.5
	case (side == "home") == (home > away):
		return 1
	default:
		return 0
	}
}

func backpropagate(node *Node, result float64) {
	for node != nil {
		node.Visits++
		node.Wins += result
		node = node.Parent
	}
}

func rolloutDeps(d dice.Source) action.Deps {
	return action.Deps{Dice: d, Reroll: reroll.AutoAccept{}, Apothecary: injury.Always(injury.NeverUse{})}
}

// legalChoices enumerates every concrete (kind, params) action the
// active side can submit right now, mirroring coach.Random's candidate
// enumeration so the search tree's branching factor matches what a
// Coach would actually be offered.
func legalChoices(g state.GameState, side string) []Choice {
	if g.Phase != state.PhasePlay || side == "" {
		return nil
	}
	out := []Choice{{Kind: rules.ActionEndTurn, Params: action.Params{}}}
	for _, p := range g.OnPitchPlayers(side) {
		for _, m := range rules.ValidMovesFor(g, p.ID) {
			out = append(out, Choice{Kind: rules.ActionMove, Params: action.Params{PlayerID: p.ID, X: m.X, Y: m.Y}})
		}
		for _, targetID := range rules.BlockTargetsFor(g, p.ID) {
			out = append(out, Choice{Kind: rules.ActionBlock, Params: action.Params{PlayerID: p.ID, TargetID: targetID}})
			if !g.TeamBySide(side).BlitzUsedThisTurn {
				out = append(out, Choice{Kind: rules.ActionBlitz, Params: action.Params{PlayerID: p.ID, TargetID: targetID}})
			}
		}
		for _, target := range rules.PassTargetsFor(g, p.ID) {
			out = append(out, Choice{Kind: rules.ActionPass, Params: action.Params{PlayerID: p.ID, TargetX: target.X, TargetY: target.Y}})
		}
		for _, targetID := range rules.HandoffTargetsFor(g, p.ID) {
			out = append(out, Choice{Kind: rules.ActionHandOff, Params: action.Params{PlayerID: p.ID, TargetID: targetID}})
		}
		for _, targetID := range rules.FoulTargetsFor(g, p.ID) {
			out = append(out, Choice{Kind: rules.ActionFoul, Params: action.Params{PlayerID: p.ID, TargetID: targetID}})
		}
	}
	return out
}
