// Package mcts adapts the teacher's card-game Monte Carlo tree search
// (UCB1 selection over a pooled node tree) onto the tactical engine's
// own state/action types: a node's "move" is a (rules.Action,
// action.Params) pair applied via action.Resolve instead of the
// teacher's engine.ApplyMove over a bytecode genome.
package mcts

import (
	"math"
	"sync"

	"github.com/huddlesim/gridiron/action"
	"github.com/huddlesim/gridiron/rules"
	"github.com/huddlesim/gridiron/state"
)

// Choice is one legal (kind, params) action a node can expand into.
type Choice struct {
	Kind   rules.Action
	Params action.Params
}

// Node is one position in the search tree: the state reached after
// Move was applied to Parent's state, rooted at RootSide's turn to
// decide.
type Node struct {
	State        state.GameState
	Move         *Choice
	Parent       *Node
	Children     []*Node
	Visits       int
	Wins         float64
	UntriedMoves []Choice
	RootSide     string
}

var nodePool = sync.Pool{
	New: func() interface{} {
		return &Node{
			Children:     make([]*Node, 0, 8),
			UntriedMoves: make([]Choice, 0, 16),
		}
	},
}

func getNode() *Node {
	n := nodePool.Get().(*Node)
	n.reset()
	return n
}

func putNode(n *Node) {
	if n == nil {
		return
	}
	for _, child := range n.Children {
		putNode(child)
	}
	nodePool.Put(n)
}

func (n *Node) reset() {
	n.State = state.GameState{}
	n.Move = nil
	n.Parent = nil
	n.Children = n.Children[:0]
	n.Visits = 0
	n.Wins = 0
	n.UntriedMoves = n.UntriedMoves[:0]
	n.RootSide = ""
}

// ucb1 is the Upper Confidence Bound for Trees score used to balance
// exploitation of known-good children against exploring untried ones.
func (n *Node) ucb1(explorationParam float64) float64 {
	if n.Visits == 0 {
		return math.Inf(1)
	}
	exploitation := n.Wins / float64(n.Visits)
	exploration := explorationParam * math.Sqrt(math.Log(float64(n.Parent.Visits))/float64(n.Visits))
	return exploitation + exploration
}

func (n *Node) bestChild(explorationParam float64) *Node {
	if len(n.Children) == 0 {
		return nil
	}
	best := n.Children[0]
	bestVal := best.ucb1(explorationParam)
	for _, child := range n.Children[1:] {
		if v := child.ucb1(explorationParam); v > bestVal {
			best, bestVal = child, v
		}
	}
	return best
}

func (n *Node) mostVisitedChild() *Node {
	if len(n.Children) == 0 {
		return nil
	}
	best := n.Children[0]
	for _, child := range n.Children[1:] {
		if child.Visits > best.Visits {
			best = child
		}
	}
	return best
}

func (n *Node) isFullyExpanded() bool {
	return len(n.UntriedMoves) == 0
}

func (n *Node) isTerminal() bool {
	return n.State.Phase == state.PhaseGameOver
}
