package coach

import (
	"math/rand"

	"github.com/huddlesim/gridiron/action"
	"github.com/huddlesim/gridiron/dice"
	"github.com/huddlesim/gridiron/mcts"
	"github.com/huddlesim/gridiron/reroll"
	"github.com/huddlesim/gridiron/rules"
	"github.com/huddlesim/gridiron/state"
)

// MCTS decides by running a bounded Monte Carlo tree search rather
// than a static valuation, grounded in the teacher's MCTSnAI tier
// (mcts.Search over the card engine's bytecode genome, here retargeted
// at rules.AvailableActions/action.Resolve). Search plays out entirely
// against its own private dice source, seeded independently of the
// match: only the winning (kind, params) pair it settles on is ever
// submitted to the real match, so its hypothetical rolls never
// perturb the match's own dice stream.
type MCTS struct {
	planningDice dice.Source
	rng          *rand.Rand
	iterations   int
	explorationParam float64
}

// NewMCTS builds an MCTS coach whose search rolls its own dice from
// seed, independent of the match's dice source.
func NewMCTS(seed int64, iterations int) *MCTS {
	if iterations <= 0 {
		iterations = 200
	}
	return &MCTS{
		planningDice:     dice.NewPRNGSource(seed),
		rng:              rand.New(rand.NewSource(seed)),
		iterations:       iterations,
		explorationParam: mcts.DefaultExplorationParam,
	}
}

func (c *MCTS) DecideAction(g state.GameState, side string, available []rules.Action) (action.Kind, action.Params) {
	if len(available) == 0 {
		return rules.ActionEndTurn, action.Params{}
	}
	return mcts.Search(g, side, c.planningDice, c.rng, c.iterations, c.explorationParam)
}

func (c *MCTS) SetupFormation(g state.GameState, side string) state.GameState {
	return defaultFormation(g, side)
}

func (c *MCTS) AcceptTeamReroll(reroll.Context) bool { return true }

func (c *MCTS) UseApothecary(string, string) bool { return true }
