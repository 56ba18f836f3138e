package coach

import (
	"encoding/json"
	"math/rand"
	"os"
	"time"

	"github.com/pkg/errors"

	"github.com/huddlesim/gridiron/action"
	"github.com/huddlesim/gridiron/geometry"
	"github.com/huddlesim/gridiron/reroll"
	"github.com/huddlesim/gridiron/rules"
	"github.com/huddlesim/gridiron/state"
)

// WeightsVersion is the current weight-file format version, mirroring
// the teacher's CheckpointVersion constant in evolution/checkpoint.go.
const WeightsVersion = "1.0"

// Weights is the serializable shape an epsilon-greedy Weighted coach
// loads, grounded in evolution/checkpoint.go's CheckpointData: a
// small named-feature vector rather than a full genome, since this
// coach scores actions rather than evolving game rules.
type Weights struct {
	Version         string    `json:"version"`
	Timestamp       time.Time `json:"timestamp"`
	CarrierAdvance  float64   `json:"carrier_advance"`
	BlockAggression float64   `json:"block_aggression"`
	ArmourTargeting float64   `json:"armour_targeting"`
}

// DefaultWeights mirrors the relative priorities coach.Greedy hard-codes.
func DefaultWeights() Weights {
	return Weights{Version: WeightsVersion, CarrierAdvance: 10, BlockAggression: 5, ArmourTargeting: 1}
}

// LoadWeights reads a JSON weight file from path, the same shape
// SaveWeights produces.
func LoadWeights(path string) (Weights, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Weights{}, errors.Wrap(err, "coach: reading weights file")
	}
	var w Weights
	if err := json.Unmarshal(data, &w); err != nil {
		return Weights{}, errors.Wrap(err, "coach: parsing weights file")
	}
	return w, nil
}

// SaveWeights writes w to path as indented JSON.
func SaveWeights(path string, w Weights) error {
	data, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return errors.Wrap(err, "coach: encoding weights")
	}
	return errors.Wrap(os.WriteFile(path, data, 0o644), "coach: writing weights file")
}

// Weighted is an epsilon-greedy coach: with probability epsilon it
// acts like Random (explore), otherwise it scores every candidate
// action by the loaded Weights and picks the highest (exploit).
type Weighted struct {
	rng     *rand.Rand
	epsilon float64
	weights Weights
	random  *Random
}

// NewWeighted builds a Weighted coach seeded for reproducibility.
func NewWeighted(seed int64, epsilon float64, w Weights) *Weighted {
	return &Weighted{rng: rand.New(rand.NewSource(seed)), epsilon: epsilon, weights: w, random: NewRandom(seed)}
}

func (c *Weighted) DecideAction(g state.GameState, side string, available []rules.Action) (action.Kind, action.Params) {
	if c.rng.Float64() < c.epsilon {
		return c.random.DecideAction(g, side, available)
	}

	type scored struct {
		act    action.Kind
		params action.Params
		score  float64
	}
	var candidates []scored

	for _, m := range allMoves(g, side) {
		score := 0.0
		if g.Ball.IsHeldBy(m.playerID) {
			score = c.weights.CarrierAdvance * float64(geometry.Width-distanceToOpposingEndZone(geometry.Position{X: m.opt.X, Y: m.opt.Y}, side))
		}
		candidates = append(candidates, scored{rules.ActionMove, action.Params{PlayerID: m.playerID, X: m.opt.X, Y: m.opt.Y}, score})
	}
	for _, act := range available {
		if act != rules.ActionBlock && act != rules.ActionBlitz {
			continue
		}
		if p, target, ok := weakestAdjacentTarget(g, side); ok {
			targetArmour := float64(g.Players[target].Stats.Armour)
			score := c.weights.BlockAggression*10 - c.weights.ArmourTargeting*targetArmour
			candidates = append(candidates, scored{act, action.Params{PlayerID: p, TargetID: target}, score})
		}
	}

	if len(candidates) == 0 {
		return rules.ActionEndTurn, action.Params{}
	}
	best := candidates[0]
	for _, c2 := range candidates[1:] {
		if c2.score > best.score {
			best = c2
		}
	}
	return best.act, best.params
}

func (c *Weighted) SetupFormation(g state.GameState, side string) state.GameState {
	return defaultFormation(g, side)
}

func (c *Weighted) AcceptTeamReroll(reroll.Context) bool { return true }

func (c *Weighted) UseApothecary(string, string) bool { return true }
