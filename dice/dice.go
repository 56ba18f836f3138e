// Package dice provides the engine's only source of randomness: a
// seedable PRNG implementation for real play and a scripted
// implementation that dequeues a predetermined sequence for tests.
// Every sub-resolver reads dice exclusively through the Source
// interface so a fixed seed (or fixed script) makes a match
// byte-for-byte reproducible, per spec.md §6 "Dice seed".
package dice

import (
	"math/rand"

	"github.com/pkg/errors"
)

// BlockDieFace is one face of the block die.
type BlockDieFace int

const (
	AttackerDown BlockDieFace = iota
	BothDown
	Push
	DefenderStumbles
	DefenderDown
)

func (f BlockDieFace) String() string {
	switch f {
	case AttackerDown:
		return "attacker_down"
	case BothDown:
		return "both_down"
	case Push:
		return "push"
	case DefenderStumbles:
		return "defender_stumbles"
	case DefenderDown:
		return "defender_down"
	default:
		return "unknown"
	}
}

// blockDieFaces mirrors the physical die: two faces favor the
// attacker (defender stumbles, defender down), two favor the defender
// (attacker down, both down), two are a plain push. This table is the
// one place the distribution is defined.
var blockDieFaces = [6]BlockDieFace{
	AttackerDown,
	BothDown,
	Push,
	Push,
	DefenderStumbles,
	DefenderDown,
}

// Source is the dice contract every sub-resolver reads through.
type Source interface {
	RollD6() int
	RollD8() int
	RollD3() int
	RollBlockDie() BlockDieFace
}

// PRNGSource is a seedable, reproducible dice source backed by
// math/rand, grounded in the teacher's own determinism pattern
// (simulation/runner.go uses rand.New(rand.NewSource(seed)) per match,
// engine/moves.go ShuffleDeck uses a seeded LCG for the same reason).
type PRNGSource struct {
	rng *rand.Rand
}

// NewPRNGSource builds a dice source seeded for reproducibility.
func NewPRNGSource(seed int64) *PRNGSource {
	return &PRNGSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *PRNGSource) RollD6() int { return s.rng.Intn(6) + 1 }
func (s *PRNGSource) RollD8() int { return s.rng.Intn(8) + 1 }
func (s *PRNGSource) RollD3() int { return s.rng.Intn(3) + 1 }

// RollBlockDie consumes independent entropy per die; callers rolling N
// dice for a block must call this N times, never derive N results from
// one draw.
func (s *PRNGSource) RollBlockDie() BlockDieFace {
	return blockDieFaces[s.rng.Intn(6)]
}

// ScriptedSource dequeues from fixed, pre-authored rolls. Used in
// engine tests and in the literal end-to-end scenarios from spec.md
// §8. Exhausting the script is a test bug (spec.md's BrokenDiceStream
// error kind) and panics rather than returning a zero value, so a
// missing roll fails loudly at the call site instead of silently
// mis-resolving an action.
type ScriptedSource struct {
	d6     []int
	d8     []int
	d3     []int
	blocks []BlockDieFace
}

// NewScriptedSource builds a scripted source. Any of the four queues
// may be nil/empty if the test never exercises that roll kind.
func NewScriptedSource(d6, d8, d3 []int, blocks []BlockDieFace) *ScriptedSource {
	return &ScriptedSource{
		d6:     append([]int(nil), d6...),
		d8:     append([]int(nil), d8...),
		d3:     append([]int(nil), d3...),
		blocks: append([]BlockDieFace(nil), blocks...),
	}
}

func (s *ScriptedSource) RollD6() int {
	if len(s.d6) == 0 {
		panic(errors.New("dice: scripted d6 stream exhausted"))
	}
	v := s.d6[0]
	s.d6 = s.d6[1:]
	return v
}

func (s *ScriptedSource) RollD8() int {
	if len(s.d8) == 0 {
		panic(errors.New("dice: scripted d8 stream exhausted"))
	}
	v := s.d8[0]
	s.d8 = s.d8[1:]
	return v
}

func (s *ScriptedSource) RollD3() int {
	if len(s.d3) == 0 {
		panic(errors.New("dice: scripted d3 stream exhausted"))
	}
	v := s.d3[0]
	s.d3 = s.d3[1:]
	return v
}

func (s *ScriptedSource) RollBlockDie() BlockDieFace {
	if len(s.blocks) == 0 {
		panic(errors.New("dice: scripted block-die stream exhausted"))
	}
	v := s.blocks[0]
	s.blocks = s.blocks[1:]
	return v
}
