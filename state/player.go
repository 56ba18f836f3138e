// Package state holds the engine's immutable value model: Player,
// Team, Ball, and GameState. Every mutation is copy-on-write — a
// "With*" method returns a new value, the receiver is untouched — per
// spec.md §9's design note ("Immutability with with-* update
// methods"). The action resolver is the only place that threads a
// GameState from one value to the next; everything below it reads.
package state

import "github.com/huddlesim/gridiron/geometry"
import "github.com/huddlesim/gridiron/skills"

// PlayerCondition is one of the eight lifecycle states a Player can be in.
type PlayerCondition string

const (
	Standing PlayerCondition = "standing"
	Prone    PlayerCondition = "prone"
	Stunned  PlayerCondition = "stunned"
	KO       PlayerCondition = "ko"
	Injured  PlayerCondition = "injured"
	Dead     PlayerCondition = "dead"
	Ejected  PlayerCondition = "ejected"
	OffPitch PlayerCondition = "off_pitch"
)

// OnPitch reports whether c counts as occupying a pitch square.
func (c PlayerCondition) OnPitch() bool {
	return c == Standing || c == Prone || c == Stunned
}

// Stats are a player's four core attributes, each 1..10.
type Stats struct {
	Movement int
	Strength int
	Agility  int
	Armour   int
}

// Flags are the per-turn bookkeeping fields spec.md's Player carries.
type Flags struct {
	HasMoved          bool
	HasActed          bool
	MovementRemaining int
	LostTacklezones   bool
	ProUsedThisTurn   bool
}

// Player is one figure on a roster. A nil Position always means the
// player is not on pitch (spec.md's Invariant 1), but a KO'd, injured
// or dead player can keep its last square, so OnPitch also checks the
// condition.
type Player struct {
	ID             string
	TeamSide       string // "home" or "away"
	Name           string
	Number         int
	PositionalName string
	Stats          Stats
	Skills         skills.Set
	Condition      PlayerCondition
	Position       *geometry.Position
	Flags          Flags
}

// OnPitch reports whether the player occupies a square right now,
// cross-checked against both the condition and the position pointer.
func (p Player) OnPitch() bool {
	return p.Condition.OnPitch() && p.Position != nil
}

// ProjectsTacklezone reports whether the player threatens its 8
// adjacent squares: standing, not lost-tacklezones, and not Titchy.
func (p Player) ProjectsTacklezone() bool {
	return p.Condition == Standing && !p.Flags.LostTacklezones && !p.Skills.Has(skills.Titchy)
}

// WithPosition returns a copy of p moved to pos (nil clears it).
func (p Player) WithPosition(pos *geometry.Position) Player {
	np := p
	np.Position = pos
	return np
}

// WithCondition returns a copy of p in condition c.
func (p Player) WithCondition(c PlayerCondition) Player {
	np := p
	np.Condition = c
	return np
}

// WithFlags returns a copy of p with its per-turn flags replaced.
func (p Player) WithFlags(f Flags) Player {
	np := p
	np.Flags = f
	return np
}

// WithProUsed returns a copy of p with Pro's once-per-turn reroll
// marked spent, leaving the rest of its flags untouched.
func (p Player) WithProUsed() Player {
	f := p.Flags
	f.ProUsedThisTurn = true
	return p.WithFlags(f)
}

// ResetTurnFlags clears the per-turn bookkeeping at end of turn,
// restoring movement allowance from stats.
func (p Player) ResetTurnFlags() Player {
	return p.WithFlags(Flags{MovementRemaining: p.Stats.Movement})
}
