// Package skills enumerates the finite, tagged skill set the engine
// understands and the reroll lookup table spec.md §9 calls for
// ("Dynamic dispatch over skills" design note): skills with reroll
// effects register as named entries keyed by (Skill, RollKind) rather
// than through a class hierarchy.
package skills

// Skill is one entry in the closed set of skills the engine models.
// New skills are added here and, if they affect rerolls, in
// rerollTable; nothing elsewhere switches on skill names directly.
type Skill string

const (
	Dodge         Skill = "Dodge"
	SureHands     Skill = "SureHands"
	Catch         Skill = "Catch"
	Pass          Skill = "Pass"
	Block         Skill = "Block"
	MultipleBlock Skill = "MultipleBlock"
	Titchy        Skill = "Titchy"
	Stunty        Skill = "Stunty"
	BreakTackle   Skill = "BreakTackle"
	MightyBlow    Skill = "MightyBlow"
	Claw          Skill = "Claw"
	Loner         Skill = "Loner"
	Pro           Skill = "Pro"
)

// Set is an unordered collection of skills a player has.
type Set map[Skill]bool

// NewSet builds a Set from a skill list.
func NewSet(sk ...Skill) Set {
	s := make(Set, len(sk))
	for _, k := range sk {
		s[k] = true
	}
	return s
}

// Has reports whether the set contains sk.
func (s Set) Has(sk Skill) bool {
	return s != nil && s[sk]
}

// With returns a new Set with sk added, leaving the receiver untouched
// (players are immutable state, see state.Player).
func (s Set) With(sk Skill) Set {
	out := make(Set, len(s)+1)
	for k := range s {
		out[k] = true
	}
	out[sk] = true
	return out
}

// RollKind identifies which kind of roll a reroll table entry applies to.
type RollKind string

const (
	RollDodge         RollKind = "dodge"
	RollGFI           RollKind = "gfi"
	RollPickup        RollKind = "pickup"
	RollCatch         RollKind = "catch"
	RollPassAccuracy  RollKind = "pass_accuracy"
	RollArmour        RollKind = "armour"
	RollInjury        RollKind = "injury"
	RollAny           RollKind = "any" // Pro, Loner: apply regardless of roll kind
)

// rerollTable is the (Skill, RollKind) -> applies lookup spec.md §9
// calls for. A skill not present here never offers a skill reroll.
var rerollTable = map[Skill]map[RollKind]bool{
	Dodge:     {RollDodge: true},
	SureHands: {RollPickup: true},
	Catch:     {RollCatch: true},
	Pass:      {RollPassAccuracy: true},
	Pro:       {RollAny: true},
	Loner:     {RollAny: true},
}

// OffersRerollFor reports which skill in s, if any, grants a skill
// reroll for kind.
func OffersRerollFor(s Set, kind RollKind) (Skill, bool) {
	for sk := range s {
		if kinds, ok := rerollTable[sk]; ok {
			if kinds[kind] || kinds[RollAny] {
				return sk, true
			}
		}
	}
	return "", false
}
