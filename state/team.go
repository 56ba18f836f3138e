package state

// Team holds one side's per-match bookkeeping: identity, the resource
// pools the reroll arbitrator and game-flow resolver consume from, and
// the once-per-turn action flags spec.md's invariants 4-5 constrain.
type Team struct {
	TeamID              string
	Name                string
	Race                string
	Side                string // "home" or "away"
	Score               int
	Rerolls             int
	RerollUsedThisTurn  bool
	TurnNumber          int // 1..8 per half
	BlitzUsedThisTurn   bool
	PassUsedThisTurn    bool
	FoulUsedThisTurn    bool
	HasApothecary       bool
	ApothecaryUsed      bool
}

// WithRerolls returns a copy of t with its reroll pool set to n.
func (t Team) WithRerolls(n int) Team {
	nt := t
	nt.Rerolls = n
	return nt
}

// ConsumeTeamReroll spends one team reroll for this turn.
func (t Team) ConsumeTeamReroll() Team {
	nt := t
	nt.Rerolls--
	nt.RerollUsedThisTurn = true
	return nt
}

// ResetTurnFlags clears the once-per-turn flags at end of turn. The
// reroll-used flag also resets; the reroll pool itself is left
// unchanged.
func (t Team) ResetTurnFlags() Team {
	nt := t
	nt.RerollUsedThisTurn = false
	nt.BlitzUsedThisTurn = false
	nt.PassUsedThisTurn = false
	nt.FoulUsedThisTurn = false
	return nt
}

// SpendApothecary marks the team's one-shot apothecary as used.
func (t Team) SpendApothecary() Team {
	nt := t
	nt.ApothecaryUsed = true
	return nt
}

// AdvanceTurnNumber increments the team's own turn counter, used only
// when this team is the one ending its own turn (spec.md §4.11).
func (t Team) AdvanceTurnNumber() Team {
	nt := t
	nt.TurnNumber++
	return nt
}
