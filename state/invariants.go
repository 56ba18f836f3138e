package state

import (
	"github.com/pkg/errors"
)

// InvalidInvariantError marks a violation of one of spec.md §3/§8's
// global invariants. Per spec.md §7, this is an engine bug, not user
// error: callers at the action-resolver boundary panic with it rather
// than returning a recoverable IllegalAction.
type InvalidInvariantError struct {
	msg string
}

func (e *InvalidInvariantError) Error() string { return e.msg }

func invariantViolation(msg string) error {
	return errors.WithStack(&InvalidInvariantError{msg: msg})
}

// CheckInvariants validates the global invariants spec.md §3 and §8
// require to hold after every transition. It never mutates g.
func CheckInvariants(g GameState) error {
	if err := checkOnPitchCounts(g); err != nil {
		return err
	}
	if err := checkDistinctPositions(g); err != nil {
		return err
	}
	if err := checkBallCarrier(g); err != nil {
		return err
	}
	if err := checkTurnNumber(g); err != nil {
		return err
	}
	return nil
}

func checkOnPitchCounts(g GameState) error {
	counts := map[string]int{"home": 0, "away": 0}
	for _, p := range g.Players {
		if p.OnPitch() {
			counts[p.TeamSide]++
		}
	}
	if g.Phase == PhasePlay {
		for _, side := range []string{"home", "away"} {
			if counts[side] > 11 {
				return invariantViolation("more than 11 on-pitch players for " + side)
			}
		}
	}
	return nil
}

func checkDistinctPositions(g GameState) error {
	seen := map[[2]int]string{}
	for id, p := range g.Players {
		if !p.OnPitch() {
			continue
		}
		key := [2]int{p.Position.X, p.Position.Y}
		if other, ok := seen[key]; ok {
			return invariantViolation("on-pitch position collision between " + other + " and " + id)
		}
		seen[key] = id
	}
	return nil
}

func checkBallCarrier(g GameState) error {
	if g.Ball.Kind != BallHeld {
		return nil
	}
	p, ok := g.Players[g.Ball.CarrierID]
	if !ok {
		return invariantViolation("ball held by unknown player " + g.Ball.CarrierID)
	}
	if p.Condition != Standing || !p.OnPitch() {
		return invariantViolation("ball carrier " + g.Ball.CarrierID + " is not standing and on pitch")
	}
	return nil
}

func checkTurnNumber(g GameState) error {
	if g.Half != 1 && g.Half != 2 {
		return invariantViolation("half must be 1 or 2")
	}
	if g.HomeTeam.TurnNumber > 8 || g.AwayTeam.TurnNumber > 8 {
		return invariantViolation("turnNumber exceeds 8")
	}
	return nil
}
