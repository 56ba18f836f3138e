package state

import "github.com/huddlesim/gridiron/geometry"

// BallKind tags which of the three Ball variants is live.
type BallKind int

const (
	BallOffPitch BallKind = iota
	BallOnGround
	BallHeld
)

// Ball is the match's single ball, modeled as a closed variant:
// OffPitch carries no payload, OnGround carries a Position, Held
// carries a carrier player id. Exactly one of these is active at a
// time; the zero value is OffPitch.
type Ball struct {
	Kind      BallKind
	Position  geometry.Position
	CarrierID string
}

// OffPitchBall is the ball before kickoff / after a touchback miss.
func OffPitchBall() Ball { return Ball{Kind: BallOffPitch} }

// OnGroundBall places a loose ball at pos.
func OnGroundBall(pos geometry.Position) Ball {
	return Ball{Kind: BallOnGround, Position: pos}
}

// HeldBall gives the ball to carrierID.
func HeldBall(carrierID string) Ball {
	return Ball{Kind: BallHeld, CarrierID: carrierID}
}

// IsHeldBy reports whether playerID currently carries the ball.
func (b Ball) IsHeldBy(playerID string) bool {
	return b.Kind == BallHeld && b.CarrierID == playerID
}
