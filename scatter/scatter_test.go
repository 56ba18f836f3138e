package scatter

import (
	"testing"

	"github.com/huddlesim/gridiron/geometry"
	"github.com/stretchr/testify/assert"
)

func TestDeviateMovesOneSquare(t *testing.T) {
	from := geometry.Position{X: 10, Y: 7}
	to := Deviate(from, 1) // N
	assert.Equal(t, geometry.Position{X: 10, Y: 6}, to)
}

func TestThrowInClampsAndTravelsInward(t *testing.T) {
	out := geometry.Position{X: -2, Y: 5}
	p := ThrowIn(out, 2)
	assert.Equal(t, geometry.Position{X: 2, Y: 5}, p)
}

func TestThrowInDirectionAtCornerIsDiagonal(t *testing.T) {
	out := geometry.Position{X: -1, Y: -1}
	dir := ThrowInDirection(out)
	assert.Equal(t, geometry.Position{X: 1, Y: 1}, dir)
}
