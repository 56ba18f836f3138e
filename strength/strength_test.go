package strength

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiceCountEqualStrengthIsOneDieAttackerChooses(t *testing.T) {
	dice, attackerChooses := DiceCount(3, 3)
	assert.Equal(t, 1, dice)
	assert.True(t, attackerChooses)
}

func TestDiceCountCapsAtThree(t *testing.T) {
	dice, attackerChooses := DiceCount(6, 1)
	assert.Equal(t, 3, dice)
	assert.True(t, attackerChooses)
}

func TestDiceCountDefenderStrongerDefenderChooses(t *testing.T) {
	dice, attackerChooses := DiceCount(2, 4)
	assert.Equal(t, 3, dice)
	assert.False(t, attackerChooses)
}
