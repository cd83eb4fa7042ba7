package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixed(t *testing.T) {
	assert.Equal(t, Fixed(65536), FracUnit)
	assert.Equal(t, FracUnit/2, FixedFromFloat(0.5))
	assert.Equal(t, -0.25, FixedFromFloat(-0.25).Float())
}

func TestEnums(t *testing.T) {
	assert.True(t, Hard.Valid())
	assert.False(t, NumSkills.Valid())
	assert.False(t, Skill(-1).Valid())
	assert.Equal(t, "hard", Hard.String())
	assert.Equal(t, "7", Skill(7).String())

	assert.Equal(t, 1, Single.NumPlayers())
	assert.Equal(t, 2, Cooperative.NumPlayers())
	assert.Equal(t, 2, Deathmatch.NumPlayers())
	assert.False(t, Type(3).Valid())
	assert.Equal(t, "final doom (pal)", Identity{FinalDoom: true, PAL: true}.String())
}
