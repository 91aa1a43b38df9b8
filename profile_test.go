package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDifficulty(t *testing.T) {
	for label, want := range map[string]Difficulty{
		"easy":   Easy,
		"medium": Medium,
		"hard":   Hard,
		"HARD":   Hard,
		" easy ": Easy,
	} {
		got, err := ParseDifficulty(label)
		require.NoError(t, err, label)
		assert.Equal(t, want, got, label)
	}
}

func TestParseDifficultyUnknown(t *testing.T) {
	_, err := ParseDifficulty("expert")
	require.ErrorIs(t, err, ErrUnknownDifficulty)

	_, err = ParseDifficulty("")
	require.ErrorIs(t, err, ErrUnknownDifficulty)
}

func TestProfileEasy(t *testing.T) {
	p, err := Easy.Profile(8)
	require.NoError(t, err)

	assert.Equal(t, "easy", p.Label)
	assert.Equal(t, []Direction{{0, 1}, {1, 0}}, p.Directions)
	assert.Equal(t, 0.0, p.BackwardsRatio)
	assert.Equal(t, 8, p.WordCount)
	assert.Equal(t, 4, p.MinLen)
	assert.Equal(t, 7, p.MaxLen) // min(8, 8-1)
	assert.Equal(t, 120, p.PlacementAttempts)
	assert.Equal(t, 0.1, p.OverlapBias)
}

func TestProfileMedium(t *testing.T) {
	p, err := Medium.Profile(10)
	require.NoError(t, err)

	assert.Equal(t, "medium", p.Label)
	assert.Equal(t, []Direction{{0, 1}, {1, 0}, {1, 1}, {-1, 1}}, p.Directions)
	assert.Equal(t, 0.10, p.BackwardsRatio)
	assert.Equal(t, 12, p.WordCount) // max(12, round(10*0.9))
	assert.Equal(t, 9, p.MaxLen)     // min(10, 10-1)
	assert.Equal(t, 200, p.PlacementAttempts)

	// At size 15, round(15*0.9)=14 beats the floor of 12.
	p, err = Medium.Profile(15)
	require.NoError(t, err)
	assert.Equal(t, 14, p.WordCount)
	assert.Equal(t, 10, p.MaxLen)
}

func TestProfileHard(t *testing.T) {
	p, err := Hard.Profile(12)
	require.NoError(t, err)

	assert.Equal(t, "hard", p.Label)
	assert.Len(t, p.Directions, 8)
	assert.Equal(t, 0.40, p.BackwardsRatio)
	assert.Equal(t, 12, p.WordCount)
	assert.Equal(t, 3, p.MinLen)
	assert.Equal(t, 11, p.MaxLen) // min(12, 12-1)
	assert.Equal(t, 400, p.PlacementAttempts)
	assert.Equal(t, 0.9, p.OverlapBias)
}

func TestProfileGridTooSmall(t *testing.T) {
	for _, size := range []int{-1, 0, 3} {
		_, err := Easy.Profile(size)
		assert.ErrorIs(t, err, ErrGridTooSmall, "size %d", size)
	}
}

func TestProfileIsDeterministic(t *testing.T) {
	a, err := Hard.Profile(10)
	require.NoError(t, err)
	b, err := Hard.Profile(10)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
