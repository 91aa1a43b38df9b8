package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterWordsLengthAndAlpha(t *testing.T) {
	words := []string{"CAT", "BEACH", "OCEANOGRAPHY", "WAVE", "SEA-SALT", "sand", "TIDE"}

	got := filterWords(words, 4, 7, 10)

	// CAT too short, OCEANOGRAPHY too long, SEA-SALT not alphabetic,
	// "sand" not uppercase.
	assert.Equal(t, []string{"BEACH", "WAVE", "TIDE"}, got)
}

func TestFilterWordsContainment(t *testing.T) {
	words := []string{"CAT", "CATALOG", "DOG", "DOGMA", "BIRD"}

	got := filterWords(words, 3, 10, 10)

	// CAT⊂CATALOG and DOG⊂DOGMA knock out both sides of each pair.
	assert.Equal(t, []string{"BIRD"}, got)
}

func TestFilterWordsPreservesOrder(t *testing.T) {
	words := []string{"ZEBRA", "APPLE", "MANGO"}
	assert.Equal(t, words, filterWords(words, 4, 8, 10))
}

func TestFilterWordsCap(t *testing.T) {
	var words []string
	for i := 0; i < 100; i++ {
		// Distinct, non-nested, all-letter words: index encoded base-26.
		words = append(words, "W"+string(rune('A'+i/26))+string(rune('A'+i%26))+"X")
	}

	got := filterWords(words, 4, 8, 2)
	assert.Len(t, got, 10) // 5 × target
}

func TestFilterWordsIdempotent(t *testing.T) {
	words := []string{"CAT", "CATALOG", "BEACH", "OCEAN", "WAVE", "WAVELENGTH", "SAND"}

	once := filterWords(words, 3, 12, 10)
	twice := filterWords(once, 3, 12, 10)
	require.Equal(t, once, twice)
}

func TestFilterWordsExcludesOverlongWord(t *testing.T) {
	// Hard tier at size 10 caps length at min(12, 9) = 9, so an 11-letter
	// word never reaches selection.
	p, err := Hard.Profile(10)
	require.NoError(t, err)

	words := []string{"PHOTOGRAPHY", "CAMERA", "LENS", "FILM", "FLASH"}
	got := filterWords(words, p.MinLen, p.MaxLen, p.WordCount)

	assert.NotContains(t, got, "PHOTOGRAPHY")
	assert.Contains(t, got, "CAMERA")
}

func TestFilterWordsEmptyResultIsValid(t *testing.T) {
	assert.Empty(t, filterWords([]string{"AB", "XYZT"}, 5, 8, 10))
	assert.Empty(t, filterWords(nil, 4, 8, 10))
}
