package main

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// Difficulty selects one of the three fixed generation tiers.
type Difficulty int

const (
	Easy Difficulty = iota
	Medium
	Hard
)

// minGridSize is the smallest workable grid: min_len is 4 for the easy and
// medium tiers, so anything smaller cannot hold a single word.
const minGridSize = 4

// Configuration errors. All of them reject a request before any placement
// work begins.
var (
	// ErrUnknownDifficulty indicates a difficulty label outside easy/medium/hard.
	ErrUnknownDifficulty = errors.New("unknown difficulty")
	// ErrGridTooSmall indicates a grid size below the minimum practical value.
	ErrGridTooSmall = errors.New("grid size must be at least 4")
	// ErrInsufficientPool indicates the usable word pool is below the
	// profile's target word count; the caller should skip that combination.
	ErrInsufficientPool = errors.New("usable word pool below target word count")
)

// ParseDifficulty maps a label to its tier. Unrecognized labels are
// rejected rather than silently treated as the hardest tier.
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy":
		return Easy, nil
	case "medium":
		return Medium, nil
	case "hard":
		return Hard, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
	}
}

func (d Difficulty) String() string {
	switch d {
	case Easy:
		return "easy"
	case Medium:
		return "medium"
	default:
		return "hard"
	}
}

// Profile bundles the generation parameters of a tier at a given grid size.
type Profile struct {
	Label             string
	Directions        []Direction
	BackwardsRatio    float64
	WordCount         int
	MinLen            int
	MaxLen            int
	PlacementAttempts int
	// OverlapBias steers placement attempts toward cells that already hold
	// letters, producing denser, more interleaved grids at higher tiers.
	OverlapBias float64
}

// Profile resolves the fixed tier parameters for size. Deterministic, no
// randomness, no I/O.
func (d Difficulty) Profile(size int) (Profile, error) {
	if size < minGridSize {
		return Profile{}, fmt.Errorf("%w: got %d", ErrGridTooSmall, size)
	}

	switch d {
	case Easy:
		return Profile{
			Label:             "easy",
			Directions:        allDirections[:2], // right, down
			BackwardsRatio:    0.0,
			WordCount:         size,
			MinLen:            4,
			MaxLen:            min(8, size-1),
			PlacementAttempts: 120,
			OverlapBias:       0.1,
		}, nil
	case Medium:
		return Profile{
			Label:             "medium",
			Directions:        allDirections[:4], // right, down, diag down-right, diag up-right
			BackwardsRatio:    0.10,
			WordCount:         max(12, int(math.Round(float64(size)*0.9))),
			MinLen:            4,
			MaxLen:            min(10, size-1),
			PlacementAttempts: 200,
			OverlapBias:       0.4,
		}, nil
	case Hard:
		return Profile{
			Label:             "hard",
			Directions:        allDirections[:],
			BackwardsRatio:    0.40,
			WordCount:         size,
			MinLen:            3,
			MaxLen:            min(12, size-1),
			PlacementAttempts: 400,
			OverlapBias:       0.9,
		}, nil
	default:
		return Profile{}, fmt.Errorf("%w: %d", ErrUnknownDifficulty, int(d))
	}
}
