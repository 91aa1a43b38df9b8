package main

import (
	"fmt"
	"slices"
	"strings"
)

// Direction is a unit step (row delta, column delta) along which a word is
// written into the grid.
type Direction struct {
	DRow, DCol int
}

// allDirections lists the 8 compass directions. The order is part of the
// solution wire format: every placement encodes the index of its direction
// in this table, so it must never be reordered.
var allDirections = [8]Direction{
	{0, 1}, {1, 0}, {1, 1}, {-1, 1}, {0, -1}, {-1, 0}, {-1, -1}, {1, -1},
}

// directionIndex returns the wire-format index of d in allDirections.
func directionIndex(d Direction) int {
	for i, dir := range allDirections {
		if dir == d {
			return i
		}
	}
	return -1
}

// Placement records one word committed to the grid. Word holds the letters
// as written, i.e. already reversed for backwards words.
type Placement struct {
	Word string
	Row  int
	Col  int
	Dir  Direction
}

// encode renders the placement as "<row*size+col>;<directionIndex>;<length>".
func (p Placement) encode(size int) string {
	return fmt.Sprintf("%d;%d;%d", p.Row*size+p.Col, directionIndex(p.Dir), len(p.Word))
}

// encodeSolution joins placements in commit order with commas, no trailing
// separator. Downstream solvers parse this format, so it is bit-exact.
func encodeSolution(placements []Placement, size int) string {
	parts := make([]string, len(placements))
	for i, p := range placements {
		parts[i] = p.encode(size)
	}
	return strings.Join(parts, ",")
}

// Puzzle is the immutable record emitted once generation completes.
// Grid is the size×size letter matrix flattened row-major.
type Puzzle struct {
	ID         string   `json:"id"`
	Theme      string   `json:"theme"`
	Grid       string   `json:"grid"`
	Solution   string   `json:"solution"`
	GridSize   int      `json:"gridSize"`
	Difficulty string   `json:"difficulty"`
	WordCount  int      `json:"wordCount"`
	Wordlist   []string `json:"wordlist"`
}

// sortWordlist orders placed words by ascending length, then
// case-insensitive text, then raw text. The sort is stable and total.
func sortWordlist(words []string) {
	slices.SortStableFunc(words, func(a, b string) int {
		if d := len(a) - len(b); d != 0 {
			return d
		}
		if d := strings.Compare(strings.ToLower(a), strings.ToLower(b)); d != 0 {
			return d
		}
		return strings.Compare(a, b)
	})
}
