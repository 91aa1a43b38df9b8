package main

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// fallbackWords are substituted, in this exact order, when a themed word
// cannot be placed within the attempt budget.
var fallbackWords = []string{
	"PUZZLE", "SEARCH", "FIND", "WORD", "GAME", "FUN", "BRAIN", "SOLVE", "GRID", "LETTERS",
}

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Generator builds word-search puzzles from a filtered word pool. All
// randomness flows through rng, so generation is a pure function of
// (inputs, seed): two generators with identical sources produce
// byte-identical puzzles.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator wires a generator around an explicit random source.
func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// grid is the mutable letter matrix under construction. Cells hold 0 while
// empty; once a cell holds a letter it never changes.
type grid struct {
	size  int
	cells []byte
}

func newGrid(size int) *grid {
	return &grid{size: size, cells: make([]byte, size*size)}
}

func (g *grid) at(r, c int) byte { return g.cells[r*g.size+c] }

// canPlace reports whether word fits at (r,c) stepping by d: the end cell
// must be in bounds and every crossed cell empty or already holding the
// required letter. The latter is how legitimate letter-sharing overlaps
// occur.
func (g *grid) canPlace(word string, r, c int, d Direction) bool {
	er := r + (len(word)-1)*d.DRow
	ec := c + (len(word)-1)*d.DCol
	if er < 0 || er >= g.size || ec < 0 || ec >= g.size {
		return false
	}
	for i := 0; i < len(word); i++ {
		if ch := g.at(r+i*d.DRow, c+i*d.DCol); ch != 0 && ch != word[i] {
			return false
		}
	}
	return true
}

func (g *grid) place(word string, r, c int, d Direction) {
	for i := 0; i < len(word); i++ {
		g.cells[(r+i*d.DRow)*g.size+c+i*d.DCol] = word[i]
	}
}

// occupied returns the linear positions of all non-empty cells.
func (g *grid) occupied() []int {
	var out []int
	for i, ch := range g.cells {
		if ch != 0 {
			out = append(out, i)
		}
	}
	return out
}

// Generate produces one puzzle for a theme at the given size and profile,
// from an already-filtered word pool. The pool is deduplicated by exact
// text; if fewer distinct words remain than the profile's target word
// count, ErrInsufficientPool is returned and no partial record is emitted.
func (g *Generator) Generate(id, theme string, size int, p Profile, pool []string) (*Puzzle, error) {
	if size < minGridSize {
		return nil, fmt.Errorf("%w: got %d", ErrGridTooSmall, size)
	}
	if p.PlacementAttempts <= 0 || p.WordCount <= 0 || len(p.Directions) == 0 {
		return nil, fmt.Errorf("invalid profile %q: attempts=%d words=%d directions=%d",
			p.Label, p.PlacementAttempts, p.WordCount, len(p.Directions))
	}

	pool = dedupe(pool)
	if len(pool) < p.WordCount {
		return nil, fmt.Errorf("%w: %d usable words, target %d", ErrInsufficientPool, len(pool), p.WordCount)
	}

	// Draw the target number of distinct words uniformly without
	// replacement.
	words := make([]string, len(pool))
	copy(words, pool)
	g.rng.Shuffle(len(words), func(i, j int) {
		words[i], words[j] = words[j], words[i]
	})
	words = words[:p.WordCount]

	gr := newGrid(size)
	placements := make([]Placement, 0, len(words))
	placed := make([]string, 0, len(words))

	// Best-effort probabilistic cap on reversed words: the realized count
	// may fall short of the target but is never forced to hit it.
	backwardsTarget := int(math.Round(float64(p.WordCount) * p.BackwardsRatio))
	backwardsUsed := 0

	for _, word := range words {
		w := word
		if backwardsUsed < backwardsTarget && g.rng.Float64() < p.BackwardsRatio {
			w = reverse(w)
			backwardsUsed++
		}

		if pl, ok := g.tryPlace(gr, w, p); ok {
			placements = append(placements, pl)
			placed = append(placed, word)
			continue
		}

		// The themed word would not fit: try the fallback vocabulary in
		// order, and silently drop the slot if nothing fits.
		for _, fb := range fallbackWords {
			if pl, ok := g.tryPlace(gr, fb, p); ok {
				placements = append(placements, pl)
				placed = append(placed, fb)
				break
			}
		}
	}

	// Fill the remaining cells with random letters.
	for i, ch := range gr.cells {
		if ch == 0 {
			gr.cells[i] = alphabet[g.rng.IntN(len(alphabet))]
		}
	}

	sortWordlist(placed)

	return &Puzzle{
		ID:         id,
		Theme:      theme,
		Grid:       string(gr.cells),
		Solution:   encodeSolution(placements, size),
		GridSize:   size,
		Difficulty: p.Label,
		WordCount:  len(placed),
		Wordlist:   placed,
	}, nil
}

// tryPlace runs the attempt loop for a single word: random allowed
// direction, random start cell, commit on the first feasible position.
func (g *Generator) tryPlace(gr *grid, word string, p Profile) (Placement, bool) {
	for range p.PlacementAttempts {
		d := p.Directions[g.rng.IntN(len(p.Directions))]
		r, c := g.startCell(gr, p.OverlapBias)
		if gr.canPlace(word, r, c, d) {
			gr.place(word, r, c, d)
			return Placement{Word: word, Row: r, Col: c, Dir: d}, true
		}
	}
	return Placement{}, false
}

// startCell picks a start position for one attempt. With probability bias
// it starts from an already-occupied cell, steering words toward
// letter-sharing overlaps; otherwise the pick is uniform over the grid.
func (g *Generator) startCell(gr *grid, bias float64) (int, int) {
	if bias > 0 && g.rng.Float64() < bias {
		if occ := gr.occupied(); len(occ) > 0 {
			pos := occ[g.rng.IntN(len(occ))]
			return pos / gr.size, pos % gr.size
		}
	}
	return g.rng.IntN(gr.size), g.rng.IntN(gr.size)
}

// dedupe removes exact duplicates, preserving first-occurrence order.
func dedupe(words []string) []string {
	seen := make(map[string]bool, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}

func reverse(s string) string {
	b := []byte(s)
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
	return string(b)
}
