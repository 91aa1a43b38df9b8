package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand/v2"
	"sync"
	"time"
)

// defaultThemes is the built-in theme catalogue for batch runs.
var defaultThemes = []string{
	"beach", "space", "ocean", "forest", "mountain", "desert", "city",
	"music", "sports", "food", "animals", "weather", "travel",
	"technology", "art", "science", "garden", "winter", "summer",
	"spring", "autumn", "coffee", "book", "movie", "fitness",
	"cooking", "adventure", "nature", "holiday", "festival", "astronomy",
	"history", "architecture", "photography", "health", "fashion",
	"education", "business", "mythology", "fantasy", "friendship",
	"family", "home", "childhood", "nostalgia", "meditation",
	"mindfulness", "crafts", "diy", "vintage", "futurism", "minimalism",
	"luxury", "sustainability", "farming", "camping", "roadtrip",
	"nightlife", "sunrise", "sunset", "rain", "snow", "cat", "dog",
	"bird", "flower", "tree", "river", "lake", "island", "cave",
	"volcano", "concert", "theater", "painting", "sculpture", "poetry",
	"writing", "gaming", "podcast", "yoga", "cycling", "hiking",
	"surfing", "skateboarding", "baking", "vegan", "streetfood", "wine",
	"tea", "chocolate", "comedy", "romance", "mystery", "horror",
}

var defaultGridSizes = []int{8, 10, 12, 15}

// BatchOptions configures a full generation run.
type BatchOptions struct {
	Themes       []string
	GridSizes    []int
	Difficulties []Difficulty
	PerCombo     int
	// Seed is the base of every combo's derived random stream; a fixed
	// value makes the whole run reproducible.
	Seed uint64
	// FetchDelay spaces out word-source requests during prefetch.
	FetchDelay time.Duration
}

// DefaultBatchOptions mirrors the standard production run.
func DefaultBatchOptions() BatchOptions {
	return BatchOptions{
		Themes:       defaultThemes,
		GridSizes:    defaultGridSizes,
		Difficulties: []Difficulty{Easy, Medium, Hard},
		PerCombo:     3500,
		Seed:         uint64(time.Now().UnixNano()),
		FetchDelay:   250 * time.Millisecond,
	}
}

// BatchEvent reports batch progress to an observer.
type BatchEvent struct {
	Type       string `json:"type"` // fetch, combo_start, combo_skip, progress, combo_done, error, done
	Theme      string `json:"theme,omitempty"`
	GridSize   int    `json:"gridSize,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	Count      int    `json:"count,omitempty"`
	Target     int    `json:"target,omitempty"`
	Error      string `json:"error,omitempty"`
}

// Batch drives generation across every theme/size/difficulty combination
// and persists the results through the store.
type Batch struct {
	source WordSource
	store  *Store
	opts   BatchOptions
	notify func(BatchEvent)
}

// NewBatch wires a batch run. notify may be nil.
func NewBatch(source WordSource, store *Store, opts BatchOptions, notify func(BatchEvent)) *Batch {
	return &Batch{source: source, store: store, opts: opts, notify: notify}
}

func (b *Batch) emit(e BatchEvent) {
	if b.notify != nil {
		b.notify(e)
	}
}

// Run prefetches theme word lists, then generates every combination.
// Combinations share no state besides the read-only word cache, so they
// run concurrently.
func (b *Batch) Run(ctx context.Context) error {
	cache := make(map[string][]string, len(b.opts.Themes))
	for i, theme := range b.opts.Themes {
		if err := ctx.Err(); err != nil {
			return err
		}
		words, err := b.source.Words(ctx, theme)
		if err != nil {
			log.Printf("Thème %q ignoré : %v", theme, err)
			continue
		}
		if len(words) > 0 {
			cache[theme] = words
		}
		b.emit(BatchEvent{Type: "fetch", Theme: theme, Count: len(words)})

		if b.opts.FetchDelay > 0 && i < len(b.opts.Themes)-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(b.opts.FetchDelay):
			}
		}
	}
	if len(cache) == 0 {
		return errors.New("no theme words available")
	}

	var wg sync.WaitGroup
	for _, size := range b.opts.GridSizes {
		for _, diff := range b.opts.Difficulties {
			wg.Add(1)
			go func(size int, diff Difficulty) {
				defer wg.Done()
				b.runCombo(ctx, size, diff, cache)
			}(size, diff)
		}
	}
	wg.Wait()

	b.emit(BatchEvent{Type: "done"})
	return ctx.Err()
}

// runCombo generates PerCombo puzzles for one size/difficulty pair,
// rotating through every theme whose filtered pool meets the target.
func (b *Batch) runCombo(ctx context.Context, size int, diff Difficulty, cache map[string][]string) {
	profile, err := diff.Profile(size)
	if err != nil {
		b.emit(BatchEvent{Type: "error", GridSize: size, Difficulty: diff.String(), Error: err.Error()})
		return
	}

	// Derived stream: reproducible per combo, independent across combos.
	gen := NewGenerator(rand.New(rand.NewPCG(b.opts.Seed, uint64(size)<<8|uint64(diff))))

	type themePool struct {
		theme string
		words []string
	}
	var pools []themePool
	for _, theme := range b.opts.Themes {
		words, ok := cache[theme]
		if !ok {
			continue
		}
		usable := filterWords(words, profile.MinLen, profile.MaxLen, profile.WordCount)
		if len(usable) < profile.WordCount {
			continue
		}
		pools = append(pools, themePool{theme: theme, words: usable})
	}
	if len(pools) == 0 {
		b.emit(BatchEvent{Type: "combo_skip", GridSize: size, Difficulty: profile.Label})
		return
	}

	b.emit(BatchEvent{Type: "combo_start", GridSize: size, Difficulty: profile.Label, Target: b.opts.PerCombo})

	made := 0
	for made < b.opts.PerCombo {
		if ctx.Err() != nil {
			return
		}

		pool := pools[made%len(pools)]
		n := b.store.NextSequence(size, profile.Label)
		id := fmt.Sprintf("%d-%s-%d", size, profile.Label, n)

		puzzle, err := gen.Generate(id, pool.theme, size, profile, pool.words)
		if err != nil {
			b.emit(BatchEvent{Type: "error", GridSize: size, Difficulty: profile.Label, Theme: pool.theme, Error: err.Error()})
			return
		}
		if _, err := b.store.Save(puzzle, n); err != nil {
			b.emit(BatchEvent{Type: "error", GridSize: size, Difficulty: profile.Label, Error: err.Error()})
			return
		}
		made++

		if made%100 == 0 || made == b.opts.PerCombo {
			b.emit(BatchEvent{Type: "progress", GridSize: size, Difficulty: profile.Label, Count: made, Target: b.opts.PerCombo})
		}
	}

	b.emit(BatchEvent{Type: "combo_done", GridSize: size, Difficulty: profile.Label, Count: made})
}
