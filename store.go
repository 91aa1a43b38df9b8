package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
)

// PuzzleMeta is a lightweight listing entry. Sequence is the file number
// within the size/difficulty folder, which is how stored puzzles are
// addressed.
type PuzzleMeta struct {
	ID         string `json:"id"`
	Sequence   int    `json:"sequence"`
	Theme      string `json:"theme"`
	GridSize   int    `json:"gridSize"`
	Difficulty string `json:"difficulty"`
	WordCount  int    `json:"wordCount"`
}

// Store persists puzzles as compact JSON files under
// {dir}/{gridSize}/{difficulty}/{n}.json, the hierarchy downstream
// consumers index by grid size, difficulty and file number.
type Store struct {
	dir string

	mu       sync.Mutex
	sequence map[string]int
}

// NewStore creates a store rooted at dir. The directory is created lazily
// on first save.
func NewStore(dir string) *Store {
	return &Store{dir: dir, sequence: make(map[string]int)}
}

func (s *Store) comboDir(size int, difficulty string) string {
	return filepath.Join(s.dir, strconv.Itoa(size), difficulty)
}

// NextSequence reserves the next index for a size/difficulty combination.
// Counters start at 1 per process; batch runs regenerate the hierarchy from
// scratch.
func (s *Store) NextSequence(size int, difficulty string) int {
	key := strconv.Itoa(size) + "/" + difficulty
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sequence[key]++
	return s.sequence[key]
}

// Save writes the puzzle as compact JSON (no embedded whitespace) to the
// sequence-numbered file {dir}/{size}/{difficulty}/{n}.json and returns the
// file path. The full puzzle ID stays inside the record; folders are indexed
// by the bare file number.
func (s *Store) Save(p *Puzzle, n int) (string, error) {
	if p == nil || p.ID == "" {
		return "", errors.New("invalid puzzle: missing ID")
	}
	if n <= 0 {
		return "", fmt.Errorf("invalid sequence number %d", n)
	}

	dir := s.comboDir(p.GridSize, p.Difficulty)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	data, err := json.Marshal(p)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, strconv.Itoa(n)+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// Load reads the n-th stored puzzle of a size/difficulty folder back.
func (s *Store) Load(size int, difficulty string, n int) (*Puzzle, error) {
	data, err := os.ReadFile(filepath.Join(s.comboDir(size, difficulty), strconv.Itoa(n)+".json"))
	if err != nil {
		return nil, err
	}

	var p Puzzle
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse puzzle %d/%s/%d: %w", size, difficulty, n, err)
	}
	return &p, nil
}

// List walks the hierarchy and returns metadata for every stored puzzle.
// Unreadable or malformed files are skipped.
func (s *Store) List() ([]PuzzleMeta, error) {
	sizes, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var out []PuzzleMeta
	for _, se := range sizes {
		size, err := strconv.Atoi(se.Name())
		if !se.IsDir() || err != nil {
			continue
		}
		diffs, err := os.ReadDir(filepath.Join(s.dir, se.Name()))
		if err != nil {
			continue
		}
		for _, de := range diffs {
			if !de.IsDir() {
				continue
			}
			comboPath := filepath.Join(s.dir, se.Name(), de.Name())
			files, err := os.ReadDir(comboPath)
			if err != nil {
				continue
			}
			for _, f := range files {
				if f.IsDir() || !strings.HasSuffix(f.Name(), ".json") {
					continue
				}
				n, err := strconv.Atoi(strings.TrimSuffix(f.Name(), ".json"))
				if err != nil {
					continue
				}
				data, err := os.ReadFile(filepath.Join(comboPath, f.Name()))
				if err != nil {
					continue
				}
				var p Puzzle
				if err := json.Unmarshal(data, &p); err != nil || p.ID == "" {
					continue
				}
				out = append(out, PuzzleMeta{
					ID:         p.ID,
					Sequence:   n,
					Theme:      p.Theme,
					GridSize:   size,
					Difficulty: de.Name(),
					WordCount:  p.WordCount,
				})
			}
		}
	}
	return out, nil
}
