package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func testPuzzle(id string) *Puzzle {
	return &Puzzle{
		ID:         id,
		Theme:      "beach",
		Grid:       strings.Repeat("A", 64),
		Solution:   "0;0;4,17;1;4",
		GridSize:   8,
		Difficulty: "easy",
		WordCount:  2,
		Wordlist:   []string{"SAND", "WAVE"},
	}
}

func TestStoreSaveAndLoad(t *testing.T) {
	s := NewStore(t.TempDir())

	path, err := s.Save(testPuzzle("8-easy-1"), 1)
	if err != nil {
		t.Fatalf("save: %v", err)
	}
	// Files are numbered by sequence; the full ID lives inside the record.
	if !strings.HasSuffix(path, filepath.Join("8", "easy", "1.json")) {
		t.Fatalf("unexpected path %q", path)
	}

	p, err := s.Load(8, "easy", 1)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.ID != "8-easy-1" || p.Theme != "beach" || p.Solution != "0;0;4,17;1;4" {
		t.Fatalf("round trip mismatch: %+v", p)
	}
	if len(p.Wordlist) != 2 || p.Wordlist[0] != "SAND" {
		t.Fatalf("wordlist mismatch: %v", p.Wordlist)
	}
}

func TestStoreSaveCompactJSON(t *testing.T) {
	s := NewStore(t.TempDir())

	path, err := s.Save(testPuzzle("8-easy-1"), 1)
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.ContainsAny(string(data), " \n\t") {
		t.Fatalf("expected compact JSON, got %q", data)
	}
	if !strings.HasPrefix(string(data), `{"id":"8-easy-1"`) {
		t.Fatalf("unexpected leading keys: %q", data)
	}
}

func TestStoreSaveRejectsInvalidInput(t *testing.T) {
	s := NewStore(t.TempDir())
	if _, err := s.Save(&Puzzle{}, 1); err == nil {
		t.Fatal("expected error for puzzle without ID")
	}
	if _, err := s.Save(nil, 1); err == nil {
		t.Fatal("expected error for nil puzzle")
	}
	if _, err := s.Save(testPuzzle("8-easy-1"), 0); err == nil {
		t.Fatal("expected error for sequence number 0")
	}
}

func TestStoreLoadUnknown(t *testing.T) {
	s := NewStore(t.TempDir())
	if _, err := s.Load(8, "easy", 99); err == nil {
		t.Fatal("expected error for unknown puzzle")
	}
}

func TestStoreList(t *testing.T) {
	s := NewStore(t.TempDir())

	if metas, err := s.List(); err != nil || len(metas) != 0 {
		t.Fatalf("expected empty list on fresh dir, got %v, %v", metas, err)
	}

	for n, id := range map[int]string{1: "8-easy-1", 2: "8-easy-2"} {
		if _, err := s.Save(testPuzzle(id), n); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}
	hard := testPuzzle("10-hard-1")
	hard.GridSize = 10
	hard.Difficulty = "hard"
	hard.Grid = strings.Repeat("B", 100)
	if _, err := s.Save(hard, 1); err != nil {
		t.Fatalf("save hard: %v", err)
	}

	metas, err := s.List()
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(metas) != 3 {
		t.Fatalf("expected 3 puzzles, got %d", len(metas))
	}

	bySize := map[int]int{}
	for _, m := range metas {
		bySize[m.GridSize]++
		if m.Theme != "beach" || m.WordCount != 2 || m.Sequence < 1 {
			t.Fatalf("unexpected meta: %+v", m)
		}
	}
	if bySize[8] != 2 || bySize[10] != 1 {
		t.Fatalf("unexpected size distribution: %v", bySize)
	}
}

func TestStoreNextSequence(t *testing.T) {
	s := NewStore(t.TempDir())

	if n := s.NextSequence(8, "easy"); n != 1 {
		t.Fatalf("expected 1, got %d", n)
	}
	if n := s.NextSequence(8, "easy"); n != 2 {
		t.Fatalf("expected 2, got %d", n)
	}
	// Independent counters per combination.
	if n := s.NextSequence(8, "hard"); n != 1 {
		t.Fatalf("expected 1 for new combo, got %d", n)
	}
	if n := s.NextSequence(10, "easy"); n != 1 {
		t.Fatalf("expected 1 for new combo, got %d", n)
	}
}
