package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math/rand/v2"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

const batchTopic = "batch"

// rateLimiter is a simple per-IP token bucket rate limiter.
type rateLimiter struct {
	mu       sync.Mutex
	visitors map[string]*bucket
	rate     int           // tokens per interval
	interval time.Duration // refill interval
}

type bucket struct {
	tokens   int
	lastSeen time.Time
}

func newRateLimiter(rate int, interval time.Duration) *rateLimiter {
	rl := &rateLimiter{
		visitors: make(map[string]*bucket),
		rate:     rate,
		interval: interval,
	}
	// Cleanup stale entries every minute.
	go func() {
		for {
			time.Sleep(time.Minute)
			rl.mu.Lock()
			for ip, b := range rl.visitors {
				if time.Since(b.lastSeen) > 5*time.Minute {
					delete(rl.visitors, ip)
				}
			}
			rl.mu.Unlock()
		}
	}()
	return rl
}

func (rl *rateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	b, ok := rl.visitors[ip]
	if !ok {
		rl.visitors[ip] = &bucket{tokens: rl.rate - 1, lastSeen: time.Now()}
		return true
	}

	// Refill tokens based on elapsed time.
	elapsed := time.Since(b.lastSeen)
	refill := int(elapsed / rl.interval)
	if refill > 0 {
		b.tokens += refill * rl.rate
		if b.tokens > rl.rate {
			b.tokens = rl.rate
		}
		b.lastSeen = time.Now()
	}

	if b.tokens <= 0 {
		return false
	}
	b.tokens--
	return true
}

// Server is the main HTTP server.
type Server struct {
	mux    *http.ServeMux
	store  *Store
	source WordSource
	sse    *Broadcaster
	genRL  *rateLimiter

	batchOpts BatchOptions

	batchMu      sync.Mutex
	batchRunning bool
}

// NewServer creates a configured HTTP server.
func NewServer(store *Store, source WordSource, batchOpts BatchOptions) *Server {
	s := &Server{
		mux:       http.NewServeMux(),
		store:     store,
		source:    source,
		sse:       NewBroadcaster(),
		genRL:     newRateLimiter(10, time.Minute), // 10 generations/min per IP
		batchOpts: batchOpts,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	// Puzzle API
	s.mux.HandleFunc("POST /api/puzzles", s.handleCreatePuzzle)
	s.mux.HandleFunc("GET /api/puzzles", s.handleListPuzzles)
	s.mux.HandleFunc("GET /api/puzzles/{size}/{difficulty}/{n}", s.handleGetPuzzle)

	// Batch API
	s.mux.HandleFunc("POST /api/batch", s.handleStartBatch)
	s.mux.HandleFunc("GET /api/batch/events", s.handleBatchEvents)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
	s.mux.ServeHTTP(w, r)
}

// --- Puzzle handlers ---

// POST /api/puzzles — fetch theme words, generate a puzzle, persist it.
func (s *Server) handleCreatePuzzle(w http.ResponseWriter, r *http.Request) {
	if !s.genRL.allow(r.RemoteAddr) {
		jsonError(w, "Trop de requêtes, réessayez plus tard", http.StatusTooManyRequests)
		return
	}

	var req struct {
		Theme      string  `json:"theme"`
		GridSize   int     `json:"gridSize"`
		Difficulty string  `json:"difficulty"`
		Seed       *uint64 `json:"seed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Theme == "" {
		jsonError(w, "Champs 'theme', 'gridSize' et 'difficulty' requis", http.StatusBadRequest)
		return
	}

	diff, err := ParseDifficulty(req.Difficulty)
	if err != nil {
		jsonError(w, "Difficulté inconnue : easy, medium ou hard", http.StatusBadRequest)
		return
	}
	profile, err := diff.Profile(req.GridSize)
	if err != nil {
		jsonError(w, "Taille de grille invalide (minimum 4)", http.StatusBadRequest)
		return
	}

	words, err := s.source.Words(r.Context(), req.Theme)
	if err != nil {
		log.Printf("word source error: %v", err)
		jsonError(w, "Source de mots indisponible", http.StatusBadGateway)
		return
	}

	usable := filterWords(words, profile.MinLen, profile.MaxLen, profile.WordCount)
	if len(usable) < profile.WordCount {
		jsonError(w, "Pas assez de mots utilisables pour ce thème", http.StatusUnprocessableEntity)
		return
	}

	// An explicit seed makes the response reproducible; otherwise each
	// request draws from a fresh time-based stream.
	seed := uint64(time.Now().UnixNano())
	if req.Seed != nil {
		seed = *req.Seed
	}
	gen := NewGenerator(rand.New(rand.NewPCG(seed, seed>>1)))

	puzzle, err := gen.Generate(uuid.NewString(), req.Theme, req.GridSize, profile, usable)
	if err != nil {
		log.Printf("generate error: %v", err)
		jsonError(w, "Erreur lors de la génération du puzzle", http.StatusInternalServerError)
		return
	}

	n := s.store.NextSequence(req.GridSize, profile.Label)
	if _, err := s.store.Save(puzzle, n); err != nil {
		log.Printf("save error: %v", err)
		jsonError(w, "Erreur lors de l'enregistrement du puzzle", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/puzzles/%d/%s/%d", req.GridSize, profile.Label, n))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(puzzle)
}

// GET /api/puzzles — list stored puzzle metadata.
func (s *Server) handleListPuzzles(w http.ResponseWriter, _ *http.Request) {
	metas, err := s.store.List()
	if err != nil {
		log.Printf("list error: %v", err)
		jsonError(w, "Erreur lors du listage des puzzles", http.StatusInternalServerError)
		return
	}
	if metas == nil {
		metas = []PuzzleMeta{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(metas)
}

// GET /api/puzzles/{size}/{difficulty}/{n} — get a stored puzzle by its
// file number within the size/difficulty folder.
func (s *Server) handleGetPuzzle(w http.ResponseWriter, r *http.Request) {
	size, err := strconv.Atoi(r.PathValue("size"))
	if err != nil {
		jsonError(w, "Taille de grille invalide", http.StatusBadRequest)
		return
	}
	n, err := strconv.Atoi(r.PathValue("n"))
	if err != nil {
		jsonError(w, "Numéro de puzzle invalide", http.StatusBadRequest)
		return
	}

	puzzle, err := s.store.Load(size, r.PathValue("difficulty"), n)
	if err != nil {
		jsonError(w, "Puzzle introuvable", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(puzzle)
}

// --- Batch handlers ---

// POST /api/batch — start a batch run. A single run at a time.
func (s *Server) handleStartBatch(w http.ResponseWriter, _ *http.Request) {
	s.batchMu.Lock()
	if s.batchRunning {
		s.batchMu.Unlock()
		jsonError(w, "Une génération est déjà en cours", http.StatusConflict)
		return
	}
	s.batchRunning = true
	s.batchMu.Unlock()

	batch := NewBatch(s.source, s.store, s.batchOpts, func(e BatchEvent) {
		data, _ := json.Marshal(e)
		s.sse.Broadcast(batchTopic, string(data))
	})

	go func() {
		defer func() {
			s.batchMu.Lock()
			s.batchRunning = false
			s.batchMu.Unlock()
		}()
		if err := batch.Run(context.Background()); err != nil {
			log.Printf("batch error: %v", err)
			evt, _ := json.Marshal(BatchEvent{Type: "error", Error: err.Error()})
			s.sse.Broadcast(batchTopic, string(evt))
		}
	}()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{"status": "started"})
}

// GET /api/batch/events — SSE stream of batch progress.
func (s *Server) handleBatchEvents(w http.ResponseWriter, r *http.Request) {
	s.sse.ServeSSE(w, r, batchTopic, func(c *client) {
		s.batchMu.Lock()
		running := s.batchRunning
		s.batchMu.Unlock()

		evt, _ := json.Marshal(map[string]any{
			"type":    "connected",
			"running": running,
		})
		c.ch <- string(evt)
	}, nil)
}

// --- Helpers ---

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
