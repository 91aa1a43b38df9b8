package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load()

	batchMode := flag.Bool("batch", false, "run batch generation and exit instead of serving")
	dataDir := flag.String("data", envOr("DATA_DIR", "data"), "puzzle output directory")
	perCombo := flag.Int("per-combo", 3500, "puzzles per grid-size/difficulty combination")
	seed := flag.Uint64("seed", 0, "base seed for reproducible batch runs (0 = time-based)")
	flag.Parse()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	ctx := context.Background()

	var source WordSource = NewDatamuseClient()
	if projectID := os.Getenv("GCP_PROJECT_ID"); projectID != "" {
		gemini, err := NewGeminiClient(ctx, projectID, os.Getenv("GCP_REGION"))
		if err != nil {
			log.Fatalf("Impossible d'initialiser Gemini : %v", err)
		}
		defer gemini.Close()
		log.Printf("Client Gemini initialisé (projet: %s)", projectID)
		source = gemini
	} else {
		log.Println("GCP_PROJECT_ID non défini — source de mots Datamuse utilisée")
	}

	cached := NewCachedWordSource(source)
	store := NewStore(*dataDir)

	opts := DefaultBatchOptions()
	opts.PerCombo = *perCombo
	if *seed != 0 {
		opts.Seed = *seed
	}

	if *batchMode {
		batch := NewBatch(cached, store, opts, func(e BatchEvent) {
			switch e.Type {
			case "progress", "combo_done":
				log.Printf("[%d/%s] %d puzzles", e.GridSize, e.Difficulty, e.Count)
			case "combo_skip":
				log.Printf("[%d/%s] aucun thème avec assez de mots, combinaison ignorée", e.GridSize, e.Difficulty)
			case "error":
				log.Printf("[%d/%s] erreur : %s", e.GridSize, e.Difficulty, e.Error)
			}
		})
		if err := batch.Run(ctx); err != nil {
			log.Fatalf("Génération interrompue : %v", err)
		}
		log.Println("Génération terminée")
		return
	}

	srv := NewServer(store, cached, opts)

	log.Printf("Serveur démarré sur http://localhost:%s", port)
	if err := http.ListenAndServe(":"+port, srv); err != nil {
		log.Fatal(err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
