package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/joho/godotenv"

	"wyr-proxy/api/internal/config"
	"wyr-proxy/api/internal/handle"
	"wyr-proxy/api/internal/llm"
	"wyr-proxy/api/internal/llm/gemini"
	"wyr-proxy/api/internal/llm/gpt"
	"wyr-proxy/api/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}
	cfg := config.Load()

	if p := strings.TrimSpace(os.Getenv("PORT")); p != "" {
		cfg.Port = p
	} else if strings.TrimSpace(cfg.Port) == "" {
		cfg.Port = "8000"
	}

	// Optional diagnostics log. The service runs fine without a database.
	var repo *store.QuestionRepo
	if dsn := strings.TrimSpace(os.Getenv("DATABASE_URL")); dsn != "" {
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			log.Fatalf("sql.Open: %v", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(10)
		db.SetConnMaxLifetime(1 * time.Hour)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := db.PingContext(ctx); err != nil {
			log.Fatalf("db.Ping: %v", err)
		}
		repo = store.NewQuestionRepo(db)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatalf("store schema: %v", err)
		}
		log.Printf("question log enabled")
	} else {
		log.Printf("no DATABASE_URL; question log disabled")
	}

	engines := &llm.Engines{
		Gemini: gemini.New(cfg.GeminiAPIKey, cfg.GeminiModel),
		OpenAI: gpt.New(cfg.OpenAIAPIKey, cfg.OpenAIModel),
	}
	h := handle.New(engines, repo)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mux.HandleFunc("/v1/question", h.Question)

	addr := ":" + cfg.Port
	log.Printf("wyr-api listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, mux))
}
