package handle

import (
	"encoding/json"
	"net/http"

	"wyr-proxy/api/internal/llm"
	"wyr-proxy/api/internal/store"
)

type Handle struct {
	engs *llm.Engines
	repo *store.QuestionRepo // optional; nil disables the diagnostics log
}

func New(engs *llm.Engines, repo *store.QuestionRepo) *Handle {
	return &Handle{
		engs: engs,
		repo: repo,
	}
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
