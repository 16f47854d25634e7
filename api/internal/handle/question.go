package handle

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"wyr-proxy/api/internal/llm"
	"wyr-proxy/api/internal/question"
	"wyr-proxy/api/internal/store"
)

type QuestionRequest struct {
	Category string `json:"category"`
	Mode     string `json:"mode,omitempty"`
	LLMName  string `json:"llm_name,omitempty"`
}

// Question serves POST /v1/question: build prompt -> invoke engine ->
// normalize -> emit. One pass per request, no retries.
func (h *Handle) Question(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"message": "Method not allowed"})
		return
	}

	// A broken or absent body is tolerated: fall back to the default category.
	var req QuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		req = QuestionRequest{}
	}
	category := strings.TrimSpace(req.Category)
	if category == "" {
		category = question.DefaultCategory
	}
	mode := question.ParseMode(req.Mode)

	engine, err := h.engs.GetEngine(req.LLMName)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return
	}

	pr := question.BuildPrompt(category, mode)
	raw, err := engine.Generate(r.Context(), pr)
	if err != nil {
		if errors.Is(err, llm.ErrMissingAPIKey) {
			log.Printf("question: configuration error: %v", err)
			writeJSON(w, http.StatusInternalServerError, map[string]string{
				"message": "Server configuration error",
				"error":   err.Error(),
			})
			return
		}
		log.Printf("question: generation failed: %v", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{
			"message": "Failed to generate question",
			"error":   err.Error(),
		})
		return
	}

	pair, tier := question.Normalize(raw, mode, question.DefaultPolicy)

	if h.repo != nil {
		rec := store.QuestionRecord{
			Category: category,
			Engine:   engine.Name(),
			Model:    engine.GetModel(),
			Mode:     string(mode),
			Tier:     string(tier),
			RawText:  raw,
			OptionA:  pair.OptionA,
			OptionB:  pair.OptionB,
		}
		// The log is best-effort; a storage hiccup never fails the request.
		if err := h.repo.Insert(r.Context(), rec); err != nil {
			log.Printf("question: store insert: %v", err)
		}
	}

	writeJSON(w, http.StatusOK, pair)
}
