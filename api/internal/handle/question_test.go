package handle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wyr-proxy/api/internal/llm"
	"wyr-proxy/api/internal/question"
)

type stubEngine struct {
	reply string
	err   error
	calls int
	last  question.PromptRequest
}

func (s *stubEngine) Name() string     { return "stub" }
func (s *stubEngine) GetModel() string { return "stub-model" }
func (s *stubEngine) Generate(_ context.Context, in question.PromptRequest) (string, error) {
	s.calls++
	s.last = in
	return s.reply, s.err
}

func newTestHandle(eng llm.Engine) *Handle {
	return New(&llm.Engines{Gemini: eng, OpenAI: eng}, nil)
}

func doQuestion(h *Handle, method, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/v1/question", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.Question(w, req)
	return w
}

func TestQuestionMethodNotAllowed(t *testing.T) {
	eng := &stubEngine{}
	w := doQuestion(newTestHandle(eng), http.MethodGet, "")

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, 0, eng.calls)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Method not allowed", resp["message"])
}

func TestQuestionStructuredPassthrough(t *testing.T) {
	eng := &stubEngine{reply: `{"optionA":"Live underwater","optionB":"Live in space"}`}
	w := doQuestion(newTestHandle(eng), http.MethodPost, `{"category":"Travel"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, 1, eng.calls)
	assert.Equal(t, question.ModeStructured, eng.last.Mode)
	assert.Contains(t, eng.last.Instruction, "Travel")

	var pair question.Pair
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pair))
	assert.Equal(t, "Live underwater", pair.OptionA)
	assert.Equal(t, "Live in space", pair.OptionB)
}

func TestQuestionFreeTextMode(t *testing.T) {
	eng := &stubEngine{reply: "A: Tea OR B: Coffee"}
	w := doQuestion(newTestHandle(eng), http.MethodPost, `{"category":"Food","mode":"free_text"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, question.ModeFreeText, eng.last.Mode)

	var pair question.Pair
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pair))
	assert.Equal(t, "Tea", pair.OptionA)
	assert.Equal(t, "Coffee", pair.OptionB)
}

func TestQuestionMalformedBody(t *testing.T) {
	eng := &stubEngine{reply: `{"optionA":"x","optionB":"y"}`}
	w := doQuestion(newTestHandle(eng), http.MethodPost, `{not json`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, eng.calls)
	assert.Equal(t, question.DefaultCategory, eng.last.Category)
}

func TestQuestionEmptyBody(t *testing.T) {
	eng := &stubEngine{reply: `{"optionA":"x","optionB":"y"}`}
	w := doQuestion(newTestHandle(eng), http.MethodPost, "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, question.DefaultCategory, eng.last.Category)
}

func TestQuestionUnknownEngine(t *testing.T) {
	eng := &stubEngine{}
	w := doQuestion(newTestHandle(eng), http.MethodPost, `{"category":"Tech","llm_name":"claude"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, eng.calls)
}

func TestQuestionMissingKey(t *testing.T) {
	eng := &stubEngine{err: fmt.Errorf("stub: %w", llm.ErrMissingAPIKey)}
	w := doQuestion(newTestHandle(eng), http.MethodPost, `{"category":"Tech"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Server configuration error", resp["message"])
	assert.NotEmpty(t, resp["error"])
}

func TestQuestionGenerateFailure(t *testing.T) {
	eng := &stubEngine{err: errors.New("upstream exploded")}
	w := doQuestion(newTestHandle(eng), http.MethodPost, `{"category":"Tech"}`)

	assert.Equal(t, http.StatusBadGateway, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Failed to generate question", resp["message"])
	assert.Contains(t, resp["error"], "upstream exploded")
}

func TestQuestionGarbageReplyStillAnswers(t *testing.T) {
	eng := &stubEngine{reply: "I cannot answer that."}
	w := doQuestion(newTestHandle(eng), http.MethodPost, `{"category":"Tech"}`)

	require.Equal(t, http.StatusOK, w.Code)

	var pair question.Pair
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &pair))
	assert.NotEmpty(t, pair.OptionA)
	assert.NotEmpty(t, pair.OptionB)
}
