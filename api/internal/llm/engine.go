package llm

import (
	"context"
	"errors"
	"strings"
	"sync"

	"wyr-proxy/api/internal/question"
)

// ErrMissingAPIKey marks a configuration failure: the provider credential is
// not set. Engines return it before any network call is made, so callers can
// tell it apart from a transient call failure with errors.Is.
var ErrMissingAPIKey = errors.New("missing API key")

type Engine interface {
	Name() string
	GetModel() string
	// Generate sends one prompt and returns the raw model output. Single
	// attempt: no retry, no backoff, transport-default timeouts only.
	Generate(ctx context.Context, in question.PromptRequest) (string, error)
}

type Engines struct {
	Gemini Engine
	OpenAI Engine
}

func (e *Engines) GetEngine(llmName string) (Engine, error) {
	switch strings.ToLower(strings.TrimSpace(llmName)) {
	case "", "gemini":
		if e.Gemini == nil {
			return nil, errors.New("gemini engine is not configured")
		}
		return e.Gemini, nil
	case "gpt", "openai":
		if e.OpenAI == nil {
			return nil, errors.New("openai engine is not configured")
		}
		return e.OpenAI, nil
	default:
		return nil, errors.New("unknown llm_name; use 'gemini' or 'gpt'")
	}
}

// Manager keeps a per-chat engine choice for the bot.
type Manager struct {
	def Engine
	m   sync.Map // chatID -> Engine
}

func NewManager(defaultEngine Engine) *Manager {
	return &Manager{def: defaultEngine}
}

func (m *Manager) Get(chatID int64) Engine {
	if v, ok := m.m.Load(chatID); ok {
		return v.(Engine)
	}
	return m.def
}

func (m *Manager) Set(chatID int64, e Engine) {
	m.m.Store(chatID, e)
}
