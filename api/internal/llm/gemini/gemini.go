package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"wyr-proxy/api/internal/llm"
	"wyr-proxy/api/internal/question"
)

type Engine struct {
	APIKey string
	Model  string
}

func New(apiKey, model string) *Engine {
	return &Engine{
		APIKey: strings.TrimSpace(apiKey),
		Model:  strings.TrimSpace(model),
	}
}

func (e *Engine) Name() string      { return "gemini" }
func (e *Engine) GetModel() string  { return e.Model }
func (e *Engine) SetModel(m string) { e.Model = strings.TrimSpace(m) }

// pairSchema mirrors question.PairSchemaJSON in the SDK's schema type.
// Required lists optionA before optionB: the model emits the fields in that
// declared order.
func pairSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"optionA": {Type: genai.TypeString},
			"optionB": {Type: genai.TypeString},
		},
		Required: []string{"optionA", "optionB"},
	}
}

func (e *Engine) Generate(ctx context.Context, in question.PromptRequest) (string, error) {
	if e.APIKey == "" {
		return "", fmt.Errorf("gemini: %w", llm.ErrMissingAPIKey)
	}
	cl, err := genai.NewClient(ctx, option.WithAPIKey(e.APIKey))
	if err != nil {
		return "", fmt.Errorf("gemini client: %w", err)
	}
	defer cl.Close()

	m := cl.GenerativeModel(e.Model)
	if m == nil {
		return "", fmt.Errorf("gemini: model is nil")
	}
	if in.Mode == question.ModeStructured {
		m.GenerationConfig = genai.GenerationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   pairSchema(),
		}
	}

	// Single attempt: a transient failure is surfaced, not retried.
	resp, err := m.GenerateContent(ctx, genai.Text(in.Instruction))
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	txt := firstText(resp)
	if strings.TrimSpace(txt) == "" {
		return "", errors.New("gemini generate: empty response")
	}
	return txt, nil
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}
