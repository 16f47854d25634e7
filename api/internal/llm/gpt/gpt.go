package gpt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"wyr-proxy/api/internal/llm"
	"wyr-proxy/api/internal/question"
)

type Engine struct {
	APIKey string
	Model  string
	client *openai.Client
}

func New(key, model string) *Engine {
	e := &Engine{
		APIKey: strings.TrimSpace(key),
		Model:  strings.TrimSpace(model),
	}
	if e.APIKey != "" {
		e.client = openai.NewClient(e.APIKey)
	}
	return e
}

func (e *Engine) Name() string      { return "gpt" }
func (e *Engine) GetModel() string  { return e.Model }
func (e *Engine) SetModel(m string) { e.Model = strings.TrimSpace(m) }

func (e *Engine) Generate(ctx context.Context, in question.PromptRequest) (string, error) {
	if e.APIKey == "" || e.client == nil {
		return "", fmt.Errorf("openai: %w", llm.ErrMissingAPIKey)
	}
	model := e.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: in.Instruction},
		},
	}
	if in.Mode == question.ModeStructured {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "question_pair",
				Strict: true,
				Schema: json.RawMessage(question.PairSchemaJSON),
			},
		}
	}

	// Single attempt, same contract as the gemini engine.
	resp, err := e.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("openai generate: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", errors.New("openai generate: empty response")
	}
	return resp.Choices[0].Message.Content, nil
}
