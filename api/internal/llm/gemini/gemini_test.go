package gemini

import (
	"context"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wyr-proxy/api/internal/llm"
	"wyr-proxy/api/internal/question"
)

func TestGenerateMissingKey(t *testing.T) {
	e := New("   ", "gemini-2.5-flash")
	_, err := e.Generate(context.Background(), question.BuildPrompt("General", question.ModeStructured))
	require.Error(t, err)
	assert.ErrorIs(t, err, llm.ErrMissingAPIKey)
}

func TestNewTrims(t *testing.T) {
	e := New("  key  ", "  gemini-2.5-flash  ")
	assert.Equal(t, "key", e.APIKey)
	assert.Equal(t, "gemini-2.5-flash", e.GetModel())
	e.SetModel(" gemini-2.0-flash ")
	assert.Equal(t, "gemini-2.0-flash", e.GetModel())
}

func TestPairSchema(t *testing.T) {
	s := pairSchema()
	assert.Equal(t, genai.TypeObject, s.Type)
	assert.Equal(t, []string{"optionA", "optionB"}, s.Required)
	assert.Equal(t, genai.TypeString, s.Properties["optionA"].Type)
	assert.Equal(t, genai.TypeString, s.Properties["optionB"].Type)
}

func TestFirstText(t *testing.T) {
	assert.Equal(t, "", firstText(nil))
	assert.Equal(t, "", firstText(&genai.GenerateContentResponse{}))

	resp := &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: nil},
			{Content: &genai.Content{Parts: []genai.Part{genai.Text("hello")}}},
		},
	}
	assert.Equal(t, "hello", firstText(resp))
}
