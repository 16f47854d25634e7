package question

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPrompt(t *testing.T) {
	t.Run("free text asks for the delimiter format", func(t *testing.T) {
		pr := BuildPrompt("Food", ModeFreeText)
		assert.Equal(t, "Food", pr.Category)
		assert.Equal(t, ModeFreeText, pr.Mode)
		assert.Contains(t, pr.Instruction, "Food")
		assert.Contains(t, pr.Instruction, `"A: [first option] OR B: [second option]"`)
	})

	t.Run("structured asks for named fields", func(t *testing.T) {
		pr := BuildPrompt("Travel", ModeStructured)
		assert.Equal(t, ModeStructured, pr.Mode)
		assert.Contains(t, pr.Instruction, "Travel")
		assert.Contains(t, pr.Instruction, "optionA")
		assert.Contains(t, pr.Instruction, "optionB")
	})

	t.Run("category goes in verbatim", func(t *testing.T) {
		for _, cat := range []string{"", "  odd  spacing  ", `with "quotes"`} {
			pr := BuildPrompt(cat, ModeStructured)
			assert.Equal(t, cat, pr.Category)
			assert.Contains(t, pr.Instruction, cat)
		}
	})
}

func TestParseMode(t *testing.T) {
	assert.Equal(t, ModeFreeText, ParseMode("free_text"))
	assert.Equal(t, ModeStructured, ParseMode("structured"))
	// anything else, including empty, means structured
	assert.Equal(t, ModeStructured, ParseMode(""))
	assert.Equal(t, ModeStructured, ParseMode("yaml"))
}

func TestPairSchemaJSON(t *testing.T) {
	var schema struct {
		Type       string                     `json:"type"`
		Properties map[string]json.RawMessage `json:"properties"`
		Required   []string                   `json:"required"`
	}
	require.NoError(t, json.Unmarshal([]byte(PairSchemaJSON), &schema))
	assert.Equal(t, "object", schema.Type)
	assert.Contains(t, schema.Properties, "optionA")
	assert.Contains(t, schema.Properties, "optionB")
	assert.Equal(t, []string{"optionA", "optionB"}, schema.Required)
	// field order in the schema text drives the order the model emits
	assert.Less(t,
		strings.Index(PairSchemaJSON, `"optionA"`),
		strings.Index(PairSchemaJSON, `"optionB"`))
}
