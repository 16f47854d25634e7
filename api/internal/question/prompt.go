package question

import "fmt"

// PairSchemaJSON is the response schema handed to providers that support
// constrained output. optionA is declared before optionB on purpose: the model
// is asked to emit the fields in that order.
const PairSchemaJSON = `{
  "type": "object",
  "properties": {
    "optionA": {"type": "string"},
    "optionB": {"type": "string"}
  },
  "required": ["optionA", "optionB"],
  "additionalProperties": false
}`

// BuildPrompt constructs the generation request for one question. Pure; any
// category string, including empty, is interpolated verbatim.
func BuildPrompt(category string, mode Mode) PromptRequest {
	var instr string
	switch mode {
	case ModeFreeText:
		// The delimiter pattern here must stay in sync with the normalizer's
		// strict pattern tier.
		instr = fmt.Sprintf(`Generate a "Would you rather" question about the category: %s.
Reply with exactly two options in this exact format: "A: [first option] OR B: [second option]".
Light markdown such as **bold** or *italics* inside an option is fine. Do not write anything else.`, category)
	default:
		instr = fmt.Sprintf(`Generate a fun "Would you rather" question about the category: %s.
The two options must be balanced against each other, non-negative and not sad.
Return the two options as optionA and optionB.`, category)
	}
	return PromptRequest{
		Category:    category,
		Mode:        mode,
		Instruction: instr,
	}
}
