package question

import "strings"

// Mode selects which prompt format is requested from the model and which
// parsing path the normalizer prefers.
type Mode string

const (
	// ModeFreeText asks the model for a plain-text "A: ... OR B: ..." reply.
	ModeFreeText Mode = "free_text"
	// ModeStructured asks the model for a JSON object with optionA/optionB,
	// constrained by a response schema where the provider supports it.
	ModeStructured Mode = "structured"
)

// ParseMode maps a caller-supplied mode string to a Mode. Anything that is not
// recognizably free-text falls back to structured, the most reliable path.
func ParseMode(s string) Mode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "free_text", "free-text", "free", "text":
		return ModeFreeText
	default:
		return ModeStructured
	}
}

// DefaultCategory is used when a request carries no category or an unparsable body.
const DefaultCategory = "General"

// PromptRequest is everything an engine needs to ask the model for one question.
type PromptRequest struct {
	Category    string
	Mode        Mode
	Instruction string
}

// Pair is the two-option result. Both fields are non-empty on every path out of
// Normalize; callers never see a partial pair.
type Pair struct {
	OptionA string `json:"optionA"`
	OptionB string `json:"optionB"`
}

// Tier names the normalization strategy that produced a Pair, ordered from the
// most to the least structurally reliable interpretation of the raw output.
type Tier string

const (
	TierStructured   Tier = "structured"    // valid JSON with both options
	TierPattern      Tier = "pattern"       // strict "A: ... OR B: ..." match
	TierMarkerSplit  Tier = "marker_split"  // only "A:" matched, split at embedded "B:"
	TierOrSplit      Tier = "or_split"      // only "A:" matched, split at " or "
	TierSingleOption Tier = "single_option" // only "A:" matched, option B is a stock filler
	TierDefault      Tier = "default"       // nothing matched, stock dilemma returned
)
