package question

import (
	"encoding/json"
	"log"
	"regexp"
	"strings"
)

// Policy carries the knobs of the degraded extraction path.
type Policy struct {
	// FoldCaseForOr makes the " or " split case-insensitive, so "Eat pizza OR
	// starve" still splits. The surrounding spaces in the separator already act
	// as word boundaries.
	FoldCaseForOr bool
}

var DefaultPolicy = Policy{FoldCaseForOr: true}

const (
	// orSeparator is the fixed-length token the degraded path splits on.
	orSeparator = " or "
	// fallbackOptionB fills option B when only option A could be extracted.
	fallbackOptionB = "something else entirely"
)

// defaultPair is returned when the raw output carries no recognizable option
// marker at all. The wording is cosmetic; being stable and non-empty is not.
var defaultPair = Pair{
	OptionA: "Have the ability to fly",
	OptionB: "Be able to read minds",
}

var (
	rePair    = regexp.MustCompile(`(?is)\bA\s*:\s*(.+?)\s+OR\s+B\s*:\s*(.+)$`)
	reOptionA = regexp.MustCompile(`(?is)\bA\s*:\s*(.+)$`)
	reMarkerB = regexp.MustCompile(`(?i)\bB\s*:`)
	reOrSep   = regexp.MustCompile(`(?i) or `)
)

// Normalize turns raw model output into a populated Pair. It never fails: each
// tier is attempted only after the stricter ones did not match, and the last
// tier is a hard-coded dilemma. The tier used is returned for diagnostics, and
// every fallback beyond the mode's primary path is logged together with the
// untrimmed raw text so model-quality regressions stay visible.
func Normalize(raw string, mode Mode, pol Policy) (Pair, Tier) {
	if mode == ModeStructured {
		if p, ok := parseStructured(raw); ok {
			return p, TierStructured
		}
		log.Printf("normalize: structured output unusable, trying pattern match; raw=%q", raw)
	}

	if m := rePair.FindStringSubmatch(raw); m != nil {
		a, b := strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
		if a != "" && b != "" {
			if mode == ModeStructured {
				log.Printf("normalize: tier=%s raw=%q", TierPattern, raw)
			}
			return Pair{OptionA: a, OptionB: b}, TierPattern
		}
	}

	if p, tier, ok := splitLoose(raw, pol); ok {
		log.Printf("normalize: tier=%s raw=%q", tier, raw)
		return p, tier
	}

	log.Printf("normalize: tier=%s, no option marker found; raw=%q", TierDefault, raw)
	return defaultPair, TierDefault
}

// parseStructured accepts a serialized object with both options present and
// non-blank. The field values are returned untouched.
func parseStructured(raw string) (Pair, bool) {
	txt := stripCodeFences(raw)
	var p Pair
	if err := json.Unmarshal([]byte(txt), &p); err != nil {
		return Pair{}, false
	}
	if strings.TrimSpace(p.OptionA) == "" || strings.TrimSpace(p.OptionB) == "" {
		return Pair{}, false
	}
	return p, true
}

// splitLoose handles output where only the "A" marker is present: split at an
// embedded "B:" marker, else at the first " or ", else keep the whole capture
// as option A and fill option B with a stock filler.
func splitLoose(raw string, pol Policy) (Pair, Tier, bool) {
	m := reOptionA.FindStringSubmatch(raw)
	if m == nil {
		return Pair{}, "", false
	}
	body := m[1]

	if loc := reMarkerB.FindStringIndex(body); loc != nil {
		a := strings.TrimSpace(body[:loc[0]])
		b := strings.TrimSpace(body[loc[1]:])
		if a != "" && b != "" {
			return Pair{OptionA: a, OptionB: b}, TierMarkerSplit, true
		}
	}

	// The separator is located in body itself, never in a case-folded copy:
	// folding can change byte length (İ lowers to a 3-byte sequence) and the
	// indices would no longer line up.
	var sep []int
	if pol.FoldCaseForOr {
		sep = reOrSep.FindStringIndex(body)
	} else if i := strings.Index(body, orSeparator); i >= 0 {
		sep = []int{i, i + len(orSeparator)}
	}
	if sep != nil {
		a := strings.TrimSpace(body[:sep[0]])
		b := strings.TrimSpace(body[sep[1]:])
		if a != "" && b != "" {
			return Pair{OptionA: a, OptionB: b}, TierOrSplit, true
		}
	}

	a := strings.TrimSpace(body)
	if a == "" {
		return Pair{}, "", false
	}
	return Pair{OptionA: a, OptionB: fallbackOptionB}, TierSingleOption, true
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
