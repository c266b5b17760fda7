package htc

import "github.com/google/uuid"

// Hypothesis is one candidate explanation under consideration.
// Confidence is the analyst's judgement in [0,1], not a computed
// quantity. Supporting and Contradicting list the ids of signals tied
// to this hypothesis; they are derived from signal polarity and kept
// consistent by Assessment.Validate.
type Hypothesis struct {
	ID            uuid.UUID
	Statement     string
	Confidence    float64
	Primary       bool
	Supporting    []uuid.UUID
	Contradicting []uuid.UUID
}

func (h Hypothesis) validate(field string) error {
	if h.ID == uuid.Nil {
		return invalidf(field+".id", "missing id")
	}
	if h.Statement == "" {
		return invalidf(field+".statement", "statement is required")
	}
	if h.Confidence < 0 || h.Confidence > 1 {
		return invalidf(field+".confidence", "confidence must be within [0,1], got %v", h.Confidence)
	}
	if h.Confidence > 0 && len(h.Supporting) == 0 {
		return invalidf(field+".confidence", "confidence %v claimed with no supporting signal", h.Confidence)
	}
	return nil
}

// Ref returns the evidence reference pointing at this hypothesis.
func (h Hypothesis) Ref() Ref { return HypothesisRef(h.ID) }
