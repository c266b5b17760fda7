package htc

import "github.com/google/uuid"

// RefKind discriminates what an evidence reference points at.
type RefKind string

const (
	RefSignal     RefKind = "signal"
	RefHypothesis RefKind = "hypothesis"
)

// Ref is a stable pointer to an entity inside an assessment. Scores and
// findings carry refs rather than copies, so a consumer can look the
// entity up in the exact assessment version that produced the output.
type Ref struct {
	Kind RefKind
	ID   uuid.UUID
}

// SignalRef builds a reference to a signal.
func SignalRef(id uuid.UUID) Ref { return Ref{Kind: RefSignal, ID: id} }

// HypothesisRef builds a reference to a hypothesis.
func HypothesisRef(id uuid.UUID) Ref { return Ref{Kind: RefHypothesis, ID: id} }

// String renders kind/id, e.g. "signal/93ac2e71-...".
func (r Ref) String() string {
	return string(r.Kind) + "/" + r.ID.String()
}

// Short renders kind/id with the id truncated for table cells and log
// lines. Never use it as a key.
func (r Ref) Short() string {
	return string(r.Kind) + "/" + ShortID(r.ID)
}

// ShortID is the first eight hex digits of an id, the display form used
// across tables, reports and findings.
func ShortID(id uuid.UUID) string {
	return id.String()[:8]
}
