package htc

import (
	"time"

	"github.com/google/uuid"
)

// nextVersion clones the receiver and stamps the copy as the next
// version. Callers apply their change and validate before handing the
// copy out.
func (a *Assessment) nextVersion() *Assessment {
	next := a.Clone()
	next.Version++
	next.CreatedAt = time.Now().UTC()
	return next
}

// WithSignal returns the next version with sig attached. The signal is
// linked into the evidence list of the hypothesis it names according to
// its polarity. All or nothing: any invariant failure returns the error
// and no new version.
func (a *Assessment) WithSignal(sig Signal) (*Assessment, error) {
	if sig.ID == uuid.Nil {
		sig.ID = uuid.New()
	}
	if sig.ObservedAt.IsZero() {
		sig.ObservedAt = time.Now().UTC()
	}
	if err := sig.validate("signal"); err != nil {
		return nil, err
	}
	next := a.nextVersion()
	hyp, err := next.HypothesisByID(sig.Hypothesis)
	if err != nil {
		return nil, err
	}
	next.Signals = append(next.Signals, sig)
	if sig.Polarity == PolaritySupports {
		hyp.Supporting = append(hyp.Supporting, sig.ID)
	} else {
		hyp.Contradicting = append(hyp.Contradicting, sig.ID)
	}
	if err := next.Validate(); err != nil {
		return nil, err
	}
	return next, nil
}

// WithHypothesis returns the next version with h added as a competing
// explanation. Evidence lists must be empty, signals are how evidence
// gets attached. A second primary is rejected by validation.
func (a *Assessment) WithHypothesis(h Hypothesis) (*Assessment, error) {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	if len(h.Supporting) > 0 || len(h.Contradicting) > 0 {
		return nil, invalidf("hypothesis", "attach evidence by adding signals, not by pre-filling lists")
	}
	next := a.nextVersion()
	next.Hypotheses = append(next.Hypotheses, h)
	if err := next.Validate(); err != nil {
		return nil, err
	}
	return next, nil
}

// WithVector returns the next version with v appended to the ordered
// vector list.
func (a *Assessment) WithVector(v ThreatVector) (*Assessment, error) {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	next := a.nextVersion()
	next.Vectors = append(next.Vectors, v)
	if err := next.Validate(); err != nil {
		return nil, err
	}
	return next, nil
}

// WithConfidence returns the next version with the named hypothesis
// re-weighted.
func (a *Assessment) WithConfidence(hypothesis uuid.UUID, confidence float64) (*Assessment, error) {
	next := a.nextVersion()
	hyp, err := next.HypothesisByID(hypothesis)
	if err != nil {
		return nil, err
	}
	hyp.Confidence = confidence
	if err := next.Validate(); err != nil {
		return nil, err
	}
	return next, nil
}
