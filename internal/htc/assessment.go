// Package htc models the Hybrid Threat Chain: versioned threat
// assessments that bind threat vectors, competing hypotheses and the
// intelligence signals bearing on them into one structure with checked
// referential integrity. Nothing in this package does I/O; stores and
// transports live elsewhere and move assessments around as values.
package htc

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Assessment is one version of a hybrid threat chain. Versions are
// immutable once built: every revision method returns a fresh value
// with Version bumped and the receiver untouched, so two readers can
// hold the same version forever and disagree about nothing.
type Assessment struct {
	ID         uuid.UUID
	Name       string
	Version    int
	Urgency    float64
	Vectors    []ThreatVector
	Hypotheses []Hypothesis
	Signals    []Signal
	CreatedAt  time.Time
}

// Validate checks every structural invariant of the chain. It stops at
// the first violation so error messages stay actionable. The zero-value
// checks come first, then per-entity field checks, then the
// cross-entity rules: unique ids, a single primary hypothesis,
// referential closure, polarity consistency and the confirmed-intent
// obligation.
func (a *Assessment) Validate() error {
	if a.ID == uuid.Nil {
		return invalidf("id", "missing id")
	}
	if a.Name == "" {
		return invalidf("name", "name is required")
	}
	if a.Version < 1 {
		return invalidf("version", "version must be >= 1, got %d", a.Version)
	}
	if a.Urgency < 0 || a.Urgency > 1 {
		return invalidf("urgency", "urgency must be within [0,1], got %v", a.Urgency)
	}
	if a.CreatedAt.IsZero() {
		return invalidf("created_at", "missing creation time")
	}
	if len(a.Vectors) == 0 {
		return invalidf("threat_vectors", "at least one threat vector is required")
	}
	if len(a.Hypotheses) == 0 {
		return invalidf("hypotheses", "at least one hypothesis is required")
	}

	seen := map[uuid.UUID]string{a.ID: "assessment"}
	for i, v := range a.Vectors {
		field := fieldAt("threat_vectors", i)
		if err := v.validate(field); err != nil {
			return err
		}
		if prev, dup := seen[v.ID]; dup {
			return invalidf(field+".id", "id already used by %s", prev)
		}
		seen[v.ID] = field
	}

	primaries := 0
	hypAt := make(map[uuid.UUID]*Hypothesis, len(a.Hypotheses))
	for i := range a.Hypotheses {
		h := &a.Hypotheses[i]
		field := fieldAt("hypotheses", i)
		if err := h.validate(field); err != nil {
			return err
		}
		if prev, dup := seen[h.ID]; dup {
			return invalidf(field+".id", "id already used by %s", prev)
		}
		seen[h.ID] = field
		hypAt[h.ID] = h
		if h.Primary {
			primaries++
		}
	}
	if primaries != 1 {
		return &DomainError{
			Op:     "validate",
			Reason: fmt.Sprintf("exactly one hypothesis must be primary, found %d", primaries),
		}
	}

	sigAt := make(map[uuid.UUID]*Signal, len(a.Signals))
	for i := range a.Signals {
		s := &a.Signals[i]
		field := fieldAt("signals", i)
		if err := s.validate(field); err != nil {
			return err
		}
		if prev, dup := seen[s.ID]; dup {
			return invalidf(field+".id", "id already used by %s", prev)
		}
		seen[s.ID] = field
		sigAt[s.ID] = s
		if _, ok := hypAt[s.Hypothesis]; !ok {
			return &ReferentialError{Ref: HypothesisRef(s.Hypothesis)}
		}
	}

	// The evidence lists on each hypothesis must mirror signal polarity
	// exactly: every listed id resolves to a signal that names this
	// hypothesis with the matching polarity, and every signal appears in
	// precisely one list.
	listed := make(map[uuid.UUID]bool, len(a.Signals))
	for i := range a.Hypotheses {
		h := &a.Hypotheses[i]
		field := fieldAt("hypotheses", i)
		for _, part := range []struct {
			name string
			ids  []uuid.UUID
			pol  Polarity
		}{
			{"supporting", h.Supporting, PolaritySupports},
			{"contradicting", h.Contradicting, PolarityContradicts},
		} {
			for _, id := range part.ids {
				s, ok := sigAt[id]
				if !ok {
					return &ReferentialError{Ref: SignalRef(id)}
				}
				if listed[id] {
					return invalidf(field+"."+part.name, "signal %s listed more than once", ShortID(id))
				}
				listed[id] = true
				if s.Hypothesis != h.ID {
					return invalidf(field+"."+part.name, "signal %s names a different hypothesis", ShortID(id))
				}
				if s.Polarity != part.pol {
					return invalidf(field+"."+part.name, "signal %s has polarity %q", ShortID(id), s.Polarity)
				}
			}
		}
	}
	for i := range a.Signals {
		if !listed[a.Signals[i].ID] {
			return invalidf(fieldAt("signals", i), "signal is not listed by its hypothesis")
		}
	}

	// Confirmed intent is a strong claim. Holding it with zero
	// supporting signals anywhere in the chain contradicts the model.
	for i, v := range a.Vectors {
		if v.Intent != IntentConfirmed {
			continue
		}
		if !a.hasSupportingSignal() {
			return &DomainError{
				Op: "validate",
				Reason: fmt.Sprintf("%s claims confirmed intent but no signal supports any hypothesis",
					fieldAt("threat_vectors", i)),
			}
		}
	}
	return nil
}

func (a *Assessment) hasSupportingSignal() bool {
	for _, s := range a.Signals {
		if s.Polarity == PolaritySupports {
			return true
		}
	}
	return false
}

// PrimaryHypothesis returns the analyst's current best explanation.
// The count is re-checked here rather than trusted, so a hand-built
// assessment that skipped Validate still cannot smuggle an ambiguous
// primary into downstream consumers.
func (a *Assessment) PrimaryHypothesis() (*Hypothesis, error) {
	var found *Hypothesis
	for i := range a.Hypotheses {
		if !a.Hypotheses[i].Primary {
			continue
		}
		if found != nil {
			return nil, &DomainError{Op: "primary_hypothesis", Reason: "more than one hypothesis is marked primary"}
		}
		found = &a.Hypotheses[i]
	}
	if found == nil {
		return nil, &DomainError{Op: "primary_hypothesis", Reason: "no hypothesis is marked primary"}
	}
	return found, nil
}

// Resolve follows an evidence reference to the signal it names.
func (a *Assessment) Resolve(ref Ref) (*Signal, error) {
	if ref.Kind != RefSignal {
		return nil, &ReferentialError{Ref: ref}
	}
	for i := range a.Signals {
		if a.Signals[i].ID == ref.ID {
			return &a.Signals[i], nil
		}
	}
	return nil, &ReferentialError{Ref: ref}
}

// HypothesisByID returns the hypothesis with the given id.
func (a *Assessment) HypothesisByID(id uuid.UUID) (*Hypothesis, error) {
	for i := range a.Hypotheses {
		if a.Hypotheses[i].ID == id {
			return &a.Hypotheses[i], nil
		}
	}
	return nil, &ReferentialError{Ref: HypothesisRef(id)}
}

// Clone returns a deep copy. Mutating the copy never reaches the
// receiver, which is what lets stores and revision methods hand out
// versions without sharing slices.
func (a *Assessment) Clone() *Assessment {
	if a == nil {
		return nil
	}
	out := *a
	out.Vectors = append([]ThreatVector(nil), a.Vectors...)
	out.Signals = append([]Signal(nil), a.Signals...)
	out.Hypotheses = make([]Hypothesis, len(a.Hypotheses))
	for i, h := range a.Hypotheses {
		h.Supporting = append([]uuid.UUID(nil), h.Supporting...)
		h.Contradicting = append([]uuid.UUID(nil), h.Contradicting...)
		out.Hypotheses[i] = h
	}
	return &out
}

func fieldAt(name string, i int) string {
	return fmt.Sprintf("%s[%d]", name, i)
}
