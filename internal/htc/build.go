package htc

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// RawVector, RawHypothesis, RawSignal and RawAssessment are the loose
// form of a chain as it arrives from flags, YAML files or tool calls,
// before any invariant has been checked. Raw signals reference their
// hypothesis by position because nothing has an id yet.

type RawVector struct {
	Actor      string `json:"actor" yaml:"actor"`
	Capability string `json:"capability" yaml:"capability"`
	Intent     string `json:"intent" yaml:"intent"`
	Domain     string `json:"domain" yaml:"domain"`
}

type RawHypothesis struct {
	Statement  string  `json:"statement" yaml:"statement"`
	Confidence float64 `json:"confidence" yaml:"confidence"`
	Primary    bool    `json:"primary" yaml:"primary"`
}

type RawSignal struct {
	Description string    `json:"description" yaml:"description"`
	Reliability string    `json:"reliability" yaml:"reliability"`
	Polarity    string    `json:"polarity" yaml:"polarity"`
	Hypothesis  int       `json:"hypothesis" yaml:"hypothesis"`
	ObservedAt  time.Time `json:"observed_at,omitempty" yaml:"observed_at,omitempty"`
}

type RawAssessment struct {
	Name       string          `json:"name" yaml:"name"`
	Urgency    float64         `json:"urgency" yaml:"urgency"`
	Vectors    []RawVector     `json:"threat_vectors" yaml:"threat_vectors"`
	Hypotheses []RawHypothesis `json:"hypotheses" yaml:"hypotheses"`
	Signals    []RawSignal     `json:"signals,omitempty" yaml:"signals,omitempty"`
}

// Build turns raw input into version 1 of an assessment. Every field is
// checked, ids are assigned, signals are linked to the hypothesis at
// their index, and the finished chain goes through Validate once more
// as a unit. All or nothing: the first invalid field aborts the build
// with no partial result.
func Build(raw RawAssessment) (*Assessment, error) {
	now := time.Now().UTC()
	a := &Assessment{
		ID:        uuid.New(),
		Name:      raw.Name,
		Version:   1,
		Urgency:   raw.Urgency,
		CreatedAt: now,
	}
	for i, rv := range raw.Vectors {
		field := fieldAt("threat_vectors", i)
		capability, err := ParseCapability(rv.Capability)
		if err != nil {
			return nil, at(field, err)
		}
		intent, err := ParseIntent(rv.Intent)
		if err != nil {
			return nil, at(field, err)
		}
		domain, err := ParseThreatDomain(rv.Domain)
		if err != nil {
			return nil, at(field, err)
		}
		a.Vectors = append(a.Vectors, ThreatVector{
			ID:         uuid.New(),
			Actor:      rv.Actor,
			Capability: capability,
			Intent:     intent,
			Domain:     domain,
		})
	}
	for _, rh := range raw.Hypotheses {
		a.Hypotheses = append(a.Hypotheses, Hypothesis{
			ID:         uuid.New(),
			Statement:  rh.Statement,
			Confidence: rh.Confidence,
			Primary:    rh.Primary,
		})
	}
	for i, rs := range raw.Signals {
		field := fieldAt("signals", i)
		reliability, err := ParseReliability(rs.Reliability)
		if err != nil {
			return nil, at(field, err)
		}
		polarity, err := ParsePolarity(rs.Polarity)
		if err != nil {
			return nil, at(field, err)
		}
		if rs.Hypothesis < 0 || rs.Hypothesis >= len(a.Hypotheses) {
			return nil, invalidf(field+".hypothesis", "hypothesis index %d out of range", rs.Hypothesis)
		}
		hyp := &a.Hypotheses[rs.Hypothesis]
		observed := rs.ObservedAt
		if observed.IsZero() {
			observed = now
		}
		sig := Signal{
			ID:          uuid.New(),
			Description: rs.Description,
			Reliability: reliability,
			Polarity:    polarity,
			Hypothesis:  hyp.ID,
			ObservedAt:  observed,
		}
		a.Signals = append(a.Signals, sig)
		if polarity == PolaritySupports {
			hyp.Supporting = append(hyp.Supporting, sig.ID)
		} else {
			hyp.Contradicting = append(hyp.Contradicting, sig.ID)
		}
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// at prefixes a validation error's field with the path of the structure
// it sits in.
func at(prefix string, err error) error {
	var v *ValidationError
	if errors.As(err, &v) {
		return &ValidationError{Field: prefix + "." + v.Field, Reason: v.Reason}
	}
	return err
}
