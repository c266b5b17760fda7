package htc

import (
	"time"

	"github.com/google/uuid"
)

// Document is the serialized form of an assessment: ids as plain
// strings, stable field names, no behavior. Stores and the export
// command write documents; FromDocument rebuilds the domain object and
// re-validates it, so a record tampered with at rest cannot come back
// as a quietly inconsistent chain.
type Document struct {
	ID         string          `json:"id" yaml:"id"`
	Name       string          `json:"name" yaml:"name"`
	Version    int             `json:"version" yaml:"version"`
	Urgency    float64         `json:"urgency" yaml:"urgency"`
	CreatedAt  time.Time       `json:"created_at" yaml:"created_at"`
	Vectors    []VectorDoc     `json:"threat_vectors" yaml:"threat_vectors"`
	Hypotheses []HypothesisDoc `json:"hypotheses" yaml:"hypotheses"`
	Signals    []SignalDoc     `json:"signals" yaml:"signals"`
}

type VectorDoc struct {
	ID         string `json:"id" yaml:"id"`
	Actor      string `json:"actor" yaml:"actor"`
	Capability string `json:"capability" yaml:"capability"`
	Intent     string `json:"intent" yaml:"intent"`
	Domain     string `json:"domain" yaml:"domain"`
}

type HypothesisDoc struct {
	ID            string   `json:"id" yaml:"id"`
	Statement     string   `json:"statement" yaml:"statement"`
	Confidence    float64  `json:"confidence" yaml:"confidence"`
	Primary       bool     `json:"primary" yaml:"primary"`
	Supporting    []string `json:"supporting,omitempty" yaml:"supporting,omitempty"`
	Contradicting []string `json:"contradicting,omitempty" yaml:"contradicting,omitempty"`
}

type SignalDoc struct {
	ID          string    `json:"id" yaml:"id"`
	Description string    `json:"description" yaml:"description"`
	Reliability string    `json:"reliability" yaml:"reliability"`
	Polarity    string    `json:"polarity" yaml:"polarity"`
	Hypothesis  string    `json:"hypothesis" yaml:"hypothesis"`
	ObservedAt  time.Time `json:"observed_at" yaml:"observed_at"`
}

// Document returns the wire form of the assessment.
func (a *Assessment) Document() Document {
	d := Document{
		ID:        a.ID.String(),
		Name:      a.Name,
		Version:   a.Version,
		Urgency:   a.Urgency,
		CreatedAt: a.CreatedAt,
	}
	for _, v := range a.Vectors {
		d.Vectors = append(d.Vectors, VectorDoc{
			ID:         v.ID.String(),
			Actor:      v.Actor,
			Capability: string(v.Capability),
			Intent:     string(v.Intent),
			Domain:     string(v.Domain),
		})
	}
	for _, h := range a.Hypotheses {
		hd := HypothesisDoc{
			ID:         h.ID.String(),
			Statement:  h.Statement,
			Confidence: h.Confidence,
			Primary:    h.Primary,
		}
		for _, id := range h.Supporting {
			hd.Supporting = append(hd.Supporting, id.String())
		}
		for _, id := range h.Contradicting {
			hd.Contradicting = append(hd.Contradicting, id.String())
		}
		d.Hypotheses = append(d.Hypotheses, hd)
	}
	for _, s := range a.Signals {
		d.Signals = append(d.Signals, SignalDoc{
			ID:          s.ID.String(),
			Description: s.Description,
			Reliability: string(s.Reliability),
			Polarity:    string(s.Polarity),
			Hypothesis:  s.Hypothesis.String(),
			ObservedAt:  s.ObservedAt,
		})
	}
	return d
}

// FromDocument rebuilds the domain object from its wire form and runs
// the full validation battery over it.
func FromDocument(d Document) (*Assessment, error) {
	id, err := parseID("id", d.ID)
	if err != nil {
		return nil, err
	}
	a := &Assessment{
		ID:        id,
		Name:      d.Name,
		Version:   d.Version,
		Urgency:   d.Urgency,
		CreatedAt: d.CreatedAt,
	}
	for i, vd := range d.Vectors {
		field := fieldAt("threat_vectors", i)
		vid, err := parseID(field+".id", vd.ID)
		if err != nil {
			return nil, err
		}
		a.Vectors = append(a.Vectors, ThreatVector{
			ID:         vid,
			Actor:      vd.Actor,
			Capability: CapabilityLevel(vd.Capability),
			Intent:     IntentLevel(vd.Intent),
			Domain:     ThreatDomain(vd.Domain),
		})
	}
	for i, hd := range d.Hypotheses {
		field := fieldAt("hypotheses", i)
		hid, err := parseID(field+".id", hd.ID)
		if err != nil {
			return nil, err
		}
		h := Hypothesis{
			ID:         hid,
			Statement:  hd.Statement,
			Confidence: hd.Confidence,
			Primary:    hd.Primary,
		}
		for j, raw := range hd.Supporting {
			sid, err := parseID(fieldAt(field+".supporting", j), raw)
			if err != nil {
				return nil, err
			}
			h.Supporting = append(h.Supporting, sid)
		}
		for j, raw := range hd.Contradicting {
			sid, err := parseID(fieldAt(field+".contradicting", j), raw)
			if err != nil {
				return nil, err
			}
			h.Contradicting = append(h.Contradicting, sid)
		}
		a.Hypotheses = append(a.Hypotheses, h)
	}
	for i, sd := range d.Signals {
		field := fieldAt("signals", i)
		sid, err := parseID(field+".id", sd.ID)
		if err != nil {
			return nil, err
		}
		hid, err := parseID(field+".hypothesis", sd.Hypothesis)
		if err != nil {
			return nil, err
		}
		a.Signals = append(a.Signals, Signal{
			ID:          sid,
			Description: sd.Description,
			Reliability: SourceReliability(sd.Reliability),
			Polarity:    Polarity(sd.Polarity),
			Hypothesis:  hid,
			ObservedAt:  sd.ObservedAt,
		})
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return a, nil
}

// ParseAssessmentID reads an assessment id from caller-supplied text
// (CLI arguments, tool inputs). Rejection is a ValidationError so the
// caller can tell bad input from a missing record.
func ParseAssessmentID(s string) (uuid.UUID, error) {
	return parseID("assessment_id", s)
}

func parseID(field, s string) (uuid.UUID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, invalidf(field, "bad id %q", s)
	}
	return id, nil
}
