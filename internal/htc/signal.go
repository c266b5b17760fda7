package htc

import (
	"time"

	"github.com/google/uuid"
)

// Signal is one discrete piece of intelligence. Polarity states which
// way it cuts for the single hypothesis it names; a signal that bears
// on two hypotheses is recorded once per hypothesis.
type Signal struct {
	ID          uuid.UUID
	Description string
	Reliability SourceReliability
	Polarity    Polarity
	Hypothesis  uuid.UUID
	ObservedAt  time.Time
}

func (s Signal) validate(field string) error {
	if s.ID == uuid.Nil {
		return invalidf(field+".id", "missing id")
	}
	if s.Description == "" {
		return invalidf(field+".description", "description is required")
	}
	if !s.Reliability.Valid() {
		return invalidf(field+".reliability", "unknown source reliability %q", s.Reliability)
	}
	if !s.Polarity.Valid() {
		return invalidf(field+".polarity", "unknown polarity %q", s.Polarity)
	}
	if s.Hypothesis == uuid.Nil {
		return invalidf(field+".hypothesis", "signal must name the hypothesis it bears on")
	}
	if s.ObservedAt.IsZero() {
		return invalidf(field+".observed_at", "missing observation time")
	}
	return nil
}
