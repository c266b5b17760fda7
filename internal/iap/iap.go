// Package iap computes Intelligence Asymmetry Pressure: how hard the
// decision clock ticks relative to how little is known. Pressure rises
// with urgency and falls as confidence in the primary hypothesis grows.
// A floor on effective confidence keeps the maximum pressure strictly
// below full urgency, an analyst is never credited with knowing nothing
// at all.
package iap

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/Odokodan153/Chimera-Nexus/internal/htc"
)

// DefaultEpsilon is the standard floor on effective confidence.
const DefaultEpsilon = 0.05

// Config carries the tunable constants of the calculation. Epsilon must
// sit in [0,1); zero disables the floor.
type Config struct {
	Epsilon float64 `json:"epsilon" yaml:"epsilon"`
}

// DefaultConfig returns the standard constants.
func DefaultConfig() Config {
	return Config{Epsilon: DefaultEpsilon}
}

// Score is a pressure value together with every component that produced
// it, so consumers can render or audit the result without recomputing.
// Primary records which hypothesis the confidence was read from.
type Score struct {
	Value      float64
	Urgency    float64
	Confidence float64
	Effective  float64
	Epsilon    float64

	Primary           htc.Ref
	AssessmentID      uuid.UUID
	AssessmentVersion int
}

// Compute scores one assessment version:
//
//	pressure = urgency * (1 - max(confidence, epsilon))
//
// where confidence is read from the primary hypothesis. The assessment
// is taken read-only. Inputs are re-checked here even though validated
// assessments cannot violate them, a hand-built value must not produce
// a silently absurd score.
func Compute(a *htc.Assessment, cfg Config) (Score, error) {
	if a == nil {
		return Score{}, &htc.DomainError{Op: "compute_iap", Reason: "nil assessment"}
	}
	if cfg.Epsilon < 0 || cfg.Epsilon >= 1 {
		return Score{}, &htc.DomainError{
			Op:     "compute_iap",
			Reason: fmt.Sprintf("epsilon %v outside [0,1)", cfg.Epsilon),
		}
	}
	if a.Urgency < 0 || a.Urgency > 1 {
		return Score{}, &htc.DomainError{
			Op:     "compute_iap",
			Reason: fmt.Sprintf("urgency %v outside [0,1]", a.Urgency),
		}
	}
	primary, err := a.PrimaryHypothesis()
	if err != nil {
		return Score{}, err
	}
	if primary.Confidence < 0 || primary.Confidence > 1 {
		return Score{}, &htc.DomainError{
			Op:     "compute_iap",
			Reason: fmt.Sprintf("primary confidence %v outside [0,1]", primary.Confidence),
		}
	}

	effective := math.Max(primary.Confidence, cfg.Epsilon)
	return Score{
		Value:             a.Urgency * (1 - effective),
		Urgency:           a.Urgency,
		Confidence:        primary.Confidence,
		Effective:         effective,
		Epsilon:           cfg.Epsilon,
		Primary:           primary.Ref(),
		AssessmentID:      a.ID,
		AssessmentVersion: a.Version,
	}, nil
}
