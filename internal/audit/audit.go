// Package audit runs the cognitive battery over an assessment: fixed,
// stateless checks for the reasoning failures that sink intelligence
// work. A finding is advisory rather than an error; the analyst decides
// what to do with it. Every finding names the hypotheses and signals
// that triggered it, so the critique can be traced back into the exact
// chain version it was raised against.
package audit

import (
	"sort"

	"github.com/google/uuid"

	"github.com/Odokodan153/Chimera-Nexus/internal/htc"
)

// BiasType identifies one check in the battery.
type BiasType string

const (
	BiasTunnelVision  BiasType = "tunnel_vision"
	BiasConfirmation  BiasType = "confirmation_bias"
	BiasLogicalGap    BiasType = "logical_gap"
	BiasStaleEvidence BiasType = "stale_evidence"
)

// Severity grades how badly a finding undermines the assessment.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

func (s Severity) rank() int {
	switch s {
	case SeverityCritical:
		return 2
	case SeverityWarning:
		return 1
	default:
		return 0
	}
}

// Finding is one detected weakness. EvidenceRefs always names the
// entities that triggered the check; a finding with nothing to point
// at is never emitted.
type Finding struct {
	Bias         BiasType
	Severity     Severity
	Explanation  string
	Remediation  string
	EvidenceRefs []htc.Ref
}

// Config supplies the per-check thresholds. The zero value disables
// the threshold checks; use DefaultConfig for the documented defaults.
type Config struct {
	MinHypotheses         int     `json:"min_hypotheses" yaml:"min_hypotheses"`
	MinContradictionRatio float64 `json:"min_contradiction_ratio" yaml:"min_contradiction_ratio"`
}

// DefaultConfig returns the documented thresholds: at least two
// competing hypotheses, and at least one contradicting signal per ten
// on the primary.
func DefaultConfig() Config {
	return Config{MinHypotheses: 2, MinContradictionRatio: 0.1}
}

type check struct {
	bias BiasType
	run  func(a *htc.Assessment, cfg Config) []Finding
}

// battery is fixed and ordered. Checks are independent of each other;
// adding one is adding a row.
func battery() []check {
	return []check{
		{BiasTunnelVision, tunnelVision},
		{BiasConfirmation, confirmationBias},
		{BiasLogicalGap, logicalGap},
		{BiasStaleEvidence, staleEvidence},
	}
}

// Checks lists the battery's bias types in execution order.
func Checks() []BiasType {
	var out []BiasType
	for _, c := range battery() {
		out = append(out, c.bias)
	}
	return out
}

// Run executes the battery over one assessment version. The assessment
// is read-only and Run is idempotent: same version, same findings, same
// order. Findings keep battery order; within a check they run from
// critical down, ties broken by hypothesis position.
func Run(a *htc.Assessment, cfg Config) []Finding {
	if a == nil {
		return nil
	}
	var out []Finding
	for _, c := range battery() {
		fs := c.run(a, cfg)
		sortFindings(a, fs)
		out = append(out, fs...)
	}
	return out
}

func sortFindings(a *htc.Assessment, fs []Finding) {
	if len(fs) < 2 {
		return
	}
	pos := make(map[uuid.UUID]int, len(a.Hypotheses))
	for i, h := range a.Hypotheses {
		pos[h.ID] = i
	}
	hypAt := func(f Finding) int {
		for _, r := range f.EvidenceRefs {
			if r.Kind != htc.RefHypothesis {
				continue
			}
			if i, ok := pos[r.ID]; ok {
				return i
			}
		}
		return len(a.Hypotheses)
	}
	sort.SliceStable(fs, func(i, j int) bool {
		if fs[i].Severity.rank() != fs[j].Severity.rank() {
			return fs[i].Severity.rank() > fs[j].Severity.rank()
		}
		return hypAt(fs[i]) < hypAt(fs[j])
	})
}
