package audit

import (
	"fmt"
	"strings"

	"github.com/Odokodan153/Chimera-Nexus/internal/htc"
)

// tunnelVision flags an assessment holding fewer competing hypotheses
// than the configured minimum. A single uncontested explanation is
// flagged regardless of how confident it claims to be.
func tunnelVision(a *htc.Assessment, cfg Config) []Finding {
	if len(a.Hypotheses) >= cfg.MinHypotheses {
		return nil
	}
	refs := make([]htc.Ref, 0, len(a.Hypotheses))
	labels := make([]string, 0, len(a.Hypotheses))
	for _, h := range a.Hypotheses {
		refs = append(refs, h.Ref())
		labels = append(labels, label(h))
	}
	return []Finding{{
		Bias:     BiasTunnelVision,
		Severity: SeverityWarning,
		Explanation: fmt.Sprintf("%d of the required %d competing hypotheses are on the table: %s",
			len(a.Hypotheses), cfg.MinHypotheses, strings.Join(labels, "; ")),
		Remediation:  "generate rival explanations before trusting the primary",
		EvidenceRefs: refs,
	}}
}

// confirmationBias measures how much of the evidence on the primary
// hypothesis pushes back. Too little means the search was shaped by the
// answer. Skipped while the primary has no supporting evidence at all;
// that state belongs to the logical gap check.
func confirmationBias(a *htc.Assessment, cfg Config) []Finding {
	primary, err := a.PrimaryHypothesis()
	if err != nil {
		return nil
	}
	sup, con := len(primary.Supporting), len(primary.Contradicting)
	if sup == 0 {
		return nil
	}
	ratio := float64(con) / float64(sup+con)
	if ratio >= cfg.MinContradictionRatio {
		return nil
	}
	refs := []htc.Ref{primary.Ref()}
	for _, id := range primary.Supporting {
		refs = append(refs, htc.SignalRef(id))
	}
	for _, id := range primary.Contradicting {
		refs = append(refs, htc.SignalRef(id))
	}
	return []Finding{{
		Bias:     BiasConfirmation,
		Severity: SeverityCritical,
		Explanation: fmt.Sprintf("primary %s carries %d supporting against %d contradicting signals (ratio %.2f, floor %.2f)",
			label(*primary), sup, con, ratio, cfg.MinContradictionRatio),
		Remediation:  "task collection against the primary, not for it",
		EvidenceRefs: refs,
	}}
}

// logicalGap emits one finding per hypothesis claiming confidence with
// no supporting signal. Construction already rejects the state; the
// check re-asserts it as an explainable audit event for chains that
// arrived by other routes.
func logicalGap(a *htc.Assessment, _ Config) []Finding {
	var out []Finding
	for i := range a.Hypotheses {
		h := &a.Hypotheses[i]
		if h.Confidence <= 0 || len(h.Supporting) > 0 {
			continue
		}
		out = append(out, Finding{
			Bias:     BiasLogicalGap,
			Severity: SeverityCritical,
			Explanation: fmt.Sprintf("%s holds confidence %.2f with no supporting signal",
				label(*h), h.Confidence),
			Remediation:  "collect evidence or drop the confidence to zero",
			EvidenceRefs: []htc.Ref{h.Ref()},
		})
	}
	return out
}

// staleEvidence flags a chain resting entirely on unconfirmed sourcing.
// Internally consistent is not the same as corroborated. Vacuously
// silent on zero signals: with nothing observed there is no source
// quality to grade and no signal to cite.
func staleEvidence(a *htc.Assessment, _ Config) []Finding {
	if len(a.Signals) == 0 {
		return nil
	}
	refs := make([]htc.Ref, 0, len(a.Signals))
	for _, s := range a.Signals {
		if s.Reliability != htc.ReliabilityUnconfirmed {
			return nil
		}
		refs = append(refs, htc.SignalRef(s.ID))
	}
	return []Finding{{
		Bias:     BiasStaleEvidence,
		Severity: SeverityInfo,
		Explanation: fmt.Sprintf("all %d signals are unconfirmed, the chain rests entirely on uncorroborated input",
			len(a.Signals)),
		Remediation:  "corroborate at least one load-bearing signal",
		EvidenceRefs: refs,
	}}
}

// label renders a hypothesis for an explanation: short id plus a
// truncated statement.
func label(h htc.Hypothesis) string {
	s := h.Statement
	if len(s) > 48 {
		s = s[:45] + "..."
	}
	return fmt.Sprintf("hypothesis %s (%q)", htc.ShortID(h.ID), s)
}
