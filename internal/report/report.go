// Package report renders decision-support artifacts from a validated
// assessment: a Markdown briefing for humans and a Graphviz DOT graph
// of the evidence structure. Rendering never mutates the assessment and
// never recomputes scores or findings; callers pass in what they want
// shown.
package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Odokodan153/Chimera-Nexus/internal/audit"
	"github.com/Odokodan153/Chimera-Nexus/internal/display"
	"github.com/Odokodan153/Chimera-Nexus/internal/format"
	"github.com/Odokodan153/Chimera-Nexus/internal/htc"
	"github.com/Odokodan153/Chimera-Nexus/internal/iap"
)

// Markdown produces the executive briefing for one assessment version.
// score may be nil when no pressure calculation is wanted. timestamp is
// the render time (passed in so the function remains pure/testable).
func Markdown(a *htc.Assessment, score *iap.Score, findings []audit.Finding, timestamp time.Time) string {
	if a == nil {
		return "# Threat Assessment\n\nNo assessment loaded.\n"
	}

	var b strings.Builder

	writeHeader(&b, a, timestamp)
	writeVectors(&b, a)
	writeHypotheses(&b, a)
	writeSignals(&b, a)
	if score != nil {
		writePressure(&b, *score)
	}
	writeAudit(&b, findings)

	return b.String()
}

func writeHeader(b *strings.Builder, a *htc.Assessment, ts time.Time) {
	b.WriteString("# Threat Assessment: " + a.Name + "\n\n")

	tbl := format.NewTable(format.Markdown)
	tbl.Header("Field", "Value")
	tbl.Row("Assessment", htc.ShortID(a.ID))
	tbl.Row("Version", a.Version)
	tbl.Row("Created", format.FmtTime(a.CreatedAt)+" UTC")
	tbl.Row("Generated", ts.UTC().Format("2006-01-02 15:04 UTC"))
	tbl.Row("Urgency", format.FmtScore(a.Urgency))
	tbl.Row("Entities", fmt.Sprintf("%d vectors, %d hypotheses, %d signals",
		len(a.Vectors), len(a.Hypotheses), len(a.Signals)))
	b.WriteString(tbl.String())
	b.WriteString("\n\n")
}

func writeVectors(b *strings.Builder, a *htc.Assessment) {
	b.WriteString("## Threat Vectors\n\n")

	tbl := format.NewTable(format.Markdown)
	tbl.Header("#", "Actor", "Capability", "Intent", "Domain")
	for i, v := range a.Vectors {
		tbl.Row(
			fmt.Sprintf("V%d", i+1),
			v.Actor,
			display.Capability(string(v.Capability)),
			display.Intent(string(v.Intent)),
			display.Domain(string(v.Domain)),
		)
	}
	b.WriteString(tbl.String())
	b.WriteString("\n\n")
}

func writeHypotheses(b *strings.Builder, a *htc.Assessment) {
	b.WriteString("## Hypotheses\n\n")

	tbl := format.NewTable(format.Markdown)
	tbl.Header("#", "Statement", "Confidence", "Primary", "Supports", "Contradicts")
	tbl.Columns(format.Column{Number: 2, MaxWidth: 72})
	for i, h := range a.Hypotheses {
		tbl.Row(
			fmt.Sprintf("H%d", i+1),
			h.Statement,
			format.FmtScore(h.Confidence),
			format.BoolMark(h.Primary),
			len(h.Supporting),
			len(h.Contradicting),
		)
	}
	b.WriteString(tbl.String())
	b.WriteString("\n\n")
}

func writeSignals(b *strings.Builder, a *htc.Assessment) {
	b.WriteString("## Signals\n\n")
	if len(a.Signals) == 0 {
		b.WriteString("No signals attached.\n\n")
		return
	}

	hypIndex := hypothesisIndex(a)
	tbl := format.NewTable(format.Markdown)
	tbl.Header("#", "Description", "Reliability", "Polarity", "Hypothesis", "Observed")
	tbl.Columns(format.Column{Number: 2, MaxWidth: 60})
	for i, s := range a.Signals {
		tbl.Row(
			fmt.Sprintf("S%d", i+1),
			s.Description,
			display.Reliability(string(s.Reliability)),
			display.Polarity(string(s.Polarity)),
			fmt.Sprintf("H%d", hypIndex[s.Hypothesis]+1),
			format.FmtTime(s.ObservedAt),
		)
	}
	b.WriteString(tbl.String())
	b.WriteString("\n\n")
}

func writePressure(b *strings.Builder, score iap.Score) {
	b.WriteString("## Inference Pressure\n\n")

	tbl := format.NewTable(format.Markdown)
	tbl.Header("Component", "Value")
	tbl.Row("Pressure", display.PressureWithBand(score.Value))
	tbl.Row("Urgency", format.FmtScore(score.Urgency))
	tbl.Row("Primary confidence", format.FmtScore(score.Confidence))
	effective := format.FmtScore(score.Effective)
	if score.Effective > score.Confidence {
		effective += " (floored by epsilon)"
	}
	tbl.Row("Effective confidence", effective)
	tbl.Row("Epsilon", fmt.Sprintf("%.2f", score.Epsilon))
	tbl.Row("Primary hypothesis", score.Primary.Short())
	b.WriteString(tbl.String())
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf(
		"Derivation: pressure = urgency x (1 - max(confidence, epsilon)) = %s x (1 - %s) = %s\n\n",
		format.FmtScore(score.Urgency), format.FmtScore(score.Effective), format.FmtScore(score.Value)))
}

func writeAudit(b *strings.Builder, findings []audit.Finding) {
	b.WriteString("## Cognitive Audit\n\n")
	if len(findings) == 0 {
		b.WriteString("No structural biases detected.\n")
		return
	}

	tbl := format.NewTable(format.Markdown)
	tbl.Header("Bias", "Severity", "Explanation")
	tbl.Columns(format.Column{Number: 3, MaxWidth: 80})
	for _, f := range findings {
		tbl.Row(
			display.Bias(string(f.Bias)),
			display.Severity(string(f.Severity)),
			f.Explanation,
		)
	}
	b.WriteString(tbl.String())
	b.WriteString("\n\n")

	for _, f := range findings {
		b.WriteString(fmt.Sprintf("- **%s:** %s *(evidence: %s)*\n",
			display.Bias(string(f.Bias)), f.Remediation, refList(f.EvidenceRefs)))
	}
}

// --- helpers ---

func hypothesisIndex(a *htc.Assessment) map[uuid.UUID]int {
	idx := make(map[uuid.UUID]int, len(a.Hypotheses))
	for i, h := range a.Hypotheses {
		idx[h.ID] = i
	}
	return idx
}

func refList(refs []htc.Ref) string {
	if len(refs) == 0 {
		return "none"
	}
	parts := make([]string, 0, len(refs))
	for _, r := range refs {
		parts = append(parts, r.Short())
	}
	return strings.Join(parts, ", ")
}
