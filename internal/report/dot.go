package report

import (
	"fmt"
	"strings"

	"github.com/Odokodan153/Chimera-Nexus/internal/format"
	"github.com/Odokodan153/Chimera-Nexus/internal/htc"
)

// DOT renders the evidence graph in Graphviz DOT. Hypotheses are boxes
// (the primary double-bordered), signals are ellipses with an edge to
// their hypothesis labeled by polarity, threat vectors are hexagons.
// Render with: dot -Tpng out.dot -o out.png
func DOT(a *htc.Assessment) string {
	if a == nil {
		return "digraph assessment {\n}\n"
	}

	var b strings.Builder
	b.WriteString("digraph assessment {\n")
	b.WriteString("\trankdir=LR;\n")
	b.WriteString("\tnode [fontname=\"Helvetica\" fontsize=11];\n")
	b.WriteString(fmt.Sprintf("\tlabel=%s;\n", dotLabel(fmt.Sprintf("%s (v%d)", a.Name, a.Version))))
	b.WriteString("\tlabelloc=t;\n\n")

	for i, v := range a.Vectors {
		b.WriteString(fmt.Sprintf("\tv%d [shape=hexagon label=%s];\n",
			i, dotLabel(v.Actor, fmt.Sprintf("%s / %s", v.Domain, v.Capability))))
	}
	if len(a.Vectors) > 0 {
		b.WriteString("\n")
	}

	hypNode := make(map[string]string, len(a.Hypotheses))
	for i, h := range a.Hypotheses {
		name := fmt.Sprintf("h%d", i)
		hypNode[h.ID.String()] = name
		attrs := fmt.Sprintf("shape=box label=%s",
			dotLabel(format.Truncate(h.Statement, 48), fmt.Sprintf("confidence %.2f", h.Confidence)))
		if h.Primary {
			attrs += " peripheries=2"
		}
		b.WriteString(fmt.Sprintf("\t%s [%s];\n", name, attrs))
	}
	b.WriteString("\n")

	for i, s := range a.Signals {
		name := fmt.Sprintf("s%d", i)
		b.WriteString(fmt.Sprintf("\t%s [shape=ellipse label=%s];\n",
			name, dotLabel(format.Truncate(s.Description, 48), string(s.Reliability))))
		edge := fmt.Sprintf("\t%s -> %s [label=%s", name, hypNode[s.Hypothesis.String()], dotLabel(string(s.Polarity)))
		if s.Polarity == htc.PolarityContradicts {
			edge += " color=firebrick style=dashed"
		} else {
			edge += " color=darkgreen"
		}
		b.WriteString(edge + "];\n")
	}

	b.WriteString("}\n")
	return b.String()
}

// dotLabel escapes parts and joins them as lines of one quoted DOT label.
func dotLabel(parts ...string) string {
	esc := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ReplaceAll(p, `\`, `\\`)
		p = strings.ReplaceAll(p, `"`, `\"`)
		esc = append(esc, p)
	}
	return `"` + strings.Join(esc, `\n`) + `"`
}
