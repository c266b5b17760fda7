package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Odokodan153/Chimera-Nexus/internal/audit"
	"github.com/Odokodan153/Chimera-Nexus/internal/display"
	"github.com/Odokodan153/Chimera-Nexus/internal/format"
	"github.com/Odokodan153/Chimera-Nexus/internal/htc"
	"github.com/Odokodan153/Chimera-Nexus/internal/store"
)

var auditFlags struct {
	db         string
	version    int
	all        bool
	parallel   int
	configPath string
	minHyps    int
	minRatio   float64
}

var auditCmd = &cobra.Command{
	Use:   "audit [assessment-id]",
	Short: "Run the cognitive bias battery against an assessment",
	Long: `Checks the structure of an assessment for reasoning failures: tunnel
vision (a single hypothesis), confirmation bias (too little contradicting
evidence on the primary), logical gaps (confident hypotheses without
support), and stale evidence (a uniformly weak evidence base).

Findings report severity, an explanation, a remediation, and the entity
references behind the verdict. A clean audit is a statement about the
chain's shape, not about the analyst being right.

With --all every stored assessment is audited at its latest version;
--parallel bounds the concurrent audits. Thresholds come from
--config (YAML or JSON) or the individual override flags.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAudit,
}

func init() {
	f := auditCmd.Flags()
	f.StringVar(&auditFlags.db, "db", store.DefaultDBPath, "path to the assessment store")
	f.IntVar(&auditFlags.version, "version", 0, "version to audit (0 = latest)")
	f.BoolVar(&auditFlags.all, "all", false, "audit every stored assessment at its latest version")
	f.IntVar(&auditFlags.parallel, "parallel", 4, "concurrent audits with --all")
	f.StringVar(&auditFlags.configPath, "config", "", "threshold config file (YAML or JSON)")
	f.IntVar(&auditFlags.minHyps, "min-hypotheses", 0, "override: minimum competing hypotheses")
	f.Float64Var(&auditFlags.minRatio, "min-contradiction-ratio", 0, "override: minimum contradicting share on the primary")
}

func auditConfig() (audit.Config, error) {
	cfg := audit.DefaultConfig()
	if auditFlags.configPath != "" {
		loaded, err := audit.LoadConfig(auditFlags.configPath)
		if err != nil {
			return audit.Config{}, err
		}
		cfg = loaded
	}
	if auditFlags.minHyps > 0 {
		cfg.MinHypotheses = auditFlags.minHyps
	}
	if auditFlags.minRatio > 0 {
		cfg.MinContradictionRatio = auditFlags.minRatio
	}
	return cfg, nil
}

func runAudit(cmd *cobra.Command, args []string) error {
	if auditFlags.all && len(args) == 1 {
		return fmt.Errorf("--all audits every assessment; drop the id argument")
	}
	if !auditFlags.all && len(args) == 0 {
		return fmt.Errorf("name an assessment or pass --all")
	}
	cfg, err := auditConfig()
	if err != nil {
		return err
	}

	st, err := openStore(auditFlags.db)
	if err != nil {
		return err
	}
	defer st.Close()

	out := cmd.OutOrStdout()
	if !auditFlags.all {
		a, err := resolveChain(st, args[0], auditFlags.version)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Audit of %s: %s (v%d)\n", htc.ShortID(a.ID), a.Name, a.Version)
		writeFindings(out, audit.Run(a, cfg))
		return nil
	}

	metas, err := st.List()
	if err != nil {
		return err
	}
	if len(metas) == 0 {
		fmt.Fprintln(out, "No assessments stored.")
		return nil
	}
	assessments := make([]*htc.Assessment, 0, len(metas))
	for _, m := range metas {
		a, err := st.Latest(m.ID)
		if err != nil {
			return err
		}
		assessments = append(assessments, a)
	}
	results, err := audit.RunBatch(cmd.Context(), assessments, cfg, auditFlags.parallel)
	if err != nil {
		return err
	}

	clean := 0
	for i, r := range results {
		a := assessments[i]
		fmt.Fprintf(out, "Audit of %s: %s (v%d)\n", htc.ShortID(r.AssessmentID), a.Name, r.AssessmentVersion)
		writeFindings(out, r.Findings)
		if len(r.Findings) == 0 {
			clean++
		}
		fmt.Fprintln(out)
	}
	fmt.Fprintf(out, "%d audited, %d clean\n", len(results), clean)
	return nil
}

func writeFindings(out io.Writer, findings []audit.Finding) {
	if len(findings) == 0 {
		fmt.Fprintln(out, "No structural biases detected.")
		return
	}
	t := format.NewTable(format.Terminal)
	t.Header("Bias", "Severity", "Explanation")
	t.Columns(format.Column{Number: 3, MaxWidth: 72})
	for _, f := range findings {
		t.Row(display.Bias(string(f.Bias)),
			format.Paint(severityTone(f.Severity), display.Severity(string(f.Severity))),
			f.Explanation)
	}
	fmt.Fprintln(out, t.String())
	for _, f := range findings {
		fmt.Fprintf(out, "%s: %s\n", display.Bias(string(f.Bias)), f.Remediation)
		if len(f.EvidenceRefs) > 0 {
			refs := make([]string, len(f.EvidenceRefs))
			for i, r := range f.EvidenceRefs {
				refs[i] = r.Short()
			}
			fmt.Fprintf(out, "  evidence: %s\n", strings.Join(refs, ", "))
		}
	}
}

func severityTone(s audit.Severity) format.Tone {
	switch s {
	case audit.SeverityCritical:
		return format.ToneBad
	case audit.SeverityWarning:
		return format.ToneWarn
	default:
		return format.ToneNeutral
	}
}
