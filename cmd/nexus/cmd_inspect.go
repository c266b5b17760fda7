package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Odokodan153/Chimera-Nexus/internal/display"
	"github.com/Odokodan153/Chimera-Nexus/internal/format"
	"github.com/Odokodan153/Chimera-Nexus/internal/htc"
	"github.com/Odokodan153/Chimera-Nexus/internal/store"
)

var inspectFlags struct {
	db      string
	version int
	history bool
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <assessment-id>",
	Short: "Show one assessment in full: vectors, hypotheses, signals",
	Long: `Prints every entity of an assessment version. Hypotheses and signals
are numbered (H1, S1, ...) and those positions are accepted back by the
revision commands, so inspect is the natural first step of any edit.

With --history the command lists every stored version instead, oldest
first, so the growth of the chain can be read off the entity counts.`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	f := inspectCmd.Flags()
	f.StringVar(&inspectFlags.db, "db", store.DefaultDBPath, "path to the assessment store")
	f.IntVar(&inspectFlags.version, "version", 0, "version to show (0 = latest)")
	f.BoolVar(&inspectFlags.history, "history", false, "list all stored versions instead of entity detail")
}

func runInspect(cmd *cobra.Command, args []string) error {
	st, err := openStore(inspectFlags.db)
	if err != nil {
		return err
	}
	defer st.Close()

	out := cmd.OutOrStdout()
	if inspectFlags.history {
		id, err := lookupID(st, args[0])
		if err != nil {
			return err
		}
		metas, err := st.Versions(id)
		if err != nil {
			return err
		}
		t := format.NewTable(format.Terminal)
		t.Header("Ver", "Vectors", "Hypotheses", "Signals", "Created")
		for _, m := range metas {
			t.Row(m.Version, m.Vectors, m.Hypotheses, m.Signals, format.FmtTime(m.CreatedAt))
		}
		fmt.Fprintf(out, "History of %s: %s\n", htc.ShortID(metas[0].ID), metas[0].Name)
		fmt.Fprintln(out, t.String())
		return nil
	}

	a, err := resolveChain(st, args[0], inspectFlags.version)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Assessment %s: %s (v%d)\n", htc.ShortID(a.ID), a.Name, a.Version)
	fmt.Fprintf(out, "Urgency %s, created %s UTC\n\n", format.FmtScore(a.Urgency), format.FmtTime(a.CreatedAt))

	if len(a.Vectors) > 0 {
		vt := format.NewTable(format.Terminal)
		vt.Header("#", "Actor", "Domain", "Capability", "Intent")
		for i, v := range a.Vectors {
			vt.Row(fmt.Sprintf("V%d", i+1), v.Actor, display.Domain(string(v.Domain)),
				display.Capability(string(v.Capability)), display.Intent(string(v.Intent)))
		}
		fmt.Fprintln(out, vt.String())
	}

	ht := format.NewTable(format.Terminal)
	ht.Header("#", "Statement", "Confidence", "Primary", "For", "Against")
	ht.Columns(format.Column{Number: 2, MaxWidth: 60})
	for i, h := range a.Hypotheses {
		ht.Row(fmt.Sprintf("H%d", i+1), h.Statement, format.FmtScore(h.Confidence),
			format.BoolMark(h.Primary), len(h.Supporting), len(h.Contradicting))
	}
	fmt.Fprintln(out, ht.String())

	if len(a.Signals) == 0 {
		fmt.Fprintln(out, "No signals attached yet. Add one with 'nexus add-signal'.")
		return nil
	}
	hypPos := make(map[string]int, len(a.Hypotheses))
	for i, h := range a.Hypotheses {
		hypPos[h.ID.String()] = i + 1
	}
	sg := format.NewTable(format.Terminal)
	sg.Header("#", "Description", "Reliability", "Polarity", "Hypothesis", "Observed")
	sg.Columns(format.Column{Number: 2, MaxWidth: 60})
	for i, s := range a.Signals {
		sg.Row(fmt.Sprintf("S%d", i+1), s.Description, display.Reliability(string(s.Reliability)),
			display.Polarity(string(s.Polarity)), fmt.Sprintf("H%d", hypPos[s.Hypothesis.String()]),
			format.FmtTime(s.ObservedAt))
	}
	fmt.Fprintln(out, sg.String())
	return nil
}
