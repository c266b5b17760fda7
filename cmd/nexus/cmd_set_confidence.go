package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Odokodan153/Chimera-Nexus/internal/format"
	"github.com/Odokodan153/Chimera-Nexus/internal/htc"
	"github.com/Odokodan153/Chimera-Nexus/internal/store"
)

var setConfidenceFlags struct {
	db         string
	hypothesis string
	confidence float64
}

var setConfidenceCmd = &cobra.Command{
	Use:   "set-confidence <assessment-id>",
	Short: "Re-weight a hypothesis, producing a new version",
	Long: `Sets the confidence of one hypothesis on the latest version and saves
the result as the next version. Confidence above zero requires at least
one supporting signal on that hypothesis; attach the evidence first.`,
	Args: cobra.ExactArgs(1),
	RunE: runSetConfidence,
}

func init() {
	f := setConfidenceCmd.Flags()
	f.StringVar(&setConfidenceFlags.db, "db", store.DefaultDBPath, "path to the assessment store")
	f.StringVar(&setConfidenceFlags.hypothesis, "hypothesis", "", "hypothesis to re-weight, position or id (required)")
	f.Float64Var(&setConfidenceFlags.confidence, "confidence", 0, "new confidence in [0,1] (required)")

	_ = setConfidenceCmd.MarkFlagRequired("hypothesis")
	_ = setConfidenceCmd.MarkFlagRequired("confidence")
}

func runSetConfidence(cmd *cobra.Command, args []string) error {
	st, err := openStore(setConfidenceFlags.db)
	if err != nil {
		return err
	}
	defer st.Close()

	a, err := resolveChain(st, args[0], 0)
	if err != nil {
		return err
	}
	hyp, err := resolveHypothesis(a, setConfidenceFlags.hypothesis)
	if err != nil {
		return err
	}
	next, err := a.WithConfidence(hyp.ID, setConfidenceFlags.confidence)
	if err != nil {
		return err
	}
	if err := st.Save(next); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s v%d: %q confidence %s -> %s\n",
		htc.ShortID(next.ID), next.Version, hyp.Statement,
		format.FmtScore(hyp.Confidence), format.FmtScore(setConfidenceFlags.confidence))
	return nil
}
