package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Odokodan153/Chimera-Nexus/internal/htc"
	"github.com/Odokodan153/Chimera-Nexus/internal/store"
)

var addHypothesisFlags struct {
	db         string
	statement  string
	confidence float64
	primary    bool
}

var addHypothesisCmd = &cobra.Command{
	Use:   "add-hypothesis <assessment-id>",
	Short: "Add a competing explanation, producing a new version",
	Long: `Adds a hypothesis to the latest version and saves the result as the
next version. A chain carries exactly one primary hypothesis, so
--primary is rejected while another hypothesis holds that role.

New hypotheses start without evidence; a confidence above zero needs at
least one supporting signal, so either start at 0 and raise it after
adding evidence, or add the supporting signal in the same sitting.`,
	Args: cobra.ExactArgs(1),
	RunE: runAddHypothesis,
}

func init() {
	f := addHypothesisCmd.Flags()
	f.StringVar(&addHypothesisFlags.db, "db", store.DefaultDBPath, "path to the assessment store")
	f.StringVarP(&addHypothesisFlags.statement, "statement", "s", "", "the explanation being proposed (required)")
	f.Float64Var(&addHypothesisFlags.confidence, "confidence", 0, "initial confidence in [0,1]")
	f.BoolVar(&addHypothesisFlags.primary, "primary", false, "mark as the working primary hypothesis")

	_ = addHypothesisCmd.MarkFlagRequired("statement")
}

func runAddHypothesis(cmd *cobra.Command, args []string) error {
	st, err := openStore(addHypothesisFlags.db)
	if err != nil {
		return err
	}
	defer st.Close()

	a, err := resolveChain(st, args[0], 0)
	if err != nil {
		return err
	}
	next, err := a.WithHypothesis(htc.Hypothesis{
		Statement:  addHypothesisFlags.statement,
		Confidence: addHypothesisFlags.confidence,
		Primary:    addHypothesisFlags.primary,
	})
	if err != nil {
		return err
	}
	if err := st.Save(next); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s v%d: hypothesis H%d %q\n",
		htc.ShortID(next.ID), next.Version, len(next.Hypotheses), addHypothesisFlags.statement)
	return nil
}
