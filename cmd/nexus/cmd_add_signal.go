package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Odokodan153/Chimera-Nexus/internal/htc"
	"github.com/Odokodan153/Chimera-Nexus/internal/store"
)

var addSignalFlags struct {
	db          string
	description string
	reliability string
	polarity    string
	hypothesis  string
}

var addSignalCmd = &cobra.Command{
	Use:   "add-signal <assessment-id>",
	Short: "Attach an evidence signal, producing a new version",
	Long: `Attaches a signal to the named hypothesis of the latest version and
saves the result as the next version. The earlier version is untouched.

The hypothesis is addressed by position as shown by inspect (H1, H2, ...)
or by id. Example:

  nexus add-signal 3f2a8c1d --description "Beaconing resumed after the takedown" \
      --reliability corroborated --polarity contradicts --hypothesis H2`,
	Args: cobra.ExactArgs(1),
	RunE: runAddSignal,
}

func init() {
	f := addSignalCmd.Flags()
	f.StringVar(&addSignalFlags.db, "db", store.DefaultDBPath, "path to the assessment store")
	f.StringVarP(&addSignalFlags.description, "description", "d", "", "what was observed (required)")
	f.StringVar(&addSignalFlags.reliability, "reliability", string(htc.ReliabilityUnconfirmed), "source reliability: unconfirmed, single-source, corroborated")
	f.StringVar(&addSignalFlags.polarity, "polarity", string(htc.PolaritySupports), "supports or contradicts")
	f.StringVar(&addSignalFlags.hypothesis, "hypothesis", "", "hypothesis the signal bears on, position or id (required)")

	_ = addSignalCmd.MarkFlagRequired("description")
	_ = addSignalCmd.MarkFlagRequired("hypothesis")
}

func runAddSignal(cmd *cobra.Command, args []string) error {
	rel, err := htc.ParseReliability(addSignalFlags.reliability)
	if err != nil {
		return err
	}
	pol, err := htc.ParsePolarity(addSignalFlags.polarity)
	if err != nil {
		return err
	}

	st, err := openStore(addSignalFlags.db)
	if err != nil {
		return err
	}
	defer st.Close()

	a, err := resolveChain(st, args[0], 0)
	if err != nil {
		return err
	}
	hyp, err := resolveHypothesis(a, addSignalFlags.hypothesis)
	if err != nil {
		return err
	}

	next, err := a.WithSignal(htc.Signal{
		Description: addSignalFlags.description,
		Reliability: rel,
		Polarity:    pol,
		Hypothesis:  hyp.ID,
	})
	if err != nil {
		return err
	}
	if err := st.Save(next); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s v%d: signal S%d %s %q\n",
		htc.ShortID(next.ID), next.Version, len(next.Signals), pol, hyp.Statement)
	return nil
}
