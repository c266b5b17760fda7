package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Odokodan153/Chimera-Nexus/internal/display"
	"github.com/Odokodan153/Chimera-Nexus/internal/format"
	"github.com/Odokodan153/Chimera-Nexus/internal/htc"
	"github.com/Odokodan153/Chimera-Nexus/internal/iap"
	"github.com/Odokodan153/Chimera-Nexus/internal/store"
)

var scoreFlags struct {
	db      string
	version int
	epsilon float64
}

var scoreCmd = &cobra.Command{
	Use:   "score <assessment-id>",
	Short: "Compute the information asymmetry pressure of an assessment",
	Long: `Computes pressure for one assessment version:

  pressure = urgency x (1 - max(confidence, epsilon))

where confidence is the primary hypothesis's confidence and epsilon
keeps a fully-confident read from flattening pressure to zero. High
pressure means the situation demands action faster than the evidence
can justify.`,
	Args: cobra.ExactArgs(1),
	RunE: runScore,
}

func init() {
	f := scoreCmd.Flags()
	f.StringVar(&scoreFlags.db, "db", store.DefaultDBPath, "path to the assessment store")
	f.IntVar(&scoreFlags.version, "version", 0, "version to score (0 = latest)")
	f.Float64Var(&scoreFlags.epsilon, "epsilon", iap.DefaultEpsilon, "confidence floor in [0,1)")
}

func runScore(cmd *cobra.Command, args []string) error {
	st, err := openStore(scoreFlags.db)
	if err != nil {
		return err
	}
	defer st.Close()

	a, err := resolveChain(st, args[0], scoreFlags.version)
	if err != nil {
		return err
	}
	score, err := iap.Compute(a, iap.Config{Epsilon: scoreFlags.epsilon})
	if err != nil {
		return err
	}
	primary, err := a.PrimaryHypothesis()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Assessment %s: %s (v%d)\n", htc.ShortID(a.ID), a.Name, a.Version)
	fmt.Fprintf(out, "Primary: %s\n\n", primary.Statement)

	t := format.NewTable(format.Terminal)
	t.Header("Urgency", "Confidence", "Effective", "Epsilon", "Pressure", "Band")
	t.Row(format.FmtScore(score.Urgency), format.FmtScore(score.Confidence),
		format.FmtScore(score.Effective), format.FmtScore(score.Epsilon),
		format.FmtScore(score.Value), format.Paint(bandTone(score.Value), display.PressureBand(score.Value)))
	fmt.Fprintln(out, t.String())

	if score.Effective > score.Confidence {
		fmt.Fprintf(out, "Confidence floored at epsilon %s for the derivation.\n", format.FmtScore(score.Epsilon))
	}
	fmt.Fprintf(out, "pressure = %s x (1 - %s) = %s\n",
		format.FmtScore(score.Urgency), format.FmtScore(score.Effective), format.FmtScore(score.Value))
	return nil
}

func bandTone(pressure float64) format.Tone {
	switch display.PressureBand(pressure) {
	case "Severe":
		return format.ToneBad
	case "Elevated":
		return format.ToneWarn
	case "Low":
		return format.ToneGood
	default:
		return format.ToneNeutral
	}
}
