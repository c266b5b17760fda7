package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Odokodan153/Chimera-Nexus/internal/htc"
	"github.com/Odokodan153/Chimera-Nexus/internal/logging"
	"github.com/Odokodan153/Chimera-Nexus/internal/store"
)

var initFlags struct {
	file string
	db   string
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Build a new assessment from a chain definition file",
	Long: `Reads a chain definition (YAML or JSON), assembles version 1 of the
assessment, validates every structural invariant, and saves it to the
local store.

The definition lists threat vectors, hypotheses, and signals; each
signal names its hypothesis by zero-based position in the hypothesis
list. Example definition:

  name: Harbor intrusion review
  urgency: 0.6
  threat_vectors:
    - actor: APT Kestrel
      capability: moderate
      intent: suspected
      domain: cyber
  hypotheses:
    - statement: Staged intrusion ahead of data theft
      confidence: 0.6
      primary: true
    - statement: Opportunistic scanning
      confidence: 0
  signals:
    - description: Beaconing from the harbor VPN concentrator
      reliability: corroborated
      polarity: supports
      hypothesis: 0`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	f := initCmd.Flags()
	f.StringVarP(&initFlags.file, "file", "f", "", "chain definition file, YAML or JSON (required)")
	f.StringVar(&initFlags.db, "db", store.DefaultDBPath, "path to the assessment store")

	_ = initCmd.MarkFlagRequired("file")
}

func runInit(cmd *cobra.Command, _ []string) error {
	var raw htc.RawAssessment
	if err := decodeFile(initFlags.file, &raw); err != nil {
		return err
	}
	a, err := htc.Build(raw)
	if err != nil {
		return err
	}

	st, err := openStore(initFlags.db)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Save(a); err != nil {
		return err
	}
	logging.New("cli").Info("assessment created",
		slog.String("id", htc.ShortID(a.ID)),
		slog.String("name", a.Name))

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created assessment %s: %s (v%d)\n", htc.ShortID(a.ID), a.Name, a.Version)
	fmt.Fprintf(out, "  vectors %d, hypotheses %d, signals %d\n", len(a.Vectors), len(a.Hypotheses), len(a.Signals))
	fmt.Fprintf(out, "Run 'nexus audit %s' before acting on the score.\n", htc.ShortID(a.ID))
	return nil
}
