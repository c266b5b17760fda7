package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Odokodan153/Chimera-Nexus/internal/htc"
	"github.com/Odokodan153/Chimera-Nexus/internal/scenario"
	"github.com/Odokodan153/Chimera-Nexus/internal/store"
)

var simulateFlags struct {
	db   string
	name string
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Generate the Blue Sky hybrid-campaign training scenario",
	Long: `Builds and stores the canned Blue Sky scenario: a coordinated
information, cyber, and economic campaign against a retail bank,
modelled with two competing hypotheses and a mixed evidence base.

The chain is ready for the full workflow: inspect it, score it, audit
it, revise it, export it. Useful for demos and for exercising the tool
without inventing an incident first.`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	f := simulateCmd.Flags()
	f.StringVar(&simulateFlags.db, "db", store.DefaultDBPath, "path to the assessment store")
	f.StringVar(&simulateFlags.name, "name", "", "scenario name (default: generated)")
}

func runSimulate(cmd *cobra.Command, _ []string) error {
	a, err := scenario.BlueSky(simulateFlags.name)
	if err != nil {
		return err
	}

	st, err := openStore(simulateFlags.db)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Save(a); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	short := htc.ShortID(a.ID)
	fmt.Fprintf(out, "Created scenario %s: %s (v%d)\n", short, a.Name, a.Version)
	fmt.Fprintf(out, "  vectors %d, hypotheses %d, signals %d\n", len(a.Vectors), len(a.Hypotheses), len(a.Signals))
	fmt.Fprintf(out, "Try:\n")
	fmt.Fprintf(out, "  nexus inspect %s\n", short)
	fmt.Fprintf(out, "  nexus score %s\n", short)
	fmt.Fprintf(out, "  nexus audit %s\n", short)
	return nil
}
