package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Odokodan153/Chimera-Nexus/internal/htc"
	"github.com/Odokodan153/Chimera-Nexus/internal/store"
)

var addVectorFlags struct {
	db         string
	actor      string
	capability string
	intent     string
	domain     string
}

var addVectorCmd = &cobra.Command{
	Use:   "add-vector <assessment-id>",
	Short: "Add a threat vector, producing a new version",
	Long: `Appends a threat vector to the latest version and saves the result as
the next version. Example:

  nexus add-vector 3f2a8c1d --actor "APT Kestrel" --capability advanced \
      --intent confirmed --domain cyber`,
	Args: cobra.ExactArgs(1),
	RunE: runAddVector,
}

func init() {
	f := addVectorCmd.Flags()
	f.StringVar(&addVectorFlags.db, "db", store.DefaultDBPath, "path to the assessment store")
	f.StringVar(&addVectorFlags.actor, "actor", "", "actor behind the vector (required)")
	f.StringVar(&addVectorFlags.capability, "capability", string(htc.CapabilityLimited), "none, limited, moderate, or advanced")
	f.StringVar(&addVectorFlags.intent, "intent", string(htc.IntentSuspected), "none, suspected, or confirmed")
	f.StringVar(&addVectorFlags.domain, "domain", "", "cyber, information, economic, or social (required)")

	_ = addVectorCmd.MarkFlagRequired("actor")
	_ = addVectorCmd.MarkFlagRequired("domain")
}

func runAddVector(cmd *cobra.Command, args []string) error {
	capability, err := htc.ParseCapability(addVectorFlags.capability)
	if err != nil {
		return err
	}
	intent, err := htc.ParseIntent(addVectorFlags.intent)
	if err != nil {
		return err
	}
	domain, err := htc.ParseThreatDomain(addVectorFlags.domain)
	if err != nil {
		return err
	}

	st, err := openStore(addVectorFlags.db)
	if err != nil {
		return err
	}
	defer st.Close()

	a, err := resolveChain(st, args[0], 0)
	if err != nil {
		return err
	}
	next, err := a.WithVector(htc.ThreatVector{
		Actor:      addVectorFlags.actor,
		Capability: capability,
		Intent:     intent,
		Domain:     domain,
	})
	if err != nil {
		return err
	}
	if err := st.Save(next); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s v%d: vector V%d %s (%s)\n",
		htc.ShortID(next.ID), next.Version, len(next.Vectors), addVectorFlags.actor, domain)
	return nil
}
