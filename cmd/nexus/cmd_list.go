package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Odokodan153/Chimera-Nexus/internal/format"
	"github.com/Odokodan153/Chimera-Nexus/internal/htc"
	"github.com/Odokodan153/Chimera-Nexus/internal/store"
)

var listFlags struct {
	db string
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored assessments at their latest version",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	f := listCmd.Flags()
	f.StringVar(&listFlags.db, "db", store.DefaultDBPath, "path to the assessment store")
}

func runList(cmd *cobra.Command, _ []string) error {
	st, err := openStore(listFlags.db)
	if err != nil {
		return err
	}
	defer st.Close()

	metas, err := st.List()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(metas) == 0 {
		fmt.Fprintln(out, "No assessments stored. Start one with 'nexus init -f chain.yaml' or 'nexus simulate'.")
		return nil
	}

	t := format.NewTable(format.Terminal)
	t.Header("ID", "Name", "Ver", "Vectors", "Hypotheses", "Signals", "Created")
	for _, m := range metas {
		t.Row(htc.ShortID(m.ID), m.Name, m.Version, m.Vectors, m.Hypotheses, m.Signals, format.FmtTime(m.CreatedAt))
	}
	fmt.Fprintln(out, t.String())
	fmt.Fprintf(out, "%d assessment(s)\n", len(metas))
	return nil
}
