package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Odokodan153/Chimera-Nexus/internal/htc"
	"github.com/Odokodan153/Chimera-Nexus/internal/store"
)

var importFlags struct {
	db   string
	file string
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Load an exported assessment document into the store",
	Long: `Reads a document written by 'nexus export --format yaml' (or json),
revalidates every invariant, and saves it at its recorded version.
Importing the same id and version twice is rejected, so a document can
be moved between stores without silently overwriting history.`,
	Args: cobra.NoArgs,
	RunE: runImport,
}

func init() {
	f := importCmd.Flags()
	f.StringVarP(&importFlags.file, "file", "f", "", "document file, YAML or JSON (required)")
	f.StringVar(&importFlags.db, "db", store.DefaultDBPath, "path to the assessment store")

	_ = importCmd.MarkFlagRequired("file")
}

func runImport(cmd *cobra.Command, _ []string) error {
	var doc htc.Document
	if err := decodeFile(importFlags.file, &doc); err != nil {
		return err
	}
	a, err := htc.FromDocument(doc)
	if err != nil {
		return err
	}

	st, err := openStore(importFlags.db)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Save(a); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %s: %s (v%d)\n", htc.ShortID(a.ID), a.Name, a.Version)
	return nil
}
