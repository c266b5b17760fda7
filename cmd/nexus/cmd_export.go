package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/Odokodan153/Chimera-Nexus/internal/audit"
	"github.com/Odokodan153/Chimera-Nexus/internal/htc"
	"github.com/Odokodan153/Chimera-Nexus/internal/iap"
	"github.com/Odokodan153/Chimera-Nexus/internal/report"
	"github.com/Odokodan153/Chimera-Nexus/internal/store"
)

var exportFlags struct {
	db      string
	version int
	format  string
	output  string
	epsilon float64
}

var exportCmd = &cobra.Command{
	Use:   "export <assessment-id>",
	Short: "Write an assessment artifact: report, graph, or document",
	Long: `Renders one assessment version to a file. Formats:

  md    Markdown report with a fresh pressure score and audit verdict
  dot   Graphviz digraph of vectors, hypotheses, and signals
  yaml  the versioned document, round-trippable through import
  json  the versioned document, round-trippable through import

The default filename is derived from the assessment name and short id,
for example quiet_harbor_3f2a8c1d.md. Pass -o to choose the path, or
'-o -' to write to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	f := exportCmd.Flags()
	f.StringVar(&exportFlags.db, "db", store.DefaultDBPath, "path to the assessment store")
	f.IntVar(&exportFlags.version, "version", 0, "version to export (0 = latest)")
	f.StringVar(&exportFlags.format, "format", "md", "md, dot, yaml, or json")
	f.StringVarP(&exportFlags.output, "output", "o", "", "output path ('-' for stdout)")
	f.Float64Var(&exportFlags.epsilon, "epsilon", iap.DefaultEpsilon, "confidence floor for the md report's score")
}

func runExport(cmd *cobra.Command, args []string) error {
	st, err := openStore(exportFlags.db)
	if err != nil {
		return err
	}
	defer st.Close()

	a, err := resolveChain(st, args[0], exportFlags.version)
	if err != nil {
		return err
	}

	var content, ext string
	switch exportFlags.format {
	case "md", "markdown":
		// The score and verdict are recomputed here, never read from a cache.
		score, err := iap.Compute(a, iap.Config{Epsilon: exportFlags.epsilon})
		if err != nil {
			return err
		}
		findings := audit.Run(a, audit.DefaultConfig())
		content, ext = report.Markdown(a, &score, findings, time.Now()), "md"
	case "dot":
		content, ext = report.DOT(a), "dot"
	case "yaml", "yml":
		data, err := yaml.Marshal(a.Document())
		if err != nil {
			return fmt.Errorf("encode document: %w", err)
		}
		content, ext = string(data), "yaml"
	case "json":
		data, err := json.MarshalIndent(a.Document(), "", "  ")
		if err != nil {
			return fmt.Errorf("encode document: %w", err)
		}
		content, ext = string(data)+"\n", "json"
	default:
		return fmt.Errorf("unknown format %q (want md, dot, yaml, or json)", exportFlags.format)
	}

	if exportFlags.output == "-" {
		fmt.Fprint(cmd.OutOrStdout(), content)
		return nil
	}
	path := exportFlags.output
	if path == "" {
		path = safeFileName(a.Name, htc.ShortID(a.ID)) + "." + ext
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("write artifact: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (v%d) to %s\n", htc.ShortID(a.ID), a.Version, path)
	return nil
}
