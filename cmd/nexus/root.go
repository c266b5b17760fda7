package main

import (
	"github.com/spf13/cobra"

	"github.com/Odokodan153/Chimera-Nexus/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootFlags struct {
	logLevel  string
	logFormat string
}

var rootCmd = &cobra.Command{
	Use:   "nexus",
	Short: "Hybrid threat assessment with built-in cognitive auditing",
	Long: "Nexus manages versioned hybrid threat assessments: threat vectors,\n" +
		"competing hypotheses, and the signals that support or contradict them.\n" +
		"Every version is scored for inference pressure and checked against a\n" +
		"battery of structural reasoning biases.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		// Logs go to stderr; stdout stays clean for command output
		// and the MCP stdio transport.
		return logging.Setup(rootFlags.logLevel, rootFlags.logFormat, cmd.ErrOrStderr())
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	pf.StringVar(&rootFlags.logFormat, "log-format", "text", "Log format: text or json")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(addSignalCmd)
	rootCmd.AddCommand(addHypothesisCmd)
	rootCmd.AddCommand(addVectorCmd)
	rootCmd.AddCommand(setConfidenceCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.Version = version
}
