package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Odokodan153/Chimera-Nexus/internal/audit"
	"github.com/Odokodan153/Chimera-Nexus/internal/iap"
	"github.com/Odokodan153/Chimera-Nexus/internal/logging"
	mcpserver "github.com/Odokodan153/Chimera-Nexus/internal/mcp"
	"github.com/Odokodan153/Chimera-Nexus/internal/store"
)

var serveFlags struct {
	db          string
	mem         bool
	epsilon     float64
	auditConfig string
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server over stdio",
	Long: `Starts an MCP server on stdin/stdout exposing the assessment tools:
build, fetch, list, score, audit, and report rendering. An MCP client
(Cursor, Claude Desktop, or any stdio MCP host) connects by launching
this command.

Tool calls share the same store as the CLI, so a chain built over MCP
shows up in 'nexus list' and vice versa. --mem serves a throwaway
in-memory store instead, useful for demos and tests.

The server watches its parent process and self-terminates when the
host goes away, preventing zombie servers from crashed editors.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&serveFlags.db, "db", store.DefaultDBPath, "path to the assessment store")
	f.BoolVar(&serveFlags.mem, "mem", false, "serve an in-memory store instead of --db")
	f.Float64Var(&serveFlags.epsilon, "epsilon", iap.DefaultEpsilon, "confidence floor for pressure scores")
	f.StringVar(&serveFlags.auditConfig, "audit-config", "", "audit threshold config file (YAML or JSON)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	auditCfg := audit.DefaultConfig()
	if serveFlags.auditConfig != "" {
		loaded, err := audit.LoadConfig(serveFlags.auditConfig)
		if err != nil {
			return err
		}
		auditCfg = loaded
	}

	var st store.Store
	if serveFlags.mem {
		st = store.NewMemStore()
	} else {
		sqlSt, err := openStore(serveFlags.db)
		if err != nil {
			return err
		}
		st = sqlSt
	}
	defer st.Close()

	srv := mcpserver.NewServer(st, auditCfg, iap.Config{Epsilon: serveFlags.epsilon})

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	mcpserver.WatchParent(ctx, cancel)

	logging.New("mcp").Info("starting nexus MCP server over stdio",
		slog.Bool("mem", serveFlags.mem),
		slog.Float64("epsilon", serveFlags.epsilon))
	return srv.MCPServer.Run(ctx, &sdkmcp.StdioTransport{})
}
