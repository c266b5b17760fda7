package mcp

import (
	"context"
	"os"
	"time"

	"github.com/Odokodan153/Chimera-Nexus/internal/logging"
)

// parentPollInterval is how often the watchdog re-reads the parent PID.
var parentPollInterval = 2 * time.Second

// WatchParent monitors for parent process death in a background goroutine.
// When the parent PID changes (the MCP client disconnected or was
// restarted), it calls cancelFn to trigger graceful shutdown. This
// prevents zombie server processes from accumulating.
//
// IMPORTANT: This must NOT read from stdin. The MCP SDK's StdioTransport
// owns stdin exclusively; reading from it here would steal bytes and
// corrupt the JSON-RPC protocol.
//
// The goroutine exits when ctx is canceled or parent death is detected.
func WatchParent(ctx context.Context, cancelFn context.CancelFunc) {
	logger := logging.New("mcp")
	ppid := os.Getppid()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-time.After(parentPollInterval):
				if os.Getppid() != ppid {
					logger.Warn("parent process died, initiating shutdown", "was_pid", ppid)
					cancelFn()
					return
				}
			}
		}
	}()
}
