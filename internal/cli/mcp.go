package cli

import (
	"context"

	"github.com/aretw0/abenteuer/pkg/adapters/mcp"
)

// RunMCP serves the MCP tools over Stdin/Stdout. Logs go to Stderr so they
// never corrupt the JSON-RPC stream.
func RunMCP(opts EngineOptions) error {
	logger := createLogger(opts)

	engine, err := createEngine(context.Background(), opts, logger)
	if err != nil {
		return err
	}
	defer engine.Close()

	logger.Info("Starting Abenteuer MCP Server (Stdio)...")
	return mcp.NewServer(engine, mcp.WithLogger(logger)).ServeStdio()
}
