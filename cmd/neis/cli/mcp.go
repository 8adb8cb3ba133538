package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/neisdata/neis/internal/aggregate"
	"github.com/neisdata/neis/internal/config"
	"github.com/neisdata/neis/internal/dataset"
	nmcp "github.com/neisdata/neis/internal/mcp"
	"github.com/neisdata/neis/internal/service"
)

func newMCPCmd() *cobra.Command {
	var (
		transport string
		port      int
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start the MCP server for AI agents",
		Long: `Start a Model Context Protocol (MCP) server that exposes the energy dataset
as tools for AI agents. Supports stdio (default) and HTTP transports.

In stdio mode, the MCP server communicates over stdin/stdout using JSON-RPC,
suitable for direct integration with Claude Desktop or other MCP clients.`,
		Example: `  neis mcp                               # stdio mode
  neis mcp --transport http --port 3001  # streamable HTTP mode`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMCP(transport, port)
		},
	}

	cmd.Flags().StringVar(&transport, "transport", "stdio", "Transport mode: stdio or http")
	cmd.Flags().IntVar(&port, "port", 3001, "HTTP port (only used with --transport http)")

	return cmd
}

func runMCP(transport string, port int) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load(viper.ConfigFileUsed())
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	provider := dataset.NewProvider(cfg.Dataset, logger)
	if err := provider.Load(context.Background()); err != nil {
		return fmt.Errorf("load dataset: %w", err)
	}
	engine := aggregate.NewEngine(provider)
	overrides := service.NewOverrideStore()
	resolver := service.NewEmissionsResolver(overrides, engine)

	mcpSrv := nmcp.NewMCPServer(engine, resolver, overrides, logger)

	switch transport {
	case "stdio":
		return mcpSrv.ServeStdio()
	case "http":
		return mcpSrv.ServeHTTP(fmt.Sprintf(":%d", port))
	default:
		return fmt.Errorf("unsupported transport %q; use 'stdio' or 'http'", transport)
	}
}
