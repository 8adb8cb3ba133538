// Package mcp exposes the energy reporting surface as MCP tools so AI agents
// can query the dataset directly. The MCP transports (stdio subprocess,
// streamable HTTP) sit inside the operator's trust boundary, so tools are not
// gated on API keys.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/neisdata/neis/internal/aggregate"
	"github.com/neisdata/neis/internal/service"
)

// MCPServer wraps the mcp-go server with the energy tools.
type MCPServer struct {
	engine    *aggregate.Engine
	resolver  *service.EmissionsResolver
	overrides *service.OverrideStore
	logger    *slog.Logger
	server    *server.MCPServer
}

// NewMCPServer creates an MCPServer pre-loaded with the energy tools. The
// returned server is ready to serve over stdio or HTTP.
func NewMCPServer(engine *aggregate.Engine, resolver *service.EmissionsResolver,
	overrides *service.OverrideStore, logger *slog.Logger) *MCPServer {

	s := &MCPServer{
		engine:    engine,
		resolver:  resolver,
		overrides: overrides,
		logger:    logger,
	}

	mcpServer := server.NewMCPServer(
		"NEIS Energy Insights",
		"1.1.0",
		server.WithToolCapabilities(true),
	)
	s.registerTools(mcpServer)

	s.server = mcpServer
	return s
}

// Server returns the underlying mcp-go server instance, useful for testing.
func (s *MCPServer) Server() *server.MCPServer {
	return s.server
}

// ServeStdio starts the MCP server in stdio mode, for clients that launch
// the server as a subprocess.
func (s *MCPServer) ServeStdio() error {
	s.logger.Info("starting MCP server in stdio mode")
	return server.ServeStdio(s.server)
}

// ServeHTTP starts the MCP server in streamable HTTP mode on the given
// address (e.g. ":3001").
func (s *MCPServer) ServeHTTP(addr string) error {
	httpServer := server.NewStreamableHTTPServer(s.server)
	s.logger.Info("MCP HTTP server starting", "addr", addr)
	return httpServer.Start(addr)
}
