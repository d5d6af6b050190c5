// ABOUTME: MCP server setup for the fitness store.
// ABOUTME: Exposes profile, workout, stats, and nutrition tools over stdio.
package mcp

import (
	"context"

	"github.com/harperreed/fitness/internal/store"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	log "github.com/sirupsen/logrus"
)

// Server wraps the MCP server with store access.
type Server struct {
	mcpServer *mcp.Server
	store     *store.Store
}

// NewServer creates a new MCP server backed by st.
func NewServer(st *store.Store, version string) *Server {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "fitness",
			Version: version,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		store:     st,
	}

	s.registerTools()
	s.registerResources()

	return s
}

// Serve runs the server on the stdio transport until ctx is done or the client disconnects.
func (s *Server) Serve(ctx context.Context) error {
	log.Info("mcp server listening on stdio")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
