package mcp

import (
	"github.com/mark3labs/mcp-go/server"
)

// NewServer creates the MCP server with all cstyle tools registered.
func NewServer(version string) *server.MCPServer {
	s := server.NewMCPServer(
		"cstyle",
		version,
		server.WithToolCapabilities(false),
	)
	RegisterTools(s)
	return s
}

// ServeStdio runs the server over stdin/stdout until the client
// disconnects.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
