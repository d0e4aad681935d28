package mcp

import (
	"context"

	"github.com/ka2n/llamadocs/api"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Server is the MCP server speaking over stdio
type Server struct {
	server *server.MCPServer
}

// NewServer creates a stdio server exposing the catalog and tools of lib.
// lib must already be initialized; resources are registered once.
func NewServer(lib *api.Library) *Server {
	s := server.NewMCPServer(ServerName, api.Version,
		server.WithResourceCapabilities(true, true),
		server.WithToolCapabilities(true),
	)

	registerResources(s, lib)
	registerTools(s, lib)

	return &Server{
		server: s,
	}
}

// Run serves MCP on stdin/stdout until the input is closed
func (s *Server) Run() error {
	return server.ServeStdio(s.server)
}

func registerResources(s *server.MCPServer, lib *api.Library) {
	read := readResource(lib)
	for _, r := range lib.Resources() {
		s.AddResource(mcp.NewResource(r.URI, r.Name,
			mcp.WithResourceDescription(r.Description),
			mcp.WithMIMEType(r.MIME()),
		), read)
	}
}

// registerTools registers all available tools with the MCP server
func registerTools(s *server.MCPServer, lib *api.Library) {
	tools := InitTools(lib)
	s.AddTools(tools...)
}

func newServerTool(tool mcp.Tool, handler server.ToolHandlerFunc) server.ServerTool {
	return server.ServerTool{
		Tool:    tool,
		Handler: handler,
	}
}

// readResource returns page text for any URI, catalogued or not.
// Read content is always labelled text/plain whatever the catalog advertises.
func readResource(lib *api.Library) server.ResourceHandlerFunc {
	return func(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      req.Params.URI,
				MIMEType: api.DefaultMIMEType,
				Text:     lib.Read(ctx, req.Params.URI),
			},
		}, nil
	}
}
