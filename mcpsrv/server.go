// Package mcpsrv exposes page analysis as MCP tools over stdio, so
// agent runtimes can request DOM reports for a URL without shelling
// out to the CLI.
package mcpsrv

import (
	"context"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hazyhaar/domscope/analyze"
)

// Version is reported in the MCP handshake.
const Version = "0.1.0"

// Analyzer is the slice of the domscope service the tools need.
type Analyzer interface {
	AnalyzeURL(ctx context.Context, pageID, pageURL string) (*analyze.Report, error)
}

// Server wraps an MCP server around an Analyzer.
type Server struct {
	analyzer Analyzer
	logger   *slog.Logger
	server   *mcp.Server
}

// NewServer builds the MCP server and registers the tools.
func NewServer(analyzer Analyzer, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		analyzer: analyzer,
		logger:   logger,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    "domscope",
			Version: Version,
		}, nil),
	}
	s.registerTools()
	return s
}

// Run serves MCP over stdio until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("mcp server starting", "transport", "stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
