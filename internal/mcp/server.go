// Package mcp exposes the tool-protocol surface: a single `search_code`
// tool backed by the same vector (and optional lexical hybrid) search the
// `search` CLI verb runs, served over stdio with signal-based shutdown.
package mcp

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/bivav/code-cognitio/internal/embed"
	"github.com/bivav/code-cognitio/internal/lexical"
	"github.com/bivav/code-cognitio/internal/logging"
	"github.com/bivav/code-cognitio/internal/vectorindex"
)

// Server manages the MCP server lifecycle over a loaded index.
type Server struct {
	index    *vectorindex.Index
	lexical  *lexical.Index // nil when no adjunct lexical index was present
	provider embed.Provider
	logger   *logging.Logger
	mcp      *server.MCPServer
}

// New loads the index and (if present) the lexical adjunct from dataDir and
// registers the search_code tool.
func New(dataDir string, provider embed.Provider, logger *logging.Logger) (*Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	idx, err := vectorindex.Load(dataDir, "", provider.Dimensions(), logger)
	if err != nil {
		return nil, fmt.Errorf("loading index: %w", err)
	}

	lex, err := lexical.Load(dataDir)
	if err != nil {
		lex = nil // no adjunct file; hybrid requests degrade to vector-only
	}

	mcpServer := server.NewMCPServer(
		"code-cognitio-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	s := &Server{index: idx, lexical: lex, provider: provider, logger: logger, mcp: mcpServer}
	AddSearchCodeTool(mcpServer, s)

	return s, nil
}

// Serve starts the MCP server on stdio and blocks until a shutdown signal
// or a fatal server error.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("starting code-cognitio MCP server on stdio")
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
		}
	}()

	select {
	case <-sigCh:
		log.Printf("received shutdown signal, stopping")
		cancel()
		return nil
	case err := <-errCh:
		cancel()
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases the embedding provider and the lexical index's file
// handles.
func (s *Server) Close() error {
	if s.lexical != nil {
		s.lexical.Close()
	}
	if s.provider != nil {
		return s.provider.Close()
	}
	return nil
}
