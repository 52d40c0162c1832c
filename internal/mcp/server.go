// Package mcp implements the Model Context Protocol boundary of the
// legalcn server using the mcp-go library.
//
// This layer owns everything protocol-shaped: tool/resource/prompt
// registration, argument extraction and validation, the error envelope,
// and the privacy middleware around tool results. Domain behavior lives
// in internal/legal; this package only translates.
//
// Communication is stdin/stdout JSON-RPC 2.0 per the MCP standard, so all
// logging goes to stderr.
package mcp

import (
	"encoding/json"
	"fmt"

	"legalcn/internal/apperr"
	"legalcn/internal/config"
	"legalcn/internal/legal"
	"legalcn/internal/logging"
	"legalcn/internal/privacy"
	"legalcn/internal/rulestore"

	"github.com/mark3labs/mcp-go/server"
)

// Server wires the rule store, the contract logic engine and the privacy
// layer behind an mcp-go server instance.
type Server struct {
	config    *config.Config
	logger    *logging.AppLogger
	store     *rulestore.Store
	engine    *legal.Engine
	pids      *rulestore.PIDRegistry
	masker    *privacy.Masker
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP server instance. Call Start (or
// InitializeComponents for tests) before use.
func NewServer(cfg *config.Config, logger *logging.AppLogger) *Server {
	return &Server{
		config: cfg,
		logger: logger,
	}
}

// InitializeComponents loads the rule store and builds the engine and the
// mcp-go server with all tools, resources and prompts registered. Split
// from Start so tests can drive the server through an in-process client.
func (s *Server) InitializeComponents() error {
	store, err := rulestore.Load()
	if err != nil {
		return fmt.Errorf("failed to load rule store: %w", err)
	}
	s.store = store

	engine, err := legal.NewEngine(store)
	if err != nil {
		return fmt.Errorf("failed to build contract logic engine: %w", err)
	}
	s.engine = engine

	s.pids = rulestore.NewPIDRegistry(s.config.PIDFilePath(), s.logger)
	s.masker = privacy.NewMasker()

	s.mcpServer = server.NewMCPServer(
		s.config.ServerName,
		s.config.ServerVersion,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
	)

	s.registerTools()
	s.registerResources()
	s.registerPrompts()

	s.logger.Info("MCP server components initialized",
		"name", s.config.ServerName,
		"version", s.config.ServerVersion,
		"templates", len(s.store.TemplateIDs()),
		"articles", len(s.store.ArticleIDs()),
	)
	return nil
}

// MCPServer exposes the underlying mcp-go server, for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// Start initializes all components and serves on stdio until the client
// disconnects.
func (s *Server) Start() error {
	if err := s.InitializeComponents(); err != nil {
		return err
	}

	s.logger.Info("MCP server starting on stdio")
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("MCP server failed: %w", err)
	}
	return nil
}

// errorEnvelope serializes a logic-layer error into the structured error
// payload clients receive. Unexpected errors are wrapped as internal so
// the taxonomy is closed.
func errorEnvelope(err error) string {
	appErr := apperr.As(err)
	if appErr == nil {
		appErr = apperr.Internal("%v", err)
	}

	raw, marshalErr := json.Marshal(appErr.Envelope())
	if marshalErr != nil {
		return fmt.Sprintf(`{"code":%d,"error":"INTERNAL_ERROR","message":"failed to encode error"}`, apperr.CodeInternal)
	}
	return string(raw)
}
