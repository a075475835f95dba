package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/ppiankov/oodakit/internal/audit"
	"github.com/ppiankov/oodakit/internal/escalation"
	"github.com/ppiankov/oodakit/internal/registry"
)

// Config holds MCP server configuration.
type Config struct {
	// RegistryPath is a YAML demo registry; empty uses the built-in one.
	RegistryPath string
	// JournalPath, when set, records every validation call.
	JournalPath string
	Version     string
	Logger      *zap.Logger
}

// Server exposes the escalation, ROE, scoring and RAI checks as MCP tools.
type Server struct {
	mcpServer *mcpsdk.Server
	registry  *registry.Registry
	ladder    *escalation.Ladder
	journal   *audit.Log
	logger    *zap.Logger
}

// New loads the registry, opens the journal and registers all tools.
func New(cfg Config) (*Server, error) {
	reg, err := registry.LoadOrBuiltin(cfg.RegistryPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load registry: %w", err)
	}

	var journal *audit.Log
	if cfg.JournalPath != "" {
		journal, err = audit.Open(cfg.JournalPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open journal: %w", err)
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	version := cfg.Version
	if version == "" {
		version = "dev"
	}

	s := &Server{
		registry: reg,
		ladder:   escalation.Default(),
		journal:  journal,
		logger:   logger.Named("mcp"),
	}
	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "oodakit",
			Version: version,
		},
		nil,
	)

	s.registerTools()
	return s, nil
}

// Run starts the MCP server on stdio transport. Blocks until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("serving on stdio", zap.Int("demos", s.registry.Len()))
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// Close closes the journal if configured.
func (s *Server) Close() error {
	if s.journal != nil {
		return s.journal.Close()
	}
	return nil
}

// recordValidation journals one validation verdict. Journal failures are
// logged; they never fail the tool call.
func (s *Server) recordValidation(subject string, passed bool, detail string) {
	if s.journal == nil {
		return
	}
	decision := "pass"
	if !passed {
		decision = "warn"
	}
	err := s.journal.Record(audit.Entry{
		Kind:     audit.KindValidation,
		Subject:  subject,
		Decision: decision,
		Detail:   detail,
	})
	if err != nil {
		s.logger.Warn("journal write failed", zap.String("subject", subject), zap.Error(err))
	}
}

// registerTools adds all oodakit tools to the MCP server.
func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "oodakit_escalation_level",
		Description: "Resolve a cumulative escalation index to its ladder level, the next threshold, and whether a move from a previous index crosses a threshold.",
	}, s.handleEscalationLevel)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "oodakit_roe_check",
		Description: "Check whether an escalation index exceeds the ceiling of a rules-of-engagement posture (PEACETIME, ELEVATED, WEAPONS_FREE).",
	}, s.handleROECheck)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "oodakit_validate_scores",
		Description: "Validate per-turn BLUE and RED score deltas: known dimensions only, each value within [-3, 3].",
	}, s.handleValidateScores)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "oodakit_validate_rai",
		Description: "Run the responsible-AI checks over the demo registry or one demo, and optionally check agent output for directive framing.",
	}, s.handleValidateRAI)
}
