package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	oodamcp "github.com/ppiankov/oodakit/internal/mcp"
)

var (
	mcpRegistry string
	mcpJournal  bool
)

func init() {
	rootCmd.AddCommand(mcpCmd)
	mcpCmd.Flags().StringVar(&mcpRegistry, "registry", "", "Path to registry YAML (default: config, then built-in)")
	mcpCmd.Flags().BoolVar(&mcpJournal, "journal", false, "Record validation calls to the configured journal")
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start MCP tool server for agent integration",
	Long: "Runs oodakit as an MCP (Model Context Protocol) server over stdio.\n" +
		"Exposes tools: oodakit_escalation_level, oodakit_roe_check, oodakit_validate_scores,\n" +
		"oodakit_validate_rai.",
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, args []string) error {
	mcfg := oodamcp.Config{
		RegistryPath: mcpRegistry,
		Version:      version,
		Logger:       logger,
	}
	if mcfg.RegistryPath == "" {
		mcfg.RegistryPath = cfg.Registry
	}
	if mcpJournal {
		mcfg.JournalPath = cfg.Journal
	}

	srv, err := oodamcp.New(mcfg)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer srv.Close()

	ctx, cancel := signalContext()
	defer cancel()

	logger.Info("oodakit MCP server running on stdio", zap.Bool("journal", mcpJournal))
	return srv.Run(ctx)
}
