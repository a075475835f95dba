package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ppiankov/oodakit/internal/rai"
)

var (
	validateRegistry string
	validateFormat   string
)

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().StringVar(&validateRegistry, "registry", "", "Path to registry YAML (default: config, then built-in)")
	validateCmd.Flags().StringVarP(&validateFormat, "format", "f", "text", "Output format (text|json)")
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Run the responsible-AI checks over the demo registry",
	Long: "Checks every demo for an explainability agent when one is required and for consistent\n" +
		"human-in-the-loop configuration. Exits 0 when every demo passes, 1 on any warning.",
	Args: cobra.NoArgs,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry(validateRegistry)
	if err != nil {
		return err
	}
	report := rai.Check(reg)

	out := cmd.OutOrStdout()
	switch validateFormat {
	case "json":
		s, err := rai.FormatJSON(report)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, s)
	default:
		fmt.Fprint(out, rai.FormatText(report))
	}

	logger.Info("rai validation",
		zap.Int("demos", report.Total), zap.Int("passed", report.Passed), zap.Int("failed", report.Failed))
	if report.Failed > 0 {
		return &exitError{code: 1}
	}
	return nil
}
