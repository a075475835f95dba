package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/oodakit/internal/rai"
)

var (
	promptNoHITL    bool
	promptDoctrinal bool
	promptWorld     string
)

func init() {
	rootCmd.AddCommand(promptCmd)
	promptCmd.Flags().BoolVar(&promptNoHITL, "no-hitl", false, "Omit the human-in-the-loop advisory")
	promptCmd.Flags().BoolVar(&promptDoctrinal, "doctrinal", false, "Append the doctrinal-authority disclaimer")
	promptCmd.Flags().StringVar(&promptWorld, "world", "", "Also print a synthetic world-state document for this scenario name")
}

var promptCmd = &cobra.Command{
	Use:   "prompt <role description>",
	Short: "Compose an agent system prompt with the RAI guardrails",
	Args:  cobra.ExactArgs(1),
	RunE:  runPrompt,
}

func runPrompt(cmd *cobra.Command, args []string) error {
	var opts []rai.PromptOption
	if promptNoHITL {
		opts = append(opts, rai.WithoutHITL())
	}
	if promptDoctrinal {
		opts = append(opts, rai.WithDoctrinalDisclaimer())
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, rai.BuildAgentSystemPrompt(args[0], opts...))
	for _, w := range rai.CheckFraming(args[0]) {
		logger.Warn(string(w))
	}

	if promptWorld != "" {
		data, err := json.MarshalIndent(rai.NewWorldState(promptWorld, nil), "", "  ")
		if err != nil {
			return fmt.Errorf("marshal world state: %w", err)
		}
		fmt.Fprintf(out, "\n%s\n", data)
	}
	return nil
}
