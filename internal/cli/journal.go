package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/oodakit/internal/audit"
)

var (
	journalGame   string
	journalKind   string
	journalFormat string
)

func init() {
	rootCmd.AddCommand(journalCmd)
	journalCmd.AddCommand(journalVerifyCmd)
	journalCmd.AddCommand(journalReplayCmd)
	journalReplayCmd.Flags().StringVarP(&journalGame, "game", "g", "", "Only entries of this game ID")
	journalReplayCmd.Flags().StringVarP(&journalKind, "kind", "k", "", "Only entries of this kind (turn|decision|validation)")
	journalReplayCmd.Flags().StringVarP(&journalFormat, "format", "f", "text", "Output format (text|json)")
}

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Decision journal operations",
	Long:  "Commands for verifying and replaying the hash-chained decision journal.",
}

var journalVerifyCmd = &cobra.Command{
	Use:   "verify [path]",
	Short: "Verify hash chain integrity of a journal",
	Long:  "Walks the JSONL journal and checks that every entry's prev_hash matches the SHA-256\nof the previous line. Exits 0 if valid, 1 if tampered. Defaults to the configured journal.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runJournalVerify,
}

var journalReplayCmd = &cobra.Command{
	Use:   "replay [path]",
	Short: "Render a journal as a timeline",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runJournalReplay,
}

func journalPath(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return cfg.Journal
}

func runJournalVerify(cmd *cobra.Command, args []string) error {
	result := audit.Verify(journalPath(args))
	if result.Valid {
		fmt.Fprintf(cmd.OutOrStdout(), "OK: %d entries verified\n", result.Lines)
		return nil
	}
	return &exitError{code: 1, msg: fmt.Sprintf("FAILED at line %d: %s", result.ErrorLine, result.Error)}
}

func runJournalReplay(cmd *cobra.Command, args []string) error {
	result, err := audit.Replay(journalPath(args), audit.ReplayFilter{
		GameID: journalGame,
		Kind:   audit.Kind(journalKind),
	})
	if err != nil {
		return err
	}

	switch journalFormat {
	case "json":
		out, err := audit.FormatJSON(result)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
	default:
		fmt.Fprint(cmd.OutOrStdout(), audit.FormatTimeline(result))
	}
	return nil
}
