package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ppiankov/oodakit/internal/escalation"
	"github.com/ppiankov/oodakit/internal/format"
)

var (
	ladderTable string
	ladderIndex int
)

func init() {
	rootCmd.AddCommand(ladderCmd)
	ladderCmd.Flags().StringVar(&ladderTable, "table", "", "Table style (ascii|markdown)")
	ladderCmd.Flags().IntVarP(&ladderIndex, "index", "i", 0, "Index to resolve (alternative to the positional argument)")
}

var ladderCmd = &cobra.Command{
	Use:   "ladder [index]",
	Short: "Show the escalation ladder or resolve an index",
	Long: "Without arguments, prints the six-rung escalation ladder and the index range of each rung.\n" +
		"With an index, prints its level, the next threshold and the most restrictive ROE posture\n" +
		"that still admits it. A negative index must follow -- or be given as --index=N.",
	Example: "  oodakit ladder 12\n  oodakit ladder --index=12",
	Args:    cobra.MaximumNArgs(1),
	RunE:    runLadder,
}

func runLadder(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	ladder := escalation.Default()
	indexSet := cmd.Flags().Changed("index")
	if len(args) > 0 && indexSet {
		return fmt.Errorf("give the index as an argument or --index, not both")
	}
	if len(args) == 0 && !indexSet {
		fmt.Fprintln(out, format.Ladder(ladder, tableMode(ladderTable)))
		return nil
	}

	index := ladderIndex
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid index %q: %w", args[0], err)
		}
		index = n
	}
	if err := escalation.CheckIndex(index); err != nil {
		return err
	}

	step := ladder.Lookup(index)
	fmt.Fprintf(out, "Index %d: %s (level %d, threshold %d)\n", index, step.Name, step.Level, step.Threshold)
	if next, remaining, ok := ladder.Next(index); ok {
		fmt.Fprintf(out, "Next: %s in %d\n", next.Name, remaining)
	} else {
		fmt.Fprintln(out, "Next: none (top of ladder)")
	}
	fmt.Fprintf(out, "Minimum posture: %s\n", escalation.MinimumPosture(index).Name)
	return nil
}
