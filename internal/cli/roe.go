package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/oodakit/internal/escalation"
	"github.com/ppiankov/oodakit/internal/format"
)

var (
	roeTable string
	roeCheck int
)

func init() {
	rootCmd.AddCommand(roeCmd)
	roeCmd.Flags().StringVar(&roeTable, "table", "", "Table style (ascii|markdown)")
	roeCmd.Flags().IntVar(&roeCheck, "check", -1, "Check an escalation index against every posture")
}

var roeCmd = &cobra.Command{
	Use:   "roe",
	Short: "Show rules-of-engagement postures",
	Long:  "Prints the ROE postures from most to least restrictive with their escalation ceilings.",
	Args:  cobra.NoArgs,
	RunE:  runROE,
}

func runROE(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if roeCheck < 0 {
		fmt.Fprintln(out, format.Postures(tableMode(roeTable)))
		return nil
	}

	level := escalation.Lookup(roeCheck).Name
	fmt.Fprintf(out, "Index %d (%s):\n", roeCheck, level)
	for _, p := range escalation.Postures() {
		verdict := "within"
		if p.Exceeded(roeCheck) {
			verdict = "EXCEEDS"
		}
		fmt.Fprintf(out, "  %-13s %s\n", p.Name, verdict)
	}
	return nil
}
