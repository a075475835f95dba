package cli

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ppiankov/oodakit/internal/escalation"
	"github.com/ppiankov/oodakit/internal/registry"
)

const version = "0.3.0"

type versionInfo struct {
	Name         string `json:"name"`
	Version      string `json:"version"`
	Go           string `json:"go"`
	LadderLevels int    `json:"ladder_levels"`
	DefaultModel string `json:"default_model"`
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build details as JSON",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := json.MarshalIndent(versionInfo{
			Name:         "oodakit",
			Version:      version,
			Go:           runtime.Version(),
			LadderLevels: len(escalation.Default().Steps()),
			DefaultModel: registry.DefaultModel,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal version: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return nil
	},
}
