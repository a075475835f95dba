package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ppiankov/oodakit/internal/audit"
	"github.com/ppiankov/oodakit/internal/game"
	"github.com/ppiankov/oodakit/internal/scenario"
	"github.com/ppiankov/oodakit/internal/statuslog"
	"github.com/ppiankov/oodakit/internal/store"
)

var (
	scenarioFormat  string
	scenarioJournal bool
	scenarioArchive bool
	scenarioSaveDir string
)

func init() {
	rootCmd.AddCommand(scenarioCmd)
	scenarioCmd.AddCommand(scenarioRunCmd)
	scenarioRunCmd.Flags().StringVarP(&scenarioFormat, "format", "f", "text", "Output format (text|json)")
	scenarioRunCmd.Flags().BoolVar(&scenarioJournal, "journal", false, "Record every turn to the configured journal")
	scenarioRunCmd.Flags().BoolVar(&scenarioArchive, "archive", false, "Save every game log to the configured archive")
	scenarioRunCmd.Flags().StringVar(&scenarioSaveDir, "save-dir", "", "Write each game log as <name>.json into this directory")
}

var scenarioCmd = &cobra.Command{
	Use:   "scenario",
	Short: "Scripted scenario operations",
}

var scenarioRunCmd = &cobra.Command{
	Use:   "run <file>...",
	Short: "Replay scenario files and check their expectations",
	Long: "Replays every turn of each YAML scenario through the turn engine and compares the\n" +
		"resulting level, crossing and ROE verdicts with the expectations in the file.\n" +
		"Exits 1 if any turn fails.",
	Args: cobra.MinimumNArgs(1),
	RunE: runScenario,
}

func runScenario(cmd *cobra.Command, args []string) error {
	status := newStatus(cmd)
	status.Section("Scenario replay", fmt.Sprintf("%d file(s)", len(args)), statuslog.NoPhase, "")

	opts := []scenario.Option{
		func(o *game.Options) { o.TurnInterval = cfg.Game.TurnInterval },
	}
	if scenarioJournal {
		j, err := audit.Open(cfg.Journal)
		if err != nil {
			return err
		}
		defer j.Close()
		opts = append(opts, scenario.WithJournal(j))
		status.Info("journaling to " + j.Path())
	}

	ctx, cancel := signalContext()
	defer cancel()
	results, err := scenario.RunAll(ctx, args, opts...)
	if err != nil {
		return err
	}

	if err := persistResults(status, results); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch scenarioFormat {
	case "json":
		s, err := scenario.FormatJSON(results)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, s)
	default:
		fmt.Fprint(out, scenario.FormatText(results))
	}

	failed := 0
	for _, r := range results {
		failed += r.Failed
	}
	status.Metric("turns failed", failed, "")
	if failed > 0 {
		status.Warn("scenario expectations not met")
		return &exitError{code: 1}
	}
	status.Success("all scenario expectations met")
	return nil
}

// persistResults writes game logs to --save-dir and the archive as
// requested.
func persistResults(status *statuslog.Logger, results []*scenario.RunResult) error {
	if scenarioSaveDir != "" {
		for _, r := range results {
			path := filepath.Join(scenarioSaveDir, r.Name+".json")
			if err := game.SaveLog(path, r.Log); err != nil {
				return err
			}
			status.Step(r.Name, "saved "+path)
		}
	}

	if !scenarioArchive {
		return nil
	}
	a, err := store.Open(cfg.Archive)
	if err != nil {
		return err
	}
	defer a.Close()
	for _, r := range results {
		if err := a.SaveGame(r.Log); err != nil {
			return err
		}
		logger.Debug("archived game", zap.String("id", r.Log.ID), zap.String("scenario", r.Name))
		status.Step(r.Name, "archived as "+r.Log.ID)
	}
	return nil
}
