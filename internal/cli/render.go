package cli

import (
	"bytes"
	"fmt"
	"html"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ppiankov/oodakit/internal/format"
	"github.com/ppiankov/oodakit/internal/game"
	"github.com/ppiankov/oodakit/internal/model"
	"github.com/ppiankov/oodakit/internal/scoring"
	"github.com/ppiankov/oodakit/internal/ui"
	"github.com/ppiankov/oodakit/internal/watch"
)

var (
	renderLog   string
	renderOut   string
	renderWatch bool
	renderPoll  bool
	renderText  bool
	renderTable string
)

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringVarP(&renderLog, "log", "l", "", "Path to game log JSON (required)")
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "", "Write output to this file instead of stdout")
	renderCmd.Flags().BoolVarP(&renderWatch, "watch", "w", false, "Re-render whenever the game log changes")
	renderCmd.Flags().BoolVar(&renderPoll, "poll", false, "Watch by polling instead of filesystem events")
	renderCmd.Flags().BoolVar(&renderText, "text", false, "Render a terminal table instead of HTML")
	renderCmd.Flags().StringVar(&renderTable, "table", "", "Table style for --text (ascii|markdown)")
	_ = renderCmd.MarkFlagRequired("log")
}

var renderCmd = &cobra.Command{
	Use:       "render <dashboard|gamelog>",
	Short:     "Render a game log as an HTML dashboard or turn table",
	Long:      "Renders the latest dashboard or the full turn table of a saved game log. With --watch,\nkeeps running and re-renders whenever the log file changes.",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"dashboard", "gamelog"},
	RunE:      runRender,
}

func runRender(cmd *cobra.Command, args []string) error {
	kind := args[0]
	render := func(path string) error {
		log, err := game.LoadLog(path)
		if err != nil {
			return err
		}
		var body string
		if renderText {
			body = renderTextView(kind, log)
		} else {
			body = renderHTMLView(kind, log)
		}
		return writeOutput(cmd.OutOrStdout(), renderOut, body)
	}

	if err := render(renderLog); err != nil {
		return err
	}
	if !renderWatch {
		return nil
	}

	ctx, cancel := signalContext()
	defer cancel()
	opts := []watch.Option{watch.WithDebounce(cfg.Render.Debounce), watch.WithLogger(logger)}
	logger.Info("watching game log", zap.String("path", renderLog), zap.Bool("poll", renderPoll))
	if renderPoll {
		return watch.NewPoller(renderLog, render, opts...).Run(ctx)
	}
	w, err := watch.New(renderLog, render, opts...)
	if err != nil {
		return err
	}
	return w.Run(ctx)
}

func renderTextView(kind string, log game.GameLog) string {
	mode := tableMode(renderTable)
	if kind == "gamelog" {
		return format.GameLog(log, mode) + "\n"
	}
	if len(log.Turns) == 0 {
		return format.Board(scoring.NewBoard().Snapshot(), mode) + "\n"
	}
	last := log.Turns[len(log.Turns)-1]
	return fmt.Sprintf("%s\nTurn %d | ESCALATION %d %s | ROE %s\n",
		format.Board(scoring.Board{Blue: last.Blue, Red: last.Red}, mode),
		last.Turn, last.EscalationIndex, last.EscalationLevel, last.ROEPosture)
}

func renderHTMLView(kind string, log game.GameLog) string {
	var b bytes.Buffer
	b.WriteString(ui.ScopeStatement())
	b.WriteString(ui.SyntheticBanner("Game Log", ""))

	switch {
	case kind == "gamelog":
		b.WriteString(ui.GameLogTable(log))
	case len(log.Turns) == 0:
		b.WriteString(ui.Dashboard(0, *scoring.NewBoard(), 0, model.Routine, model.Peacetime))
	default:
		last := log.Turns[len(log.Turns)-1]
		b.WriteString(ui.TurnHeader(last.Turn, last.DTG, "RED: "+last.RedLabel+" / BLUE: "+last.BlueLabel, ""))
		if last.ThresholdCrossing {
			b.WriteString(ui.ThresholdAlert(last.PreviousLevel.String(), last.EscalationLevel.String(), ""))
		}
		b.WriteString(ui.TurnDashboard(last))
	}
	return page(log.Scenario, b.String())
}

// page wraps fragments into a standalone dark document.
func page(title, body string) string {
	return fmt.Sprintf("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>%s</title></head>"+
		"<body style='background:%s; margin:24px;'>\n%s\n</body></html>\n",
		html.EscapeString(title), ui.BGDark, body)
}

// writeOutput writes body to path via a temporary file and rename, or to
// w when path is empty.
func writeOutput(w io.Writer, path, body string) error {
	if path == "" {
		_, err := io.WriteString(w, body)
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".render-*")
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	if _, err := tmp.WriteString(body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write output: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write output: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
