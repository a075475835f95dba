// Package cli is the oodakit command tree.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ppiankov/oodakit/internal/config"
	"github.com/ppiankov/oodakit/internal/format"
	"github.com/ppiankov/oodakit/internal/logging"
	"github.com/ppiankov/oodakit/internal/statuslog"
)

var (
	configPath string
	logLevel   string
	logFormat  string

	cfg    = config.Default()
	logger = zap.NewNop()
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config YAML (default ~/.oodakit/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level override (debug|info|warn|error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format override (console|json)")
}

var rootCmd = &cobra.Command{
	Use:   "oodakit",
	Short: "Wargame support toolkit: escalation ladder, scoring, RAI checks and rendering",
	Long: "Shared tooling behind the OODA wargaming demos: escalation ladder and ROE postures,\n" +
		"scoring sheets, the demo registry and its responsible-AI checks, scenario replay,\n" +
		"a hash-chained decision journal, a game archive, and dashboard rendering.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Resolve(configPath)
		if err != nil {
			return err
		}
		if logLevel != "" {
			loaded.Log.Level = logLevel
		}
		if logFormat != "" {
			loaded.Log.Format = logFormat
		}

		l, err := logging.New(loaded.Log.Level, loaded.Log.Format)
		if err != nil {
			return err
		}
		cfg, logger = loaded, l
		logger.Debug("config loaded", zap.String("source", cfg.Source), zap.String("hash", cfg.Hash))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// exitError ends the process with code after its message, if any, has
// been printed.
type exitError struct {
	code int
	msg  string
}

func (e *exitError) Error() string { return e.msg }

// Execute runs the root command.
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes args and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		if ee.msg != "" {
			fmt.Fprintln(stderr, ee.msg)
		}
		return ee.code
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return 1
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
}

// tableMode resolves a --table flag against the configured default.
func tableMode(flag string) format.Mode {
	if flag != "" {
		return format.ParseMode(flag)
	}
	return cfg.TableMode()
}

// newStatus returns a status journal rendering to the command's stderr
// and mirrored to the process logger.
func newStatus(cmd *cobra.Command) *statuslog.Logger {
	return statuslog.New(
		statuslog.WithEmitter(statuslog.NewTextEmitter(cmd.ErrOrStderr())),
		statuslog.WithZap(logger),
	)
}
