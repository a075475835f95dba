package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ppiankov/oodakit/internal/format"
	"github.com/ppiankov/oodakit/internal/game"
	"github.com/ppiankov/oodakit/internal/store"
)

var (
	archivePath   string
	archiveTable  string
	archiveFormat string
)

func init() {
	rootCmd.AddCommand(archiveCmd)
	archiveCmd.AddCommand(archiveImportCmd)
	archiveCmd.AddCommand(archiveListCmd)
	archiveCmd.AddCommand(archiveShowCmd)
	archiveCmd.AddCommand(archiveDeleteCmd)
	archiveCmd.PersistentFlags().StringVar(&archivePath, "db", "", "Path to archive database (default: config)")
	archiveListCmd.Flags().StringVar(&archiveTable, "table", "", "Table style (ascii|markdown)")
	archiveShowCmd.Flags().StringVarP(&archiveFormat, "format", "f", "text", "Output format (text|json)")
	archiveShowCmd.Flags().StringVar(&archiveTable, "table", "", "Table style for text output (ascii|markdown)")
}

var archiveCmd = &cobra.Command{
	Use:   "archive",
	Short: "Game archive operations",
	Long:  "Commands for storing finished game logs in, and reading them back from, the SQLite archive.",
}

var archiveImportCmd = &cobra.Command{
	Use:   "import <game-log.json>...",
	Short: "Import game logs into the archive",
	Long:  "Imports each JSON game log. A game with the same ID replaces the stored one.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runArchiveImport,
}

var archiveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived games",
	Args:  cobra.NoArgs,
	RunE:  runArchiveList,
}

var archiveShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show an archived game",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchiveShow,
}

var archiveDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete an archived game",
	Args:  cobra.ExactArgs(1),
	RunE:  runArchiveDelete,
}

func openArchive() (*store.Archive, error) {
	path := archivePath
	if path == "" {
		path = cfg.Archive
	}
	return store.Open(path)
}

func runArchiveImport(cmd *cobra.Command, args []string) error {
	a, err := openArchive()
	if err != nil {
		return err
	}
	defer a.Close()

	for _, path := range args {
		log, err := game.LoadLog(path)
		if err != nil {
			return err
		}
		if err := a.SaveGame(log); err != nil {
			return fmt.Errorf("import %s: %w", path, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "imported %s (%s, %d turns)\n", log.ID, log.Scenario, len(log.Turns))
	}
	return nil
}

func runArchiveList(cmd *cobra.Command, args []string) error {
	a, err := openArchive()
	if err != nil {
		return err
	}
	defer a.Close()

	games, err := a.ListGames()
	if err != nil {
		return err
	}
	if len(games) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No archived games.")
		return nil
	}
	fmt.Fprintln(cmd.OutOrStdout(), format.Archive(games, tableMode(archiveTable)))
	return nil
}

func runArchiveShow(cmd *cobra.Command, args []string) error {
	a, err := openArchive()
	if err != nil {
		return err
	}
	defer a.Close()

	log, err := a.LoadGame(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch archiveFormat {
	case "json":
		data, err := json.MarshalIndent(log, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal game log: %w", err)
		}
		fmt.Fprintln(out, string(data))
	default:
		fmt.Fprintln(out, format.GameLog(log, tableMode(archiveTable)))
	}
	return nil
}

func runArchiveDelete(cmd *cobra.Command, args []string) error {
	a, err := openArchive()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.DeleteGame(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
	return nil
}
