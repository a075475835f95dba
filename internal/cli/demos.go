package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ppiankov/oodakit/internal/format"
	"github.com/ppiankov/oodakit/internal/registry"
)

var (
	demosRegistry string
	demosTable    string
)

func init() {
	rootCmd.AddCommand(demosCmd)
	demosCmd.Flags().StringVar(&demosRegistry, "registry", "", "Path to registry YAML (default: config, then built-in)")
	demosCmd.Flags().StringVar(&demosTable, "table", "", "Table style (ascii|markdown)")
}

var demosCmd = &cobra.Command{
	Use:   "demos [id]",
	Short: "List registered demos or show one",
	Long:  "Without arguments, lists every demo in registration order. With an id, prints its full\nconfiguration and the scenario variants it can run under.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runDemos,
}

// loadRegistry resolves a --registry flag, then the configured registry,
// then the built-in one.
func loadRegistry(flag string) (*registry.Registry, error) {
	path := flag
	if path == "" {
		path = cfg.Registry
	}
	return registry.LoadOrBuiltin(path)
}

func runDemos(cmd *cobra.Command, args []string) error {
	reg, err := loadRegistry(demosRegistry)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		fmt.Fprintln(out, format.Demos(reg, tableMode(demosTable)))
		return nil
	}

	demo, err := reg.Get(registry.DemoID(args[0]))
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(demo)
	if err != nil {
		return fmt.Errorf("marshal demo: %w", err)
	}
	fmt.Fprint(out, string(data))

	fmt.Fprintln(out, "scenarios:")
	for _, s := range registry.Scenarios() {
		fmt.Fprintf(out, "  - %s: %s\n", s.Name, s.Description)
	}
	return nil
}
