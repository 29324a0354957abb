package cli

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/vkaraulov/orderlens/internal/config"
	"github.com/vkaraulov/orderlens/internal/tui"
	"github.com/vkaraulov/orderlens/internal/tui/wizards"
)

var initCmd = &cobra.Command{
	Use:   "init [target_path]",
	Short: "Create an orderlens.yaml project file",
	Long: `Init writes an orderlens.yaml project file that the generate, load, and
report commands read their defaults from.

At an interactive terminal, init walks through the connection and pipeline
settings and tests the database connection. In CI or with piped input it
writes a config with standard defaults instead.

Examples:
  orderlens init             # Current directory
  orderlens init ./analytics # Subdirectory (created if missing)`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

var initForce bool

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().BoolVar(&initForce, "force", false,
		"Overwrite an existing orderlens.yaml")
}

func defaultProjectConfig() *config.ProjectConfig {
	return &config.ProjectConfig{
		Connection: config.ConnectionConfig{
			Host:     "localhost",
			Port:     5432,
			Username: "postgres",
			Database: "orders",
			SSLMode:  "prefer",
		},
		Generator: config.GeneratorConfig{Count: 1000, Output: "orders.csv"},
		Reports:   config.ReportsConfig{OutputDir: "reports"},
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	targetDir := "."
	if len(args) == 1 {
		targetDir = args[0]
	}

	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return fmt.Errorf("failed to create target directory: %w", err)
	}

	configPath := filepath.Join(targetDir, config.ConfigFileName)
	if _, err := os.Stat(configPath); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
	}

	projectCfg := defaultProjectConfig()

	if tui.IsInteractive() {
		program := tea.NewProgram(wizards.NewSetupWizard())
		model, err := program.Run()
		if err != nil {
			return fmt.Errorf("setup wizard failed: %w", err)
		}
		result := model.(wizards.SetupWizard).Result()
		if result.Cancelled {
			fmt.Fprintln(os.Stderr, "Setup cancelled, no file written.")
			return nil
		}
		cfg := result.Config
		cfg.Generator.Output = "orders.csv"
		projectCfg = &cfg
	} else {
		fmt.Fprintln(os.Stderr, "Non-interactive terminal, writing defaults.")
	}

	if err := config.Save(targetDir, projectCfg); err != nil {
		return fmt.Errorf("failed to write %s: %w", config.ConfigFileName, err)
	}

	fmt.Fprintf(os.Stderr, "\n✓ Wrote %s\n", configPath)
	fmt.Fprintln(os.Stderr, "\nNext steps:")
	if targetDir != "." {
		fmt.Fprintf(os.Stderr, "  cd %s\n", targetDir)
	}
	fmt.Fprintln(os.Stderr, "  orderlens generate")
	fmt.Fprintln(os.Stderr, "  orderlens load")
	fmt.Fprintln(os.Stderr, "  orderlens report")
	return nil
}
