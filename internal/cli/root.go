package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vladcraftcom/ai-project-template/internal/config"
	"github.com/vladcraftcom/ai-project-template/internal/filesystem"
	"github.com/vladcraftcom/ai-project-template/internal/orchestrator"
	"github.com/vladcraftcom/ai-project-template/internal/preset"
	"github.com/vladcraftcom/ai-project-template/internal/runner"
	"github.com/vladcraftcom/ai-project-template/internal/tui/dashboard"
	"github.com/vladcraftcom/ai-project-template/internal/tui/setup"
)

// NewRootCommand creates the root command
func NewRootCommand(fs filesystem.FileSystem, run runner.Runner) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "project-creator",
		Short: "Scaffold new project directories from presets",
		Long: `An interactive front end for the create_project.py scaffolding script.

Checks that the required tools (Python, pip, virtualenv) are present,
validates the project name and runs the script with a live log.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the interactive dashboard.
			return runDashboard(cmd, fs, run)
		},
	}

	rootCmd.PersistentFlags().String("config", "", "path to a config file (default: ./project-creator.yaml, then the user config dir)")

	// Add subcommands
	rootCmd.AddCommand(NewCreateCommand(fs, run))
	rootCmd.AddCommand(NewDoctorCommand(fs, run))
	rootCmd.AddCommand(NewPresetsCommand(fs, preset.NewFetcherFromEnv()))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	fs := filesystem.NewOSFileSystem()
	run := runner.NewOSRunner()

	rootCmd := NewRootCommand(fs, run)

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}

// loadConfig reads the configuration honoring the --config flag.
func loadConfig(cmd *cobra.Command, fs filesystem.FileSystem) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		path = ""
	}
	return config.Load(fs, path)
}

// runDashboard launches the interactive dashboard, running the
// first-run setup flow when no presets directory is configured yet.
func runDashboard(cmd *cobra.Command, fs filesystem.FileSystem, run runner.Runner) error {
	cfg, err := loadConfig(cmd, fs)
	if err != nil {
		return err
	}

	if cfg.PresetsDir == "" {
		if err := runSetup(cmd, fs, cfg); err != nil {
			return err
		}
		if cfg.PresetsDir == "" {
			// Setup was aborted; nothing to do.
			return nil
		}
	}

	state := orchestrator.New(cfg, run)
	return dashboard.Run(cmd.Context(), state)
}

func runSetup(cmd *cobra.Command, fs filesystem.FileSystem, cfg *config.Config) error {
	defaultDir := "presets"
	if base, err := fs.UserConfigDir(); err == nil {
		defaultDir = filepath.Join(base, "project-creator", "presets")
	}

	result, err := setup.Run(defaultDir)
	if err != nil {
		return fmt.Errorf("setup failed: %w", err)
	}
	if result == nil {
		return nil
	}

	cfg.PresetsDir = result.PresetsDir
	if err := fs.MkdirAll(cfg.PresetsDir, 0755); err != nil {
		return fmt.Errorf("failed to create presets directory: %w", err)
	}

	path, err := config.Save(fs, cfg)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Saved configuration to %s\n", path)

	if result.Download {
		fetcher := preset.NewFetcherFromEnv()
		if err := fetcher.Pull(cmd.Context(), fs, cfg.PresetsDir, cfg.PresetsRepo); err != nil {
			// A failed download leaves an empty presets directory; the
			// dashboard still works and `presets pull` can retry.
			fmt.Fprintf(cmd.OutOrStdout(), "Warning: could not download presets: %v\n", err)
		}
	}

	return nil
}
