package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vladcraftcom/ai-project-template/internal/config"
	"github.com/vladcraftcom/ai-project-template/internal/filesystem"
	"github.com/vladcraftcom/ai-project-template/internal/preset"
)

// Puller downloads a preset bundle into a directory.
type Puller interface {
	Pull(ctx context.Context, fs filesystem.FileSystem, destDir string, repo config.RepoRef) error
}

// PresetsCommand groups preset management subcommands.
type PresetsCommand struct {
	fs     filesystem.FileSystem
	puller Puller
}

// NewPresetsCommand creates the presets command with its subcommands
func NewPresetsCommand(fs filesystem.FileSystem, puller Puller) *cobra.Command {
	cmd := &PresetsCommand{fs: fs, puller: puller}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "Manage scaffolding presets",
	}

	presetsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List available presets",
		RunE:  cmd.RunList,
	})
	presetsCmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show a preset and a preview of its README",
		Args:  cobra.ExactArgs(1),
		RunE:  cmd.RunShow,
	})
	presetsCmd.AddCommand(&cobra.Command{
		Use:   "pull",
		Short: "Download the preset bundle from GitHub",
		RunE:  cmd.RunPull,
	})

	return presetsCmd
}

func (c *PresetsCommand) presetsDir(cmd *cobra.Command) (string, error) {
	cfg, err := loadConfig(cmd, c.fs)
	if err != nil {
		return "", err
	}
	if cfg.PresetsDir == "" {
		return "", fmt.Errorf("no presets directory configured; run the dashboard once or set presets_dir in %s", config.FileName)
	}
	return cfg.PresetsDir, nil
}

// RunList executes the presets list command
func (c *PresetsCommand) RunList(cmd *cobra.Command, args []string) error {
	dir, err := c.presetsDir(cmd)
	if err != nil {
		return err
	}

	presets, err := preset.NewManager(c.fs, dir).Discover()
	if err != nil {
		return err
	}

	if len(presets) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No presets found. Run `project-creator presets pull` to download the bundle.")
		return nil
	}

	for _, p := range presets {
		if p.Description != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s - %s\n", p.ID, p.Label, p.Description)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%-16s %s\n", p.ID, p.Label)
		}
	}
	return nil
}

// RunShow executes the presets show command
func (c *PresetsCommand) RunShow(cmd *cobra.Command, args []string) error {
	dir, err := c.presetsDir(cmd)
	if err != nil {
		return err
	}

	p, err := preset.NewManager(c.fs, dir).Read(args[0])
	if err != nil {
		return fmt.Errorf("failed to load preset %s: %w", args[0], err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s (%s)\n", p.Label, p.ID)
	if p.Description != "" {
		fmt.Fprintln(out, p.Description)
	}

	if len(p.Fields) > 0 {
		fmt.Fprintln(out, "\nFields:")
		for _, field := range p.Fields {
			fmt.Fprintf(out, "  %s (%s, default %q)\n", field.Label, field.ID, field.Default)
		}
	}
	if len(p.Options) > 0 {
		fmt.Fprintln(out, "\nOptions:")
		for _, option := range p.Options {
			fmt.Fprintf(out, "  %s (%s, default %t)\n", option.Label, option.ID, option.Default)
		}
	}

	rendered, err := preset.RenderReadme(p, "example", nil, time.Now())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nREADME preview:\n%s\n", rendered)
	return nil
}

// RunPull executes the presets pull command
func (c *PresetsCommand) RunPull(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, c.fs)
	if err != nil {
		return err
	}
	if cfg.PresetsDir == "" {
		return fmt.Errorf("no presets directory configured; run the dashboard once or set presets_dir in %s", config.FileName)
	}

	if err := c.fs.MkdirAll(cfg.PresetsDir, 0755); err != nil {
		return fmt.Errorf("failed to create presets directory: %w", err)
	}

	if err := c.puller.Pull(cmd.Context(), c.fs, cfg.PresetsDir, cfg.PresetsRepo); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Presets updated from %s/%s\n", cfg.PresetsRepo.Owner, cfg.PresetsRepo.Name)
	return nil
}
