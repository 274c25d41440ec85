package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vladcraftcom/ai-project-template/internal/filesystem"
	"github.com/vladcraftcom/ai-project-template/internal/orchestrator"
	"github.com/vladcraftcom/ai-project-template/internal/probe"
	"github.com/vladcraftcom/ai-project-template/internal/runner"
)

// CreateCommand handles the headless create command
type CreateCommand struct {
	fs  filesystem.FileSystem
	run runner.Runner
}

// NewCreateCommand creates a new create command
func NewCreateCommand(fs filesystem.FileSystem, run runner.Runner) *cobra.Command {
	cmd := &CreateCommand{fs: fs, run: run}

	cobraCmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a project without the interactive dashboard",
		Long: `Validate the name, check the environment and run the scaffolding
script, streaming its output to stdout.`,
		Args: cobra.ExactArgs(1),
		RunE: cmd.Run,
	}

	cobraCmd.Flags().Bool("force", false, "overwrite a non-empty project directory")
	cobraCmd.Flags().Bool("venv", false, "create a virtualenv inside the project")
	cobraCmd.Flags().Bool("install", false, "install the base packages into the virtualenv")
	cobraCmd.Flags().Bool("refresh-templates", false, "overwrite template files that already exist")

	return cobraCmd
}

// Run executes the create command
func (c *CreateCommand) Run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, c.fs)
	if err != nil {
		return err
	}

	state := orchestrator.New(cfg, c.run)
	state.SetName(args[0])

	force, _ := cmd.Flags().GetBool("force")
	venv, _ := cmd.Flags().GetBool("venv")
	install, _ := cmd.Flags().GetBool("install")
	refresh, _ := cmd.Flags().GetBool("refresh-templates")
	state.SetForce(force)
	state.SetCreateVenv(venv)
	state.SetInstallPackages(install)
	state.SetRefreshTemplates(refresh)

	if validation := state.Validation(); !validation.Valid {
		return fmt.Errorf("invalid project name %q: %s", args[0], validation.Message)
	}

	ctx := cmd.Context()
	for result := range state.BeginProbe(ctx) {
		state.ApplyProbe(result)
	}

	if !state.CanCreate() {
		for _, capability := range probe.Capabilities {
			if status := state.Capability(capability); status.Kind == probe.StatusUnavailable {
				fmt.Fprintln(cmd.ErrOrStderr(), status.Reason)
			}
		}
		return fmt.Errorf("environment is missing required tools")
	}

	events, err := state.StartRun(ctx)
	if err != nil {
		return err
	}
	for ev := range events {
		entry := state.ApplyEvent(ev)
		fmt.Fprintln(cmd.OutOrStdout(), entry.Text)
	}
	state.FinishRun()

	if state.LastRunFailed() {
		if code, exited := state.LastExitCode(); exited {
			return fmt.Errorf("scaffolding script failed with exit code %d", code)
		}
		return fmt.Errorf("scaffolding script could not be started")
	}

	return nil
}
