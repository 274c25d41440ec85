package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vladcraftcom/ai-project-template/internal/filesystem"
	"github.com/vladcraftcom/ai-project-template/internal/orchestrator"
	"github.com/vladcraftcom/ai-project-template/internal/probe"
	"github.com/vladcraftcom/ai-project-template/internal/runner"
)

var doctorLabels = map[probe.Capability]string{
	probe.CapInterpreter:      "Python interpreter",
	probe.CapPackageInstaller: "Package installer (pip)",
	probe.CapVenvTool:         "Virtualenv support",
}

// DoctorCommand reports whether the scaffolding script can run here.
type DoctorCommand struct {
	fs  filesystem.FileSystem
	run runner.Runner
}

// NewDoctorCommand creates a new doctor command
func NewDoctorCommand(fs filesystem.FileSystem, run runner.Runner) *cobra.Command {
	cmd := &DoctorCommand{fs: fs, run: run}

	return &cobra.Command{
		Use:   "doctor",
		Short: "Check that the required external tools are available",
		RunE:  cmd.Run,
	}
}

// Run executes the doctor command
func (c *DoctorCommand) Run(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, c.fs)
	if err != nil {
		return err
	}

	state := orchestrator.New(cfg, c.run)
	for result := range state.BeginProbe(cmd.Context()) {
		state.ApplyProbe(result)
	}

	statuses := make(map[probe.Capability]probe.Status, len(probe.Capabilities))
	for _, capability := range probe.Capabilities {
		statuses[capability] = state.Capability(capability)
	}

	fmt.Fprint(cmd.OutOrStdout(), renderDoctorReport(statuses))

	missing := 0
	for _, status := range statuses {
		if status.Kind != probe.StatusAvailable {
			missing++
		}
	}
	if missing > 0 {
		return fmt.Errorf("%d of %d required tools unavailable", missing, len(statuses))
	}
	return nil
}

// renderDoctorReport formats the capability statuses as a plain report.
func renderDoctorReport(statuses map[probe.Capability]probe.Status) string {
	var b strings.Builder

	b.WriteString("Environment check\n")
	for _, capability := range probe.Capabilities {
		status := statuses[capability]
		label := doctorLabels[capability]

		switch status.Kind {
		case probe.StatusAvailable:
			if status.Tool != "" {
				b.WriteString(fmt.Sprintf("  ok       %s (via %s)\n", label, status.Tool))
			} else {
				b.WriteString(fmt.Sprintf("  ok       %s\n", label))
			}
		case probe.StatusUnavailable:
			b.WriteString(fmt.Sprintf("  missing  %s\n           %s\n", label, status.Reason))
		default:
			b.WriteString(fmt.Sprintf("  ?        %s\n", label))
		}
	}

	return b.String()
}
