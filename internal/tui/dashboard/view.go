package dashboard

import (
	"fmt"
	"strings"

	"github.com/vladcraftcom/ai-project-template/internal/orchestrator"
	"github.com/vladcraftcom/ai-project-template/internal/probe"
	"github.com/vladcraftcom/ai-project-template/internal/tui"
)

var capabilityLabels = map[probe.Capability]string{
	probe.CapInterpreter:      "Python interpreter",
	probe.CapPackageInstaller: "Package installer (pip)",
	probe.CapVenvTool:         "Virtualenv support",
}

var flagLabels = [flagCount]string{
	"Create virtualenv",
	"Install base packages",
	"Refresh templates",
	"Force (overwrite non-empty directory)",
}

// View renders the dashboard
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(tui.TitleStyle.Render("Project Creator"))
	b.WriteString("\n\n")

	b.WriteString(m.viewCapabilities())
	b.WriteString("\n")
	b.WriteString(m.viewForm())
	b.WriteString("\n")
	b.WriteString(m.viewLog())
	b.WriteString("\n")
	b.WriteString(m.viewHelp())

	return b.String()
}

func (m Model) viewCapabilities() string {
	var b strings.Builder

	b.WriteString(tui.LabelStyle.Render("Environment"))
	b.WriteString("\n")

	for _, capability := range probe.Capabilities {
		status := m.state.Capability(capability)
		label := capabilityLabels[capability]

		switch status.Kind {
		case probe.StatusChecking:
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				m.spin.View(), label, tui.CheckingStyle.Render("checking...")))
		case probe.StatusAvailable:
			detail := ""
			if status.Tool != "" {
				detail = tui.SubtleStyle.Render(" via " + status.Tool)
			}
			b.WriteString(fmt.Sprintf("  %s %s%s\n",
				tui.AvailableStyle.Render("✓"), label, detail))
		case probe.StatusUnavailable:
			b.WriteString(fmt.Sprintf("  %s %s\n    %s\n",
				tui.UnavailableStyle.Render("✗"), label,
				tui.UnavailableStyle.Render(status.Reason)))
		}
	}

	return b.String()
}

func (m Model) viewForm() string {
	var b strings.Builder

	b.WriteString(tui.LabelStyle.Render("Project name"))
	b.WriteString("\n  ")
	b.WriteString(m.nameInput.View())
	b.WriteString("\n")

	validation := m.state.Validation()
	if !validation.Valid && strings.TrimSpace(m.nameInput.Value()) != "" {
		b.WriteString("  ")
		b.WriteString(tui.ErrorStyle.Render(validation.Message))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(tui.LabelStyle.Render("Options"))
	b.WriteString("\n")

	req := m.state.Request()
	checked := [flagCount]bool{req.CreateVenv, req.InstallPackages, req.RefreshTemplates, req.Force}
	for i, label := range flagLabels {
		mark := tui.UncheckedStyle.Render("[ ]")
		if checked[i] {
			mark = tui.CheckedStyle.Render("[x]")
		}

		line := fmt.Sprintf("%s %s", mark, label)
		if m.focus == focusFlags && m.flagCursor == i {
			line = tui.FocusedStyle.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString("  " + line + "\n")
	}
	b.WriteString("\n")

	if m.state.Busy() {
		b.WriteString("  " + tui.CheckingStyle.Render("creating..."))
	} else if m.state.CanCreate() {
		b.WriteString("  " + tui.SuccessStyle.Render("ready: press enter to create"))
	} else {
		b.WriteString("  " + tui.SubtleStyle.Render("create disabled"))
	}
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewLog() string {
	var b strings.Builder
	b.WriteString(tui.LabelStyle.Render("Log"))
	b.WriteString("\n")
	b.WriteString(tui.LogBorderStyle.Render(m.logView.View()))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewHelp() string {
	return tui.HelpStyle.Render("tab focus • space toggle • enter create • ctrl+r re-check tools • ctrl+c quit")
}

// renderLog renders log entries for the viewport, styling each line by
// its kind.
func renderLog(entries []orchestrator.LogEntry) string {
	if len(entries) == 0 {
		return tui.SubtleStyle.Render("(no output yet)")
	}

	lines := make([]string, 0, len(entries))
	for _, entry := range entries {
		switch entry.Kind {
		case orchestrator.LogCommand:
			lines = append(lines, tui.CommandStyle.Render(entry.Text))
		case orchestrator.LogError:
			lines = append(lines, tui.ErrorStyle.Render(entry.Text))
		case orchestrator.LogExit:
			lines = append(lines, tui.SuccessStyle.Render(entry.Text))
		case orchestrator.LogStatus:
			lines = append(lines, tui.SubtleStyle.Render(entry.Text))
		default:
			lines = append(lines, entry.Text)
		}
	}
	return strings.Join(lines, "\n")
}
