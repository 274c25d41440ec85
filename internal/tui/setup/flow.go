package setup

import (
	"errors"
	"fmt"
	"strings"

	huh "github.com/charmbracelet/huh"

	"github.com/vladcraftcom/ai-project-template/internal/tui"
)

// Result captures the answers of the first-run setup flow.
type Result struct {
	PresetsDir string
	Download   bool
}

// Run asks for the presets directory and whether to pull the preset
// bundle from GitHub right away. Returns nil on user abort.
func Run(defaultDir string) (*Result, error) {
	dir := defaultDir
	download := true

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Presets directory").
				Description("Where preset manifests are stored.").
				Value(&dir).
				Validate(func(v string) error {
					if strings.TrimSpace(v) == "" {
						return fmt.Errorf("directory cannot be empty")
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Download presets from GitHub now?").
				Value(&download),
		).
			Title("First-Run Setup").
			Description("Project Creator needs a presets directory before the first project."),
	).
		WithTheme(tui.NewHuhTheme()).
		WithShowHelp(true)

	if err := form.Run(); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return nil, nil
		}
		return nil, err
	}

	return &Result{
		PresetsDir: strings.TrimSpace(dir),
		Download:   download,
	}, nil
}
