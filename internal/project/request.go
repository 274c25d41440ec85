package project

// Request captures the user's intent at the moment a create run is
// started. It is a value type; the orchestrator snapshots it so that
// later form edits cannot affect an in-flight run.
type Request struct {
	Name             string
	Force            bool
	CreateVenv       bool
	InstallPackages  bool
	RefreshTemplates bool
}

// ScriptArgs builds the argument list passed to the scaffolding script,
// after the script path itself: the project name followed by the enabled
// flags in a fixed order so that logged invocations are reproducible.
func (r Request) ScriptArgs() []string {
	args := []string{r.Name}
	if r.Force {
		args = append(args, "--force")
	}
	if r.CreateVenv {
		args = append(args, "--venv")
	}
	if r.InstallPackages {
		args = append(args, "--install")
	}
	if r.RefreshTemplates {
		args = append(args, "--refresh-templates")
	}
	return args
}
