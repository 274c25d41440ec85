package orchestrator

// LogKind classifies one line of the append-only log.
type LogKind int

const (
	// LogStatus is a user-facing status line produced by the tool itself.
	LogStatus LogKind = iota
	// LogCommand echoes the invocation of the scaffolding script.
	LogCommand
	// LogOutput is one line of child-process output.
	LogOutput
	// LogExit is the terminal line of a run, reporting the exit code.
	LogExit
	// LogError describes a failure such as a spawn error.
	LogError
)

// LogEntry is one line of the log. The log is append-only for the
// lifetime of the application; entries are never reordered or truncated.
type LogEntry struct {
	Kind LogKind
	Text string
}
