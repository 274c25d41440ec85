package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/vladcraftcom/ai-project-template/internal/config"
	"github.com/vladcraftcom/ai-project-template/internal/probe"
	"github.com/vladcraftcom/ai-project-template/internal/project"
	"github.com/vladcraftcom/ai-project-template/internal/runner"
)

// ErrNotReady is returned when a run is requested while the create gate
// is closed. The control surface disables the action in that state, but
// the state machine guards itself as well.
var ErrNotReady = errors.New("cannot create: validation, capabilities or a run in progress block the action")

// State owns the form values, the capability statuses, the busy flag and
// the append-only log, and derives the create gate from them.
//
// State is not goroutine safe: all methods must be called from the
// owning event loop. Background work (probing, the child process)
// communicates through the channels returned by BeginProbe and StartRun,
// whose items the event loop feeds back via ApplyProbe and ApplyEvent.
type State struct {
	cfg    *config.Config
	prober *probe.Prober
	runner runner.Runner
	chains []probe.Chain

	request    project.Request
	validation project.ValidationResult
	caps       map[probe.Capability]probe.Status

	busy     bool
	log      []LogEntry
	probeGen uint64

	lastExitCode  int
	lastRunExited bool
	lastRunFailed bool
}

// New creates a State in the Idle state with every capability Checking.
// The caller is expected to start a probe immediately via BeginProbe.
func New(cfg *config.Config, r runner.Runner) *State {
	caps := make(map[probe.Capability]probe.Status, len(probe.Capabilities))
	for _, capability := range probe.Capabilities {
		caps[capability] = probe.Status{Kind: probe.StatusChecking}
	}

	return &State{
		cfg:        cfg,
		prober:     probe.NewProber(r),
		runner:     r,
		chains:     cfg.Chains(),
		validation: project.ValidateName(""),
		caps:       caps,
	}
}

// SetName updates the proposed project name and revalidates it
// synchronously.
func (s *State) SetName(name string) {
	s.request.Name = name
	s.validation = project.ValidateName(name)
}

func (s *State) SetForce(v bool)            { s.request.Force = v }
func (s *State) SetCreateVenv(v bool)       { s.request.CreateVenv = v }
func (s *State) SetInstallPackages(v bool)  { s.request.InstallPackages = v }
func (s *State) SetRefreshTemplates(v bool) { s.request.RefreshTemplates = v }

// Request returns a snapshot of the current form values.
func (s *State) Request() project.Request { return s.request }

// Validation returns the result of validating the current name.
func (s *State) Validation() project.ValidationResult { return s.validation }

// Capability returns the current status of one capability.
func (s *State) Capability(c probe.Capability) probe.Status { return s.caps[c] }

// Busy reports whether a run is in flight.
func (s *State) Busy() bool { return s.busy }

// Log returns the log entries appended so far.
func (s *State) Log() []LogEntry {
	return append([]LogEntry(nil), s.log...)
}

// CanCreate derives the create gate. It is recomputed from its inputs
// on every call and never stored.
func (s *State) CanCreate() bool {
	if s.busy || !s.validation.Valid {
		return false
	}
	for _, capability := range probe.Capabilities {
		if s.caps[capability].Kind != probe.StatusAvailable {
			return false
		}
	}
	return true
}

// AppendStatus appends a status line to the log.
func (s *State) AppendStatus(text string) LogEntry {
	entry := LogEntry{Kind: LogStatus, Text: text}
	s.log = append(s.log, entry)
	return entry
}

// BeginProbe resets every capability to Checking and starts a new probe
// round. Results from rounds started earlier are discarded by
// ApplyProbe, so a re-probe safely supersedes one still in flight.
func (s *State) BeginProbe(ctx context.Context) <-chan probe.Result {
	s.probeGen++
	for _, capability := range probe.Capabilities {
		s.caps[capability] = probe.Status{Kind: probe.StatusChecking}
	}
	return s.prober.ProbeAll(ctx, s.chains, s.probeGen)
}

// ApplyProbe records a probe result. Results from a superseded round
// are discarded; the return value reports whether the result was
// applied.
func (s *State) ApplyProbe(result probe.Result) bool {
	if result.Generation != s.probeGen {
		return false
	}
	s.caps[result.Capability] = result.Status
	return true
}

// StartRun snapshots the current request and launches the scaffolding
// script. The busy flag is set before the child is started and stays
// set until FinishRun; the caller must feed every event from the
// returned channel through ApplyEvent and call FinishRun once the
// channel closes.
func (s *State) StartRun(ctx context.Context) (<-chan runner.Event, error) {
	if !s.CanCreate() {
		return nil, ErrNotReady
	}

	snapshot := s.request
	s.busy = true
	s.lastRunExited = false
	s.lastRunFailed = false

	id, err := newRunID()
	if err != nil {
		// The ID only labels log sections; a run without one is fine.
		id = "unknown"
	}
	s.AppendStatus(fmt.Sprintf("run %s: creating project %q", id, snapshot.Name))

	argv := append([]string{s.interpreter(), s.cfg.Script}, snapshot.ScriptArgs()...)
	return s.runner.Start(ctx, argv), nil
}

// ApplyEvent appends a run event to the log and returns the entry.
func (s *State) ApplyEvent(ev runner.Event) LogEntry {
	var entry LogEntry
	switch ev.Kind {
	case runner.EventCommand:
		entry = LogEntry{Kind: LogCommand, Text: ev.Line}
	case runner.EventLine:
		entry = LogEntry{Kind: LogOutput, Text: ev.Line}
	case runner.EventSpawnError:
		s.lastRunFailed = true
		entry = LogEntry{Kind: LogError, Text: ev.Line}
	case runner.EventExit:
		s.lastRunExited = true
		s.lastExitCode = ev.ExitCode
		s.lastRunFailed = ev.ExitCode != 0
		if ev.ExitCode == runner.ExitCodeUnknown {
			entry = LogEntry{Kind: LogExit, Text: "exit code unknown (terminated by signal)"}
		} else {
			entry = LogEntry{Kind: LogExit, Text: fmt.Sprintf("exit code %d", ev.ExitCode)}
		}
	}
	s.log = append(s.log, entry)
	return entry
}

// FinishRun clears the busy flag. It must be called on every completion
// path, including spawn failure, once the run's event channel has
// closed.
func (s *State) FinishRun() {
	s.busy = false
}

// LastExitCode returns the exit code of the last completed run. The
// second return value is false when no run has exited yet, including
// when the last run failed to spawn.
func (s *State) LastExitCode() (int, bool) {
	return s.lastExitCode, s.lastRunExited
}

// LastRunFailed reports whether the last run ended in failure, through
// a non-zero exit code or a spawn error.
func (s *State) LastRunFailed() bool { return s.lastRunFailed }

// interpreter prefers the executable the probe resolved and falls back
// to the configured one.
func (s *State) interpreter() string {
	if status := s.caps[probe.CapInterpreter]; status.Kind == probe.StatusAvailable && status.Tool != "" {
		return status.Tool
	}
	return s.cfg.Interpreter
}
