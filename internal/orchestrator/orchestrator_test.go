package orchestrator

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vladcraftcom/ai-project-template/internal/config"
	"github.com/vladcraftcom/ai-project-template/internal/probe"
	"github.com/vladcraftcom/ai-project-template/internal/runner"
)

var errNotFound = errors.New("executable not found")

// newTestState wires a State to a mock runner on which every probe
// candidate succeeds unless scripted otherwise.
func newTestState(m *runner.MockRunner) *State {
	return New(config.Default(), m)
}

// resolveProbes runs one probe round to completion synchronously.
func resolveProbes(t *testing.T, s *State) {
	t.Helper()
	for result := range s.BeginProbe(context.Background()) {
		s.ApplyProbe(result)
	}
}

func TestNew_StartsCheckingAndGateClosed(t *testing.T) {
	s := newTestState(runner.NewMockRunner())

	for _, capability := range probe.Capabilities {
		require.Equal(t, probe.StatusChecking, s.Capability(capability).Kind)
	}
	require.False(t, s.Busy())
	require.False(t, s.CanCreate())
}

func TestCanCreate_RequiresAllInputs(t *testing.T) {
	s := newTestState(runner.NewMockRunner())
	resolveProbes(t, s)

	// All capabilities available, but no valid name yet.
	require.False(t, s.CanCreate())

	s.SetName("my_app-1")
	require.True(t, s.CanCreate())

	s.SetName("con")
	require.False(t, s.CanCreate())
	require.Contains(t, s.Validation().Message, "reserved")

	s.SetName("my_app-1")
	require.True(t, s.CanCreate())
}

func TestCanCreate_FalseWhileAnyCapabilityChecking(t *testing.T) {
	s := newTestState(runner.NewMockRunner())
	s.SetName("demo")

	ch := s.BeginProbe(context.Background())

	var results []probe.Result
	for result := range ch {
		results = append(results, result)
	}

	// Apply two of three: the remaining Checking slot keeps the gate
	// closed.
	s.ApplyProbe(results[0])
	s.ApplyProbe(results[1])
	require.False(t, s.CanCreate())

	s.ApplyProbe(results[2])
	require.True(t, s.CanCreate())
}

func TestCanCreate_FalseWhenCapabilityUnavailable(t *testing.T) {
	m := runner.NewMockRunner()
	m.DefaultProbeErr = errNotFound

	s := newTestState(m)
	s.SetName("demo")
	resolveProbes(t, s)

	for _, capability := range probe.Capabilities {
		status := s.Capability(capability)
		require.Equal(t, probe.StatusUnavailable, status.Kind)
		require.NotEmpty(t, status.Reason)
	}
	require.False(t, s.Busy())
	require.False(t, s.CanCreate())
}

func TestApplyProbe_DiscardsStaleGeneration(t *testing.T) {
	m := runner.NewMockRunner()
	s := newTestState(m)

	stale := s.BeginProbe(context.Background())
	var staleResults []probe.Result
	for result := range stale {
		staleResults = append(staleResults, result)
	}

	// A re-probe supersedes the round above before its results land.
	fresh := s.BeginProbe(context.Background())

	for _, result := range staleResults {
		require.False(t, s.ApplyProbe(result))
	}
	for _, capability := range probe.Capabilities {
		require.Equal(t, probe.StatusChecking, s.Capability(capability).Kind)
	}

	for result := range fresh {
		require.True(t, s.ApplyProbe(result))
	}
	for _, capability := range probe.Capabilities {
		require.Equal(t, probe.StatusAvailable, s.Capability(capability).Kind)
	}
}

func TestStartRun_SelfGuardsWhenGateClosed(t *testing.T) {
	m := runner.NewMockRunner()
	s := newTestState(m)

	_, err := s.StartRun(context.Background())
	require.ErrorIs(t, err, ErrNotReady)
	require.Empty(t, m.StartCalls())
}

func TestStartRun_SuccessfulRunLogAndBusy(t *testing.T) {
	m := runner.NewMockRunner()
	m.SetScript(
		[]string{"python", "create_project.py", "demo", "--venv", "--install"},
		runner.MockScript{Lines: []string{"creating directory demo", "done"}, ExitCode: 0},
	)

	s := newTestState(m)
	s.SetName("demo")
	s.SetCreateVenv(true)
	s.SetInstallPackages(true)
	resolveProbes(t, s)

	events, err := s.StartRun(context.Background())
	require.NoError(t, err)
	require.True(t, s.Busy())
	require.False(t, s.CanCreate(), "gate must close the instant busy is set")

	for ev := range events {
		s.ApplyEvent(ev)
		if ev.Kind != runner.EventExit {
			require.True(t, s.Busy(), "busy must hold until the terminal line is appended")
		}
	}
	s.FinishRun()

	require.False(t, s.Busy())
	require.True(t, s.CanCreate())

	log := s.Log()
	require.Len(t, log, 5)
	require.Equal(t, LogStatus, log[0].Kind)
	require.Contains(t, log[0].Text, `creating project "demo"`)
	require.Equal(t, LogCommand, log[1].Kind)
	require.Equal(t, "$ python create_project.py demo --venv --install", log[1].Text)
	require.Equal(t, LogOutput, log[2].Kind)
	require.Equal(t, LogOutput, log[3].Kind)
	require.Equal(t, LogExit, log[4].Kind)
	require.Equal(t, "exit code 0", log[4].Text)

	code, exited := s.LastExitCode()
	require.True(t, exited)
	require.Equal(t, 0, code)
	require.False(t, s.LastRunFailed())
}

func TestStartRun_NonZeroExit(t *testing.T) {
	m := runner.NewMockRunner()
	m.SetScript(
		[]string{"python", "create_project.py", "demo"},
		runner.MockScript{Lines: []string{"error: directory exists"}, ExitCode: 2},
	)

	s := newTestState(m)
	s.SetName("demo")
	resolveProbes(t, s)

	events, err := s.StartRun(context.Background())
	require.NoError(t, err)
	for ev := range events {
		s.ApplyEvent(ev)
	}
	s.FinishRun()

	require.False(t, s.Busy())
	require.True(t, s.LastRunFailed())

	code, exited := s.LastExitCode()
	require.True(t, exited)
	require.Equal(t, 2, code)

	log := s.Log()
	require.Equal(t, "exit code 2", log[len(log)-1].Text)
}

func TestStartRun_SpawnFailureClearsBusy(t *testing.T) {
	m := runner.NewMockRunner()
	// No script for the command line: the mock treats it as a missing
	// executable.

	s := newTestState(m)
	s.SetName("demo")
	resolveProbes(t, s)

	events, err := s.StartRun(context.Background())
	require.NoError(t, err)
	require.True(t, s.Busy())

	for ev := range events {
		s.ApplyEvent(ev)
	}
	s.FinishRun()

	require.False(t, s.Busy())
	require.True(t, s.LastRunFailed())

	_, exited := s.LastExitCode()
	require.False(t, exited, "a spawn failure has no exit code")

	var errorLines, exitLines int
	for _, entry := range s.Log() {
		switch entry.Kind {
		case LogError:
			errorLines++
		case LogExit:
			exitLines++
		}
	}
	require.Equal(t, 1, errorLines)
	require.Zero(t, exitLines)
}

func TestStartRun_SignalTermination(t *testing.T) {
	m := runner.NewMockRunner()
	m.SetScript(
		[]string{"python", "create_project.py", "demo"},
		runner.MockScript{ExitCode: runner.ExitCodeUnknown},
	)

	s := newTestState(m)
	s.SetName("demo")
	resolveProbes(t, s)

	events, err := s.StartRun(context.Background())
	require.NoError(t, err)
	for ev := range events {
		s.ApplyEvent(ev)
	}
	s.FinishRun()

	log := s.Log()
	require.Equal(t, "exit code unknown (terminated by signal)", log[len(log)-1].Text)
	require.True(t, s.LastRunFailed())
}

func TestStartRun_SnapshotsRequest(t *testing.T) {
	m := runner.NewMockRunner()
	m.SetScript(
		[]string{"python", "create_project.py", "demo", "--force"},
		runner.MockScript{ExitCode: 0},
	)

	s := newTestState(m)
	s.SetName("demo")
	s.SetForce(true)
	resolveProbes(t, s)

	events, err := s.StartRun(context.Background())
	require.NoError(t, err)

	// Edits after invocation must not reach the in-flight run.
	s.SetName("other")
	s.SetForce(false)

	for ev := range events {
		s.ApplyEvent(ev)
	}
	s.FinishRun()

	calls := m.StartCalls()
	require.Len(t, calls, 1)
	require.Equal(t, []string{"python", "create_project.py", "demo", "--force"}, calls[0])
}

func TestStartRun_UsesProbedInterpreter(t *testing.T) {
	m := runner.NewMockRunner()
	// python is absent; python3 resolves the interpreter capability.
	m.SetProbeResult([]string{"python", "--version"}, errNotFound)
	m.SetScript(
		[]string{"python3", "create_project.py", "demo"},
		runner.MockScript{ExitCode: 0},
	)

	s := newTestState(m)
	s.SetName("demo")
	resolveProbes(t, s)

	require.Equal(t, "python3", s.Capability(probe.CapInterpreter).Tool)

	events, err := s.StartRun(context.Background())
	require.NoError(t, err)
	for ev := range events {
		s.ApplyEvent(ev)
	}
	s.FinishRun()

	require.False(t, s.LastRunFailed())
	require.Equal(t, []string{"python3", "create_project.py", "demo"}, m.StartCalls()[0])
}

func TestLog_AppendOnlyAcrossRuns(t *testing.T) {
	m := runner.NewMockRunner()
	m.SetScript(
		[]string{"python", "create_project.py", "demo"},
		runner.MockScript{ExitCode: 0},
	)

	s := newTestState(m)
	s.SetName("demo")
	resolveProbes(t, s)

	runOnce := func() {
		events, err := s.StartRun(context.Background())
		require.NoError(t, err)
		for ev := range events {
			s.ApplyEvent(ev)
		}
		s.FinishRun()
	}

	runOnce()
	first := s.Log()
	runOnce()
	second := s.Log()

	require.Greater(t, len(second), len(first))
	require.Equal(t, first, second[:len(first)], "earlier entries must never change")
}
