package runner

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// MockScript describes the scripted outcome of a Start call.
type MockScript struct {
	Lines    []string
	ExitCode int
	// SpawnFail, when true, makes the run fail before the child starts;
	// the stream then carries the echo line and one spawn error only.
	SpawnFail bool
}

// MockRunner implements Runner for testing with scripted results
type MockRunner struct {
	mu sync.Mutex

	probeCalls [][]string
	startCalls [][]string

	probeErrs map[string]error
	scripts   map[string]MockScript

	// DefaultProbeErr is returned for probes with no scripted result.
	// Leaving it nil makes every unscripted probe succeed.
	DefaultProbeErr error
}

// NewMockRunner creates a new MockRunner
func NewMockRunner() *MockRunner {
	return &MockRunner{
		probeErrs: make(map[string]error),
		scripts:   make(map[string]MockScript),
	}
}

func argvKey(argv []string) string {
	return strings.Join(argv, " ")
}

// SetProbeResult scripts the outcome of Probe for an exact command line.
func (m *MockRunner) SetProbeResult(argv []string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.probeErrs[argvKey(argv)] = err
}

// SetScript scripts the event stream of Start for an exact command line.
func (m *MockRunner) SetScript(argv []string, script MockScript) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scripts[argvKey(argv)] = script
}

// ProbeCalls returns every command line Probe was invoked with, in order.
func (m *MockRunner) ProbeCalls() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]string(nil), m.probeCalls...)
}

// StartCalls returns every command line Start was invoked with, in order.
func (m *MockRunner) StartCalls() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]string(nil), m.startCalls...)
}

func (m *MockRunner) Probe(_ context.Context, argv []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.probeCalls = append(m.probeCalls, append([]string(nil), argv...))

	if err, ok := m.probeErrs[argvKey(argv)]; ok {
		return err
	}
	return m.DefaultProbeErr
}

func (m *MockRunner) Start(_ context.Context, argv []string) <-chan Event {
	m.mu.Lock()
	m.startCalls = append(m.startCalls, append([]string(nil), argv...))
	script, scripted := m.scripts[argvKey(argv)]
	m.mu.Unlock()

	events := make(chan Event, len(script.Lines)+2)
	events <- Event{Kind: EventCommand, Line: "$ " + strings.Join(argv, " ")}

	if !scripted || script.SpawnFail {
		events <- Event{Kind: EventSpawnError, Line: fmt.Sprintf("failed to start %s: executable not found", argv[0])}
		close(events)
		return events
	}

	for _, line := range script.Lines {
		events <- Event{Kind: EventLine, Line: line}
	}
	events <- Event{Kind: EventExit, ExitCode: script.ExitCode}
	close(events)
	return events
}
