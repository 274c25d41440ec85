package runner

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, events <-chan Event) []Event {
	t.Helper()

	var out []Event
	timeout := time.After(10 * time.Second)
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return out
			}
			out = append(out, ev)
		case <-timeout:
			t.Fatal("timed out waiting for run to complete")
		}
	}
}

func TestOSRunner_SuccessfulRun(t *testing.T) {
	r := NewOSRunner()

	events := collect(t, r.Start(context.Background(), []string{"sh", "-c", "echo one; echo two"}))

	require.GreaterOrEqual(t, len(events), 4)
	require.Equal(t, EventCommand, events[0].Kind)
	require.Equal(t, "$ sh -c echo one; echo two", events[0].Line)

	last := events[len(events)-1]
	require.Equal(t, EventExit, last.Kind)
	require.Equal(t, 0, last.ExitCode)

	var lines []string
	for _, ev := range events {
		if ev.Kind == EventLine {
			lines = append(lines, ev.Line)
		}
	}
	// Both lines come from stdout, so their order is preserved.
	require.Equal(t, []string{"one", "two"}, lines)
}

func TestOSRunner_CapturesStderr(t *testing.T) {
	r := NewOSRunner()

	events := collect(t, r.Start(context.Background(), []string{"sh", "-c", "echo oops >&2; exit 3"}))

	var lines []string
	for _, ev := range events {
		if ev.Kind == EventLine {
			lines = append(lines, ev.Line)
		}
	}
	require.Equal(t, []string{"oops"}, lines)

	last := events[len(events)-1]
	require.Equal(t, EventExit, last.Kind)
	require.Equal(t, 3, last.ExitCode)
}

func TestOSRunner_SpawnFailure(t *testing.T) {
	r := NewOSRunner()

	events := collect(t, r.Start(context.Background(), []string{"definitely-not-a-real-binary-42"}))

	require.Len(t, events, 2)
	require.Equal(t, EventCommand, events[0].Kind)
	require.Equal(t, EventSpawnError, events[1].Kind)
	require.Contains(t, events[1].Line, "definitely-not-a-real-binary-42")
}

func TestOSRunner_Probe(t *testing.T) {
	r := NewOSRunner()
	ctx := context.Background()

	require.NoError(t, r.Probe(ctx, []string{"true"}))
	require.Error(t, r.Probe(ctx, []string{"false"}))
	require.Error(t, r.Probe(ctx, []string{"definitely-not-a-real-binary-42"}))
	require.Error(t, r.Probe(ctx, nil))
}

func TestMockRunner_RecordsCallsAndServesScripts(t *testing.T) {
	m := NewMockRunner()
	ctx := context.Background()

	m.SetScript([]string{"python", "create_project.py", "demo"}, MockScript{
		Lines:    []string{"creating demo"},
		ExitCode: 0,
	})

	events := collect(t, m.Start(ctx, []string{"python", "create_project.py", "demo"}))
	require.Equal(t, EventCommand, events[0].Kind)
	require.Equal(t, EventLine, events[1].Kind)
	require.Equal(t, "creating demo", events[1].Line)
	require.Equal(t, EventExit, events[2].Kind)

	// Unscripted command lines behave like a missing executable.
	events = collect(t, m.Start(ctx, []string{"nope"}))
	require.Len(t, events, 2)
	require.Equal(t, EventSpawnError, events[1].Kind)

	require.Len(t, m.StartCalls(), 2)
}
