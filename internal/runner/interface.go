package runner

import (
	"context"
)

// EventKind discriminates the events a run emits.
type EventKind int

const (
	// EventCommand echoes the full command line before launch.
	EventCommand EventKind = iota
	// EventLine is one completed line of child output, from either stream.
	EventLine
	// EventSpawnError reports that the child could not be started at all.
	EventSpawnError
	// EventExit is the terminal event of a run that was started, carrying
	// the child's exit code.
	EventExit
)

// ExitCodeUnknown is reported when the child did not exit normally, for
// example when it was terminated by a signal.
const ExitCodeUnknown = -1

// Event is one item in the stream a run produces. The stream for a run
// always starts with an EventCommand and ends with either an EventExit
// (the child was started and has exited, both output streams fully
// drained) or an EventSpawnError (the child never started). Closing the
// event channel marks the run as complete.
//
// Lines from stdout and stderr are interleaved in arrival order only;
// no ordering is guaranteed between the two streams.
type Event struct {
	Kind     EventKind
	Line     string
	ExitCode int
}

// Runner abstracts external process execution for testability
type Runner interface {
	// Probe launches a command, discards its output and waits for it to
	// exit. It returns nil only when the command both started and exited
	// with code 0. A missing executable is an ordinary error, not a
	// fault.
	Probe(ctx context.Context, argv []string) error

	// Start launches a command and returns its event stream. The stream
	// is produced by a background goroutine and is closed once the run
	// is complete on every path, including spawn failure.
	Start(ctx context.Context, argv []string) <-chan Event
}
