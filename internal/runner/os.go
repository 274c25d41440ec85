package runner

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
)

// OSRunner implements Runner using real child processes
type OSRunner struct{}

// NewOSRunner creates a new OSRunner
func NewOSRunner() *OSRunner {
	return &OSRunner{}
}

func (r *OSRunner) Probe(ctx context.Context, argv []string) error {
	if len(argv) == 0 {
		return errors.New("empty command")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	// Output of probe candidates is never surfaced to the user.
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s: %w", argv[0], err)
	}
	return nil
}

func (r *OSRunner) Start(ctx context.Context, argv []string) <-chan Event {
	events := make(chan Event, 64)
	go r.run(ctx, argv, events)
	return events
}

// run drives one child process to completion. Both output streams are
// drained concurrently into the events channel, which acts as the single
// ordering point for the two readers.
func (r *OSRunner) run(ctx context.Context, argv []string, events chan<- Event) {
	defer close(events)

	events <- Event{Kind: EventCommand, Line: "$ " + strings.Join(argv, " ")}

	if len(argv) == 0 {
		events <- Event{Kind: EventSpawnError, Line: "failed to start: empty command"}
		return
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		events <- Event{Kind: EventSpawnError, Line: fmt.Sprintf("failed to start %s: %v", argv[0], err)}
		return
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		events <- Event{Kind: EventSpawnError, Line: fmt.Sprintf("failed to start %s: %v", argv[0], err)}
		return
	}

	if err := cmd.Start(); err != nil {
		events <- Event{Kind: EventSpawnError, Line: fmt.Sprintf("failed to start %s: %v", argv[0], err)}
		return
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go drainLines(stdout, events, &wg)
	go drainLines(stderr, events, &wg)

	// Wait must not run before both pipes hit EOF.
	wg.Wait()

	code := 0
	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			// ExitCode returns -1 when the child was killed by a signal.
			code = exitErr.ExitCode()
		} else {
			code = ExitCodeUnknown
		}
	}

	events <- Event{Kind: EventExit, ExitCode: code}
}

// drainLines forwards completed lines from one stream, preserving the
// order within that stream.
func drainLines(stream io.Reader, events chan<- Event, wg *sync.WaitGroup) {
	defer wg.Done()

	scanner := bufio.NewScanner(stream)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		events <- Event{Kind: EventLine, Line: scanner.Text()}
	}
}
