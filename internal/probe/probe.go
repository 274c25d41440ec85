package probe

import (
	"context"
	"sync"

	"github.com/vladcraftcom/ai-project-template/internal/runner"
)

// Capability identifies one external tool requirement of the
// scaffolding script.
type Capability string

const (
	CapInterpreter      Capability = "interpreter"
	CapPackageInstaller Capability = "package_installer"
	CapVenvTool         Capability = "venv_tool"
)

// Capabilities lists all probed capabilities in display order.
var Capabilities = []Capability{CapInterpreter, CapPackageInstaller, CapVenvTool}

// StatusKind is the tri-state outcome of probing one capability.
type StatusKind int

const (
	StatusChecking StatusKind = iota
	StatusAvailable
	StatusUnavailable
)

// Status describes the current probe state of one capability. Tool is
// set on Available to the executable of the candidate that succeeded.
// Reason is set on Unavailable to a remediation hint.
type Status struct {
	Kind   StatusKind
	Tool   string
	Reason string
}

// Chain is the ordered list of candidate commands that detect one
// capability. Candidates are tried left to right and evaluation stops at
// the first one that launches and exits 0.
type Chain struct {
	Capability Capability
	Candidates [][]string
	// Hint is the remediation message reported when every candidate
	// fails.
	Hint string
}

// Result delivers the resolved status of one capability. Generation ties
// the result to the probe round that produced it so that a re-probe can
// supersede an older round still in flight.
type Result struct {
	Capability Capability
	Status     Status
	Generation uint64
}

// Prober evaluates capability chains against a Runner.
type Prober struct {
	runner runner.Runner
}

// NewProber creates a new Prober
func NewProber(r runner.Runner) *Prober {
	return &Prober{runner: r}
}

// ProbeOne evaluates a single chain sequentially and returns the
// terminal status. Candidate failures, including executables missing
// from the search path, are ordinary control flow.
func (p *Prober) ProbeOne(ctx context.Context, chain Chain) Status {
	for _, candidate := range chain.Candidates {
		if err := p.runner.Probe(ctx, candidate); err == nil {
			return Status{Kind: StatusAvailable, Tool: candidate[0]}
		}
	}
	return Status{Kind: StatusUnavailable, Reason: chain.Hint}
}

// ProbeAll evaluates every chain concurrently, one goroutine per
// capability, and streams results as they resolve. The returned channel
// is closed once all chains have reported. Within one chain candidates
// stay strictly sequential; no ordering exists between capabilities.
func (p *Prober) ProbeAll(ctx context.Context, chains []Chain, generation uint64) <-chan Result {
	results := make(chan Result, len(chains))

	var wg sync.WaitGroup
	for _, chain := range chains {
		wg.Add(1)
		go func(c Chain) {
			defer wg.Done()
			results <- Result{
				Capability: c.Capability,
				Status:     p.ProbeOne(ctx, c),
				Generation: generation,
			}
		}(chain)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}
