package dashboard

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vladcraftcom/ai-project-template/internal/orchestrator"
	"github.com/vladcraftcom/ai-project-template/internal/probe"
	"github.com/vladcraftcom/ai-project-template/internal/runner"
	"github.com/vladcraftcom/ai-project-template/internal/tui"
)

// focusZone selects which part of the form receives key input.
type focusZone int

const (
	focusName focusZone = iota
	focusFlags
)

// flagCount is the number of toggles on the form.
const flagCount = 4

type probeResultMsg struct{ result probe.Result }
type probeDoneMsg struct{}
type runEventMsg struct{ event runner.Event }
type runDoneMsg struct{}

// Model is the bubbletea model for the create dashboard. All state
// mutations run through the orchestrator from this single Update loop;
// background probing and the child process report back as messages.
type Model struct {
	state *orchestrator.State
	ctx   context.Context

	nameInput textinput.Model
	logView   viewport.Model
	spin      spinner.Model

	focus      focusZone
	flagCursor int

	probeCh <-chan probe.Result
	runCh   <-chan runner.Event

	width  int
	height int
	ready  bool
}

// NewModel creates the dashboard model and starts the initial
// capability probe.
func NewModel(ctx context.Context, state *orchestrator.State) Model {
	nameInput := textinput.New()
	nameInput.Placeholder = "project name"
	nameInput.CharLimit = 64
	nameInput.Focus()

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = tui.CheckingStyle

	logView := viewport.New(78, 10)

	return Model{
		state:     state,
		ctx:       ctx,
		nameInput: nameInput,
		logView:   logView,
		spin:      spin,
		probeCh:   state.BeginProbe(ctx),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spin.Tick, waitForProbe(m.probeCh))
}

// waitForProbe delivers the next probe result as a message.
func waitForProbe(ch <-chan probe.Result) tea.Cmd {
	return func() tea.Msg {
		result, ok := <-ch
		if !ok {
			return probeDoneMsg{}
		}
		return probeResultMsg{result: result}
	}
}

// waitForRun delivers the next run event as a message.
func waitForRun(ch <-chan runner.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return runDoneMsg{}
		}
		return runEventMsg{event: event}
	}
}

// Update handles messages and state transitions
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.updateKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logView.Width = msg.Width - 4
		m.logView.Height = max(5, msg.Height-18)
		m.ready = true
		m.refreshLog()
		return m, nil

	case spinner.TickMsg:
		if !m.anyChecking() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case probeResultMsg:
		m.state.ApplyProbe(msg.result)
		return m, waitForProbe(m.probeCh)

	case probeDoneMsg:
		return m, nil

	case runEventMsg:
		m.state.ApplyEvent(msg.event)
		m.refreshLog()
		return m, waitForRun(m.runCh)

	case runDoneMsg:
		m.state.FinishRun()
		m.runCh = nil
		return m, nil
	}

	return m.updateFocused(msg)
}

func (m Model) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "ctrl+r":
		m.probeCh = m.state.BeginProbe(m.ctx)
		return m, tea.Batch(m.spin.Tick, waitForProbe(m.probeCh))

	case "tab", "shift+tab":
		if m.focus == focusName {
			m.focus = focusFlags
			m.nameInput.Blur()
		} else {
			m.focus = focusName
			m.nameInput.Focus()
		}
		return m, textinput.Blink
	}

	if m.focus == focusFlags {
		switch msg.String() {
		case "up", "k":
			if m.flagCursor > 0 {
				m.flagCursor--
			}
			return m, nil
		case "down", "j":
			if m.flagCursor < flagCount-1 {
				m.flagCursor++
			}
			return m, nil
		case " ":
			m.toggleFlag(m.flagCursor)
			return m, nil
		case "enter":
			return m.startRun()
		}
		return m, nil
	}

	if msg.String() == "enter" {
		return m.startRun()
	}

	return m.updateFocused(msg)
}

// updateFocused forwards a message to the focused text input and syncs
// the orchestrator's name.
func (m Model) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	if m.nameInput.Value() != m.state.Request().Name {
		m.state.SetName(m.nameInput.Value())
	}
	return m, cmd
}

// startRun opens a run if the gate allows it. The orchestrator guards
// itself, so a denied request is simply a no-op.
func (m Model) startRun() (tea.Model, tea.Cmd) {
	events, err := m.state.StartRun(m.ctx)
	if err != nil {
		return m, nil
	}
	m.runCh = events
	m.refreshLog()
	return m, waitForRun(m.runCh)
}

func (m *Model) toggleFlag(index int) {
	req := m.state.Request()
	switch index {
	case 0:
		m.state.SetCreateVenv(!req.CreateVenv)
	case 1:
		m.state.SetInstallPackages(!req.InstallPackages)
	case 2:
		m.state.SetRefreshTemplates(!req.RefreshTemplates)
	case 3:
		m.state.SetForce(!req.Force)
	}
}

func (m *Model) refreshLog() {
	m.logView.SetContent(renderLog(m.state.Log()))
	m.logView.GotoBottom()
}

func (m Model) anyChecking() bool {
	for _, capability := range probe.Capabilities {
		if m.state.Capability(capability).Kind == probe.StatusChecking {
			return true
		}
	}
	return false
}
