package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/twinpass/internal/core"
	"github.com/vovakirdan/twinpass/internal/platform/board"
	"github.com/vovakirdan/twinpass/internal/platform/machine"
	"github.com/vovakirdan/twinpass/internal/registry"
	"github.com/vovakirdan/twinpass/internal/sim"
)

// ID is the registry identifier of the terminal frontend.
const ID = "tui"

// chromeRows is the number of terminal rows below the panel image:
// the status line and the help line.
const chromeRows = 2

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	modeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true)
	faultStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("1")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Options configure a Model.
type Options struct {
	// Spectator locks the model to the autopilot; only pause, restart and
	// quit are accepted.
	Spectator bool

	// HoldTicks is the keyboard hold window, DefaultHoldTicks when zero.
	HoldTicks int

	// Renderer styles the output. Nil uses the local terminal.
	Renderer *lipgloss.Renderer

	// Faults receives the first invariant violation so the owner can
	// fail-stop the board. It must be buffered; sends never block.
	Faults chan<- error
}

// Model is the Bubble Tea model for one running machine.
type Model struct {
	machine   *machine.Machine
	keyboard  *Keyboard
	autopilot *sim.Autopilot
	painter   *Painter
	screen    *core.Screen
	frame     []core.RGB565
	keys      KeyMap
	help      help.Model
	config    core.RuntimeConfig
	opts      Options
	autoOn    bool
	paused    bool
	fault     error
	quitting  bool
}

// NewModel creates a model driving m. The machine's engine must already be
// built with either the returned keyboard or an autopilot as input; the
// model takes over input selection from here on.
func NewModel(m *machine.Machine, cfg core.RuntimeConfig, opts Options) Model {
	model := Model{
		machine:   m,
		keyboard:  NewKeyboard(opts.HoldTicks),
		autopilot: sim.NewAutopilot(),
		painter:   NewPainter(opts.Renderer),
		screen:    core.NewScreen(cfg.ScreenW, max(cfg.ScreenH-chromeRows, 1)),
		frame:     make([]core.RGB565, board.PanelPixels),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		config:    cfg,
		opts:      opts,
	}
	model.help.Width = cfg.ScreenW
	model.setAutopilot(cfg.Autopilot || opts.Spectator)
	return model
}

func (m *Model) setAutopilot(on bool) {
	m.autoOn = on
	if on {
		m.machine.Engine.SetInput(m.autopilot)
		return
	}
	m.keyboard.ReleaseAll()
	m.machine.Engine.SetInput(m.keyboard)
}

// Init starts the frame loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case m.fault != nil:
		return m, nil
	case key.Matches(msg, m.keys.Pause):
		m.paused = !m.paused
		return m, nil
	case key.Matches(msg, m.keys.Restart):
		m.machine.Engine.Restart()
		return m, nil
	case m.opts.Spectator:
		return m, nil
	case key.Matches(msg, m.keys.Autopilot):
		m.setAutopilot(!m.autoOn)
		return m, nil
	}

	if b, ok := m.keys.Button(msg); ok && !m.autoOn {
		m.keyboard.Press(b)
	}
	return m, nil
}

// handleResize processes window resize events. The simulation is
// resolution independent, only the presentation changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-chromeRows, 1))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick runs one frame's worth of simulation ticks and scans the panel.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.fault == nil && !m.paused {
		if err := m.machine.Step(m.config.StepsPerFrame); err != nil {
			m.fault = err
			m.machine.Logger().Error("simulation fault", "error", err)
			if m.opts.Faults != nil {
				select {
				case m.opts.Faults <- err:
				default:
				}
			}
		}
		m.machine.Publish()
	}
	m.machine.Scan(m.frame)

	return m, tickCmd(m.config.TickRate)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	w, h := FitPanel(m.screen.Width(), m.screen.PixelHeight())
	Downsample(m.frame, m.screen, w, h)
	if m.fault != nil {
		m.screen.DrawTextCentered(m.screen.Height()/2, " FAULT "+m.fault.Error()+" ")
	}

	var sb strings.Builder
	sb.WriteString(m.painter.Render(m.screen))
	sb.WriteRune('\n')
	sb.WriteString(m.statusLine())
	sb.WriteRune('\n')
	sb.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return sb.String()
}

func (m Model) statusLine() string {
	s := m.machine.Engine.Snapshot()
	mode := "keyboard"
	switch {
	case m.fault != nil:
		led := "○"
		if m.machine.Board.LEDs.On() {
			led = "●"
		}
		return faultStyle.Render(fmt.Sprintf(" %s fail-stop ", led)) + " " +
			statusStyle.Render(fmt.Sprintf("ticks %d  rounds %d", s.Ticks, s.Rounds))
	case m.opts.Spectator:
		mode = "spectating"
	case m.autoOn:
		mode = "autopilot"
	}
	if m.paused {
		mode += " (paused)"
	}

	stats := fmt.Sprintf("score %03d  max %03d  %d ticks/s  round %d  seed %d",
		s.Score, s.MaxScore, m.machine.Board.Throughput.Last(), s.Rounds, m.machine.Seed())
	return modeStyle.Render(mode) + "  " + statusStyle.Render(stats)
}

// Fault returns the invariant violation that stopped the simulation, if any.
func (m Model) Fault() error {
	return m.fault
}

// IsQuitting returns true if user requested to quit.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// Frontend is the interactive terminal frontend.
type Frontend struct{}

func init() {
	registry.Register(ID, func() registry.Frontend { return Frontend{} })
}

// ID implements registry.Frontend.
func (Frontend) ID() string { return ID }

// Title implements registry.Frontend.
func (Frontend) Title() string { return "Terminal (keyboard or autopilot)" }

// Run implements registry.Frontend. It blocks until the user quits. A
// fault keeps the board in fail-stop, shown in the status line, until then.
func (Frontend) Run(ctx context.Context, env registry.Env) (registry.Result, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m, err := machine.New(ID, env, sim.NewAutopilot())
	if err != nil {
		go m.Board.RunTimer(ctx) //nolint:errcheck // Only returns once ctx is done
		return registry.Result{Frontend: ID, Seed: m.Seed()}, m.FailStop(ctx, err)
	}

	faults := make(chan error, 1)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		//nolint:errcheck // Only returns once ctx is done
		m.Board.RunTimer(ctx)
	}()
	go func() {
		defer wg.Done()
		watchFaults(ctx, m, faults)
	}()
	defer func() {
		cancel()
		wg.Wait()
	}()

	model := NewModel(m, env.Runtime, Options{Faults: faults})
	p := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return m.Result(), fmt.Errorf("tui: %w", err)
	}
	res := m.Result()
	if fm, ok := final.(Model); ok && fm.Fault() != nil {
		return res, fm.Fault()
	}
	return res, nil
}

// watchFaults fail-stops the machine's board on the first reported fault
// and keeps it there until ctx is done.
func watchFaults(ctx context.Context, m *machine.Machine, faults <-chan error) {
	select {
	case err := <-faults:
		//nolint:errcheck // Returns err once ctx is done
		m.FailStop(ctx, err)
	case <-ctx.Done():
	}
}
