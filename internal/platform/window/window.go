//go:build ebiten

package window

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/twinpass/internal/core"
	"github.com/vovakirdan/twinpass/internal/platform/board"
	"github.com/vovakirdan/twinpass/internal/platform/machine"
	"github.com/vovakirdan/twinpass/internal/registry"
	"github.com/vovakirdan/twinpass/internal/sim"
)

// Available reports whether the window frontend is compiled in.
func Available() bool {
	return true
}

var keys = [8]ebiten.Key{
	core.P1Left:  ebiten.KeyA,
	core.P1Up:    ebiten.KeyW,
	core.P1Right: ebiten.KeyD,
	core.P1Down:  ebiten.KeyS,
	core.P2Left:  ebiten.KeyArrowLeft,
	core.P2Up:    ebiten.KeyArrowUp,
	core.P2Right: ebiten.KeyArrowRight,
	core.P2Down:  ebiten.KeyArrowDown,
}

// game implements ebiten.Game. Ebiten calls Update and Draw from one
// goroutine, which is the one stepping the machine.
type game struct {
	ctx       context.Context
	machine   *machine.Machine
	input     heldInput
	autopilot *sim.Autopilot
	autoOn    bool
	steps     int
	faults    chan<- error
	fault     error

	frame  []core.RGB565
	pixels []byte
	image  *ebiten.Image
}

func (g *game) setAutopilot(on bool) {
	g.autoOn = on
	if on {
		g.machine.Engine.SetInput(g.autopilot)
	} else {
		g.machine.Engine.SetInput(&g.input)
	}
}

// Update runs one frame's worth of simulation ticks.
func (g *game) Update() error {
	if g.ctx.Err() != nil || inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if g.fault != nil {
		return nil
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.setAutopilot(!g.autoOn)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.machine.Engine.Restart()
	}
	g.input.set(func(b core.Button) bool { return ebiten.IsKeyPressed(keys[b]) })

	if err := g.machine.Step(g.steps); err != nil {
		g.fault = err
		g.machine.Logger().Error("simulation fault", "error", err)
		g.faults <- err
	}
	g.machine.Publish()
	return nil
}

// Draw scans the panel and shows it with a one-line status overlay.
func (g *game) Draw(screen *ebiten.Image) {
	if g.image == nil {
		g.image = ebiten.NewImage(board.PanelWidth, board.PanelHeight)
	}
	g.machine.Scan(g.frame)
	ToRGBA(g.frame, g.pixels)
	g.image.WritePixels(g.pixels)
	screen.DrawImage(g.image, nil)

	if g.fault != nil {
		led := "off"
		if g.machine.Board.LEDs.On() {
			led = "ON"
		}
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("FAIL-STOP [%s] %v", led, g.fault), 4, board.PanelHeight-16)
		return
	}
	mode := "keyboard"
	if g.autoOn {
		mode = "autopilot"
	}
	ebitenutil.DebugPrintAt(screen, mode+"  tab: toggle  r: restart", 4, board.PanelHeight-16)
}

// Layout keeps the panel's native resolution; ebiten scales it to the window.
func (g *game) Layout(_, _ int) (int, int) {
	return board.PanelWidth, board.PanelHeight
}

// Frontend is the desktop window frontend.
type Frontend struct{}

func init() {
	registry.Register(ID, func() registry.Frontend { return Frontend{} })
}

// ID implements registry.Frontend.
func (Frontend) ID() string { return ID }

// Title implements registry.Frontend.
func (Frontend) Title() string { return "Desktop window" }

// Run implements registry.Frontend. It must be called from the main
// goroutine and blocks until the window is closed or ctx is done.
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
		select {
		case err := <-faults:
			//nolint:errcheck // Returns err once ctx is done
			m.FailStop(ctx, err)
		case <-ctx.Done():
		}
	}()
	defer func() {
		cancel()
		wg.Wait()
	}()

	g := &game{
		ctx:       ctx,
		machine:   m,
		input:     heldInput{mask: core.ButtonsReleased},
		autopilot: sim.NewAutopilot(),
		steps:     max(env.Runtime.StepsPerFrame, 1),
		faults:    faults,
		frame:     make([]core.RGB565, board.PanelPixels),
		pixels:    make([]byte, board.PanelPixels*4),
	}
	g.setAutopilot(env.Runtime.Autopilot)

	ebiten.SetWindowSize(board.PanelWidth*DefaultScale, board.PanelHeight*DefaultScale)
	ebiten.SetWindowTitle("twinpass")
	ebiten.SetWindowResizable(true)
	if env.Runtime.TickRate > 0 {
		ebiten.SetTPS(env.Runtime.TickRate)
	}

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return m.Result(), fmt.Errorf("window: %w", err)
	}
	return m.Result(), g.fault
}
