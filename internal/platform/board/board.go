package board

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/twinpass/internal/scanout"
	"github.com/vovakirdan/twinpass/internal/systick"
)

// Config describes the emulated board.
type Config struct {
	RefreshHz  int           // headless refresh rate; 0 disables refreshes
	ScrollStep int           // virtual scroll advance per frame
	Porch      int           // blank raster lines before the first visible line
	TickPeriod time.Duration // SysTick period
}

// DefaultConfig returns a 60 Hz panel with a 1 kHz SysTick.
func DefaultConfig() Config {
	return Config{
		RefreshHz:  60,
		ScrollStep: scanout.DefaultScrollStep,
		Porch:      scanout.DefaultPorch,
		TickPeriod: SysTickPeriod,
	}
}

// Board is the set of emulated peripherals with their interrupt handlers
// wired the way the firmware registers them.
type Board struct {
	Raster     *Raster
	Timer      *Timer
	LEDs       *LEDs
	Clock      *systick.Clock
	Sync       *scanout.Sync
	Throughput *systick.Throughput

	cfg    Config
	logger *log.Logger
}

// New creates a board. Throughput samples are logged at info level.
func New(cfg Config, logger *log.Logger) *Board {
	b := &Board{
		Raster: NewRaster(cfg.Porch),
		Timer:  NewTimer(cfg.TickPeriod),
		LEDs:   NewLEDs(logger),
		Clock:  systick.NewClock(),
		cfg:    cfg,
		logger: logger,
	}
	b.Sync = scanout.New(b.Raster, scanout.WithScrollStep(cfg.ScrollStep), scanout.WithPorch(cfg.Porch))
	b.Throughput = systick.NewThroughput(func(sample uint32) {
		logger.Info("throughput", "ticks_per_sec", sample, "frames", b.Sync.Frames())
	})

	b.Raster.HandleFrame(b.Sync.OnFrame)
	b.Raster.HandleLine(b.Sync.OnLine)
	b.Timer.Handle(b.Clock.OnTick)
	b.Clock.Subscribe(b.Throughput.OnSysTick)

	return b
}

// RunTimer drives SysTick until ctx is done. Frontends that scan the
// panel themselves only need this.
func (b *Board) RunTimer(ctx context.Context) error {
	return ignoreCancel(b.Timer.Run(ctx))
}

// Run drives SysTick and, when a refresh rate is configured, headless panel
// refreshes until ctx is done. Headless refreshes raise the controller's
// events without fetching pixels.
func (b *Board) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	errs := make([]error, 2)

	wg.Add(1)
	go func() {
		defer wg.Done()
		errs[0] = b.RunTimer(ctx)
	}()

	if b.cfg.RefreshHz > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[1] = b.runRefresh(ctx)
		}()
	}

	wg.Wait()
	return errors.Join(errs...)
}

func (b *Board) runRefresh(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(b.cfg.RefreshHz))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ignoreCancel(ctx.Err())
		case <-ticker.C:
			b.Raster.Refresh()
		}
	}
}

// FailStop logs cause and blinks the LEDs until ctx is done. SysTick must
// be running. It returns cause.
func (b *Board) FailStop(ctx context.Context, cause error) error {
	b.logger.Error("fail-stop", "error", cause)
	//nolint:errcheck // Only returns once ctx is done
	systick.FailStop(ctx, b.Clock, b.LEDs)
	return cause
}

func ignoreCancel(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
