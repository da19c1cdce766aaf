// Package registry provides a global registry for frontend factories.
// Frontends register themselves in init() functions, allowing the command
// line to discover and start them without hardcoded dependencies.
package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/twinpass/internal/core"
	"github.com/vovakirdan/twinpass/internal/diag"
	"github.com/vovakirdan/twinpass/internal/platform/board"
)

// Frontend drives a simulation engine and presents it somewhere: a
// terminal, a window, or nowhere at all.
type Frontend interface {
	// ID returns a unique identifier for this frontend (e.g., "tui").
	// Used for CLI commands and benchmark records.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Run drives the simulation until ctx is done or the user quits.
	// A fatal simulation fault is returned as an error after the
	// frontend has signalled it.
	Run(ctx context.Context, env Env) (Result, error)
}

// Env is everything a frontend needs from the command line.
type Env struct {
	Runtime     core.RuntimeConfig
	Board       board.Config
	Logger      *log.Logger
	Stats       *diag.Publisher // optional
	Duration    time.Duration   // 0 runs until ctx is done or the user quits
	ReportEvery time.Duration   // progress logging period for unattended runs
}

// Result summarises a finished session.
type Result struct {
	Frontend string
	Seed     int64
	Ticks    uint64
	Rounds   int
	MaxScore int
	Elapsed  time.Duration
}

// TicksPerSec returns the mean simulation throughput of the session.
func (r Result) TicksPerSec() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Ticks) / r.Elapsed.Seconds()
}

// Info contains metadata about a registered frontend.
type Info struct {
	ID    string
	Title string
}

// Factory is a function that creates a new instance of a frontend.
type Factory func() Frontend

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a frontend factory to the registry.
// Typically called from a frontend's init() function.
// Panics if a frontend with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: frontend %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title()
}

// List returns information about all registered frontends, sorted by ID.
func List() []Info {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Info, 0, len(factories))
	for id := range factories {
		result = append(result, Info{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new frontend by its ID.
// Returns an error if the ID is not registered.
func Create(id string) (Frontend, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown frontend %q", id)
	}

	return f(), nil
}

// Exists checks if a frontend with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
