package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/twinpass/internal/core"
	"github.com/vovakirdan/twinpass/internal/diag"
	"github.com/vovakirdan/twinpass/internal/platform/board"
	"github.com/vovakirdan/twinpass/internal/platform/machine"
	"github.com/vovakirdan/twinpass/internal/registry"
	"github.com/vovakirdan/twinpass/internal/sim"
)

// SpectatorID is the frontend name SSH sessions log and report under.
const SpectatorID = "ssh"

// SSHServerConfig holds configuration for the SSH spectator server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.twinpass/host_key.
	HostKeyPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Runtime and Board configure every session's machine. Screen size
	// comes from the session's PTY and autopilot is always on.
	Runtime core.RuntimeConfig
	Board   board.Config

	// Stats, when set, receives the counters of whichever session
	// ticked last.
	Stats *diag.Publisher
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23235",
		IdleTimeout: 30 * time.Minute,
		Runtime:     core.DefaultConfig(),
		Board:       board.DefaultConfig(),
	}
}

// SSHServer serves one independent autopilot machine per SSH session.
// Sessions share nothing but the logger.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.Default()
	}
	srv := &SSHServer{
		config: cfg,
		logger: logger.WithPrefix(SpectatorID),
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("tui: cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".twinpass", "host_key")
	}

	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", err)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// sessionEnv builds the machine environment for a session of the given
// terminal size.
func (s *SSHServer) sessionEnv(width, height int) registry.Env {
	rt := s.config.Runtime
	rt.ScreenW = width
	rt.ScreenH = height
	rt.Autopilot = true
	return registry.Env{
		Runtime: rt,
		Board:   s.config.Board,
		Logger:  s.logger,
		Stats:   s.config.Stats,
	}
}

// teaHandler creates a machine and a spectator model for each SSH session.
// The machine's timer and fail-stop watcher live as long as the session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	ctx := sshSession.Context()
	env := s.sessionEnv(pty.Window.Width, pty.Window.Height)
	m, err := machine.New(SpectatorID, env, sim.NewAutopilot())
	if err != nil {
		s.logger.Error("session machine failed", "user", sshSession.User(), "error", err)
		return nil, nil
	}

	faults := make(chan error, 1)
	go m.Board.RunTimer(ctx) //nolint:errcheck // Only returns once the session ends
	go watchFaults(ctx, m, faults)

	model := NewModel(m, env.Runtime, Options{
		Spectator: true,
		Renderer:  bubbletea.MakeRenderer(sshSession),
		Faults:    faults,
	})

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe serves until ctx is done, then shuts down gracefully.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
		close(errc)
	}()

	select {
	case err := <-errc:
		if err != nil {
			return fmt.Errorf("tui: ssh server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
