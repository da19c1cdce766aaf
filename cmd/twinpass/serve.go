package main

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/twinpass/internal/diag"
	"github.com/vovakirdan/twinpass/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHTTPAddr    string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH spectator server",
	Long: `Start an SSH server where every connection watches its own autopilot
run. Sessions share nothing; each one has its own board, engine and seed.

Diagnostics for the most recently active session are served over HTTP on
--http (empty disables them).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.twinpass/host_key

Examples:
  twinpass serve                      # SSH and HTTP on the configured addresses
  twinpass serve --ssh :2222 --http ""
  twinpass serve --host-key ./host_key

Users can connect with:
  ssh localhost -p 23235`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "Diagnostics address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting (default from config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	sc := cfg.Serve
	if flags.Changed("ssh") {
		sc.SSHAddr = flagSSHAddr
	}
	if flags.Changed("http") {
		sc.HTTPAddr = flagHTTPAddr
	}
	if flags.Changed("host-key") {
		sc.HostKeyPath = flagHostKey
	}
	if flags.Changed("idle-timeout") {
		sc.IdleTimeout = flagIdleTimeout
	}

	stats := diag.NewPublisher()
	sshCfg := tui.SSHServerConfig{
		Address:     sc.SSHAddr,
		HostKeyPath: sc.HostKeyPath,
		IdleTimeout: sc.IdleTimeout,
		Runtime:     runtimeConfig(),
		Board:       boardConfig(),
		Stats:       stats,
	}

	server, err := tui.NewSSHServer(sshCfg, logger)
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()

	var wg sync.WaitGroup
	errs := make([]error, 2)

	if sc.HTTPAddr != "" {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[1] = diag.NewServer(sc.HTTPAddr, stats, logger.WithPrefix("diag")).Run(ctx)
			if errs[1] != nil {
				cancel()
			}
		}()
	}

	errs[0] = server.ListenAndServe(ctx)
	if errs[0] != nil {
		cancel()
	}
	wg.Wait()

	return ignoreCanceled(errors.Join(errs...))
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
