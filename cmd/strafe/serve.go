package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/strafe/internal/arena"
	"github.com/vovakirdan/strafe/internal/config"
	"github.com/vovakirdan/strafe/internal/platform/tui"
	"github.com/vovakirdan/strafe/internal/telemetry"
)

var (
	flagSSHAddr      string
	flagHostKey      string
	flagIdleTimeout  int
	flagServeMetrics string
	flagServeScript  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the arena SSH server",
	Long: `Start an SSH server that gives every connection its own arena.

Runs are recorded in the server's ledger when a session quits.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.strafe/host_key

Examples:
  strafe serve                           # Listen on :23234 with auto-generated key
  strafe serve --ssh :2222               # Listen on port 2222
  strafe serve --metrics :9100           # Also expose Prometheus metrics
  strafe serve --db ./runs.db            # Use specific database

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
	serveCmd.Flags().StringVar(&flagServeMetrics, "metrics", "", "Expose Prometheus metrics on this address")
	serveCmd.Flags().StringVar(&flagServeScript, "script", "", "Input script for the non-player actors (default: built-in demo)")
}

func runServe(_ *cobra.Command, _ []string) {
	logger, err := newLogger()
	if err != nil {
		fail("%v", err)
	}

	cfg, _, err := loadArena()
	if err != nil {
		fail("%v", err)
	}
	script, err := config.LoadScript(flagServeScript)
	if err != nil {
		fail("%v", err)
	}

	reg := prometheus.NewRegistry()
	metrics := telemetry.New(reg)

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Arena:       cfg,
		Script:      &script,
		Observers:   []arena.Observer{metrics},
	}, logger.WithPrefix("strafe-ssh"))
	if err != nil {
		fail("creating server: %v", err)
	}

	fmt.Printf("Starting strafe SSH server on %s\n", server.Addr())
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.ListenAndServe(gctx)
	})
	if flagServeMetrics != "" {
		g.Go(func() error {
			return telemetry.Serve(gctx, flagServeMetrics, reg, logger)
		})
	}

	if err := g.Wait(); err != nil {
		fail("server: %v", err)
	}
}
