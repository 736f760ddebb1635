package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/c360studio/semreg/config"
	"github.com/c360studio/semreg/instance"
	"github.com/c360studio/semreg/introspect"
	"github.com/c360studio/semreg/metrics"
	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
)

// NewServeCmd creates the serve command.
func NewServeCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the registry as a long-lived service",
		Long: `Serve applies the configured gate policy to the default module, publishes
lifecycle events over NATS, answers snapshot requests, serves Prometheus
metrics, and hot-reloads configuration on file changes.

When lock_on_start is set, the gate locks once startup completes; from that
point on, mutating a registry is a violation until the gate reopens.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, version)
		},
	}
}

func runServe(cmd *cobra.Command, version string) error {
	printBanner(cmd.OutOrStdout(), version)

	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// The --log-level flag wins over the config file when set explicitly.
	logOverride := cmd.Flags().Changed("log-level")
	if !logOverride {
		slog.SetDefault(slog.New(cfg.Log.Handler(os.Stderr)))
	}
	logger := slog.Default()

	m := instance.Default()
	if err := cfg.Gate.Apply(m); err != nil {
		return fmt.Errorf("apply gate config: %w", err)
	}

	signalCtx, signalCancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer signalCancel()

	var nc *nats.Conn
	if cfg.Introspect.Enabled {
		nc, err = connectNATS(cfg.Introspect.URL, logger)
		if err != nil {
			return err
		}
		defer func() {
			if err := nc.Drain(); err != nil {
				logger.Warn("NATS drain failed", "error", err)
			}
		}()
	}

	// Lifecycle observers: Prometheus counters plus NATS event publishing.
	// The publisher no-ops when introspection is disabled.
	collector := metrics.NewCollector()
	publisher := introspect.NewPublisher(nc, cfg.Introspect.SubjectPrefix, logger)
	m.SetObserver(instance.MultiObserver(collector, publisher))

	svc := introspect.NewService(nc, m, cfg.Introspect.SubjectPrefix, logger)
	if err := svc.Start(signalCtx); err != nil {
		return fmt.Errorf("start introspection service: %w", err)
	}
	defer svc.Stop()

	if cfg.Metrics.Enabled {
		msrv := metrics.NewServer(cfg.Metrics.Addr, logger)
		if err := msrv.Start(signalCtx); err != nil {
			return fmt.Errorf("start metrics server: %w", err)
		}
		defer msrv.Stop(context.Background())
	}

	stopWatch := watchConfig(signalCtx, cmd, m, logOverride, logger)
	defer stopWatch()

	if cfg.Gate.LockOnStart {
		m.Lock()
		logger.Info("Gate locked", "module", m.Handle())
	}

	logger.Info("Semreg ready",
		"version", version,
		"enforcement", m.Enforcement().String(),
		"instances", m.Len())

	<-signalCtx.Done()
	logger.Info("Received shutdown signal")

	m.Shutdown()
	logger.Info("Semreg shutdown complete")
	return nil
}

// watchConfig starts hot reloading if a config file can be watched. Reload
// failures keep the previous settings; watching itself is best effort.
func watchConfig(ctx context.Context, cmd *cobra.Command, m *instance.Module, logOverride bool, logger *slog.Logger) func() {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = config.NewLoader(logger).WatchTarget()
	}
	if path == "" {
		return func() {}
	}

	watcher, err := config.NewWatcher(path, logger)
	if err != nil {
		logger.Warn("Config watching disabled", "path", path, "error", err)
		return func() {}
	}
	if err := watcher.Start(ctx); err != nil {
		logger.Warn("Config watching disabled", "path", path, "error", err)
		return func() {}
	}

	go func() {
		for next := range watcher.Reloads() {
			if err := next.Gate.Apply(m); err != nil {
				logger.Warn("Ignoring reloaded gate config", "error", err)
				continue
			}
			if !logOverride {
				slog.SetDefault(slog.New(next.Log.Handler(os.Stderr)))
			}
			logger.Info("Applied reloaded config", "enforcement", next.Gate.Enforcement)
		}
	}()

	return func() {
		if err := watcher.Stop(); err != nil {
			logger.Warn("Config watcher stop failed", "error", err)
		}
	}
}

func connectNATS(url string, logger *slog.Logger) (*nats.Conn, error) {
	logger.Info("Connecting to NATS", "url", url)

	nc, err := nats.Connect(url,
		nats.Name("semreg"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(time.Second),
	)
	if err != nil {
		return nil, wrapNATSError(err, url)
	}

	logger.Info("Connected to NATS", "url", url)
	return nc, nil
}

// wrapNATSError provides helpful guidance when NATS connection fails.
func wrapNATSError(err error, url string) error {
	errStr := err.Error()

	if strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no servers available") ||
		strings.Contains(errStr, "timeout") {
		return fmt.Errorf(`NATS connection failed: %w

NATS is not running at %s.

To start NATS:
  docker compose up -d nats

Or set SEMREG_NATS_URL to point at your NATS server.`, err, url)
	}

	return fmt.Errorf("NATS connection failed: %w", err)
}

func printBanner(w io.Writer, version string) {
	fmt.Fprintln(w, "╔═══════════════════════════════════════════════╗")
	fmt.Fprintln(w, "║             Semreg v"+version+"                      ║")
	fmt.Fprintln(w, "║      Instance Registry Service                ║")
	fmt.Fprintln(w, "╚═══════════════════════════════════════════════╝")
}
