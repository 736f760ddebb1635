// Package main provides the semreg binary entry point.
// Semreg hosts the process-wide instance registry: lazily constructed
// per-type instances behind a lockable gate, with NATS introspection and
// Prometheus metrics.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strings"

	// Register builtin codecs via init()
	_ "github.com/c360studio/semreg/codec/builtin"

	"github.com/c360studio/semreg/commands"
	"github.com/spf13/cobra"
)

const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "semreg"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
	)

	cmd := &cobra.Command{
		Use:   "semreg",
		Short: "Process-wide instance registry",
		Long: `Semreg hosts the process-wide instance registry: one lazily constructed
instance per Go type, a lock gate over mutable access, and monotonic
destruction tracking.

It provides:
- Gated mutable and ungated shared instance access
- A stable export-key table mapping keys to Go types
- Pluggable codecs resolved by name
- NATS lifecycle events and snapshot requests
- Prometheus metrics for constructions, finalizations, and violations`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			switch strings.ToLower(logLevel) {
			case "debug":
				level = slog.LevelDebug
			case "warn":
				level = slog.LevelWarn
			case "error":
				level = slog.LevelError
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (YAML)")
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	// Version command
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s version %s (build: %s)\n", appName, Version, BuildTime)
		},
	})

	commands.AddAll(cmd, Version)

	return cmd
}
