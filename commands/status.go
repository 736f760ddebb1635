package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/c360studio/semreg/instance"
	"github.com/c360studio/semreg/introspect"
	"github.com/nats-io/nats.go"
	"github.com/spf13/cobra"
)

// NewStatusCmd creates the status command.
func NewStatusCmd() *cobra.Command {
	var (
		remote  bool
		timeout time.Duration
		output  string
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the default module's gate and instance state",
		Long: `Status reports the default module: gate position, enforcement mode, and
every constructed instance with its lifecycle phase.

With --remote the report comes from a running semreg service over NATS
instead of this process.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := statusReport(cmd, remote, timeout)
			if err != nil {
				return err
			}
			if output == "table" {
				writeReport(cmd.OutOrStdout(), report)
				return nil
			}
			return writeEncoded(cmd.OutOrStdout(), output, report)
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "Query a running semreg service over NATS")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Second, "Remote request timeout")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format (table, json, yaml)")

	return cmd
}

func statusReport(cmd *cobra.Command, remote bool, timeout time.Duration) (*introspect.Report, error) {
	if !remote {
		return introspect.Snapshot(instance.Default()), nil
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	nc, err := nats.Connect(cfg.Introspect.URL, nats.Name("semreg-cli"))
	if err != nil {
		return nil, wrapNATSError(err, cfg.Introspect.URL)
	}
	defer nc.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	msg, err := nc.RequestWithContext(ctx, introspect.SnapshotSubject(cfg.Introspect.SubjectPrefix), nil)
	if err != nil {
		return nil, fmt.Errorf("snapshot request: %w", err)
	}

	var report introspect.Report
	if err := json.Unmarshal(msg.Data, &report); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &report, nil
}

func writeReport(w io.Writer, report *introspect.Report) {
	gate := "open"
	if report.Locked {
		gate = "locked"
	}

	fmt.Fprintf(w, "Module:      %s\n", report.Module)
	fmt.Fprintf(w, "Gate:        %s\n", gate)
	fmt.Fprintf(w, "Enforcement: %s\n", report.Enforcement)
	fmt.Fprintf(w, "Down:        %t\n", report.Down)
	if len(report.Codecs) > 0 {
		fmt.Fprintf(w, "Codecs:      %s\n", strings.Join(report.Codecs, ", "))
	}

	if len(report.Types) == 0 {
		return
	}

	fmt.Fprintln(w)
	tw := newTable(w)
	fmt.Fprintln(tw, "TYPE\tKEY\tPHASE")
	for _, ts := range report.Types {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", ts.Type, ts.Key, ts.Phase)
	}
	tw.Flush()
}
