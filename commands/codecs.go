package commands

import (
	"fmt"

	"github.com/c360studio/semreg/codec"
	"github.com/spf13/cobra"
)

// NewCodecsCmd creates the codecs command.
func NewCodecsCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "codecs",
		Short: "List registered codecs",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := codecRows()
			if output == "table" {
				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintln(tw, "NAME\tCONTENT-TYPE")
				for _, row := range rows {
					fmt.Fprintf(tw, "%s\t%s\n", row.Name, row.ContentType)
				}
				return tw.Flush()
			}
			return writeEncoded(cmd.OutOrStdout(), output, rows)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format (table, json, yaml)")

	return cmd
}

type codecRow struct {
	Name        string `json:"name" yaml:"name"`
	ContentType string `json:"content_type" yaml:"content_type"`
}

func codecRows() []codecRow {
	names := codec.Names()
	rows := make([]codecRow, 0, len(names))
	for _, name := range names {
		c, ok := codec.Lookup(name)
		if !ok {
			continue
		}
		rows = append(rows, codecRow{Name: c.Name(), ContentType: c.ContentType()})
	}
	return rows
}
