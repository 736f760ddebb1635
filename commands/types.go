package commands

import (
	"fmt"

	"github.com/c360studio/semreg/typeinfo"
	"github.com/spf13/cobra"
)

// NewTypesCmd creates the types command.
func NewTypesCmd() *cobra.Command {
	var (
		match  string
		output string
	)

	cmd := &cobra.Command{
		Use:   "types",
		Short: "List registered export keys and their Go types",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := typeRows(match)
			if err != nil {
				return err
			}
			if output == "table" {
				tw := newTable(cmd.OutOrStdout())
				fmt.Fprintln(tw, "KEY\tTYPE\tFACTORY\tDESCRIPTION")
				for _, row := range rows {
					fmt.Fprintf(tw, "%s\t%s\t%t\t%s\n", row.Key, row.Type, row.HasFactory, row.Description)
				}
				return tw.Flush()
			}
			return writeEncoded(cmd.OutOrStdout(), output, rows)
		},
	}

	cmd.Flags().StringVarP(&match, "match", "m", "", "Filter keys with a doublestar glob (e.g. 'workflow.**')")
	cmd.Flags().StringVarP(&output, "output", "o", "table", "Output format (table, json, yaml)")

	return cmd
}

type typeRow struct {
	Key         string `json:"key" yaml:"key"`
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	HasFactory  bool   `json:"has_factory" yaml:"has_factory"`
}

func typeRows(match string) ([]typeRow, error) {
	var infos []typeinfo.Info
	if match == "" {
		infos = typeinfo.Snapshot()
	} else {
		matches, err := typeinfo.Match(match)
		if err != nil {
			return nil, err
		}
		infos = make([]typeinfo.Info, 0, len(matches))
		for _, m := range matches {
			infos = append(infos, *m)
		}
	}

	rows := make([]typeRow, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, typeRow{
			Key:         info.Key,
			Type:        info.Type.String(),
			Description: info.Description,
			HasFactory:  info.HasFactory(),
		})
	}
	return rows, nil
}
