package commands

import (
	"fmt"

	"github.com/c360studio/semreg/config"
	"github.com/spf13/cobra"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and initialize semreg configuration",
	}

	cmd.AddCommand(newConfigShowCmd(), newConfigInitCmd())
	return cmd
}

func newConfigShowCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration after all layers merge",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return writeEncoded(cmd.OutOrStdout(), output, cfg)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "yaml", "Output format (json, yaml)")
	return cmd
}

func newConfigInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a default user config if none exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.NewLoader(nil).EnsureUserConfig(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "User config ready under ~/%s/%s\n",
				config.UserConfigDir, config.UserConfigFile)
			return nil
		},
	}
}
