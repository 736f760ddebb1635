// Package commands provides the semreg CLI commands. Constructors return
// cobra commands so the binary assembles its own tree; AddAll attaches the
// full set to a root command.
package commands

import (
	"github.com/c360studio/semreg/config"
	"github.com/spf13/cobra"
)

// AddAll attaches every semreg command to root.
func AddAll(root *cobra.Command, version string) {
	root.AddCommand(
		NewServeCmd(version),
		NewStatusCmd(),
		NewTypesCmd(),
		NewCodecsCmd(),
		NewConfigCmd(),
	)
}

// loadConfig resolves the effective configuration for a command. An explicit
// --config path wins; otherwise the layered loader runs discovery.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return config.NewLoader(nil).Load()
	}

	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
