// Package config implements the "vmops config" commands for reading and
// writing the persistent configuration file.
package config

import (
	"vmops/internal/config"

	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Get and set configuration values",
		Long: `Read and write persistent configuration.

` + config.KeysHelp(),
	}

	cmd.AddCommand(GetCommand())
	cmd.AddCommand(SetCommand())

	return cmd
}
