package config

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"vmops/internal/config"

	"github.com/spf13/cobra"
)

func GetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get [key]",
		Short: "Show configuration values",
		Long: `Print the value of a configuration key, or every key when none is
given.

Examples:
  vmops config get
  vmops config get default-provider`,
		Args:         cobra.MaximumNArgs(1),
		RunE:         runGet,
		SilenceUsage: true,
	}
}

func runGet(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if len(args) == 0 {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		for _, spec := range config.Keys {
			value := spec.Get(cfg)
			if value == "" {
				value = "(not set)"
			}
			fmt.Fprintf(w, "%s\t%s\n", spec.Name, value)
		}
		return w.Flush()
	}

	spec := config.Lookup(args[0])
	if spec == nil {
		return fmt.Errorf("unknown config key %q (known keys: %s)", args[0], strings.Join(config.KeyNames(), ", "))
	}

	value := spec.Get(cfg)
	if value == "" {
		fmt.Fprintf(cmd.OutOrStdout(), "%s is not set\n", spec.Name)
		return nil
	}

	fmt.Fprintln(cmd.OutOrStdout(), value)
	return nil
}
