package config

import (
	"fmt"
	"strings"

	"vmops/internal/config"
	"vmops/internal/llm"
	"vmops/internal/providers"
	"vmops/internal/util"

	"github.com/spf13/cobra"
)

// normalizedKeys names the keys whose values are case-insensitive
// identifiers. Everything else (paths, zones, model names) is stored
// verbatim.
var normalizedKeys = map[string]bool{
	"default-provider": true,
	"llm-backend":      true,
}

// validators reject values that would break later commands.
var validators = map[string]func(value string) error{
	"default-provider": validateProvider,
	"llm-backend":      validateBackend,
}

func SetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Write a configuration key to the config file.

Examples:
  vmops config set default-provider gcloud
  vmops config set zone us-central1-a
  vmops config set scripts-home ~/ops-scripts`,
		Args:         cobra.ExactArgs(2),
		RunE:         runSet,
		SilenceUsage: true,
	}
}

func runSet(cmd *cobra.Command, args []string) error {
	spec := config.Lookup(args[0])
	if spec == nil {
		return fmt.Errorf("unknown config key %q (known keys: %s)", args[0], strings.Join(config.KeyNames(), ", "))
	}

	value := strings.TrimSpace(args[1])
	if normalizedKeys[spec.Name] {
		value = util.NormalizeKey(value)
	}

	if validate, ok := validators[spec.Name]; ok {
		if err := validate(value); err != nil {
			return err
		}
	}

	// Load without defaults so only explicitly set keys reach the file.
	cfg, err := config.LoadRaw()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := spec.Set(cfg, value); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s to %s\n", spec.Name, value)
	return nil
}

func validateProvider(value string) error {
	for _, name := range providers.List() {
		if name == value {
			return nil
		}
	}
	return fmt.Errorf("unknown provider %q (registered: %s)", value, strings.Join(providers.List(), ", "))
}

func validateBackend(value string) error {
	switch value {
	case llm.BackendOpenRouter, llm.BackendGemini, llm.BackendExec:
		return nil
	}
	return fmt.Errorf("unknown backend %q (expected openrouter, gemini, or exec)", value)
}
