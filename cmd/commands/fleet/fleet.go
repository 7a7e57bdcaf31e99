// Package fleet implements the "vmops fleet" lifecycle commands. All
// cloud interaction goes through the provider registry; the production
// provider shells out to the gcloud CLI.
package fleet

import (
	"fmt"
	"sort"
	"time"

	"vmops/internal/config"
	"vmops/internal/domain"
	"vmops/internal/oplog"
	"vmops/internal/providers"
	"vmops/internal/util"

	"github.com/spf13/cobra"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fleet",
		Short: "Manage the VM fleet",
		Long: `Start, stop, and create fleet instances through the cloud provider CLI.

Instances are addressed by a selector of repeated --instance name=zone
flags. With no --instance flags, the fleet map from the config file is
used instead.`,
		PersistentPreRunE: resolveProvider,
	}

	cmd.AddCommand(StartCommand())
	cmd.AddCommand(StopCommand())
	cmd.AddCommand(CreateCommand())
	cmd.AddCommand(SSHCommand())
	cmd.AddCommand(FirewallCommand())
	cmd.AddCommand(HistoryCommand())

	cmd.PersistentFlags().String("provider", "", "Cloud provider to use (overrides default)")
	cmd.PersistentFlags().String("project", "", "Cloud project (overrides config)")
	cmd.PersistentFlags().StringArray("instance", nil, "Instance selector entry name=zone (repeatable)")

	return cmd
}

// resolveProvider ensures the --provider flag has a value, falling back to
// the configured default when the flag was not explicitly passed.
func resolveProvider(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if !cmd.Flag("provider").Changed && cfg.DefaultProvider != "" {
		cmd.Flag("provider").Value.Set(cfg.DefaultProvider)
	}
	if !cmd.Flag("project").Changed && cfg.Project != "" {
		cmd.Flag("project").Value.Set(cfg.Project)
	}

	if cmd.Flag("provider").Value.String() == "" {
		return fmt.Errorf("no provider specified: use --provider or set a default with 'vmops config set default-provider <name>'")
	}
	return nil
}

// getProvider constructs the provider selected by the persistent flags.
func getProvider(cmd *cobra.Command) (domain.Provider, string, error) {
	providerName := cmd.Flag("provider").Value.String()
	project := cmd.Flag("project").Value.String()

	provider, err := providers.Get(providerName, providers.Options{Project: project})
	if err != nil {
		return nil, "", err
	}
	return provider, providerName, nil
}

// resolveSelector builds the instance selector from repeated --instance
// flags, falling back to the configured fleet map when none were given.
func resolveSelector(cmd *cobra.Command, cfg *config.Config) (domain.Selector, error) {
	entries, _ := cmd.Flags().GetStringArray("instance")

	if len(entries) == 0 {
		return domain.Selector(cfg.Fleet), nil
	}

	selector := make(domain.Selector, len(entries))
	for _, entry := range entries {
		name, zone, err := util.ParsePair(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid --instance %q: %w", entry, err)
		}
		selector[name] = zone
	}
	return selector, nil
}

// sortedNames returns the selector's names in stable order for output.
func sortedNames(selector domain.Selector) []string {
	names := selector.Names()
	sort.Strings(names)
	return names
}

// recordOp appends a record to the local operation log. Best effort: an
// unavailable store never fails the operation itself.
func recordOp(op, instance, zone, providerName string, started time.Time, opErr error) {
	repo, err := oplog.Open()
	if err != nil {
		return
	}
	defer repo.Close()

	record := &oplog.Record{
		Op:       op,
		Instance: instance,
		Zone:     zone,
		Provider: providerName,
		Outcome:  oplog.OutcomeOK,
		Duration: time.Since(started),
	}
	if opErr != nil {
		record.Outcome = oplog.OutcomeError
		record.Detail = opErr.Error()
	}

	repo.Append(record)

	// Opportunistically clean up old records.
	repo.DeleteOlderThan(90 * 24 * time.Hour)
}
