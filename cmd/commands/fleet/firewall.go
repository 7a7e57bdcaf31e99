package fleet

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"vmops/internal/domain"
	"vmops/internal/util"

	"github.com/spf13/cobra"
)

// FirewallCommand returns a cobra.Command that applies ingress rules.
func FirewallCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "firewall",
		Short: "Apply ingress firewall rules",
		Long: `Create one ingress rule per --rule port=tag pair, allowing TCP on the
port for instances carrying the network tag. Rules are only ever applied
by this command, never as a side effect of instance creation.

Examples:
  vmops fleet firewall --rule 8080=web --rule 6006=tensorboard`,
		RunE:         runFirewall,
		SilenceUsage: true,
	}

	cmd.Flags().StringArray("rule", nil, "Firewall rule port=tag (repeatable, required)")
	cmd.MarkFlagRequired("rule")

	return cmd
}

func runFirewall(cmd *cobra.Command, args []string) error {
	provider, providerName, err := getProvider(cmd)
	if err != nil {
		return err
	}

	configurer, ok := provider.(domain.FirewallConfigurer)
	if !ok {
		return fmt.Errorf("provider %s does not support firewall rules", providerName)
	}

	entries, _ := cmd.Flags().GetStringArray("rule")
	rules := make([]domain.FirewallRule, 0, len(entries))
	for _, entry := range entries {
		port, tag, err := util.ParsePair(entry)
		if err != nil {
			return fmt.Errorf("invalid --rule %q: %w", entry, err)
		}
		rules = append(rules, domain.FirewallRule{Port: port, Tag: tag})
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	summary := make([]string, 0, len(rules))
	for _, rule := range rules {
		summary = append(summary, rule.Port+"="+rule.Tag)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Applying %d firewall rule(s): %s\n", len(rules), strings.Join(summary, ", "))

	started := time.Now()
	applyErr := configurer.ApplyFirewallRules(ctx, rules)
	recordOp("firewall", "", "", providerName, started, applyErr)

	if applyErr != nil {
		return applyErr
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Firewall rules applied.")
	return nil
}
