package fleet

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"vmops/internal/config"

	"github.com/spf13/cobra"
)

// StartCommand returns a cobra.Command that powers on selected instances.
func StartCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the selected instances",
		Long: `Power on every instance named in the selector.

The fleet is listed once; each selected name is looked up and started in
the zone the provider reports. Names the provider does not know are
warned about and skipped. Failures do not stop the remaining starts.

With --connect (or the connect-instance config key) an interactive shell
is opened to the named instance after the batch completes.

Examples:
  vmops fleet start --instance worker-1=us-central1-a --instance worker-2=us-central1-a
  vmops fleet start --connect worker-1`,
		RunE:         runStart,
		SilenceUsage: true,
	}

	cmd.Flags().String("connect", "", "Open a shell to this instance after starting")

	return cmd
}

func runStart(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	provider, providerName, err := getProvider(cmd)
	if err != nil {
		return err
	}

	selector, err := resolveSelector(cmd, cfg)
	if err != nil {
		return err
	}
	if len(selector) == 0 {
		return fmt.Errorf("no instances selected: pass --instance name=zone or configure a fleet map")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	instances, err := provider.ListInstances(ctx)
	if err != nil {
		return fmt.Errorf("failed to list instances: %w", err)
	}

	byName := indexByName(instances)

	for _, name := range sortedNames(selector) {
		inst, ok := byName[name]
		if !ok {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: instance %s not found, skipping\n", name)
			continue
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "Starting instance %s (%s)...\n", name, inst.Zone)

		started := time.Now()
		startErr := provider.StartInstance(ctx, name, inst.Zone)
		recordOp("start", name, inst.Zone, providerName, started, startErr)

		if startErr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error starting %s: %v\n", name, startErr)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Instance %s started.\n", name)
	}

	connect, _ := cmd.Flags().GetString("connect")
	if connect == "" {
		connect = cfg.ConnectInstance
	}
	if connect == "" {
		return nil
	}

	inst, ok := byName[connect]
	if !ok {
		return fmt.Errorf("connect instance %s not found", connect)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Connecting to %s...\n", connect)
	if err := provider.OpenShell(ctx, connect, inst.Zone); err != nil {
		return err
	}
	return nil
}
