package fleet

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// StopCommand returns a cobra.Command that powers off every running
// instance.
func StopCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop every running instance",
		Long: `List the fleet, then power off every instance currently running.

The instance selector is deliberately ignored: stop always acts on the
whole fleet. Instances not in the running state are skipped silently.

Examples:
  vmops fleet stop
  vmops fleet stop --yes    # skip the confirmation for scripting`,
		RunE:         runStop,
		SilenceUsage: true,
	}

	cmd.Flags().Bool("yes", false, "Skip the confirmation prompt")

	return cmd
}

func runStop(cmd *cobra.Command, args []string) error {
	provider, providerName, err := getProvider(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	instances, err := provider.ListInstances(ctx)
	if err != nil {
		return fmt.Errorf("failed to list instances: %w", err)
	}

	if len(instances) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No instances found.")
		return nil
	}

	printInstanceTable(cmd.OutOrStdout(), instances)

	running := 0
	for _, inst := range instances {
		if inst.IsRunning() {
			running++
		}
	}
	if running == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing to stop.")
		return nil
	}

	yes, _ := cmd.Flags().GetBool("yes")
	if !yes && term.IsTerminal(int(os.Stdin.Fd())) {
		confirm := false
		err := huh.NewConfirm().
			Title(fmt.Sprintf("Stop %d running instance(s)?", running)).
			Value(&confirm).
			Run()
		if err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
		if !confirm {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
	}

	for _, inst := range instances {
		if !inst.IsRunning() {
			continue
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "Stopping instance %s (%s)...\n", inst.Name, inst.Zone)

		started := time.Now()
		stopErr := provider.StopInstance(ctx, inst.Name, inst.Zone)
		recordOp("stop", inst.Name, inst.Zone, providerName, started, stopErr)

		if stopErr != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error stopping %s: %v\n", inst.Name, stopErr)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Instance %s stopped.\n", inst.Name)
	}

	return nil
}
