package fleet

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"vmops/internal/tui"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// SSHCommand returns a cobra.Command that opens an interactive shell.
func SSHCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ssh [name]",
		Short: "Open a shell to an instance",
		Long: `Open an interactive shell session to a fleet instance through the
provider CLI. The instance's zone is looked up from the live fleet list.

With no name and a terminal, a picker lists the running instances.

Examples:
  vmops fleet ssh worker-1
  vmops fleet ssh           # interactive picker`,
		Args:         cobra.MaximumNArgs(1),
		RunE:         runSSH,
		SilenceUsage: true,
	}

	return cmd
}

func runSSH(cmd *cobra.Command, args []string) error {
	provider, _, err := getProvider(cmd)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var name, zone string

	if len(args) == 1 {
		name = args[0]

		instances, err := provider.ListInstances(ctx)
		if err != nil {
			return fmt.Errorf("failed to list instances: %w", err)
		}
		inst, ok := indexByName(instances)[name]
		if !ok {
			return fmt.Errorf("instance %s not found", name)
		}
		zone = inst.Zone
	} else {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("instance name required when not running in a terminal")
		}

		inst, err := tui.RunSSHPicker(provider)
		if err != nil {
			if errors.Is(err, tui.ErrAborted) {
				return nil
			}
			return err
		}
		name, zone = inst.Name, inst.Zone
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "Connecting to %s (%s)...\n", name, zone)
	return provider.OpenShell(ctx, name, zone)
}
