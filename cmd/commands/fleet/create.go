package fleet

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"vmops/internal/config"
	"vmops/internal/domain"
	"vmops/internal/tui"
	"vmops/internal/util"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// CreateCommand returns a cobra.Command that provisions new instances.
func CreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create instances",
		Long: `Create one instance per selector entry with the configured machine
type, image, boot disk, and network tag. A selector entry with an empty
zone uses the configured default zone.

With no selector and a terminal, an interactive wizard collects the
instance parameters instead.

Examples:
  vmops fleet create --instance worker-3=us-central1-a
  vmops fleet create          # interactive wizard`,
		RunE:         runCreate,
		SilenceUsage: true,
	}

	return cmd
}

func runCreate(cmd *cobra.Command, args []string) error {
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

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if len(selector) == 0 {
		return runCreateWizard(ctx, cmd, provider, providerName, cfg)
	}

	for _, name := range sortedNames(selector) {
		if err := util.ValidateInstanceName(name); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error: invalid instance name %q: %v\n", name, err)
			continue
		}

		opts := createOptsFromConfig(cfg, name, selector[name])
		if err := createOne(ctx, cmd, provider, providerName, opts); err != nil {
			continue
		}
	}
	return nil
}

// runCreateWizard collects create options interactively. It requires a
// terminal and a provider that can list its catalogs.
func runCreateWizard(ctx context.Context, cmd *cobra.Command, provider domain.Provider, providerName string, cfg *config.Config) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("no instances selected: pass --instance name=zone or run in a terminal for the wizard")
	}

	catalog, ok := provider.(domain.CatalogProvider)
	if !ok {
		return fmt.Errorf("provider %s does not support interactive creation", providerName)
	}

	prefill := createOptsFromConfig(cfg, "", cfg.Zone)
	opts, err := tui.CreateInstanceForm(catalog, prefill)
	if err != nil {
		if errors.Is(err, tui.ErrAborted) {
			fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
			return nil
		}
		return err
	}

	return createOne(ctx, cmd, provider, providerName, *opts)
}

// createOne issues one creation command and reports the result.
func createOne(ctx context.Context, cmd *cobra.Command, provider domain.Provider, providerName string, opts domain.CreateInstanceOpts) error {
	fmt.Fprintf(cmd.ErrOrStderr(), "Creating instance %s (%s)...\n", opts.Name, opts.Zone)

	started := time.Now()
	createErr := provider.CreateInstance(ctx, opts)
	recordOp("create", opts.Name, opts.Zone, providerName, started, createErr)

	if createErr != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "Error creating %s: %v\n", opts.Name, createErr)
		return createErr
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Instance %s created.\n", opts.Name)
	return nil
}

// createOptsFromConfig builds creation options from the config defaults.
// An empty zone falls back to the configured default zone.
func createOptsFromConfig(cfg *config.Config, name, zone string) domain.CreateInstanceOpts {
	if zone == "" {
		zone = cfg.Zone
	}
	return domain.CreateInstanceOpts{
		Name:         name,
		Zone:         zone,
		MachineType:  cfg.MachineType,
		ImageFamily:  cfg.ImageFamily,
		ImageProject: cfg.ImageProject,
		BootDiskSize: cfg.BootDiskSize,
		BootDiskType: cfg.BootDiskType,
		NetworkTag:   cfg.NetworkTag,
	}
}
