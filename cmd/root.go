package cmd

import (
	"errors"
	"os"

	"vmops/cmd/commands/auth"
	cfgcmd "vmops/cmd/commands/config"
	"vmops/cmd/commands/fleet"
	"vmops/cmd/commands/query"
	"vmops/cmd/commands/run"
	"vmops/internal/providers"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands.
func rootCmd() *cobra.Command {
	var cmd = &cobra.Command{
		Use:   "vmops",
		Short: "Operational CLI for VM fleets, scripts, and LLM queries",
		Long: `vmops bundles the day-to-day operational tooling for a cloud VM fleet:
a launcher for the shared scripts directory, lifecycle commands that
drive the gcloud CLI, and a query bridge to hosted language models.

Quick start:
  vmops fleet start --instance worker-1=us-central1-a   # start an instance
  vmops fleet stop                                      # stop everything running
  vmops fleet create                                    # interactive creation
  vmops run -- setup --all                              # invoke scripts/run.sh
  vmops query "why is my quota exceeded?"               # ask a model`,
	}

	cmd.AddCommand(auth.NewCommand())
	cmd.AddCommand(cfgcmd.NewCommand())
	cmd.AddCommand(fleet.NewCommand())
	cmd.AddCommand(query.NewCommand())
	cmd.AddCommand(run.NewCommand())

	return cmd
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	providers.RegisterGCloud()

	var root = rootCmd()
	err := root.Execute()
	if err != nil {
		var exitErr *run.ExitCodeError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
