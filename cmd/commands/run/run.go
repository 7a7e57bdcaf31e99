// Package run implements "vmops run", the launcher for the shared
// scripts directory.
package run

import (
	"fmt"

	"vmops/internal/config"
	"vmops/internal/launcher"

	"github.com/spf13/cobra"
)

// ExitCodeError carries the delegate script's exit code up to Execute so
// it can be propagated as the vmops exit code.
type ExitCodeError struct {
	Code int
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("delegate exited with code %d", e.Code)
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [-- args...]",
		Short: "Invoke the scripts-directory delegate",
		Long: `Invoke scripts/run.sh from the resolved scripts directory, forwarding
all remaining arguments verbatim and propagating the script's exit code.

The directory is resolved in order:
  1. --dir, when the path exists
  2. the ` + launcher.EnvHome + ` environment variable
  3. the scripts-home configuration key

A missing delegate script is a fatal error; there is no fallback search.

Examples:
  vmops run -- setup --all
  vmops run --dir ~/work/ops -- deploy`,
		Args:         cobra.ArbitraryArgs,
		RunE:         runRun,
		SilenceUsage: true,
	}

	cmd.Flags().String("dir", "", "Scripts directory override (used only when it exists)")
	cmd.Flags().SetInterspersed(false)

	return cmd
}

func runRun(cmd *cobra.Command, args []string) error {
	override, _ := cmd.Flags().GetString("dir")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	dir := launcher.ResolveDir(override, cfg.ScriptsHome)
	path, err := launcher.DelegatePath(dir)
	if err != nil {
		return err
	}

	code, err := launcher.Invoke(path, args)
	if err != nil {
		return err
	}
	if code != 0 {
		cmd.SilenceErrors = true
		return &ExitCodeError{Code: code}
	}
	return nil
}
