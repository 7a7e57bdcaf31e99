package auth

import (
	"errors"
	"fmt"

	"vmops/internal/services/auth"

	"github.com/spf13/cobra"
)

func LogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout <backend>",
		Short: "Remove a stored API key",
		Long: `Remove the stored API key for an LLM backend from the keychain.

Example:
  vmops auth logout openrouter`,
		Args:         cobra.ExactArgs(1),
		RunE:         runLogout,
		SilenceUsage: true,
	}
}

func runLogout(cmd *cobra.Command, args []string) error {
	backend := auth.NormalizeBackend(args[0])

	if err := newStore().DeleteKey(backend); err != nil {
		if errors.Is(err, auth.ErrKeyNotFound) {
			fmt.Fprintf(cmd.OutOrStdout(), "No stored key for backend %s\n", backend)
			return nil
		}
		return fmt.Errorf("failed to remove key: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed API key for backend %s\n", backend)
	return nil
}
