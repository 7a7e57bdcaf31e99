package auth

import (
	"errors"
	"fmt"
	"os"

	"vmops/internal/services/auth"

	"github.com/spf13/cobra"
)

func StatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show which backends have stored API keys",
		Long: `Show authentication status for each LLM backend.

A backend counts as logged in when its environment variable is set or a
key is stored in the keychain.

Example:
  vmops auth status`,
		RunE:         runStatus,
		SilenceUsage: true,
	}
}

func runStatus(cmd *cobra.Command, args []string) error {
	store := newStore()

	for _, backend := range backends {
		if env := auth.EnvVar(backend); env != "" && os.Getenv(env) != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: logged in (via %s)\n", backend, env)
			continue
		}

		_, err := store.GetKey(backend)
		switch {
		case err == nil:
			fmt.Fprintf(cmd.OutOrStdout(), "%s: logged in\n", backend)
		case errors.Is(err, auth.ErrKeyNotFound):
			fmt.Fprintf(cmd.OutOrStdout(), "%s: not logged in\n", backend)
		default:
			fmt.Fprintf(cmd.OutOrStdout(), "%s: error (%v)\n", backend, err)
		}
	}
	return nil
}
