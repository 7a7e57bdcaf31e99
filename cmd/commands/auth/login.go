package auth

import (
	"fmt"
	"os"
	"strings"

	"vmops/internal/services/auth"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func LoginCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "login <backend>",
		Short: "Store an API key for an LLM backend",
		Long: `Store an API key for an LLM backend in the local keychain.

Example:
  vmops auth login openrouter`,
		Args:         cobra.ExactArgs(1),
		RunE:         runLogin,
		SilenceUsage: true,
	}

	cmd.Flags().String("key", "", "API key (optional, overrides prompt)")

	return cmd
}

func runLogin(cmd *cobra.Command, args []string) error {
	backend := auth.NormalizeBackend(args[0])
	if !knownBackend(backend) {
		return fmt.Errorf("unknown backend %q (expected one of: %s)", args[0], strings.Join(backends, ", "))
	}

	key, _ := cmd.Flags().GetString("key")
	key = strings.TrimSpace(key)

	if key == "" {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return fmt.Errorf("no key given: pass --key or run in a terminal")
		}
		fmt.Fprint(cmd.OutOrStdout(), "Enter API key: ")
		raw, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		key = strings.TrimSpace(string(raw))
	}

	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}

	if err := newStore().SetKey(backend, key); err != nil {
		return fmt.Errorf("failed to store key: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved API key for backend %s\n", backend)
	return nil
}

func knownBackend(backend string) bool {
	for _, b := range backends {
		if b == backend {
			return true
		}
	}
	return false
}
