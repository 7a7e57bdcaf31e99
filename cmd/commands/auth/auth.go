// Package auth implements the "vmops auth" commands for managing LLM
// API keys in the OS keychain.
package auth

import (
	"vmops/internal/llm"
	"vmops/internal/services/auth"

	"github.com/spf13/cobra"
)

// newStore builds the key store. Tests swap it for an in-memory store.
var newStore = auth.DefaultStore

// backends lists the hosted backends that take an API key. The exec
// backend authenticates on its own and is deliberately absent.
var backends = []string{llm.BackendOpenRouter, llm.BackendGemini}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Manage LLM API keys",
	}

	cmd.AddCommand(LoginCommand())
	cmd.AddCommand(LogoutCommand())
	cmd.AddCommand(StatusCommand())

	return cmd
}
