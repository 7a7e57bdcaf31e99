// Package query implements the "vmops query" command, a one-shot bridge
// from the command line to a hosted language model.
package query

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vmops/internal/config"
	"vmops/internal/llm"
	"vmops/internal/services/auth"
	"vmops/internal/util"

	"github.com/spf13/cobra"
)

// NewCommand returns the query command.
func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query [prompt...]",
		Short: "Send a prompt to the configured LLM backend",
		Long: `Send a single free-text prompt to the configured LLM backend and
print the response. With no prompt a fixed placeholder prompt is sent,
which is useful for checking that the backend and credentials work.

Examples:
  vmops query "summarize the gcloud firewall docs"
  vmops query --backend gemini --model gemini-2.0-flash "hello"
  vmops query                 # connectivity check with a placeholder`,
		RunE:         runQuery,
		SilenceUsage: true,
	}

	cmd.Flags().String("backend", "", "LLM backend: openrouter, gemini, or exec (overrides config)")
	cmd.Flags().String("model", "", "Model identifier (overrides config)")
	cmd.Flags().Duration("timeout", 2*time.Minute, "Overall query timeout")

	return cmd
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	backend, _ := cmd.Flags().GetString("backend")
	if backend == "" {
		backend = cfg.LLMBackend
	}
	backend = util.NormalizeKey(backend)

	// Reject bad backend names before touching the keychain.
	switch backend {
	case llm.BackendOpenRouter, llm.BackendGemini, llm.BackendExec:
	default:
		return fmt.Errorf("unknown backend %q (expected openrouter, gemini, or exec)", backend)
	}

	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		model = cfg.LLMModel
	}

	opts := llm.Options{
		Model:         model,
		BridgeCommand: cfg.BridgeCommand,
	}

	// The exec backend authenticates however the bridge script does;
	// only hosted backends need a key from us.
	if backend != llm.BackendExec {
		key, err := auth.ResolveKey(auth.DefaultStore(), backend)
		if err != nil {
			if errors.Is(err, auth.ErrKeyNotFound) {
				hint := fmt.Sprintf("run 'vmops auth login %s'", backend)
				if env := auth.EnvVar(backend); env != "" {
					hint += fmt.Sprintf(" or set %s", env)
				}
				return fmt.Errorf("no API key for backend %s: %s", backend, hint)
			}
			return fmt.Errorf("failed to resolve API key: %w", err)
		}
		opts.APIKey = key
	}

	client, err := llm.New(backend, opts)
	if err != nil {
		return err
	}

	prompt := strings.TrimSpace(strings.Join(args, " "))
	if prompt == "" {
		prompt = llm.PlaceholderPrompt
	}

	timeout, _ := cmd.Flags().GetDuration("timeout")
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	response, err := client.Query(ctx, prompt)
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), response)
	return nil
}
