// Package llm forwards a single prompt to a hosted model and returns the
// response text. Three backends are supported: a native OpenRouter HTTP
// client, the Google GenAI SDK, and a subprocess bridge for external
// model-client scripts.
package llm

import (
	"context"
	"fmt"

	"vmops/internal/util"
)

// PlaceholderPrompt is sent when the caller supplies no prompt. The
// backend is still invoked exactly once.
const PlaceholderPrompt = "Hello! Please respond with a short greeting."

// Backend names accepted by New.
const (
	BackendOpenRouter = "openrouter"
	BackendGemini     = "gemini"
	BackendExec       = "exec"
)

// Client answers a single free-text prompt.
type Client interface {
	Query(ctx context.Context, prompt string) (string, error)
}

// Options carries backend construction settings.
type Options struct {
	// APIKey authenticates hosted backends. Unused by the exec backend.
	APIKey string

	// Model selects the hosted model. Empty uses the backend default.
	Model string

	// BridgeCommand is the external command for the exec backend. The
	// prompt is appended as the final positional argument.
	BridgeCommand []string
}

// New constructs the client for the named backend.
func New(backend string, opts Options) (Client, error) {
	switch util.NormalizeKey(backend) {
	case BackendOpenRouter:
		return NewOpenRouterClient(opts.APIKey, opts.Model), nil
	case BackendGemini:
		return NewGeminiClient(opts.APIKey, opts.Model)
	case BackendExec:
		return NewExecBridge(opts.BridgeCommand)
	default:
		return nil, fmt.Errorf("llm: unknown backend %q", backend)
	}
}
