package llm

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// ExecBridge forwards the prompt to an external model-client command.
// The prompt is appended as the final positional argument and the
// command's stdout is relayed unmodified. No retry, no parsing; a
// failed subprocess surfaces however it exits.
type ExecBridge struct {
	command []string
}

// NewExecBridge creates a bridge for the given command and leading
// arguments, e.g. ["python3", "scripts/ask.py"].
func NewExecBridge(command []string) (*ExecBridge, error) {
	if len(command) == 0 {
		return nil, errors.New("llm: bridge command not configured")
	}
	return &ExecBridge{command: command}, nil
}

func (b *ExecBridge) Query(ctx context.Context, prompt string) (string, error) {
	args := append(b.command[1:len(b.command):len(b.command)], prompt)
	cmd := exec.CommandContext(ctx, b.command[0], args...)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("llm: bridge command %s failed: %w", strings.Join(b.command, " "), err)
	}
	return stdout.String(), nil
}
