package query

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"vmops/internal/config"
	"vmops/internal/llm"
)

// writeBridgeScript writes a shell script that prints its final argument,
// mimicking a bridge that echoes the prompt back.
func writeBridgeScript(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("bridge script test requires a POSIX shell")
	}

	path := filepath.Join(t.TempDir(), "bridge.sh")
	script := "#!/bin/sh\nfor arg in \"$@\"; do last=\"$arg\"; done\nprintf '%s' \"$last\"\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("failed to write bridge script: %v", err)
	}
	return path
}

func setupExecBackend(t *testing.T) {
	t.Helper()
	config.SetPath(filepath.Join(t.TempDir(), "config.json"))
	t.Cleanup(config.ResetPath)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	cfg.LLMBackend = llm.BackendExec
	cfg.BridgeCommand = []string{writeBridgeScript(t)}
	if err := cfg.Save(); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}
}

func execQuery(t *testing.T, args ...string) (stdout, stderr string) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	cmd.Execute()
	return outBuf.String(), errBuf.String()
}

func TestQuery_ForwardsPrompt(t *testing.T) {
	setupExecBackend(t)

	stdout, _ := execQuery(t, "what", "is", "a", "zone")

	if !strings.Contains(stdout, "what is a zone") {
		t.Errorf("expected prompt echoed back, got: %s", stdout)
	}
}

func TestQuery_NoPromptSendsPlaceholder(t *testing.T) {
	setupExecBackend(t)

	stdout, _ := execQuery(t)

	if !strings.Contains(stdout, llm.PlaceholderPrompt) {
		t.Errorf("expected placeholder prompt sent, got: %s", stdout)
	}
}

func TestQuery_ExecWithoutBridgeCommand(t *testing.T) {
	config.SetPath(filepath.Join(t.TempDir(), "config.json"))
	t.Cleanup(config.ResetPath)

	_, stderr := execQuery(t, "--backend", "exec", "hello")

	if !strings.Contains(stderr, "bridge command") {
		t.Errorf("expected bridge command error, got: %s", stderr)
	}
}

func TestQuery_BackendFlagOverridesConfig(t *testing.T) {
	setupExecBackend(t)

	_, stderr := execQuery(t, "--backend", "nonsense", "hello")

	if !strings.Contains(stderr, "unknown backend") {
		t.Errorf("expected unknown backend error, got: %s", stderr)
	}
}

func TestQuery_UnknownConfiguredBackend(t *testing.T) {
	config.SetPath(filepath.Join(t.TempDir(), "config.json"))
	t.Cleanup(config.ResetPath)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	cfg.LLMBackend = "bedrock"
	if err := cfg.Save(); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	_, stderr := execQuery(t, "hello")

	// The backend name must be rejected outright, not reported as a
	// missing API key.
	if !strings.Contains(stderr, "unknown backend") {
		t.Errorf("expected unknown backend error, got: %s", stderr)
	}
	if strings.Contains(stderr, "API key") {
		t.Errorf("expected no key resolution for a bad backend, got: %s", stderr)
	}
}
