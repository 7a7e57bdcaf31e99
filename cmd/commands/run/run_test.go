package run

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"vmops/internal/config"
	"vmops/internal/domain"
	"vmops/internal/launcher"
)

// setupTestConfig points the config package at a temp file.
func setupTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	config.SetPath(path)
	t.Cleanup(config.ResetPath)
	return path
}

// writeDelegate creates dir/scripts/run.sh with the given body.
func writeDelegate(t *testing.T, dir, body string) {
	t.Helper()
	scripts := filepath.Join(dir, "scripts")
	if err := os.MkdirAll(scripts, 0o755); err != nil {
		t.Fatalf("failed to create scripts dir: %v", err)
	}
	path := filepath.Join(scripts, "run.sh")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0o755); err != nil {
		t.Fatalf("failed to write delegate: %v", err)
	}
}

// execRun runs "run" with the given args and returns stderr and the error.
func execRun(t *testing.T, args ...string) (stderr string, err error) {
	t.Helper()
	var errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return errBuf.String(), err
}

func TestRun_MissingDelegateIsFatal(t *testing.T) {
	setupTestConfig(t)
	t.Setenv(launcher.EnvHome, t.TempDir())

	_, err := execRun(t)
	if err == nil {
		t.Fatal("expected error for missing delegate")
	}
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got: %v", err)
	}
}

func TestRun_InvokesDelegate(t *testing.T) {
	setupTestConfig(t)
	dir := t.TempDir()
	writeDelegate(t, dir, "exit 0")
	t.Setenv(launcher.EnvHome, dir)

	if _, err := execRun(t); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRun_PropagatesDelegateExitCode(t *testing.T) {
	setupTestConfig(t)
	dir := t.TempDir()
	writeDelegate(t, dir, "exit 5")
	t.Setenv(launcher.EnvHome, dir)

	_, err := execRun(t)
	var exitErr *ExitCodeError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected ExitCodeError, got: %v", err)
	}
	if exitErr.Code != 5 {
		t.Errorf("expected exit code 5, got %d", exitErr.Code)
	}
}

func TestRun_DirOverrideMustExist(t *testing.T) {
	setupTestConfig(t)
	envDir := t.TempDir()
	writeDelegate(t, envDir, "exit 0")
	t.Setenv(launcher.EnvHome, envDir)

	// The nonexistent override is ignored in favor of the env directory.
	if _, err := execRun(t, "--dir", filepath.Join(t.TempDir(), "missing")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRun_ConfiguredScriptsHomeFallback(t *testing.T) {
	path := setupTestConfig(t)
	dir := t.TempDir()
	writeDelegate(t, dir, "exit 0")
	t.Setenv(launcher.EnvHome, "")

	cfg := &config.Config{ScriptsHome: dir}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	if _, err := execRun(t); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRun_NoDirectoryResolved(t *testing.T) {
	setupTestConfig(t)
	t.Setenv(launcher.EnvHome, "")

	_, err := execRun(t)
	if err == nil {
		t.Fatal("expected error when no directory resolves")
	}
	if !strings.Contains(err.Error(), "no scripts directory") {
		t.Errorf("expected resolution error, got: %v", err)
	}
}
