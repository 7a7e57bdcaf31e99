// Package launcher resolves and invokes the project-local delegate script
// behind "vmops run".
//
// Resolution is deliberately rigid: an explicit directory override wins
// only when it exists on disk, otherwise the VMOPS_HOME environment
// variable (or the configured scripts home) supplies the directory. The
// delegate lives at a fixed relative path under that directory; a missing
// delegate is fatal with no retry and no alternate search path.
package launcher

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"vmops/internal/domain"
)

// EnvHome is the environment variable consulted when no valid directory
// override is supplied.
const EnvHome = "VMOPS_HOME"

// delegateRelPath is the fixed relative path of the delegate script.
const delegateRelPath = "scripts/run.sh"

// ResolveDir picks the scripts directory. The override is preferred if
// (and only if) it exists as a path; otherwise the environment variable's
// value is used, then the configured fallback. An empty return means no
// directory could be resolved.
func ResolveDir(override, configured string) string {
	if override != "" {
		if _, err := os.Stat(override); err == nil {
			return override
		}
	}
	if env := os.Getenv(EnvHome); env != "" {
		return env
	}
	return configured
}

// DelegatePath joins the resolved directory with the fixed delegate path
// and verifies the result exists. A missing delegate is fatal to the run.
func DelegatePath(dir string) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("no scripts directory: pass --dir, set %s, or configure scripts-home", EnvHome)
	}

	path := filepath.Join(dir, delegateRelPath)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("delegate script %s: %w", path, domain.ErrNotFound)
	}
	return path, nil
}

// Invoke runs the delegate with all caller-supplied arguments forwarded
// unchanged and the caller's stdio wired through. It returns the
// delegate's exit code; any failure to launch at all is returned as an
// error alongside exit code 1.
func Invoke(path string, args []string) (int, error) {
	cmd := exec.Command(path, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return 1, fmt.Errorf("failed to invoke %s: %w", path, err)
}
