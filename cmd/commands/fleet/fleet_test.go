package fleet

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"vmops/internal/config"
	"vmops/internal/domain"
	"vmops/internal/oplog"
	"vmops/internal/providers"
)

// mockProvider implements domain.Provider and domain.FirewallConfigurer
// with recorded calls and configurable failures.
type mockProvider struct {
	instances []domain.Instance
	listErr   error

	startCalls [][2]string // name, zone
	startErr   error

	stopCalls [][2]string
	stopErr   error

	createCalls []domain.CreateInstanceOpts
	createErr   error

	shellCalls [][2]string
	shellErr   error

	firewallRules []domain.FirewallRule
	firewallErr   error
}

func (m *mockProvider) GetDisplayName() string { return "Mock" }

func (m *mockProvider) ListInstances(_ context.Context) ([]domain.Instance, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.instances, nil
}

func (m *mockProvider) StartInstance(_ context.Context, name, zone string) error {
	m.startCalls = append(m.startCalls, [2]string{name, zone})
	return m.startErr
}

func (m *mockProvider) StopInstance(_ context.Context, name, zone string) error {
	m.stopCalls = append(m.stopCalls, [2]string{name, zone})
	return m.stopErr
}

func (m *mockProvider) CreateInstance(_ context.Context, opts domain.CreateInstanceOpts) error {
	m.createCalls = append(m.createCalls, opts)
	return m.createErr
}

func (m *mockProvider) OpenShell(_ context.Context, name, zone string) error {
	m.shellCalls = append(m.shellCalls, [2]string{name, zone})
	return m.shellErr
}

func (m *mockProvider) ApplyFirewallRules(_ context.Context, rules []domain.FirewallRule) error {
	m.firewallRules = append(m.firewallRules, rules...)
	return m.firewallErr
}

// registerMockProvider resets the global registry and registers a mock.
func registerMockProvider(t *testing.T, name string, mock *mockProvider) {
	t.Helper()
	providers.Reset()
	t.Cleanup(providers.Reset)
	providers.Register(name, func(opts providers.Options) (domain.Provider, error) {
		return mock, nil
	})
}

// setupTestStores points config and oplog at temp files.
func setupTestStores(t *testing.T) {
	t.Helper()
	config.SetPath(filepath.Join(t.TempDir(), "config.json"))
	t.Cleanup(config.ResetPath)
	oplog.SetPath(filepath.Join(t.TempDir(), "vmops.db"))
	t.Cleanup(oplog.ResetPath)
}

// execFleet creates the fleet command, wires up output buffers, runs the
// given subcommand with --provider mock, and returns stdout and stderr.
func execFleet(t *testing.T, args ...string) (stdout, stderr string) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(append(args, "--provider", "mock"))
	cmd.Execute()
	return outBuf.String(), errBuf.String()
}

// recentOps reads all records from the test operation log.
func recentOps(t *testing.T) []oplog.Record {
	t.Helper()
	repo, err := oplog.Open()
	if err != nil {
		t.Fatalf("failed to open oplog: %v", err)
	}
	defer repo.Close()

	records, err := repo.ListRecent(100)
	if err != nil {
		t.Fatalf("failed to list oplog: %v", err)
	}
	return records
}
