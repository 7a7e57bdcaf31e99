package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoad_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nonexistent", "config.json")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Project != "" {
		t.Errorf("expected empty Project, got %q", cfg.Project)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vmops", "config.json")

	want := &Config{
		Project: "inferno-dev",
		Zone:    "europe-west1-b",
		Fleet: map[string]string{
			"worker-1": "europe-west1-b",
			"worker-2": "europe-west1-c",
		},
	}
	if err := want.SaveTo(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestSave_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "deep")
	path := filepath.Join(dir, "config.json")

	cfg := &Config{Project: "inferno-dev"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// Verify the file exists.
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file at %s: %v", path, err)
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json}"), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	_, err := LoadFrom(path)
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
}

func TestApplyDefaults_FillsUnsetFields(t *testing.T) {
	cfg := (&Config{}).ApplyDefaults()

	if cfg.MachineType != DefaultMachineType {
		t.Errorf("expected machine type %q, got %q", DefaultMachineType, cfg.MachineType)
	}
	if cfg.ImageFamily != DefaultImageFamily {
		t.Errorf("expected image family %q, got %q", DefaultImageFamily, cfg.ImageFamily)
	}
	if cfg.BootDiskSize != DefaultBootDiskSize {
		t.Errorf("expected boot disk size %q, got %q", DefaultBootDiskSize, cfg.BootDiskSize)
	}
	if cfg.LLMBackend != DefaultLLMBackend {
		t.Errorf("expected llm backend %q, got %q", DefaultLLMBackend, cfg.LLMBackend)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := (&Config{MachineType: "n2-standard-8", Zone: "asia-east1-a"}).ApplyDefaults()

	if cfg.MachineType != "n2-standard-8" {
		t.Errorf("expected explicit machine type to survive, got %q", cfg.MachineType)
	}
	if cfg.Zone != "asia-east1-a" {
		t.Errorf("expected explicit zone to survive, got %q", cfg.Zone)
	}
}

func TestFleetKey_RoundTrip(t *testing.T) {
	spec := Lookup("fleet")
	if spec == nil {
		t.Fatal("expected fleet key to be registered")
	}

	cfg := &Config{}
	if err := spec.Set(cfg, "worker-2=europe-west1-c, worker-1=europe-west1-b"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	want := map[string]string{
		"worker-1": "europe-west1-b",
		"worker-2": "europe-west1-c",
	}
	if diff := cmp.Diff(want, cfg.Fleet); diff != "" {
		t.Errorf("fleet mismatch (-want +got):\n%s", diff)
	}

	if got := spec.Get(cfg); got != "worker-1=europe-west1-b,worker-2=europe-west1-c" {
		t.Errorf("expected sorted pair listing, got %q", got)
	}
}

func TestFleetKey_MalformedEntry(t *testing.T) {
	spec := Lookup("fleet")

	cfg := &Config{}
	if err := spec.Set(cfg, "worker-1"); err == nil {
		t.Fatal("expected error for entry without zone")
	}
}

func TestFleetKey_EmptyClears(t *testing.T) {
	spec := Lookup("fleet")

	cfg := &Config{Fleet: map[string]string{"worker-1": "z"}}
	if err := spec.Set(cfg, ""); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if cfg.Fleet != nil {
		t.Errorf("expected fleet cleared, got %v", cfg.Fleet)
	}
}

func TestBridgeCommandKey_SplitsFields(t *testing.T) {
	spec := Lookup("bridge-command")
	if spec == nil {
		t.Fatal("expected bridge-command key to be registered")
	}

	cfg := &Config{}
	if err := spec.Set(cfg, "python3 scripts/ask.py --json"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	want := []string{"python3", "scripts/ask.py", "--json"}
	if diff := cmp.Diff(want, cfg.BridgeCommand); diff != "" {
		t.Errorf("bridge command mismatch (-want +got):\n%s", diff)
	}

	if got := spec.Get(cfg); got != "python3 scripts/ask.py --json" {
		t.Errorf("expected joined command line, got %q", got)
	}
}

func TestLookup_KnownAndUnknownKeys(t *testing.T) {
	if spec := Lookup("machine-type"); spec == nil {
		t.Fatal("expected machine-type key to be registered")
	}
	if spec := Lookup("  ZONE "); spec == nil {
		t.Fatal("expected lookup to normalize case and whitespace")
	}
	if spec := Lookup("no-such-key"); spec != nil {
		t.Fatalf("expected nil for unknown key, got %q", spec.Name)
	}
}
