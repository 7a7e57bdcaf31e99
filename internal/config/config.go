// Package config handles persistent user configuration for vmops.
//
// Configuration is stored as JSON at ~/.config/vmops/config.json (or the
// platform-equivalent path returned by os.UserConfigDir).
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	appDir   = "vmops"
	fileName = "config.json"
)

// pathOverride, when non-empty, replaces the default config file path.
// Intended for testing. Use SetPath / ResetPath to manage.
var pathOverride string

// SetPath overrides the config file path. Intended for testing.
func SetPath(p string) { pathOverride = p }

// ResetPath clears the path override, reverting to the default. Intended for testing.
func ResetPath() { pathOverride = "" }

// Config holds operator preferences that persist across invocations.
// Every field has a literal default; a zero-value Config run through
// ApplyDefaults is immediately usable.
type Config struct {
	DefaultProvider string `json:"default_provider,omitempty"`
	Project         string `json:"project,omitempty"`
	Zone            string `json:"zone,omitempty"`

	// VM creation parameters. Advisory strings passed straight to the
	// provider CLI; sizing is not validated against the image.
	MachineType  string `json:"machine_type,omitempty"`
	ImageFamily  string `json:"image_family,omitempty"`
	ImageProject string `json:"image_project,omitempty"`
	BootDiskSize string `json:"boot_disk_size,omitempty"`
	BootDiskType string `json:"boot_disk_type,omitempty"`
	NetworkTag   string `json:"network_tag,omitempty"`

	// Fleet is the default instance selector (name -> zone) used when no
	// --instance flags are given.
	Fleet map[string]string `json:"fleet,omitempty"`

	// ConnectInstance, when set, is the instance an interactive session is
	// opened to after a batch start. Empty means no session is opened.
	ConnectInstance string `json:"connect_instance,omitempty"`

	// ScriptsHome is the fallback scripts directory for "vmops run" when
	// the VMOPS_HOME environment variable is unset.
	ScriptsHome string `json:"scripts_home,omitempty"`

	// LLM query bridge settings.
	LLMBackend    string   `json:"llm_backend,omitempty"`
	LLMModel      string   `json:"llm_model,omitempty"`
	BridgeCommand []string `json:"bridge_command,omitempty"`
}

// Literal defaults applied when a field is unset.
const (
	DefaultProvider     = "gcloud"
	DefaultZone         = "us-central1-a"
	DefaultMachineType  = "e2-standard-4"
	DefaultImageFamily  = "ubuntu-2204-lts"
	DefaultImageProject = "ubuntu-os-cloud"
	DefaultBootDiskSize = "200GB"
	DefaultBootDiskType = "pd-balanced"
	DefaultNetworkTag   = "vmops-managed"
	DefaultLLMBackend   = "openrouter"
	DefaultLLMModel     = "anthropic/claude-3-haiku:beta"
)

// ApplyDefaults fills every unset field with its literal default and
// returns the receiver for chaining. The result is treated as immutable
// for the rest of the invocation.
func (c *Config) ApplyDefaults() *Config {
	if c.DefaultProvider == "" {
		c.DefaultProvider = DefaultProvider
	}
	if c.Zone == "" {
		c.Zone = DefaultZone
	}
	if c.MachineType == "" {
		c.MachineType = DefaultMachineType
	}
	if c.ImageFamily == "" {
		c.ImageFamily = DefaultImageFamily
	}
	if c.ImageProject == "" {
		c.ImageProject = DefaultImageProject
	}
	if c.BootDiskSize == "" {
		c.BootDiskSize = DefaultBootDiskSize
	}
	if c.BootDiskType == "" {
		c.BootDiskType = DefaultBootDiskType
	}
	if c.NetworkTag == "" {
		c.NetworkTag = DefaultNetworkTag
	}
	if c.LLMBackend == "" {
		c.LLMBackend = DefaultLLMBackend
	}
	if c.LLMModel == "" {
		c.LLMModel = DefaultLLMModel
	}
	return c
}

// Path returns the absolute path to the config file.
// If SetPath has been called, that value is returned instead.
// Otherwise it uses os.UserConfigDir which resolves to
// ~/Library/Application Support on macOS, ~/.config on Linux, and
// %AppData% on Windows.
func Path() (string, error) {
	if pathOverride != "" {
		return pathOverride, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: unable to determine config directory: %w", err)
	}
	return filepath.Join(base, appDir, fileName), nil
}

// Load reads the config file from disk and returns the parsed Config with
// defaults applied. If the file does not exist, a default Config is
// returned (not an error).
func Load() (*Config, error) {
	cfg, err := loadFrom("")
	if err != nil {
		return nil, err
	}
	return cfg.ApplyDefaults(), nil
}

// LoadRaw reads the config file without applying defaults. Read-modify-
// write paths use it so current defaults are never frozen into the file.
func LoadRaw() (*Config, error) {
	return loadFrom("")
}

// loadFrom reads the config from the given path. If path is empty, the
// default Path() is used.
func loadFrom(path string) (*Config, error) {
	if path == "" {
		var err error
		path, err = Path()
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}

	return &cfg, nil
}

// Save writes the config to disk, creating the parent directory if needed.
func (c *Config) Save() error {
	return c.saveTo("")
}

// saveTo writes the config to the given path. If path is empty, the
// default Path() is used.
func (c *Config) saveTo(path string) error {
	if path == "" {
		var err error
		path, err = Path()
		if err != nil {
			return err
		}
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("config: failed to create directory %s: %w", dir, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("config: failed to marshal config: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: failed to write %s: %w", path, err)
	}

	return nil
}

// LoadFrom reads the config from the given path without applying defaults.
// Intended for testing.
func LoadFrom(path string) (*Config, error) {
	return loadFrom(path)
}

// SaveTo writes the config to the given path. Intended for testing.
func (c *Config) SaveTo(path string) error {
	return c.saveTo(path)
}
