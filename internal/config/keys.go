package config

import (
	"fmt"
	"sort"
	"strings"

	"vmops/internal/util"
)

// KeySpec describes a single configuration key.
type KeySpec struct {
	// Name is the CLI-facing key name (e.g. "zone").
	Name string

	// Description is a short human-readable explanation shown in help text.
	Description string

	// Get returns the current value for this key from a loaded Config.
	Get func(cfg *Config) string

	// Set applies a value for this key to the given Config (in memory only;
	// the caller is responsible for calling Save). Keys with structured
	// values parse here and report malformed input.
	Set func(cfg *Config, value string) error
}

// setString adapts a plain string field to the Set signature.
func setString(assign func(cfg *Config, v string)) func(*Config, string) error {
	return func(cfg *Config, v string) error {
		assign(cfg, v)
		return nil
	}
}

// Keys is the authoritative list of all supported configuration keys.
// To add a new option: add a field to Config and append a KeySpec here.
var Keys = []KeySpec{
	{
		Name:        "default-provider",
		Description: "Cloud provider used when --provider is not specified",
		Get:         func(cfg *Config) string { return cfg.DefaultProvider },
		Set:         setString(func(cfg *Config, v string) { cfg.DefaultProvider = v }),
	},
	{
		Name:        "project",
		Description: "Cloud project passed to every provider CLI call",
		Get:         func(cfg *Config) string { return cfg.Project },
		Set:         setString(func(cfg *Config, v string) { cfg.Project = v }),
	},
	{
		Name:        "zone",
		Description: "Default zone for instances not present in the selector",
		Get:         func(cfg *Config) string { return cfg.Zone },
		Set:         setString(func(cfg *Config, v string) { cfg.Zone = v }),
	},
	{
		Name:        "machine-type",
		Description: "Machine type used by fleet create",
		Get:         func(cfg *Config) string { return cfg.MachineType },
		Set:         setString(func(cfg *Config, v string) { cfg.MachineType = v }),
	},
	{
		Name:        "image-family",
		Description: "Image family used by fleet create",
		Get:         func(cfg *Config) string { return cfg.ImageFamily },
		Set:         setString(func(cfg *Config, v string) { cfg.ImageFamily = v }),
	},
	{
		Name:        "image-project",
		Description: "Project hosting the image family",
		Get:         func(cfg *Config) string { return cfg.ImageProject },
		Set:         setString(func(cfg *Config, v string) { cfg.ImageProject = v }),
	},
	{
		Name:        "boot-disk-size",
		Description: "Boot disk size for fleet create (e.g. 200GB)",
		Get:         func(cfg *Config) string { return cfg.BootDiskSize },
		Set:         setString(func(cfg *Config, v string) { cfg.BootDiskSize = v }),
	},
	{
		Name:        "boot-disk-type",
		Description: "Boot disk type for fleet create (e.g. pd-balanced)",
		Get:         func(cfg *Config) string { return cfg.BootDiskType },
		Set:         setString(func(cfg *Config, v string) { cfg.BootDiskType = v }),
	},
	{
		Name:        "network-tag",
		Description: "Network tag applied to created instances",
		Get:         func(cfg *Config) string { return cfg.NetworkTag },
		Set:         setString(func(cfg *Config, v string) { cfg.NetworkTag = v }),
	},
	{
		Name:        "fleet",
		Description: "Default instance selector as comma-separated name=zone pairs",
		Get: func(cfg *Config) string {
			if len(cfg.Fleet) == 0 {
				return ""
			}
			entries := make([]string, 0, len(cfg.Fleet))
			for name, zone := range cfg.Fleet {
				entries = append(entries, name+"="+zone)
			}
			sort.Strings(entries)
			return strings.Join(entries, ",")
		},
		Set: func(cfg *Config, v string) error {
			if v == "" {
				cfg.Fleet = nil
				return nil
			}
			fleet := make(map[string]string)
			for _, entry := range strings.Split(v, ",") {
				name, zone, err := util.ParsePair(strings.TrimSpace(entry))
				if err != nil {
					return fmt.Errorf("invalid fleet entry: %w", err)
				}
				fleet[name] = zone
			}
			cfg.Fleet = fleet
			return nil
		},
	},
	{
		Name:        "connect-instance",
		Description: "Instance to open a session to after fleet start (empty disables)",
		Get:         func(cfg *Config) string { return cfg.ConnectInstance },
		Set:         setString(func(cfg *Config, v string) { cfg.ConnectInstance = v }),
	},
	{
		Name:        "scripts-home",
		Description: "Fallback scripts directory for vmops run when VMOPS_HOME is unset",
		Get:         func(cfg *Config) string { return cfg.ScriptsHome },
		Set:         setString(func(cfg *Config, v string) { cfg.ScriptsHome = v }),
	},
	{
		Name:        "llm-backend",
		Description: "Query backend: openrouter, gemini, or exec",
		Get:         func(cfg *Config) string { return cfg.LLMBackend },
		Set:         setString(func(cfg *Config, v string) { cfg.LLMBackend = v }),
	},
	{
		Name:        "llm-model",
		Description: "Model identifier passed to the query backend",
		Get:         func(cfg *Config) string { return cfg.LLMModel },
		Set:         setString(func(cfg *Config, v string) { cfg.LLMModel = v }),
	},
	{
		Name:        "bridge-command",
		Description: "Exec backend command line, whitespace-separated",
		Get:         func(cfg *Config) string { return strings.Join(cfg.BridgeCommand, " ") },
		Set: func(cfg *Config, v string) error {
			fields := strings.Fields(v)
			if len(fields) == 0 {
				cfg.BridgeCommand = nil
				return nil
			}
			cfg.BridgeCommand = fields
			return nil
		},
	},
}

// Lookup returns the KeySpec for the given name, or nil if not found.
// The name is matched case-insensitively after trimming whitespace.
func Lookup(name string) *KeySpec {
	normalized := strings.ToLower(strings.TrimSpace(name))
	for i := range Keys {
		if Keys[i].Name == normalized {
			return &Keys[i]
		}
	}
	return nil
}

// KeyNames returns the names of all registered keys.
func KeyNames() []string {
	names := make([]string, len(Keys))
	for i, k := range Keys {
		names[i] = k.Name
	}
	return names
}

// KeysHelp builds a formatted block listing all available keys and their
// descriptions, suitable for inclusion in Cobra Long help text.
func KeysHelp() string {
	if len(Keys) == 0 {
		return ""
	}

	// Find the longest key name for alignment.
	maxLen := 0
	for _, k := range Keys {
		if len(k.Name) > maxLen {
			maxLen = len(k.Name)
		}
	}

	var b strings.Builder
	b.WriteString("Available keys:\n")
	for _, k := range Keys {
		fmt.Fprintf(&b, "  %-*s   %s\n", maxLen, k.Name, k.Description)
	}
	return b.String()
}
