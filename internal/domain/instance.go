package domain

import "time"

// Instance statuses as reported by the cloud provider CLI.
const (
	StatusRunning      = "RUNNING"
	StatusStopped      = "TERMINATED"
	StatusStopping     = "STOPPING"
	StatusStaging      = "STAGING"
	StatusProvisioning = "PROVISIONING"
	StatusSuspended    = "SUSPENDED"
)

// Instance represents a compute instance as reported by the provider.
type Instance struct {
	// Core fields (common across all providers)
	Name        string    `json:"name"`
	Zone        string    `json:"zone"`
	Status      string    `json:"status"`
	MachineType string    `json:"machine_type,omitempty"`
	ExternalIP  string    `json:"external_ip,omitempty"`
	InternalIP  string    `json:"internal_ip,omitempty"`
	CreatedAt   time.Time `json:"created_at,omitempty"`
	Provider    string    `json:"provider"`
}

// IsRunning reports whether the instance is in the running state.
func (i Instance) IsRunning() bool {
	return i.Status == StatusRunning
}

// Selector maps instance names to their intended zones. It is supplied by
// the operator per invocation and never persisted; iteration order is not
// significant.
type Selector map[string]string

// Names returns the selector's instance names in unspecified order.
func (s Selector) Names() []string {
	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	return names
}
