package domain

import "context"

// Provider is the lifecycle surface every cloud backend must implement.
// All operations block until the underlying tool returns; failures are
// passed through wrapped, never classified or retried.
type Provider interface {
	GetDisplayName() string
	ListInstances(ctx context.Context) ([]Instance, error)
	StartInstance(ctx context.Context, name, zone string) error
	StopInstance(ctx context.Context, name, zone string) error
	CreateInstance(ctx context.Context, opts CreateInstanceOpts) error

	// OpenShell attaches an interactive session to the named instance,
	// wiring the caller's stdio through until the session ends.
	OpenShell(ctx context.Context, name, zone string) error
}

// FirewallConfigurer is implemented by providers that can apply
// port-to-tag ingress rules. Optional; commands probe with a type
// assertion, mirroring how optional capabilities are discovered elsewhere.
type FirewallConfigurer interface {
	ApplyFirewallRules(ctx context.Context, rules []FirewallRule) error
}

// CatalogProvider is implemented by providers that can enumerate the
// choices needed by the interactive create wizard.
type CatalogProvider interface {
	ListZones(ctx context.Context) ([]string, error)
	ListImageFamilies(ctx context.Context, project string) ([]string, error)
}
