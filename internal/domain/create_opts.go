package domain

// CreateInstanceOpts carries the parameters for creating a single instance.
// All fields are plain strings with literal defaults taken from the config;
// mutual consistency (e.g. whether the disk is large enough for the image)
// is not validated here.
type CreateInstanceOpts struct {
	Name         string
	Zone         string
	MachineType  string
	ImageFamily  string
	ImageProject string

	// BootDiskSize is a provider-format size string such as "200GB".
	BootDiskSize string
	BootDiskType string

	// NetworkTag labels the instance so firewall rules can target it.
	NetworkTag string
}

// FirewallRule describes a single port-to-tag ingress rule. The tag is a
// label only; nothing reads it back or checks it against open ports.
type FirewallRule struct {
	Port string
	Tag  string
}
