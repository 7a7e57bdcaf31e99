package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"vmops/internal/domain"
)

// GCloudProvider implements domain.Provider by shelling out to the gcloud
// CLI. Every operation is a single blocking invocation; gcloud's own exit
// status and stderr are the only failure information surfaced. The tool
// must already be authenticated (gcloud auth login) before use.
type GCloudProvider struct {
	runner  Runner
	project string
}

// NewGCloudProvider creates a provider that invokes gcloud through the
// given runner. An empty project leaves project selection to the gcloud
// active configuration.
func NewGCloudProvider(runner Runner, project string) *GCloudProvider {
	return &GCloudProvider{runner: runner, project: project}
}

// RegisterGCloud registers the gcloud provider factory with the global
// registry. The factory fails fast when the gcloud binary is not on PATH.
func RegisterGCloud() {
	Register("gcloud", func(opts Options) (domain.Provider, error) {
		if _, err := exec.LookPath("gcloud"); err != nil {
			return nil, fmt.Errorf("gcloud not found on PATH: %w", domain.ErrCLIUnavailable)
		}
		return NewGCloudProvider(ExecRunner{}, opts.Project), nil
	})
}

func (g *GCloudProvider) GetDisplayName() string {
	return "Google Cloud"
}

// args prepends the compute subcommand path and appends the project scope.
func (g *GCloudProvider) args(parts ...string) []string {
	out := append([]string{"compute"}, parts...)
	if g.project != "" {
		out = append(out, "--project", g.project)
	}
	return out
}

// gcloudInstance mirrors the fields of `gcloud compute instances list
// --format=json` that the CLI consumes.
type gcloudInstance struct {
	Name              string `json:"name"`
	Zone              string `json:"zone"`
	Status            string `json:"status"`
	MachineType       string `json:"machineType"`
	CreationTimestamp string `json:"creationTimestamp"`
	NetworkInterfaces []struct {
		NetworkIP     string `json:"networkIP"`
		AccessConfigs []struct {
			NatIP string `json:"natIP"`
		} `json:"accessConfigs"`
	} `json:"networkInterfaces"`
}

// ListInstances retrieves all instances visible to the active project.
func (g *GCloudProvider) ListInstances(ctx context.Context) ([]domain.Instance, error) {
	out, err := g.runner.Output(ctx, "gcloud", g.args("instances", "list", "--format=json")...)
	if err != nil {
		return nil, fmt.Errorf("failed to list instances: %w", err)
	}

	var raw []gcloudInstance
	if err := json.Unmarshal(out, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse instance list: %w", err)
	}

	instances := make([]domain.Instance, 0, len(raw))
	for _, r := range raw {
		instances = append(instances, toDomainInstance(r))
	}
	return instances, nil
}

// toDomainInstance converts a gcloud JSON record to a domain.Instance.
func toDomainInstance(r gcloudInstance) domain.Instance {
	inst := domain.Instance{
		Name:        r.Name,
		Zone:        lastURLSegment(r.Zone),
		Status:      r.Status,
		MachineType: lastURLSegment(r.MachineType),
		Provider:    "gcloud",
	}

	if len(r.NetworkInterfaces) > 0 {
		ni := r.NetworkInterfaces[0]
		inst.InternalIP = ni.NetworkIP
		if len(ni.AccessConfigs) > 0 {
			inst.ExternalIP = ni.AccessConfigs[0].NatIP
		}
	}

	if r.CreationTimestamp != "" {
		if t, err := time.Parse(time.RFC3339, r.CreationTimestamp); err == nil {
			inst.CreatedAt = t
		}
	}

	return inst
}

// lastURLSegment trims the resource-URL prefix gcloud puts on zone and
// machine-type fields, e.g. ".../zones/us-central1-a" -> "us-central1-a".
func lastURLSegment(s string) string {
	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		return s[i+1:]
	}
	return s
}

func (g *GCloudProvider) StartInstance(ctx context.Context, name, zone string) error {
	_, err := g.runner.Output(ctx, "gcloud", g.args("instances", "start", name, "--zone", zone)...)
	if err != nil {
		return fmt.Errorf("failed to start instance %s: %w", name, err)
	}
	return nil
}

func (g *GCloudProvider) StopInstance(ctx context.Context, name, zone string) error {
	_, err := g.runner.Output(ctx, "gcloud", g.args("instances", "stop", name, "--zone", zone)...)
	if err != nil {
		return fmt.Errorf("failed to stop instance %s: %w", name, err)
	}
	return nil
}

func (g *GCloudProvider) CreateInstance(ctx context.Context, opts domain.CreateInstanceOpts) error {
	args := g.args("instances", "create", opts.Name,
		"--zone", opts.Zone,
		"--machine-type", opts.MachineType,
		"--image-family", opts.ImageFamily,
		"--image-project", opts.ImageProject,
		"--boot-disk-size", opts.BootDiskSize,
		"--boot-disk-type", opts.BootDiskType,
		"--tags", opts.NetworkTag,
	)

	_, err := g.runner.Output(ctx, "gcloud", args...)
	if err != nil {
		return fmt.Errorf("failed to create instance %s: %w", opts.Name, err)
	}
	return nil
}

// OpenShell attaches an interactive SSH session via `gcloud compute ssh`.
func (g *GCloudProvider) OpenShell(ctx context.Context, name, zone string) error {
	err := g.runner.Interactive(ctx, "gcloud", g.args("ssh", name, "--zone", zone)...)
	if err != nil {
		return fmt.Errorf("ssh session to %s failed: %w", name, err)
	}
	return nil
}

// ApplyFirewallRules creates one ingress rule per port/tag pair. Rule
// names are derived from the pair so re-running with the same rules fails
// on the provider side rather than duplicating.
func (g *GCloudProvider) ApplyFirewallRules(ctx context.Context, rules []domain.FirewallRule) error {
	for _, rule := range rules {
		ruleName := fmt.Sprintf("allow-%s-%s", rule.Tag, rule.Port)
		args := g.args("firewall-rules", "create", ruleName,
			"--allow", "tcp:"+rule.Port,
			"--target-tags", rule.Tag,
			"--direction", "INGRESS",
		)
		if _, err := g.runner.Output(ctx, "gcloud", args...); err != nil {
			return fmt.Errorf("failed to create firewall rule %s: %w", ruleName, err)
		}
	}
	return nil
}

// ListZones enumerates zone names for the interactive create wizard.
func (g *GCloudProvider) ListZones(ctx context.Context) ([]string, error) {
	out, err := g.runner.Output(ctx, "gcloud", g.args("zones", "list", "--format=json")...)
	if err != nil {
		return nil, fmt.Errorf("failed to list zones: %w", err)
	}

	var raw []struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(out, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse zone list: %w", err)
	}

	zones := make([]string, 0, len(raw))
	for _, z := range raw {
		zones = append(zones, z.Name)
	}
	return zones, nil
}

// ListImageFamilies enumerates distinct image families in the given
// image project for the interactive create wizard.
func (g *GCloudProvider) ListImageFamilies(ctx context.Context, project string) ([]string, error) {
	// The image project (e.g. ubuntu-os-cloud) replaces the compute
	// project scope for this one call, so bypass g.args here.
	args := []string{"compute", "images", "list", "--format=json"}
	if project != "" {
		args = append(args, "--project", project)
	} else if g.project != "" {
		args = append(args, "--project", g.project)
	}

	out, err := g.runner.Output(ctx, "gcloud", args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}

	var raw []struct {
		Family string `json:"family"`
	}
	if err := json.Unmarshal(out, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse image list: %w", err)
	}

	seen := make(map[string]bool, len(raw))
	families := make([]string, 0, len(raw))
	for _, img := range raw {
		if img.Family == "" || seen[img.Family] {
			continue
		}
		seen[img.Family] = true
		families = append(families, img.Family)
	}
	return families, nil
}
