package tui

import (
	"strings"
	"testing"

	"vmops/internal/domain"
)

func TestBuildStringOptions_AppendsCustomSelection(t *testing.T) {
	options := buildStringOptions([]string{"us-central1-a", "us-central1-b"}, "europe-west1-b")

	if len(options) != 3 {
		t.Fatalf("expected 3 options, got %d", len(options))
	}
	last := options[len(options)-1]
	if last.Value != "europe-west1-b" {
		t.Errorf("expected custom value appended, got %q", last.Value)
	}
	if !strings.HasPrefix(last.Key, "Custom:") {
		t.Errorf("expected custom label, got %q", last.Key)
	}
}

func TestBuildStringOptions_NoDuplicateForKnownSelection(t *testing.T) {
	options := buildStringOptions([]string{"us-central1-a", "us-central1-b"}, "us-central1-a")

	if len(options) != 2 {
		t.Fatalf("expected 2 options, got %d", len(options))
	}
}

func TestBuildStringOptions_EmptySelection(t *testing.T) {
	options := buildStringOptions([]string{"a"}, "")
	if len(options) != 1 {
		t.Fatalf("expected 1 option, got %d", len(options))
	}
}

func TestBuildSummary(t *testing.T) {
	opts := domain.CreateInstanceOpts{
		Name:         "worker-1",
		Zone:         "us-central1-a",
		MachineType:  "e2-standard-4",
		ImageFamily:  "ubuntu-2204-lts",
		ImageProject: "ubuntu-os-cloud",
		BootDiskSize: "200GB",
		BootDiskType: "pd-balanced",
		NetworkTag:   "vmops-managed",
	}

	summary := buildSummary(opts)
	for _, want := range []string{
		"Name: worker-1",
		"Zone: us-central1-a",
		"Machine type: e2-standard-4",
		"ubuntu-2204-lts (ubuntu-os-cloud)",
		"200GB pd-balanced",
		"Network tag: vmops-managed",
	} {
		if !strings.Contains(summary, want) {
			t.Errorf("expected summary to contain %q, got:\n%s", want, summary)
		}
	}
}

func TestSelectHeight(t *testing.T) {
	if got := selectHeight(3, 12); got != 3 {
		t.Errorf("expected 3, got %d", got)
	}
	if got := selectHeight(40, 12); got != 12 {
		t.Errorf("expected 12, got %d", got)
	}
}
