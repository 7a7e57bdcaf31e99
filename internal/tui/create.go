// Package tui implements the interactive flows: the instance create
// wizard and the SSH instance picker.
package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"vmops/internal/domain"
	"vmops/internal/util"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/huh/spinner"
	"golang.org/x/sync/errgroup"
)

// ErrAborted is returned when a user cancels the interactive flow.
var ErrAborted = errors.New("aborted by user")

type catalogData struct {
	zones         []string
	imageFamilies []string
}

// CreateInstanceForm runs an interactive wizard that collects instance
// create options. Catalog data is fetched up front under a single
// spinner, then the user walks through name, zone, sizing, and a final
// confirmation. Prefill values become form defaults.
func CreateInstanceForm(provider domain.CatalogProvider, prefill domain.CreateInstanceOpts) (*domain.CreateInstanceOpts, error) {
	accessible := os.Getenv("ACCESSIBLE") != ""

	var data catalogData
	fetchErr := spinner.New().
		Title("Fetching instance options...").
		Accessible(accessible).
		Output(os.Stderr).
		ActionWithErr(func(ctx context.Context) error {
			var err error
			data, err = fetchCatalog(ctx, provider, prefill.ImageProject)
			return err
		}).
		Run()
	if fetchErr != nil {
		if errors.Is(fetchErr, huh.ErrUserAborted) || errors.Is(fetchErr, context.Canceled) {
			return nil, ErrAborted
		}
		return nil, fetchErr
	}

	if len(data.zones) == 0 {
		return nil, fmt.Errorf("no zones available")
	}

	opts := prefill

	// --- Form 1: Name + Zone ---

	zoneOpts := buildStringOptions(data.zones, opts.Zone)

	nameField := huh.NewInput().
		Title("Instance name").
		Value(&opts.Name).
		Validate(func(value string) error {
			trimmed := strings.TrimSpace(value)
			if trimmed == "" {
				return errors.New("name is required")
			}
			return util.ValidateInstanceName(trimmed)
		})

	zoneField := huh.NewSelect[string]().
		Title("Zone").
		Options(zoneOpts...).
		Value(&opts.Zone).
		Height(selectHeight(len(zoneOpts), 12))

	if err := runForm(accessible,
		huh.NewGroup(nameField),
		huh.NewGroup(zoneField),
	); err != nil {
		return nil, err
	}

	// --- Form 2: Machine type + Image + Disk + Confirm ---

	machineField := huh.NewInput().
		Title("Machine type").
		Value(&opts.MachineType).
		Validate(huh.ValidateNotEmpty())

	var imageGroup *huh.Group
	if len(data.imageFamilies) == 0 {
		imageGroup = huh.NewGroup(
			huh.NewInput().
				Title("Image family").
				Value(&opts.ImageFamily).
				Validate(huh.ValidateNotEmpty()),
		)
	} else {
		imageOpts := buildStringOptions(data.imageFamilies, opts.ImageFamily)
		imageGroup = huh.NewGroup(
			huh.NewSelect[string]().
				Title("Image family").
				Options(imageOpts...).
				Value(&opts.ImageFamily).
				Height(selectHeight(len(imageOpts), 12)),
		)
	}

	diskSizeField := huh.NewInput().
		Title("Boot disk size").
		Description("e.g. 200GB").
		Value(&opts.BootDiskSize).
		Validate(huh.ValidateNotEmpty())

	confirm := false
	summaryNote := huh.NewNote().
		Title("Summary").
		DescriptionFunc(func() string {
			s := opts
			s.Name = strings.TrimSpace(s.Name)
			return buildSummary(s)
		}, &opts)

	confirmField := huh.NewConfirm().
		Title("Create this instance?").
		Value(&confirm)

	if err := runForm(accessible,
		huh.NewGroup(machineField),
		imageGroup,
		huh.NewGroup(diskSizeField),
		huh.NewGroup(summaryNote, confirmField),
	); err != nil {
		return nil, err
	}

	if !confirm {
		return nil, ErrAborted
	}

	opts.Name = strings.TrimSpace(opts.Name)
	return &opts, nil
}

// runForm creates and runs a huh.Form, translating ErrUserAborted to ErrAborted.
func runForm(accessible bool, groups ...*huh.Group) error {
	err := huh.NewForm(groups...).WithAccessible(accessible).Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrAborted
		}
		return err
	}
	return nil
}

// fetchCatalog fetches zones and image families concurrently.
func fetchCatalog(ctx context.Context, provider domain.CatalogProvider, imageProject string) (catalogData, error) {
	var data catalogData
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		data.zones, err = provider.ListZones(ctx)
		if err != nil {
			return fmt.Errorf("failed to list zones: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		data.imageFamilies, err = provider.ListImageFamilies(ctx, imageProject)
		if err != nil {
			return fmt.Errorf("failed to list image families: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return catalogData{}, err
	}
	return data, nil
}

// buildStringOptions turns values into select options, appending the
// current selection when the catalog doesn't include it.
func buildStringOptions(values []string, selected string) []huh.Option[string] {
	options := make([]huh.Option[string], 0, len(values)+1)
	seen := false
	for _, v := range values {
		options = append(options, huh.NewOption(v, v))
		if v == selected {
			seen = true
		}
	}
	if selected != "" && !seen {
		options = append(options, huh.NewOption("Custom: "+selected, selected))
	}
	return options
}

func buildSummary(opts domain.CreateInstanceOpts) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Name: %s\n", opts.Name)
	fmt.Fprintf(&b, "Zone: %s\n", opts.Zone)
	fmt.Fprintf(&b, "Machine type: %s\n", opts.MachineType)
	fmt.Fprintf(&b, "Image: %s (%s)\n", opts.ImageFamily, opts.ImageProject)
	fmt.Fprintf(&b, "Boot disk: %s %s\n", opts.BootDiskSize, opts.BootDiskType)
	fmt.Fprintf(&b, "Network tag: %s\n", opts.NetworkTag)

	return strings.TrimSpace(b.String())
}

func selectHeight(optionCount, max int) int {
	if optionCount < max {
		return optionCount
	}
	return max
}
