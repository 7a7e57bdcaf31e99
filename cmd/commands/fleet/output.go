package fleet

import (
	"fmt"
	"io"
	"text/tabwriter"

	"vmops/internal/domain"
)

// indexByName builds a name lookup over a fleet listing.
func indexByName(instances []domain.Instance) map[string]domain.Instance {
	byName := make(map[string]domain.Instance, len(instances))
	for _, inst := range instances {
		byName[inst.Name] = inst
	}
	return byName
}

// printInstanceTable writes a fleet listing as an aligned table.
func printInstanceTable(w io.Writer, instances []domain.Instance) {
	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	fmt.Fprintln(tw, "NAME\tZONE\tSTATUS\tTYPE\tEXTERNAL IP")
	fmt.Fprintln(tw, "----\t----\t------\t----\t-----------")

	for _, inst := range instances {
		external := inst.ExternalIP
		if external == "" {
			external = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			inst.Name,
			inst.Zone,
			inst.Status,
			inst.MachineType,
			external,
		)
	}

	tw.Flush()
}
