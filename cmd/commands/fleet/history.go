package fleet

import (
	"fmt"
	"text/tabwriter"
	"time"

	"vmops/internal/oplog"
	"vmops/internal/tui/styles"

	"github.com/charmbracelet/x/ansi"
	"github.com/spf13/cobra"
)

// maxDetailWidth caps the detail column so one long gcloud error does
// not wreck the table.
const maxDetailWidth = 60

// HistoryCommand returns a cobra.Command that prints the operation log.
func HistoryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent fleet operations",
		Long: `List the most recent operations recorded in the local operation log.

Examples:
  vmops fleet history
  vmops fleet history --limit 50`,
		RunE:         runHistory,
		SilenceUsage: true,
	}

	cmd.Flags().Int("limit", 20, "Maximum number of records to show")

	return cmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("limit")

	repo, err := oplog.Open()
	if err != nil {
		return fmt.Errorf("failed to open operation log: %w", err)
	}
	defer repo.Close()

	records, err := repo.ListRecent(limit)
	if err != nil {
		return fmt.Errorf("failed to read operation log: %w", err)
	}

	if len(records) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No operations recorded.")
		return nil
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "WHEN\tOP\tINSTANCE\tZONE\tOUTCOME\tTOOK\tDETAIL")

	for _, record := range records {
		outcome := record.Outcome
		if record.Outcome == oplog.OutcomeError {
			outcome = styles.ErrorText.Render(outcome)
		} else {
			outcome = styles.SuccessText.Render(outcome)
		}

		detail := ansi.Truncate(record.Detail, maxDetailWidth, "…")

		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			record.CreatedAt.Local().Format("2006-01-02 15:04"),
			record.Op,
			record.Instance,
			record.Zone,
			outcome,
			record.Duration.Round(10*time.Millisecond),
			detail,
		)
	}

	return w.Flush()
}
