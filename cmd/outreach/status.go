package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/outreach/internal/ledger"
	"github.com/alfredjeanlab/outreach/internal/model"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Summarize the tracking ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		rows, err := ledger.NewStore(ledgerPath).Load()
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			fmt.Println("Ledger is empty. Run `outreach send` first.")
			return nil
		}

		counts := map[model.State]int{}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "EMAIL\tSTATE\tSENT\tDUE\tRESPONDED\tREMINDED")
		for _, row := range rows {
			counts[row.State()]++
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				row.Email, row.State(),
				day(row.SentAt), day(row.DueAt),
				day(row.RespondedAt), day(row.ReminderSentAt))
		}
		if err := w.Flush(); err != nil {
			return err
		}

		fmt.Printf("\n%d row(s): %d new, %d invited, %d reminded, %d responded\n",
			len(rows),
			counts[model.StateNew], counts[model.StateInvited],
			counts[model.StateReminded], counts[model.StateResponded])
		return nil
	},
}

func day(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format("2006-01-02")
}
