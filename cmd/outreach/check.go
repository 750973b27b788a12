package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	checkSubject  string
	checkFormLink string
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Reconcile form responses and remind non-responders",
	Long: `Marks ledger rows as responded by matching collected form responses
(exact email first, then corporate-domain propagation), then sends a
reminder to every row still pending past its deadline.

Responses come from the --responses file when given, from spreadsheets
found on OneDrive/SharePoint when OUTREACH_FORMS_HINT is set, or from the
campaign's configured local export otherwise.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(true)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		subject := checkSubject
		if subject == "" {
			subject = a.policy.Reminders.Subject
		}

		client := a.graphClient()
		d := a.driver(client, a.source(client))
		res, checkErr := d.Check(ctx, subject, checkFormLink)
		a.backup(ctx)
		if checkErr != nil {
			return checkErr
		}
		fmt.Printf("Marked %d responded, sent %d reminder(s)\n", res.Responded, res.Reminded)
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVar(&checkSubject, "subject", "", "reminder subject line (default from campaign config)")
	checkCmd.Flags().StringVar(&checkFormLink, "form-link", "", "form URL for the reminder body")
	checkCmd.Flags().StringVar(&responsesPath, "responses", "", "local form-response CSV (overrides remote discovery)")
	checkCmd.MarkFlagRequired("form-link")
}
