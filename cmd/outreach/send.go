package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	sendSubject  string
	sendFormLink string
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send invites to every recipient not yet contacted",
	Long: `Merges the recipient list into the tracking ledger and sends an
invite to every row without a sent timestamp. The ledger is saved after
each send, so an interrupted run resumes where it stopped.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(true)
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		d := a.driver(a.graphClient(), nil)
		sent, sendErr := d.Send(ctx, sendSubject, sendFormLink)
		a.backup(ctx)
		if sendErr != nil {
			return fmt.Errorf("after %d invite(s): %w", sent, sendErr)
		}
		fmt.Printf("Sent %d invite(s)\n", sent)
		return nil
	},
}

func init() {
	sendCmd.Flags().StringVar(&sendSubject, "subject", "", "invite subject line")
	sendCmd.Flags().StringVar(&sendFormLink, "form-link", "", "form URL for the mail body")
	sendCmd.MarkFlagRequired("subject")
	sendCmd.MarkFlagRequired("form-link")
}
