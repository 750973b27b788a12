// Command outreach runs a one-shot form-invitation campaign over
// Microsoft 365: it sends invites, tracks per-recipient state in a CSV
// ledger, reconciles externally collected form responses, and reminds
// non-responders. It runs to completion once per invocation; scheduling
// is the caller's problem.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	ledgerPath     string
	recipientsPath string
	campaignPath   string
	responsesPath  string
)

var rootCmd = &cobra.Command{
	Use:           "outreach",
	Short:         "Form invitation campaign runner for Microsoft 365",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&ledgerPath, "ledger", "tracking.csv", "path to the tracking ledger")
	rootCmd.PersistentFlags().StringVar(&recipientsPath, "recipients", "recipients.csv", "path to the recipient list")
	rootCmd.PersistentFlags().StringVar(&campaignPath, "config", "campaign.toml", "path to the campaign policy file")

	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
