package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alfredjeanlab/outreach/internal/ui"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with the device-code flow and cache the session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(true)
		if err != nil {
			return err
		}
		if !ui.IsInteractive() {
			a.logger.Warn("stdin is not a terminal; the device code below needs a human")
		}
		if _, err := a.auth.Login(cmd.Context()); err != nil {
			return err
		}
		fmt.Println("Signed in.")
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Drop the cached session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(true)
		if err != nil {
			return err
		}
		if err := a.auth.Logout(); err != nil {
			return err
		}
		fmt.Println("Signed out.")
		return nil
	},
}
