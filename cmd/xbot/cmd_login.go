package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to X in a browser window and save the session",
	Long:  "Opens a visible browser on the X login page and waits for you to reach the home timeline. The session cookies are saved for later runs.",
	RunE:  runLogin,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the saved X session",
	RunE:  runLogout,
}

var loginForce bool

func init() {
	loginCmd.Flags().BoolVar(&loginForce, "force", false, "sign in again even when a valid session is saved")
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	m, err := newAuthManager()
	if err != nil {
		return err
	}
	if m.IsAuthenticated() && !loginForce {
		fmt.Fprintln(cmd.OutOrStdout(), "already signed in; use --force to sign in again")
		return nil
	}
	return m.Login(cmd.Context())
}

func runLogout(cmd *cobra.Command, args []string) error {
	if err := loadConfig(); err != nil {
		return err
	}
	m, err := newAuthManager()
	if err != nil {
		return err
	}
	if err := m.Logout(); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "session cleared")
	return nil
}
