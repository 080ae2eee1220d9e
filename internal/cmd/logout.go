package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Lock write access",
	Long:  `Drop the persisted passcode and return the session to read-only.`,
	RunE:  runLogout,
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}

func runLogout(cmd *cobra.Command, args []string) error {
	app, err := buildApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.gate.Revoke(); err != nil {
		return err
	}

	fmt.Println("Write access locked.")
	return nil
}
