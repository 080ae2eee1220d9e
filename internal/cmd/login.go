package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/hpratama/taskbin/internal/errors"
)

var loginCmd = &cobra.Command{
	Use:   "login [passcode]",
	Short: "Unlock write access",
	Long: `Unlock write access with the shared passcode.

Without an argument the passcode is read from the terminal without echo.
A wrong passcode, or an aborted prompt, leaves the session read-only.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLogin,
}

func init() {
	rootCmd.AddCommand(loginCmd)
}

func runLogin(cmd *cobra.Command, args []string) error {
	app, err := buildApp()
	if err != nil {
		return err
	}
	defer app.Close()

	var passcode string
	if len(args) == 1 {
		passcode = args[0]
	} else {
		passcode, err = promptPasscode()
		if err != nil {
			// An aborted prompt must not leave a half-entered grant
			// behind, so drop whatever was persisted before.
			if revokeErr := app.gate.Revoke(); revokeErr != nil {
				return revokeErr
			}
			fmt.Println("\nLogin cancelled; write access revoked.")
			return nil
		}
	}

	if err := app.gate.Grant(passcode); err != nil {
		if errors.Is(err, errors.ErrInvalidCredential) {
			return fmt.Errorf("wrong passcode")
		}
		return err
	}

	fmt.Println("Write access unlocked.")
	return nil
}

// promptPasscode reads the passcode without echoing it.
func promptPasscode() (string, error) {
	fmt.Print("Passcode: ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
