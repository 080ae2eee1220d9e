package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hpratama/taskbin/internal/tui"
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Open the interactive board",
	Long: `Open the interactive task board.

The board shows the shared collection, live-filters it as you type, and
edits tasks in place once you log in. Write access follows the persisted
passcode, so a login or logout in another terminal shows up here too.`,
	RunE: runBoard,
}

func init() {
	rootCmd.AddCommand(boardCmd)
}

func runBoard(cmd *cobra.Command, args []string) error {
	app, err := buildApp()
	if err != nil {
		return err
	}
	defer app.Close()

	// Watch the credential file so a login elsewhere flips the badge.
	if err := app.gate.Watch(); err != nil {
		app.log.Warn("credential watch unavailable", "error", err)
	}

	return tui.Run(app.repo, app.gate, app.bus, app.cfg.TaskOptions(), app.cfg.Options.DefaultStatus)
}
