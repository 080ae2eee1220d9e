package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hpratama/taskbin/internal/util"
)

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a task",
	Long: `Delete a task from the shared bin. Requires login.

Asks for confirmation unless --yes is given. The id may be abbreviated to
any unique prefix.`,
	Args: cobra.ExactArgs(1),
	RunE: runRm,
}

var rmYes bool

func init() {
	rootCmd.AddCommand(rmCmd)

	rmCmd.Flags().BoolVarP(&rmYes, "yes", "y", false, "Skip the confirmation prompt")
}

func runRm(cmd *cobra.Command, args []string) error {
	app, err := buildApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.repo.Refresh(cmd.Context()); err != nil {
		return err
	}

	tasks := app.repo.List()
	id, err := resolveID(tasks, args[0])
	if err != nil {
		return err
	}
	target, ok := findTask(tasks, id)
	if !ok {
		return fmt.Errorf("task %s disappeared during delete", util.ShortID(id))
	}

	if !rmYes {
		fmt.Printf("Delete task %s (%s)? [y/N]: ", util.ShortID(target.ID), target.Name)
		reader := bufio.NewReader(os.Stdin)
		answer, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println()
			return nil
		}
		answer = strings.ToLower(strings.TrimSpace(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println("Aborted.")
			return nil
		}
	}

	if err := app.repo.Delete(cmd.Context(), id); err != nil {
		return decorateWriteError(err)
	}

	fmt.Printf("Deleted task %s (%s)\n", util.ShortID(target.ID), target.Name)
	return nil
}
