package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hpratama/taskbin/internal/task"
	"github.com/hpratama/taskbin/internal/util"
)

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a task",
	Long: `Create a task in the shared bin. Requires login.

Name, description, project, and deadline are required. Status defaults to
the configured default status; project and deploy must come from the
configured option sets (see 'taskbin list' output or your config file).

Example:
  taskbin add --name "Portal rollout" --description "Roll out the customer portal" \
    --project OM --deadline 2025-02-01 --status pending --note "coordinate with Rina"`,
	RunE: runAdd,
}

var (
	addName        string
	addDescription string
	addProject     string
	addDeploy      string
	addDeadline    string
	addStatus      string
	addNote        string
)

func init() {
	rootCmd.AddCommand(addCmd)

	addCmd.Flags().StringVarP(&addName, "name", "n", "", "Task name (required)")
	addCmd.Flags().StringVarP(&addDescription, "description", "d", "", "Task description (required)")
	addCmd.Flags().StringVarP(&addProject, "project", "p", "", "Project (required)")
	addCmd.Flags().StringVar(&addDeploy, "deploy", "", "Deployment target (optional)")
	addCmd.Flags().StringVar(&addDeadline, "deadline", "", "Deadline as YYYY-MM-DD (required)")
	addCmd.Flags().StringVarP(&addStatus, "status", "s", "", "Status (default: configured default status)")
	addCmd.Flags().StringVar(&addNote, "note", "", "Free-form note (optional)")
}

func runAdd(cmd *cobra.Command, args []string) error {
	app, err := buildApp()
	if err != nil {
		return err
	}
	defer app.Close()

	// Mutations are a read-modify-write of the whole document: fetch first
	// so the overwrite carries the latest collection, not a stale one.
	if err := app.repo.Refresh(cmd.Context()); err != nil {
		return err
	}

	draft := task.Draft{
		Name:        addName,
		Description: addDescription,
		Project:     addProject,
		Deploy:      addDeploy,
		Status:      addStatus,
		Note:        addNote,
	}
	if draft.Status == "" {
		draft.Status = app.cfg.Options.DefaultStatus
	}
	if addDeadline != "" {
		deadline, err := task.ParseDate(addDeadline)
		if err != nil {
			return err
		}
		draft.Deadline = deadline
	}

	created, err := app.repo.Create(cmd.Context(), draft)
	if err != nil {
		return decorateWriteError(err)
	}

	fmt.Printf("Created task %s (%s)\n", util.ShortID(created.ID), created.Name)
	return nil
}
