package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hpratama/taskbin/internal/task"
	"github.com/hpratama/taskbin/internal/util"
)

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Update a task",
	Long: `Update fields of an existing task. Requires login.

Only the flags you pass change; every other field keeps its current value.
The id may be abbreviated to any unique prefix, like the ones printed by
'taskbin list'.`,
	Args: cobra.ExactArgs(1),
	RunE: runEdit,
}

var (
	editName        string
	editDescription string
	editProject     string
	editDeploy      string
	editDeadline    string
	editStatus      string
	editNote        string
)

func init() {
	rootCmd.AddCommand(editCmd)

	editCmd.Flags().StringVarP(&editName, "name", "n", "", "Task name")
	editCmd.Flags().StringVarP(&editDescription, "description", "d", "", "Task description")
	editCmd.Flags().StringVarP(&editProject, "project", "p", "", "Project")
	editCmd.Flags().StringVar(&editDeploy, "deploy", "", "Deployment target")
	editCmd.Flags().StringVar(&editDeadline, "deadline", "", "Deadline as YYYY-MM-DD")
	editCmd.Flags().StringVarP(&editStatus, "status", "s", "", "Status")
	editCmd.Flags().StringVar(&editNote, "note", "", "Free-form note")
}

func runEdit(cmd *cobra.Command, args []string) error {
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
	current, ok := findTask(tasks, id)
	if !ok {
		return fmt.Errorf("task %s disappeared during edit", util.ShortID(id))
	}

	// Start from the task as it stands and overlay only the flags the
	// user actually set, so an empty flag value can still clear a field.
	draft := task.DraftOf(current)
	flags := cmd.Flags()
	if flags.Changed("name") {
		draft.Name = editName
	}
	if flags.Changed("description") {
		draft.Description = editDescription
	}
	if flags.Changed("project") {
		draft.Project = editProject
	}
	if flags.Changed("deploy") {
		draft.Deploy = editDeploy
	}
	if flags.Changed("status") {
		draft.Status = editStatus
	}
	if flags.Changed("note") {
		draft.Note = editNote
	}
	if flags.Changed("deadline") {
		deadline, err := task.ParseDate(editDeadline)
		if err != nil {
			return err
		}
		draft.Deadline = deadline
	}

	updated, err := app.repo.Update(cmd.Context(), id, draft)
	if err != nil {
		return decorateWriteError(err)
	}

	fmt.Printf("Updated task %s (%s)\n", util.ShortID(updated.ID), updated.Name)
	return nil
}
