package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/hpratama/taskbin/internal/filter"
	"github.com/hpratama/taskbin/internal/task"
	"github.com/hpratama/taskbin/internal/util"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	Long: `Fetch the shared bin and print the task collection.

Listing is read-only and needs no login. Filters combine: a task is shown
only when it matches every filter given.

Examples:
  # All tasks
  taskbin list

  # Open OM tasks mentioning "portal"
  taskbin list --project OM --status pending --status "in progress" --search portal

  # Everything due on a specific day
  taskbin list --due 2025-01-31`,
	RunE: runList,
}

var (
	listSearch   string
	listStatuses []string
	listProject  string
	listDue      string
)

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().StringVarP(&listSearch, "search", "s", "", "Case-insensitive substring matched against every field")
	listCmd.Flags().StringArrayVar(&listStatuses, "status", nil, "Only show tasks with this status (repeatable)")
	listCmd.Flags().StringVarP(&listProject, "project", "p", "", "Only show tasks in this project")
	listCmd.Flags().StringVar(&listDue, "due", "", "Only show tasks due on this day (YYYY-MM-DD)")
}

func runList(cmd *cobra.Command, args []string) error {
	app, err := buildApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if err := app.repo.Refresh(cmd.Context()); err != nil {
		return err
	}

	query := filter.Query{
		Text:     listSearch,
		Statuses: listStatuses,
		Project:  listProject,
	}
	if listDue != "" {
		due, err := task.ParseDate(listDue)
		if err != nil {
			return err
		}
		query.Due = due
	}

	tasks := filter.Apply(filter.SortByDeadline(app.repo.List()), query)
	if len(tasks) == 0 {
		fmt.Println("No tasks found.")
		return nil
	}

	printTasks(tasks)
	if !app.gate.CanWrite() {
		fmt.Println("\n(read-only: run 'taskbin login' to make changes)")
	}
	return nil
}

// printTasks renders the collection as an aligned table.
func printTasks(tasks []task.Task) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPROJECT\tDEPLOY\tDEADLINE\tSTATUS\tNOTE")
	for _, t := range tasks {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			util.ShortID(t.ID), t.Name, t.Project, t.Deploy, t.Deadline, t.Status, t.Note)
	}
	_ = w.Flush()
}
