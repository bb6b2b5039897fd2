package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/23sarma/Life-os/internal/model"
)

func init() {
	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	addCmd := &cobra.Command{
		Use:   "add [text]",
		Short: "Add a task",
		Args:  cobra.MinimumNArgs(1),
		Run:   runTaskAdd,
	}
	addCmd.Flags().StringP("priority", "p", "medium", "Priority: low, medium, high")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Run:   runTaskList,
	}
	listCmd.Flags().Bool("open", false, "Only show tasks not yet completed")

	doneCmd := &cobra.Command{
		Use:   "done [id]",
		Short: "Mark a task completed",
		Args:  cobra.ExactArgs(1),
		Run:   runTaskDone,
	}

	taskCmd.AddCommand(addCmd, listCmd, doneCmd)
	RootCmd.AddCommand(taskCmd)
}

func runTaskAdd(cmd *cobra.Command, args []string) {
	priority, _ := cmd.Flags().GetString("priority")

	a, s := openAssistant(cmd)
	defer s.Close()

	t, err := a.Planner.AddTask(cmd.Context(), strings.Join(args, " "), model.Priority(priority))
	if err != nil {
		exitErr("add task", err)
	}

	if jsonOutput() {
		printJSON(t)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "added task %d\n", t.ID)
}

func runTaskList(cmd *cobra.Command, args []string) {
	openOnly, _ := cmd.Flags().GetBool("open")

	a, s := openAssistant(cmd)
	defer s.Close()

	tasks := a.Planner.Tasks()
	if openOnly {
		kept := tasks[:0]
		for _, t := range tasks {
			if !t.Completed {
				kept = append(kept, t)
			}
		}
		tasks = kept
	}

	if jsonOutput() {
		printJSON(tasks)
		return
	}
	for _, t := range tasks {
		check := " "
		if t.Completed {
			check = "x"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "[%s] %d  %-6s  %s\n", check, t.ID, t.Priority, t.Text)
	}
}

func runTaskDone(cmd *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		exitErr("parse id", err)
	}

	a, s := openAssistant(cmd)
	defer s.Close()

	if err := a.Planner.CompleteTask(cmd.Context(), id); err != nil {
		exitErr("complete task", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), `{"ok":true,"id":%d}`+"\n", id)
}
