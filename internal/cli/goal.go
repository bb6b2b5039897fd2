package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	goalCmd := &cobra.Command{
		Use:   "goal",
		Short: "Manage goals",
	}

	addCmd := &cobra.Command{
		Use:   "add [text]",
		Short: "Add a goal",
		Args:  cobra.MinimumNArgs(1),
		Run:   runGoalAdd,
	}
	addCmd.Flags().String("deadline", "", "Optional deadline, free text")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List goals",
		Run:   runGoalList,
	}

	goalCmd.AddCommand(addCmd, listCmd)
	RootCmd.AddCommand(goalCmd)
}

func runGoalAdd(cmd *cobra.Command, args []string) {
	deadline, _ := cmd.Flags().GetString("deadline")

	a, s := openAssistant(cmd)
	defer s.Close()

	g, err := a.Planner.AddGoal(cmd.Context(), strings.Join(args, " "), deadline)
	if err != nil {
		exitErr("add goal", err)
	}

	if jsonOutput() {
		printJSON(g)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "added goal %d\n", g.ID)
}

func runGoalList(cmd *cobra.Command, args []string) {
	a, s := openAssistant(cmd)
	defer s.Close()

	goals := a.Planner.Goals()
	if jsonOutput() {
		printJSON(goals)
		return
	}
	for _, g := range goals {
		line := fmt.Sprintf("%d  %3d%%  %s", g.ID, g.Progress, g.Text)
		if g.Deadline != "" {
			line += "  (by " + g.Deadline + ")"
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}
}
