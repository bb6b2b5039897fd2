package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase memory, tasks and goals",
		Run:   runReset,
	}

	cmd.Flags().Bool("yes", false, "Confirm the reset (irreversible)")

	RootCmd.AddCommand(cmd)
}

func runReset(cmd *cobra.Command, args []string) {
	yes, _ := cmd.Flags().GetBool("yes")
	if !yes {
		exitErr("reset", fmt.Errorf("refusing to erase without --yes"))
	}

	a, s := openAssistant(cmd)
	defer s.Close()

	if err := a.Reset(cmd.Context()); err != nil {
		exitErr("reset", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), `{"ok":true}`)
}
