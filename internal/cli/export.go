package cli

import (
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export memory and planner snapshots as JSON",
		Run:   runExport,
	}

	RootCmd.AddCommand(cmd)
}

func runExport(cmd *cobra.Command, args []string) {
	a, s := openAssistant(cmd)
	defer s.Close()

	items, err := a.Export(cmd.Context())
	if err != nil {
		exitErr("export", err)
	}

	printJSON(items)
}
