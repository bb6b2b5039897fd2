package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the interaction log",
		Run:   runLog,
	}

	cmd.Flags().IntP("limit", "l", 20, "Max entries (0 for all)")
	cmd.Flags().Bool("facts-only", false, "Only show remembered facts")

	RootCmd.AddCommand(cmd)
}

func runLog(cmd *cobra.Command, args []string) {
	limit, _ := cmd.Flags().GetInt("limit")
	factsOnly, _ := cmd.Flags().GetBool("facts-only")

	a, s := openAssistant(cmd)
	defer s.Close()

	entries := a.Memory.Entries(limit)
	if factsOnly {
		kept := entries[:0]
		for _, e := range entries {
			if e.IsFact() {
				kept = append(kept, e)
			}
		}
		entries = kept
	}

	if jsonOutput() {
		printJSON(entries)
		return
	}

	out := cmd.OutOrStdout()
	for _, e := range entries {
		ts := time.UnixMilli(e.Timestamp).Format(time.DateTime)
		if e.IsFact() {
			fmt.Fprintf(out, "%s  %s = %s\n", ts, e.Key, e.Value)
		} else {
			fmt.Fprintf(out, "%s  > %s\n", ts, e.Input)
		}
	}
}
