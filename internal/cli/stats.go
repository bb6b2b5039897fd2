package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/23sarma/Life-os/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show storage statistics",
		Run:   runStats,
	}

	RootCmd.AddCommand(cmd)
}

func runStats(cmd *cobra.Command, args []string) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	defer s.Close()

	stats, err := store.CollectStats(cmd.Context(), s)
	if err != nil {
		exitErr("stats", err)
	}

	if jsonOutput() {
		printJSON(stats)
		return
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "backend: %s\n", stats.Backend)
	if stats.DBPath != "" {
		fmt.Fprintf(out, "path:    %s (%d bytes)\n", stats.DBPath, stats.DBSizeBytes)
	}
	for _, ns := range stats.Namespaces {
		fmt.Fprintf(out, "  %-16s v%-4d %6d bytes  %s\n", ns.NS, ns.Version, ns.Bytes, ns.UpdatedAt)
	}
}
