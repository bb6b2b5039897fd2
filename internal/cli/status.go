package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/23sarma/Life-os/internal/model"
	"github.com/23sarma/Life-os/internal/monitor"
	"github.com/23sarma/Life-os/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show assistant status and storage statistics",
		Run:   runStatus,
	}

	cmd.Flags().BoolP("watch", "w", false, "Keep refreshing until interrupted")

	RootCmd.AddCommand(cmd)
}

type statusReport struct {
	Status  model.SystemStatus `json:"status"`
	Storage *store.Stats       `json:"storage"`
}

func runStatus(cmd *cobra.Command, args []string) {
	watch, _ := cmd.Flags().GetBool("watch")

	a, s := openAssistant(cmd)
	defer s.Close()

	if !watch {
		stats, err := store.CollectStats(cmd.Context(), s)
		if err != nil {
			exitErr("stats", err)
		}
		if jsonOutput() {
			printJSON(statusReport{Status: a.SystemStatus(), Storage: stats})
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), renderStatus(a.SystemStatus()))
		fmt.Fprintf(cmd.OutOrStdout(), "backend %s, %d bytes in %d namespaces\n", stats.Backend, stats.TotalBytes, len(stats.Namespaces))
		return
	}

	out := cmd.OutOrStdout()
	m, err := monitor.New(a, cfg.Assistant.StatusInterval, func(st model.SystemStatus) {
		if jsonOutput() {
			printJSON(st)
			return
		}
		fmt.Fprintln(out, renderStatus(st))
	}, logger)
	if err != nil {
		exitErr("status", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m.Start()
	<-ctx.Done()
	m.Stop()
}
