package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/23sarma/Life-os/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "recall",
		Short: "Retrieve a fact",
		Long:  "Retrieve the fact stored under a key. Without --key, all facts are listed in insertion order.",
		Run:   runRecall,
	}

	cmd.Flags().StringP("key", "k", "", "Key")

	RootCmd.AddCommand(cmd)
}

func runRecall(cmd *cobra.Command, args []string) {
	key, _ := cmd.Flags().GetString("key")

	a, s := openAssistant(cmd)
	defer s.Close()

	if key == "" {
		records := a.Memory.Records()
		if jsonOutput() {
			printJSON(records)
			return
		}
		for _, p := range records {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", p.Key, p.Value)
		}
		return
	}

	v, ok := a.Memory.Recall(key)
	if !ok {
		exitErr("recall", fmt.Errorf("no fact for key %q", key))
	}

	if jsonOutput() {
		printJSON(model.Pair{Key: key, Value: v})
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), v.String())
}
