package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "say [text]",
		Short: "Send one message and print the reply",
		Args:  cobra.MinimumNArgs(1),
		Run:   runSay,
	}

	RootCmd.AddCommand(cmd)
}

func runSay(cmd *cobra.Command, args []string) {
	text := strings.Join(args, " ")

	a, s := openAssistant(cmd)
	defer s.Close()

	reply, err := a.ProcessCommand(cmd.Context(), text)
	if err != nil {
		exitErr("say", err)
	}

	if jsonOutput() {
		printJSON(map[string]string{"input": text, "reply": reply})
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), reply)
}
