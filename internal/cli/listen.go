package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "listen",
		Short: "Capture one spoken message",
		Long:  "Capture one utterance with the configured transcription command and print the text. With --reply the text is also sent to the assistant.",
		Run:   runListen,
	}

	cmd.Flags().Duration("timeout", 30*time.Second, "Give up after this long (0 for no limit)")
	cmd.Flags().Bool("reply", false, "Send the transcript to the assistant")

	RootCmd.AddCommand(cmd)
}

func runListen(cmd *cobra.Command, args []string) {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	reply, _ := cmd.Flags().GetBool("reply")

	a, s := openAssistant(cmd)
	defer s.Close()

	text, err := captureOnce(cmd.Context(), a.Speech, timeout)
	if err != nil {
		exitErr("listen", err)
	}

	if !reply {
		if jsonOutput() {
			printJSON(map[string]string{"input": text})
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return
	}

	answer, err := a.ProcessCommand(cmd.Context(), text)
	if err != nil {
		exitErr("reply", err)
	}
	if jsonOutput() {
		printJSON(map[string]string{"input": text, "reply": answer})
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "> %s\n%s\n", text, answer)
}
