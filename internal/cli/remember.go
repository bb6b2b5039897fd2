package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/23sarma/Life-os/internal/model"
)

func init() {
	cmd := &cobra.Command{
		Use:   "remember [value]",
		Short: "Store a fact",
		Long:  "Store a fact under a key. The value is parsed as JSON when possible, otherwise kept as text. It can be a positional arg or piped via stdin.",
		Run:   runRemember,
	}

	cmd.Flags().StringP("key", "k", "", "Key (required)")
	cmd.MarkFlagRequired("key")

	RootCmd.AddCommand(cmd)
}

func runRemember(cmd *cobra.Command, args []string) {
	key, _ := cmd.Flags().GetString("key")

	var content string
	if len(args) > 0 {
		content = strings.Join(args, " ")
	} else {
		stat, _ := os.Stdin.Stat()
		if (stat.Mode() & os.ModeCharDevice) == 0 {
			b, err := io.ReadAll(os.Stdin)
			if err != nil {
				exitErr("read stdin", err)
			}
			content = string(b)
		}
	}

	if strings.TrimSpace(content) == "" {
		exitErr("remember", fmt.Errorf("value is required (positional arg or stdin)"))
	}
	value := model.ParseValue(strings.TrimSpace(content))

	a, s := openAssistant(cmd)
	defer s.Close()

	if err := a.Memory.Remember(cmd.Context(), key, value); err != nil {
		exitErr("remember", err)
	}

	b, _ := json.Marshal(map[string]any{"ok": true, "key": key, "value": value})
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
}
