package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/23sarma/Life-os/internal/store"
)

func init() {
	cmd := &cobra.Command{
		Use:   "import [file]",
		Short: "Import snapshots from JSON",
		Long:  "Import snapshots from JSON (stdin or file). Expects the format produced by export. Existing snapshots are replaced.",
		Args:  cobra.MaximumNArgs(1),
		Run:   runImport,
	}

	RootCmd.AddCommand(cmd)
}

func runImport(cmd *cobra.Command, args []string) {
	var (
		data []byte
		err  error
	)
	if len(args) == 1 {
		data, err = os.ReadFile(args[0])
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		exitErr("read input", err)
	}

	var items []store.Item
	if err := json.Unmarshal(data, &items); err != nil {
		exitErr("parse json", err)
	}

	a, s := openAssistant(cmd)
	defer s.Close()

	imported, err := a.Import(cmd.Context(), items)
	if err != nil {
		exitErr("import", err)
	}

	fmt.Printf(`{"ok":true,"imported":%d}`+"\n", imported)
}
