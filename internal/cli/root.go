// Package cli implements the lifeos CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/23sarma/Life-os/internal/assistant"
	"github.com/23sarma/Life-os/internal/config"
	"github.com/23sarma/Life-os/internal/logging"
	"github.com/23sarma/Life-os/internal/store"
)

var (
	configPath string
	formatFlag string

	cfg    *config.Config
	logger zerolog.Logger
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "lifeos",
	Short: "A personal life assistant",
	Long:  "LifeOS remembers what you tell it, answers in plain text, and keeps your tasks and goals. Local, single binary.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// .env is optional
		_ = godotenv.Load()

		var err error
		if configPath != "" {
			cfg, err = config.LoadFromPath(configPath)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			exitErr("load config", err)
		}
		logger = logging.New(os.Stderr, cfg.Logging.Level, cfg.Logging.Console)
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (default: ~/.lifeos/config.yaml)")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or text")
}

func openStore() (store.Store, error) {
	return assistant.OpenStore(cfg.Storage)
}

// openAssistant opens the configured store and loads all state from it.
// The caller closes the returned store.
func openAssistant(cmd *cobra.Command) (*assistant.Assistant, store.Store) {
	s, err := openStore()
	if err != nil {
		exitErr("open store", err)
	}
	a, err := assistant.New(cmd.Context(), s, cfg, logger)
	if err != nil {
		s.Close()
		exitErr("load assistant", err)
	}
	return a, s
}

func jsonOutput() bool {
	return formatFlag == "json"
}

func printJSON(v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(b))
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
