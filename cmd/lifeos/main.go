package main

import (
	"os"

	"github.com/23sarma/Life-os/internal/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
