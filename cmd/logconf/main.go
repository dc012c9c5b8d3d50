package main

import (
	"fmt"
	"os"

	"github.com/livp123/logconf/cmd/logconf/commands"
	"github.com/livp123/logconf/internal/utils/logger"
)

func main() {
	defer logger.Sync() //nolint:errcheck

	if err := commands.RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
