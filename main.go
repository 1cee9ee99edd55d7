package main

import (
	"os"

	"github.com/edge-node/edge-launcher/cmd"
	"github.com/edge-node/edge-launcher/internal/errors"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(errors.GetExitCode(err))
	}
}
