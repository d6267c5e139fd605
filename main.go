// Package main is the entry point for the jiralint CLI application.
package main

import (
	"os"

	"github.com/danielolaszy/jiralint/cmd"
	"github.com/danielolaszy/jiralint/internal/logging"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	logging.Debug("starting jiralint", "version", version)

	if err := cmd.Execute(); err != nil {
		logging.Error("command execution failed", "error", err)
		os.Exit(1)
	}
}
