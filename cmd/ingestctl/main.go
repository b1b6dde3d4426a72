// Package main is the entry point for the ingestctl CLI.
package main

import (
	"os"

	"github.com/opencatalog/ingestkit/cmd/ingestctl/app"
	"github.com/opencatalog/ingestkit/internal/logger"
)

func main() {
	// Log to stderr so stdout stays clean for commands that output
	// data (e.g., build, version --format json). The root command
	// re-initializes the logger once flags are parsed.
	logger.Initialize(false)
	defer func() { _ = logger.Sync() }()

	if err := app.NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
