// Package main is the entry point for the defect-cost CLI.
package main

import (
	"os"

	"defect-cost/cmd/cli/cmd"
	"defect-cost/internal/logging"
)

func main() {
	err := cmd.Execute()
	logging.Sync()
	if err != nil {
		os.Exit(1)
	}
}
