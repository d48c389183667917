// Package main is the entry point for the cmdref CLI tool.
package main

import (
	"os"

	"github.com/aidanlsb/cmdref/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(cli.GetExitCode(err))
	}
}
