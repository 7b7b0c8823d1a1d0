// Package main is the entry point for policy-lookup CLI.
package main

import (
	"os"

	"policy-lookup/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
