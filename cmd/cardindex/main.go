// Package main provides the entry point for the cardindex CLI.
package main

import (
	"os"

	"github.com/deckhound/cardindex/cmd/cardindex/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
