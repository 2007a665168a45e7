// Package main is the entry point for the rotext CLI.
package main

import (
	"os"

	"github.com/f3rmion/rotext/cmd/rotext/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
