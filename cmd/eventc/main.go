// Package main provides the eventc CLI entry point.
package main

import (
	"os"

	"github.com/eventline-labs/eventc/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
