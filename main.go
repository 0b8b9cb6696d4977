// Package main only calls `cmd.Execute()`, which is the entry point for the CLI.
package main

import (
	"github.com/ecmwf-projects/cgul/internal/cmd"
)

func main() {
	cmd.Execute()
}
