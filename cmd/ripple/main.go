// Command ripple runs and snapshots the built-in showcase demos.
package main

import (
	"fmt"
	"os"

	"github.com/go-ripple/ripple/cmd/ripple/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
