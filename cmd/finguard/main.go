package main

import (
	"os"

	"github.com/finguard-dev/finguard/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
