package main

import (
	"os"

	"github.com/florin-dev/florin/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
