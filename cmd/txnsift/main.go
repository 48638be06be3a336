package main

import (
	"os"

	"github.com/txnsift/txnsift/internal/commands"
)

func main() {
	if err := commands.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
