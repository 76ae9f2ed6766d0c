package main

import (
	"os"

	"github.com/rkowalski/shopsched/pkg/interfaces/cli/commands"
)

func main() {
	if err := commands.New().Execute(); err != nil {
		os.Exit(1)
	}
}
