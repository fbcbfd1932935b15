package main

import (
	"os"

	"github.com/jstittsworth/contrarian-dfs/cmd/dfsctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
