package main

import (
	"os"

	"cnft/cmd/cnft/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
