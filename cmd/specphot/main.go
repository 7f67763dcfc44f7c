package main

import (
	"os"

	"specphot/cmd/specphot/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
