package main

import (
	"os"

	"github.com/penwyp/go-life-tracker/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
