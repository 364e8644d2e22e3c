package main

import (
	"os"

	"github.com/TVLuke/kennzeichen-buch/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
