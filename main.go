package main

import (
	"os"

	"github.com/rokuro32/staticamaster/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
