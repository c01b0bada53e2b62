package main

import (
	"fmt"
	"os"

	"github.com/handiism/slide-renamer/internal/config"
	"github.com/handiism/slide-renamer/internal/tui"
)

func main() {
	settings := config.DefaultSettings()
	if err := tui.Run(settings); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
