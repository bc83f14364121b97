package main

import (
	"os"

	"promptstudio/internal/studioctl"
)

func main() {
	if err := studioctl.Execute(); err != nil {
		os.Exit(1)
	}
}
