package main

import (
	"os"

	"github.com/reviewkit/klavex/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
