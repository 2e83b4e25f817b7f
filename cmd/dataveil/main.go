package main

import (
	"os"

	"github.com/dataveil/dataveil/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
