package main

import (
	"os"

	"github.com/messagely/messagely/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
