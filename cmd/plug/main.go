package main

import (
	"os"

	"github.com/plugdata-labs/plug-cli/internal/adapters/driving/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
