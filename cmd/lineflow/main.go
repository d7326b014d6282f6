package main

import (
	"os"

	"github.com/rustyeddy/lineflow/cmd/lineflow/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
