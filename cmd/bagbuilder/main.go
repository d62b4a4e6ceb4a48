package main

import (
	"os"

	"bagbuilder-go/cmd/bagbuilder/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
