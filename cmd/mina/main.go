package main

import (
	"os"

	"github.com/msto63/mina/cmd/mina/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
