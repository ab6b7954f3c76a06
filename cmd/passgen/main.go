package main

import (
	"os"

	"github.com/vaultpass/passgen-go/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
