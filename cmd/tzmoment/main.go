package main

import (
	"os"

	"github.com/ngrash/go-moment/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
