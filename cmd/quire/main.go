package main

import (
	"fmt"
	"os"

	"github.com/quirepress/quire/internal/adapters/driving/cli"
	"github.com/quirepress/quire/internal/core/domain"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(domain.ExitCode(err))
	}
}
