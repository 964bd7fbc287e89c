// Package main provides the promptfield CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/promptfield/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
