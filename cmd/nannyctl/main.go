// Command nannyctl runs database maintenance for the nanny-match API.
package main

import (
	"os"

	"nanny-match/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
