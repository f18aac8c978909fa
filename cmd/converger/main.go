// Command converger plots plane-wave convergence tests.
//
// Usage:
//
//	converger [table] [--output fig.png] [--html fig.html] [--show]
//	converger diff|validate|panels
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/roach88/converger/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		var exitErr *cli.ExitError
		if !errors.As(err, &exitErr) {
			// Flag and argument errors; command errors were already reported.
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(cli.ExitCommandError)
		}
		os.Exit(exitErr.Code)
	}
}
