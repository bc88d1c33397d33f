// Package main provides the CLI entrypoint for sheet-mapper.
//
// sheet-mapper maps spreadsheet rows to records through a declared header
// schema:
//   - Declares nested header layouts in YAML or HCL
//   - Validates worksheet headers against them
//   - Extracts data rows as nested or flat JSON records
//   - Infers declarations from existing worksheets
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"sheet-mapper/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()

	if err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}

		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitFailure)
	}
}
