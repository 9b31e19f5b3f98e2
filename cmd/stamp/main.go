// Package main is the entry point for the stamp CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/stamp-dev/stamp/internal/cmd"
	oerrors "github.com/stamp-dev/stamp/internal/errors"
	"github.com/stamp-dev/stamp/internal/output"
)

func main() {
	rootCmd := cmd.NewRootCmd()

	if err := rootCmd.Execute(); err != nil {
		// Only print if the command layer hasn't already printed it
		var exitErr *oerrors.ExitError
		if !errors.As(err, &exitErr) || !exitErr.Printed {
			fmt.Fprintln(os.Stderr, output.FormatErrorLabel(err.Error()))
		}
		os.Exit(oerrors.ExitCodeFromError(err))
	}
}
