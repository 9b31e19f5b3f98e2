package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	oerrors "github.com/stamp-dev/stamp/internal/errors"
)

// exitError attaches the exit code matching err's kind.
func exitError(err error) error {
	if err == nil {
		return nil
	}

	var exitErr *oerrors.ExitError
	if errors.As(err, &exitErr) {
		return err
	}

	return &oerrors.ExitError{Err: err, Code: oerrors.ExitCodeFromError(err)}
}

// exactArgs is cobra.ExactArgs reporting an argument error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if len(args) == n {
			return nil
		}
		return exitError(oerrors.NewArgumentError(
			fmt.Sprintf("accepts %d arg(s), received %d", n, len(args)),
			fmt.Sprintf("Usage: %s", cmd.UseLine()),
		))
	}
}
