package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// usageError marks invalid command-line input. It is reported together with
// the usage text and exits with ExitUsage.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...any) error {
	return &usageError{err: fmt.Errorf(format, args...)}
}

// loggedError has already been written to the run log.
type loggedError struct {
	err error
}

func (e *loggedError) Error() string { return e.err.Error() }
func (e *loggedError) Unwrap() error { return e.err }

// exitCode reports err on stderr when needed and maps it to a process exit code.
func exitCode(err error, usage string, stderr io.Writer) int {
	if err == nil {
		return ExitOK
	}
	var ue *usageError
	if errors.As(err, &ue) {
		fmt.Fprintf(stderr, "Error: %v\n\n%s", ue.err, usage)
		return ExitUsage
	}
	var le *loggedError
	if !errors.As(err, &le) {
		fmt.Fprintf(stderr, "Error: %v\n", err)
	}
	return ExitFailure
}

// usageArgs wraps a positional-argument validator so its failures exit with ExitUsage.
func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(c *cobra.Command, args []string) error {
		if err := validate(c, args); err != nil {
			return &usageError{err: err}
		}
		return nil
	}
}
