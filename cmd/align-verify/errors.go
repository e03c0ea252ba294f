package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

// usageError marks a problem with the invocation itself: wrong arguments,
// unknown flags, an invalid configuration or manifest.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

func usage(err error) error {
	if err == nil {
		return nil
	}
	return &usageError{err: err}
}

// usageArgs wraps a cobra argument validator so its failures exit as usage
// errors.
func usageArgs(fn cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return usage(fn(cmd, args))
	}
}

// batchError reports that some manifest runs failed.
type batchError struct {
	failed int
	total  int
}

func (e *batchError) Error() string {
	return fmt.Sprintf("%d of %d runs failed", e.failed, e.total)
}

func exitCode(err error) int {
	var ue *usageError
	if errors.As(err, &ue) {
		return exitUsage
	}
	return exitFailure
}
