// Package main provides the CLI entry point for sheetdiff.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// Process exit codes.
const (
	exitMatch        = 0
	exitMismatch     = 1
	exitMissingInput = 2
	exitFailure      = 3
)

// exitError carries a non-zero exit code whose message, if any, has
// already been printed.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func main() {
	os.Exit(execute(os.Args[1:], os.Stdout, os.Stderr))
}

func execute(args []string, stdout, stderr io.Writer) int {
	rootCmd := newRootCmd()
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.Execute()
	if err == nil {
		return exitMatch
	}

	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return exitFailure
}
