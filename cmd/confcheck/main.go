package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"confcheck/internal/cli"
)

func main() {
	exitCode := run(os.Args[1:], os.Environ(), os.Stdout, os.Stderr)
	os.Exit(exitCode)
}

// run executes one confcheck invocation and returns its exit code.
// It is separated from main() to enable testing.
func run(args []string, environ []string, stdout, stderr io.Writer) int {
	root := cli.NewRootCommand(stdout, stderr, environ)
	root.SetArgs(args)

	err := root.Execute()
	if err == nil {
		return cli.ExitOK
	}

	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	// cobra reports argument and flag errors without printing them
	fmt.Fprintln(stderr, "Error:", err)
	return cli.ExitUsage
}
