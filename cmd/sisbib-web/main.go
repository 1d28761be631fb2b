// Command sisbib-web serves the library web front-end and runs its maintenance tasks.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

func main() {
	if code := runMain(Execute, os.Stderr); code != 0 {
		os.Exit(code) //nolint:forbidigo // Main entrypoint should exit with non-zero status on fatal errors.
	}
}

func runMain(execute func() error, stderr io.Writer) int {
	err := execute()
	switch {
	case err == nil:
		return 0
	case errors.Is(err, context.Canceled):
		fmt.Fprintln(stderr, "canceled")
		return 130
	default:
		fmt.Fprintln(stderr, "error:", err)
		return 1
	}
}
