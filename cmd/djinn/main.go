package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/codedjinn/djinn/internal/domain"
	"github.com/codedjinn/djinn/internal/infrastructure/cli"
)

func main() {
	ctx := context.Background()
	opts := cli.Options{Verbose: isVerbose()}

	root, err := cli.NewRootCmd(ctx, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}

	if err := root.ExecuteContext(ctx); err != nil {
		os.Exit(exitCode(err))
	}
}

// exitCode maps an error to the process exit status: the child's own code
// for executed commands, 130 for cancellations, 1 for everything else.
func exitCode(err error) int {
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Message != "" {
			fmt.Fprintln(os.Stderr, exitErr.Message)
		}
		return exitErr.Code
	}
	if errors.Is(err, domain.ErrCancelled) {
		fmt.Fprintln(os.Stderr, "cancelled")
		return domain.ExitCodeInterrupt
	}
	fmt.Fprintln(os.Stderr, "error:", err)
	return 1
}

func isVerbose() bool {
	return strings.EqualFold(os.Getenv("DJINN_DEBUG"), "1") || strings.EqualFold(os.Getenv("DJINN_DEBUG"), "true")
}
