package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/vkaraulov/orderlens/internal/cli"
	"github.com/vkaraulov/orderlens/pkg/orderlens"
)

func main() {
	// A panic anywhere in a command must still produce a stack trace and
	// the dedicated exit code rather than the runtime's default.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "panic: %v\n%s\n", r, debug.Stack())
			os.Exit(orderlens.ExitPanic)
		}
	}()

	if os.Getenv("ORDERLENS_TEST_PANIC") == "1" {
		panic("intentional test panic")
	}

	if err := cli.Execute(); err != nil {
		os.Exit(orderlens.ExitCodeForError(err))
	}
}
