package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"

	"github.com/deepnoodle-ai/intcode/errz"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		printError(err)
		os.Exit(1)
	}
}

var red = color.New(color.FgRed).SprintFunc()

func printError(err error) {
	msg := err.Error()
	if f, ok := errz.As(err); ok {
		msg += "\n" + f.Detail()
	}
	fmt.Fprintf(os.Stderr, "%s\n", red(msg))
}
