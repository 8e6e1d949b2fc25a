package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/intcode/program"
	"github.com/deepnoodle-ai/intcode/vm"
)

// loadImage reads the program from --code, from stdin when the path is "-",
// or from the file named by the first argument.
func (a *app) loadImage(cmd *cobra.Command, args []string) ([]int64, error) {
	code := a.cfg.GetString("code")
	pathSupplied := len(args) > 0
	if pathSupplied && code != "" {
		return nil, errors.New("multiple input sources specified")
	}
	switch {
	case code != "":
		return program.ParseString(code)
	case !pathSupplied:
		return nil, errors.New("no program provided")
	case args[0] == "-":
		return program.Parse(cmd.InOrStdin())
	default:
		return program.Load(args[0])
	}
}

// vmOptions returns the machine options derived from global flags.
func (a *app) vmOptions(cmd *cobra.Command) []vm.Option {
	opts := []vm.Option{
		vm.WithLogger(a.log),
		vm.WithWordSize(a.cfg.GetInt("word-size")),
	}
	if limit := a.cfg.GetInt64("memory-limit"); limit > 0 {
		opts = append(opts, vm.WithMemoryLimit(limit))
	}
	var observers []vm.Observer
	if n := a.cfg.GetInt64("max-steps"); n > 0 {
		observers = append(observers, vm.StepLimit(n))
	}
	if a.cfg.GetBool("trace") {
		observers = append(observers, newTracer(cmd.ErrOrStderr()))
	}
	if len(observers) > 0 {
		opts = append(opts, vm.WithObserver(vm.Observers(observers...)))
	}
	return opts
}

// tracer prints one line per executed instruction.
type tracer struct {
	w io.Writer
}

func newTracer(w io.Writer) *tracer {
	return &tracer{w: w}
}

func (t *tracer) OnStep(e vm.StepEvent) bool {
	name := e.OpcodeName
	if name == "" {
		name = "?"
	}
	fmt.Fprintf(t.w, "%8d  ip=%-6d rb=%-6d %-5s word=%d\n",
		e.Steps, e.IP, e.RelativeBase, name, e.Word)
	return true
}
