// Package intcode runs Intcode programs. It is a thin facade over the vm,
// program and pipeline packages for the common cases: evaluate program text
// with some input, or search for the noun and verb that make a program
// produce a target value.
package intcode

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/rs/zerolog"

	"github.com/deepnoodle-ai/intcode/program"
	"github.com/deepnoodle-ai/intcode/vm"
)

// ErrNotFound is returned by SearchNounVerb when no noun and verb produce
// the target.
var ErrNotFound = errors.New("no noun and verb produce the target")

// Option configures an evaluation.
type Option func(*options)

type options struct {
	input      []int64
	observer   vm.Observer
	wordSize   int
	memLimit   int64
	logger     zerolog.Logger
	haveLogger bool
}

func collectOptions(opts ...Option) *options {
	o := &options{}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	return o
}

func (o *options) vmOpts(ctx context.Context) []vm.Option {
	opts := []vm.Option{vm.WithInput(o.input...)}
	if o.wordSize > 0 {
		opts = append(opts, vm.WithWordSize(o.wordSize))
	}
	if o.memLimit > 0 {
		opts = append(opts, vm.WithMemoryLimit(o.memLimit))
	}
	if o.haveLogger {
		opts = append(opts, vm.WithLogger(o.logger))
	}
	observer := o.observer
	if ctx.Done() != nil {
		observer = vm.Observers(observer, vm.ObserverFunc(func(vm.StepEvent) bool {
			return ctx.Err() == nil
		}))
	}
	if observer != nil {
		opts = append(opts, vm.WithObserver(observer))
	}
	return opts
}

// WithInput queues input values for the program. This option is additive.
func WithInput(values ...int64) Option {
	return func(o *options) {
		o.input = append(o.input, values...)
	}
}

// WithObserver sets an observer for execution events.
func WithObserver(observer vm.Observer) Option {
	return func(o *options) {
		o.observer = observer
	}
}

// WithWordSize sets the integer width of the machine in bits.
func WithWordSize(bits int) Option {
	return func(o *options) {
		o.wordSize = bits
	}
}

// WithMemoryLimit caps machine memory, in cells.
func WithMemoryLimit(cells int64) Option {
	return func(o *options) {
		o.memLimit = cells
	}
}

// WithLogger sets the logger passed to the machine.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
		o.haveLogger = true
	}
}

// Run executes image until it halts or needs more input than was supplied.
// The machine is returned even on error so its state can be inspected. If
// ctx is cancelled during execution, ctx.Err() is returned.
func Run(ctx context.Context, image []int64, opts ...Option) (*vm.Machine, error) {
	o := collectOptions(opts...)
	m := vm.New(image, o.vmOpts(ctx)...)
	err := m.Run()
	if errors.Is(err, vm.ErrStopped) && ctx.Err() != nil {
		return m, ctx.Err()
	}
	return m, err
}

// Eval parses source, runs it and returns everything it output.
func Eval(ctx context.Context, source string, opts ...Option) ([]int64, error) {
	image, err := program.ParseString(source)
	if err != nil {
		return nil, err
	}
	m, err := Run(ctx, image, opts...)
	if err != nil {
		return nil, err
	}
	return m.Output(), nil
}

// Patch returns a copy of image with noun stored at address 1 and verb at
// address 2. The copy is extended with zeros if image is shorter.
func Patch(image []int64, noun, verb int64) []int64 {
	mem := vm.NewMemory(image)
	// Addresses 1 and 2 are never negative.
	_ = mem.Set(1, noun)
	_ = mem.Set(2, verb)
	return mem.Snapshot()
}

// RunPatched runs image patched with noun and verb and returns the value left
// at address 0.
func RunPatched(ctx context.Context, image []int64, noun, verb int64, opts ...Option) (int64, error) {
	m, err := Run(ctx, Patch(image, noun, verb), opts...)
	if err != nil {
		return 0, err
	}
	if m.State() != vm.Halted {
		return 0, fmt.Errorf("program did not halt (state %s)", m.State())
	}
	return m.Peek(0)
}

// SearchNounVerb tries every noun and verb in 0..99 and returns the first
// pair, in noun-major order, for which RunPatched yields target. Pairs that
// fail are skipped. When nothing matches, the returned error wraps
// ErrNotFound together with every failure encountered.
func SearchNounVerb(ctx context.Context, image []int64, target int64, opts ...Option) (int64, int64, error) {
	var failures []error
	for noun := int64(0); noun <= 99; noun++ {
		for verb := int64(0); verb <= 99; verb++ {
			if err := ctx.Err(); err != nil {
				return 0, 0, err
			}
			got, err := RunPatched(ctx, image, noun, verb, opts...)
			if err != nil {
				failures = append(failures, fmt.Errorf("noun=%d verb=%d: %w", noun, verb, err))
				continue
			}
			if got == target {
				return noun, verb, nil
			}
		}
	}
	return 0, 0, multierror.Append(fmt.Errorf("%w: %d", ErrNotFound, target), failures...)
}
