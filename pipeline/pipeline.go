// Package pipeline chains Intcode machines into a feedback loop of
// amplifiers. Each amplifier receives its phase setting as its first input
// and then a signal; whatever it outputs becomes the signal of the next
// amplifier, and the last amplifier feeds the first.
//
// The machines are interleaved on the calling goroutine: an amplifier runs
// until it either halts or needs more input, and then control passes to the
// next one.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/deepnoodle-ai/intcode/errz"
	"github.com/deepnoodle-ai/intcode/vm"
)

var (
	// ErrEmpty is returned when running a pipeline without amplifiers.
	ErrEmpty = errors.New("pipeline has no amplifiers")

	// ErrFinished is returned when running a pipeline whose last amplifier
	// already halted.
	ErrFinished = errors.New("pipeline already finished")
)

// Pipeline is a chain of amplifiers sharing one program image.
type Pipeline struct {
	amps     []*vm.Machine
	phases   []int64
	started  []bool
	liveness bool
	vmOpts   []vm.Option
	log      zerolog.Logger
}

// Option is a configuration function for a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger used for the pipeline and its machines.
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Pipeline) {
		p.log = logger
	}
}

// WithVMOptions passes options to every amplifier machine.
func WithVMOptions(options ...vm.Option) Option {
	return func(p *Pipeline) {
		p.vmOpts = append(p.vmOpts, options...)
	}
}

// WithLivenessCheck controls whether an amplifier that yields without
// producing a new output is a fault. It is enabled by default. When
// disabled, the amplifier's most recent earlier output is forwarded instead.
func WithLivenessCheck(enabled bool) Option {
	return func(p *Pipeline) {
		p.liveness = enabled
	}
}

// New creates one amplifier per phase setting, each with its own copy of
// image.
func New(image []int64, phases []int64, options ...Option) *Pipeline {
	p := &Pipeline{
		phases:   append([]int64(nil), phases...),
		started:  make([]bool, len(phases)),
		liveness: true,
		log:      zerolog.Nop(),
	}
	for _, opt := range options {
		opt(p)
	}
	vmOpts := append([]vm.Option{vm.WithLogger(p.log)}, p.vmOpts...)
	for range phases {
		p.amps = append(p.amps, vm.New(image, vmOpts...))
	}
	return p
}

// Amplifiers returns the machines of the pipeline in chain order.
func (p *Pipeline) Amplifiers() []*vm.Machine {
	return p.amps
}

// Run feeds signal into the first amplifier and drives the chain round
// robin until the last amplifier halts. The signal at that point is
// returned.
//
// Halted amplifiers are skipped. A fault in any amplifier aborts the run.
func (p *Pipeline) Run(signal int64) (int64, error) {
	if len(p.amps) == 0 {
		return 0, ErrEmpty
	}
	last := len(p.amps) - 1
	if p.amps[last].State() == vm.Halted {
		return 0, ErrFinished
	}
	for round := 0; ; round++ {
		for i, amp := range p.amps {
			if amp.State() == vm.Halted {
				continue
			}
			if !p.started[i] {
				amp.PushInput(p.phases[i])
				p.started[i] = true
			}
			amp.PushInput(signal)

			before := amp.OutputCount()
			if err := amp.Run(); err != nil {
				return 0, fmt.Errorf("amplifier %d: %w", i, err)
			}
			if p.liveness && amp.OutputCount() == before {
				return 0, errz.New(errz.MissingOutput,
					"amplifier %d yielded in round %d without output (state %s)", i, round, amp.State())
			}
			out, ok := amp.LastOutput()
			if !ok {
				return 0, errz.New(errz.MissingOutput, "amplifier %d has never produced output", i)
			}
			signal = out

			p.log.Debug().
				Int("stage", i).
				Int("round", round).
				Int64("signal", signal).
				Str("state", amp.State().String()).
				Msg("amplifier yielded")

			if i == last && amp.State() == vm.Halted {
				return signal, nil
			}
		}
	}
}
