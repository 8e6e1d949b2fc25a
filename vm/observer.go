package vm

import "github.com/deepnoodle-ai/intcode/op"

// Observer is an interface for observing machine execution. It enables
// tracers, step budgets and coverage tools without changing the machine.
//
// Observer methods are called synchronously during execution, so
// implementations should be fast.
type Observer interface {
	// OnStep is called before each instruction executes, including retries
	// of an interrupted input instruction. Returning false stops execution
	// before the instruction runs; the machine stays resumable.
	OnStep(event StepEvent) bool
}

// StepEvent contains information about a single instruction step.
type StepEvent struct {
	// IP is the instruction pointer.
	IP int64

	// Word is the raw instruction word at IP.
	Word int64

	// Opcode is the opcode of Word. It may be unsupported, in which case
	// the step will fault.
	Opcode op.Code

	// OpcodeName is the human-readable name of the opcode, empty if the
	// opcode is unsupported.
	OpcodeName string

	// RelativeBase is the relative base before the instruction executes.
	RelativeBase int64

	// Steps is the number of instructions completed so far.
	Steps int64

	// State is the machine state before the step.
	State State
}

// NoOpObserver is an Observer implementation that does nothing.
type NoOpObserver struct{}

func (NoOpObserver) OnStep(StepEvent) bool { return true }

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(StepEvent) bool

func (f ObserverFunc) OnStep(event StepEvent) bool { return f(event) }

type stepLimit struct {
	max int64
}

func (s stepLimit) OnStep(event StepEvent) bool {
	return event.Steps < s.max
}

// StepLimit returns an observer that stops execution once n instructions
// have completed.
func StepLimit(n int64) Observer {
	return stepLimit{max: n}
}

// Observers combines several observers. Execution continues only if every
// observer agrees; all observers see every event.
func Observers(observers ...Observer) Observer {
	return ObserverFunc(func(event StepEvent) bool {
		ok := true
		for _, o := range observers {
			if o != nil && !o.OnStep(event) {
				ok = false
			}
		}
		return ok
	})
}

// Ensure NoOpObserver implements Observer.
var _ Observer = NoOpObserver{}
