package vm

// State is the execution state of a Machine.
type State uint8

const (
	// Idle means the machine is ready to execute its next instruction.
	Idle State = iota
	// Running is set for the duration of a single step. Callers never
	// observe it.
	Running
	// Interrupted means an input instruction found the input queue empty.
	// The instruction pointer still points at that instruction, so pushing
	// input and stepping again retries it.
	Interrupted
	// Halted means opcode 99 was executed. It is terminal.
	Halted
	// Faulted means a fatal fault aborted execution. It is terminal.
	Faulted
)

// String returns the lower case name of the state.
func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Interrupted:
		return "interrupted"
	case Halted:
		return "halted"
	case Faulted:
		return "faulted"
	default:
		return "unknown"
	}
}

// CanContinue reports whether a run loop should keep stepping.
func (s State) CanContinue() bool {
	return s == Idle || s == Running
}

// Terminal reports whether the machine can never execute again.
func (s State) Terminal() bool {
	return s == Halted || s == Faulted
}
