// Package vm provides a resumable Intcode virtual machine.
//
// A Machine executes one instruction per Step. When an input instruction
// finds the input queue empty the machine becomes Interrupted and returns
// control to the caller without advancing; pushing input and stepping again
// retries the same instruction. This lets several machines be interleaved on
// a single goroutine by an orchestrator.
package vm

import (
	"errors"
	"fmt"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog"

	"github.com/deepnoodle-ai/intcode/errz"
	"github.com/deepnoodle-ai/intcode/op"
)

var (
	// ErrHalted is returned when stepping a machine that already halted.
	ErrHalted = errors.New("machine halted")

	// ErrStopped is returned when an observer stops execution.
	ErrStopped = errors.New("stopped by observer")
)

// Machine is a single Intcode virtual machine. It exclusively owns its
// memory. A Machine is not safe for concurrent use.
type Machine struct {
	id       uuid.UUID
	mem      *Memory
	ip       int64 // instruction pointer
	base     int64 // relative base
	state    State
	input    []int64
	output   []int64
	produced int64
	steps    int64
	fault    error
	wordBits uint
	observer Observer
	log      zerolog.Logger
}

// New creates a Machine whose memory is a copy of image.
func New(image []int64, options ...Option) *Machine {
	m := &Machine{
		id:       uuid.Must(uuid.NewV4()),
		mem:      NewMemory(image),
		state:    Idle,
		wordBits: 64,
		log:      zerolog.Nop(),
	}
	for _, opt := range options {
		opt(m)
	}
	m.log = m.log.With().Str("vm", m.id.String()).Logger()
	for i, v := range m.input {
		m.input[i] = m.wrap(v)
	}
	return m
}

// ID returns the unique identifier of the machine.
func (m *Machine) ID() uuid.UUID {
	return m.id
}

// State returns the current execution state.
func (m *Machine) State() State {
	return m.state
}

// IP returns the instruction pointer.
func (m *Machine) IP() int64 {
	return m.ip
}

// RelativeBase returns the relative base.
func (m *Machine) RelativeBase() int64 {
	return m.base
}

// Steps returns the number of instructions completed so far. Input attempts
// that interrupted are not counted.
func (m *Machine) Steps() int64 {
	return m.steps
}

// Err returns the fault that moved the machine to the Faulted state.
func (m *Machine) Err() error {
	return m.fault
}

// Memory returns the machine's address space.
func (m *Machine) Memory() *Memory {
	return m.mem
}

// Peek returns the value at addr.
func (m *Machine) Peek(addr int64) (int64, error) {
	return m.mem.Get(addr)
}

// Poke stores value at addr. It is meant for patching a program before it
// runs.
func (m *Machine) Poke(addr, value int64) error {
	return m.mem.Set(addr, m.wrap(value))
}

// PushInput appends values to the input queue.
func (m *Machine) PushInput(values ...int64) {
	for _, v := range values {
		m.input = append(m.input, m.wrap(v))
	}
}

// InputLen returns the number of queued input values.
func (m *Machine) InputLen() int {
	return len(m.input)
}

// Output returns a copy of the unconsumed outputs in production order.
func (m *Machine) Output() []int64 {
	out := make([]int64, len(m.output))
	copy(out, m.output)
	return out
}

// PendingOutput returns the number of unconsumed outputs.
func (m *Machine) PendingOutput() int {
	return len(m.output)
}

// OutputCount returns the number of outputs produced since creation,
// consumed or not.
func (m *Machine) OutputCount() int64 {
	return m.produced
}

// LastOutput returns the most recently produced unconsumed output.
func (m *Machine) LastOutput() (int64, bool) {
	if len(m.output) == 0 {
		return 0, false
	}
	return m.output[len(m.output)-1], true
}

// PopOutput consumes and returns the oldest unconsumed output.
func (m *Machine) PopOutput() (int64, bool) {
	if len(m.output) == 0 {
		return 0, false
	}
	v := m.output[0]
	m.output = m.output[1:]
	return v, true
}

// Run steps the machine until it is interrupted, halts, or faults. A nil
// error means the machine is either Interrupted or Halted.
func (m *Machine) Run() error {
	for {
		if err := m.Step(); err != nil {
			return err
		}
		if !m.state.CanContinue() {
			return nil
		}
	}
}

// Step executes exactly one instruction. On return the state is Idle,
// Interrupted, Halted or Faulted.
func (m *Machine) Step() (err error) {
	switch m.state {
	case Halted:
		return ErrHalted
	case Faulted:
		return m.fault
	}
	if m.observer != nil && !m.observer.OnStep(m.event()) {
		return ErrStopped
	}
	m.state = Running
	defer func() {
		if r := recover(); r != nil {
			err = m.locate(errz.New(errz.Internal, "panic: %v", r))
		}
		if err != nil {
			m.state = Faulted
			m.fault = err
			m.log.Error().Err(err).Int64("ip", m.ip).Msg("fault")
		}
	}()
	return m.exec()
}

func (m *Machine) event() StepEvent {
	word, _ := m.mem.Get(m.ip)
	code := op.Code(word % 100)
	return StepEvent{
		IP:           m.ip,
		Word:         word,
		Opcode:       code,
		OpcodeName:   op.GetInfo(code).Name,
		RelativeBase: m.base,
		Steps:        m.steps,
		State:        m.state,
	}
}

// exec decodes and executes the instruction at ip. Every parameter and the
// destination are resolved before anything is written, so a fault leaves the
// machine exactly as it was.
func (m *Machine) exec() error {
	word, err := m.mem.Get(m.ip)
	if err != nil {
		return m.locate(err)
	}
	ins, err := op.Decode(word)
	if err != nil {
		return m.locate(err)
	}
	m.log.Trace().Int64("ip", m.ip).Str("op", ins.Name).Int64("word", word).Msg("step")

	switch ins.Code {
	case op.Add, op.Multiply, op.LessThan, op.Equals:
		a, err := m.param(ins, 1)
		if err != nil {
			return err
		}
		b, err := m.param(ins, 2)
		if err != nil {
			return err
		}
		dst, err := m.dest(ins, 3)
		if err != nil {
			return err
		}
		var v int64
		switch ins.Code {
		case op.Add:
			v = m.wrap(a + b)
		case op.Multiply:
			v = m.wrap(a * b)
		case op.LessThan:
			v = boolWord(a < b)
		case op.Equals:
			v = boolWord(a == b)
		}
		if err := m.mem.Set(dst, v); err != nil {
			return m.locate(err)
		}
		m.ip += int64(ins.Size())
	case op.Input:
		dst, err := m.dest(ins, 1)
		if err != nil {
			return err
		}
		if len(m.input) == 0 {
			m.state = Interrupted
			m.log.Debug().Int64("ip", m.ip).Msg("interrupted")
			return nil
		}
		if err := m.mem.Set(dst, m.input[0]); err != nil {
			return m.locate(err)
		}
		m.input = m.input[1:]
		m.ip += int64(ins.Size())
	case op.Output:
		v, err := m.param(ins, 1)
		if err != nil {
			return err
		}
		m.output = append(m.output, v)
		m.produced++
		m.ip += int64(ins.Size())
	case op.JumpIfTrue, op.JumpIfFalse:
		cond, err := m.param(ins, 1)
		if err != nil {
			return err
		}
		// The target is only resolved when the jump is taken.
		if (cond != 0) == (ins.Code == op.JumpIfTrue) {
			target, err := m.param(ins, 2)
			if err != nil {
				return err
			}
			if target < 0 {
				return m.locate(negativeAddress(target))
			}
			m.ip = target
		} else {
			m.ip += int64(ins.Size())
		}
	case op.AdjustBase:
		v, err := m.param(ins, 1)
		if err != nil {
			return err
		}
		m.base += v
		m.ip += int64(ins.Size())
	case op.Halt:
		m.state = Halted
		m.steps++
		m.log.Debug().Int64("ip", m.ip).Int64("steps", m.steps).Msg("halted")
		return nil
	default:
		// Decode only returns supported opcodes.
		return m.locate(errz.New(errz.Internal, "unhandled opcode %d", ins.Code))
	}
	m.steps++
	m.state = Idle
	return nil
}

// param returns the value of the n-th parameter (1-based) of ins.
func (m *Machine) param(ins op.Instruction, n int) (int64, error) {
	raw, err := m.mem.Get(m.ip + int64(n))
	if err != nil {
		return 0, m.locate(err)
	}
	var v int64
	switch ins.Mode(n) {
	case op.Immediate:
		return raw, nil
	case op.Position:
		v, err = m.mem.Get(raw)
	case op.Relative:
		v, err = m.mem.Get(m.base + raw)
	}
	if err != nil {
		return 0, m.locate(err)
	}
	return v, nil
}

// dest resolves the n-th parameter (1-based) of ins to an absolute address.
func (m *Machine) dest(ins op.Instruction, n int) (int64, error) {
	raw, err := m.mem.Get(m.ip + int64(n))
	if err != nil {
		return 0, m.locate(err)
	}
	addr := raw
	if ins.Mode(n) == op.Relative {
		addr = m.base + raw
	}
	if addr < 0 {
		return 0, m.locate(negativeAddress(addr))
	}
	return addr, nil
}

// locate stamps the current instruction onto a fault.
func (m *Machine) locate(err error) error {
	f, ok := errz.As(err)
	if !ok {
		return fmt.Errorf("ip=%d: %w", m.ip, err)
	}
	word, _ := m.mem.Get(m.ip)
	f.IP = m.ip
	f.Word = word
	return f
}

func (m *Machine) wrap(v int64) int64 {
	if m.wordBits >= 64 {
		return v
	}
	shift := 64 - m.wordBits
	return v << shift >> shift
}

func boolWord(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
