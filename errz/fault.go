// Package errz defines the fault taxonomy shared by the VM and the
// orchestrators that drive it.
package errz

import (
	"bytes"
	"errors"
	"fmt"
)

// Kind represents the category of a fault.
type Kind int

const (
	// Internal indicates a broken invariant inside this module.
	Internal Kind = iota
	// InvalidOpcode indicates an instruction word whose opcode is not in the
	// supported set.
	InvalidOpcode
	// NegativeAddress indicates a resolved address (or jump target) below zero.
	NegativeAddress
	// BadParameterMode indicates an unknown mode digit, or a write-only
	// destination parameter in immediate mode.
	BadParameterMode
	// MissingOutput indicates a machine yielded without producing the output
	// its orchestrator needs.
	MissingOutput
	// BadTurn indicates a turn code other than 0 or 1.
	BadTurn
	// OutOfBounds indicates a grid access outside its rectangle.
	OutOfBounds
	// MemoryLimit indicates a write past the configured memory limit.
	MemoryLimit
)

// Code is a stable identifier for a fault kind.
type Code string

var kindInfo = map[Kind]struct {
	code Code
	name string
}{
	Internal:         {"E1000", "internal fault"},
	InvalidOpcode:    {"E1001", "invalid opcode"},
	NegativeAddress:  {"E1002", "negative address"},
	BadParameterMode: {"E1003", "bad parameter mode"},
	MissingOutput:    {"E2001", "missing output"},
	BadTurn:          {"E2002", "bad turn code"},
	OutOfBounds:      {"E2003", "out of bounds"},
	MemoryLimit:      {"E1004", "memory limit exceeded"},
}

// String returns the string representation of the fault kind.
func (k Kind) String() string {
	if info, ok := kindInfo[k]; ok {
		return info.name
	}
	return "fault"
}

// Code returns the stable code of the fault kind, e.g. "E1001".
func (k Kind) Code() Code {
	if info, ok := kindInfo[k]; ok {
		return info.code
	}
	return "E0000"
}

// Fault is a fatal execution error. The VM never retries a fault.
type Fault struct {
	Kind    Kind
	Message string
	// IP is the instruction pointer of the faulting instruction, or -1 when
	// the fault did not come from a machine.
	IP int64
	// Word is the raw instruction word at IP.
	Word int64
	// Addr is the offending address, when there is one.
	Addr  int64
	Cause error
}

// Error implements the error interface.
func (f *Fault) Error() string {
	if f.IP < 0 {
		return fmt.Sprintf("%s: %s", f.Kind, f.Message)
	}
	return fmt.Sprintf("%s: %s (ip=%d word=%d)", f.Kind, f.Message, f.IP, f.Word)
}

// Unwrap returns the underlying cause of the fault.
func (f *Fault) Unwrap() error {
	return f.Cause
}

// Is reports whether target is a fault of the same kind. This lets callers
// match with errors.Is(err, &errz.Fault{Kind: errz.BadTurn}).
func (f *Fault) Is(target error) bool {
	t, ok := target.(*Fault)
	if !ok {
		return false
	}
	return t.Kind == f.Kind
}

// Detail returns a multi-line description including the fault code and
// every populated location field.
func (f *Fault) Detail() string {
	var msg bytes.Buffer
	msg.WriteString(fmt.Sprintf("[%s] %s: %s\n", f.Kind.Code(), f.Kind, f.Message))
	if f.IP >= 0 {
		msg.WriteString(fmt.Sprintf(" | ip:   %d\n", f.IP))
		msg.WriteString(fmt.Sprintf(" | word: %d\n", f.Word))
	}
	if f.Kind == NegativeAddress || f.Kind == MemoryLimit {
		msg.WriteString(fmt.Sprintf(" | addr: %d\n", f.Addr))
	}
	if f.Cause != nil {
		msg.WriteString(fmt.Sprintf(" | cause: %v\n", f.Cause))
	}
	return msg.String()
}

// New creates a fault that is not tied to an instruction.
func New(kind Kind, format string, args ...any) *Fault {
	return &Fault{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		IP:      -1,
	}
}

// At creates a fault for the instruction word found at ip.
func At(kind Kind, ip, word int64, format string, args ...any) *Fault {
	return &Fault{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
		IP:      ip,
		Word:    word,
	}
}

// WithAddr records the offending address on the fault.
func (f *Fault) WithAddr(addr int64) *Fault {
	f.Addr = addr
	return f
}

// WithCause wraps the fault with a cause.
func (f *Fault) WithCause(cause error) *Fault {
	f.Cause = cause
	return f
}

// Is reports whether any error in err's chain is a fault of the given kind.
func Is(err error, kind Kind) bool {
	return errors.Is(err, &Fault{Kind: kind})
}

// As returns the first fault found in err's chain.
func As(err error) (*Fault, bool) {
	var f *Fault
	if errors.As(err, &f) {
		return f, true
	}
	return nil, false
}
