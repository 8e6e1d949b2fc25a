// Package op defines the Intcode opcodes, their addressing modes, and the
// decoder that splits an instruction word into both.
package op

import (
	"fmt"

	"github.com/deepnoodle-ai/intcode/errz"
)

// Code is an integer opcode that indicates an operation to execute. It is the
// instruction word modulo 100.
type Code int64

const (
	Invalid Code = 0

	// Arithmetic
	Add      Code = 1
	Multiply Code = 2

	// I/O
	Input  Code = 3
	Output Code = 4

	// Jump
	JumpIfTrue  Code = 5
	JumpIfFalse Code = 6

	// Comparison
	LessThan Code = 7
	Equals   Code = 8

	// Relative base
	AdjustBase Code = 9

	// Execution
	Halt Code = 99
)

// MaxParams is the largest parameter count of any instruction.
const MaxParams = 3

// Mode describes how a parameter value is interpreted.
type Mode uint8

const (
	// Position means the parameter is an address to dereference.
	Position Mode = 0
	// Immediate means the parameter is used literally.
	Immediate Mode = 1
	// Relative means the parameter is an offset from the relative base,
	// dereferenced after adding.
	Relative Mode = 2
)

// String returns a short name for the mode, as used in disassembly.
func (m Mode) String() string {
	switch m {
	case Position:
		return "position"
	case Immediate:
		return "immediate"
	case Relative:
		return "relative"
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// Info contains information about an opcode.
type Info struct {
	Code Code
	Name string
	// Params is the number of parameter words following the opcode.
	Params int
	// Dest is the 1-based index of the write-only destination parameter, or 0
	// if the instruction writes nothing to memory.
	Dest int
}

// Size returns the number of words the instruction occupies.
func (i Info) Size() int {
	return i.Params + 1
}

// Valid reports whether the info describes a supported opcode.
func (i Info) Valid() bool {
	return i.Name != ""
}

var infos [100]Info

func init() {
	type opInfo struct {
		op     Code
		name   string
		params int
		dest   int
	}
	ops := []opInfo{
		{Add, "ADD", 3, 3},
		{Multiply, "MUL", 3, 3},
		{Input, "IN", 1, 1},
		{Output, "OUT", 1, 0},
		{JumpIfTrue, "JT", 2, 0},
		{JumpIfFalse, "JF", 2, 0},
		{LessThan, "LT", 3, 3},
		{Equals, "EQ", 3, 3},
		{AdjustBase, "ARB", 1, 0},
		{Halt, "HALT", 0, 0},
	}
	for _, o := range ops {
		infos[o.op] = Info{
			Code:   o.op,
			Name:   o.name,
			Params: o.params,
			Dest:   o.dest,
		}
	}
}

// GetInfo returns information about the given opcode. The zero Info is
// returned for unsupported opcodes.
func GetInfo(op Code) Info {
	if op < 0 || int(op) >= len(infos) {
		return Info{}
	}
	return infos[op]
}

// Instruction is a decoded instruction word.
type Instruction struct {
	Info
	Word  int64
	Modes [MaxParams]Mode
}

// Mode returns the addressing mode of the n-th parameter (1-based).
func (ins Instruction) Mode(n int) Mode {
	return ins.Modes[n-1]
}

// Decode splits an instruction word into its opcode and per-parameter modes.
// Mode digits are read least significant first; absent digits are Position
// and digits beyond the parameter count are ignored.
// The returned error is always an *errz.Fault without an instruction
// pointer; the caller fills that in.
func Decode(word int64) (Instruction, error) {
	if word < 0 {
		return Instruction{}, errz.New(errz.InvalidOpcode, "negative instruction word %d", word)
	}
	code := Code(word % 100)
	info := GetInfo(code)
	if !info.Valid() {
		return Instruction{}, errz.New(errz.InvalidOpcode, "opcode %d", code)
	}
	ins := Instruction{Info: info, Word: word}
	modes := word / 100
	for n := 1; n <= info.Params; n++ {
		m := Mode(modes % 10)
		modes /= 10
		switch m {
		case Position, Relative:
		case Immediate:
			if n == info.Dest {
				return Instruction{}, errz.New(errz.BadParameterMode,
					"%s destination parameter %d in immediate mode", info.Name, n)
			}
		default:
			return Instruction{}, errz.New(errz.BadParameterMode,
				"%s parameter %d has unknown mode digit %d", info.Name, n, m)
		}
		ins.Modes[n-1] = m
	}
	return ins, nil
}
