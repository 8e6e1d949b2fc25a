// Package dis supports analysis of Intcode program images by disassembling
// them. Decoding uses the opcode table and decoder of the `op` package.
package dis

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/deepnoodle-ai/intcode/op"
)

// Instruction represents a single decoded instruction and its operands, or
// a data word that does not decode.
type Instruction struct {
	Offset   int
	Name     string
	Opcode   op.Code
	Word     int64
	Operands []int64
	Modes    []op.Mode
	// Data is true for words that are not a valid instruction, or an
	// instruction truncated by the end of the image.
	Data bool
}

// Size returns the number of words covered by the entry.
func (ins Instruction) Size() int {
	if ins.Data {
		return 1
	}
	return len(ins.Operands) + 1
}

// String returns the instruction in assembly-like notation.
func (ins Instruction) String() string {
	if ins.Data {
		return fmt.Sprintf("DATA %d", ins.Word)
	}
	parts := []string{ins.Name}
	for i, v := range ins.Operands {
		parts = append(parts, FormatOperand(v, ins.Modes[i]))
	}
	return strings.Join(parts, " ")
}

// Disassemble returns a linear-sweep listing of image. Intcode programs mix
// code and data freely, so words that fail to decode are listed as data and
// decoding resumes at the next word.
func Disassemble(image []int64) []Instruction {
	var instructions []Instruction
	for offset := 0; offset < len(image); {
		word := image[offset]
		decoded, err := op.Decode(word)
		if err != nil || offset+decoded.Size() > len(image) {
			instructions = append(instructions, Instruction{
				Offset: offset,
				Name:   "DATA",
				Word:   word,
				Data:   true,
			})
			offset++
			continue
		}
		ins := Instruction{
			Offset: offset,
			Name:   decoded.Name,
			Opcode: decoded.Code,
			Word:   word,
		}
		for n := 1; n <= decoded.Params; n++ {
			ins.Operands = append(ins.Operands, image[offset+n])
			ins.Modes = append(ins.Modes, decoded.Mode(n))
		}
		instructions = append(instructions, ins)
		offset += decoded.Size()
	}
	return instructions
}

// FormatOperand renders a parameter: [a] for position, a for immediate and
// [rb+a] for relative.
func FormatOperand(v int64, mode op.Mode) string {
	switch mode {
	case op.Immediate:
		return fmt.Sprintf("%d", v)
	case op.Relative:
		if v < 0 {
			return fmt.Sprintf("[rb%d]", v)
		}
		return fmt.Sprintf("[rb+%d]", v)
	default:
		return fmt.Sprintf("[%d]", v)
	}
}

// Print writes a table of the given instructions to writer.
func Print(instructions []Instruction, writer io.Writer) error {
	// Both attributes have escape codes of equal length, which keeps the
	// tabwriter columns aligned when colors are enabled.
	code := color.New(color.Bold).SprintFunc()
	data := color.New(color.Faint).SprintFunc()

	tw := tabwriter.NewWriter(writer, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "OFFSET\tWORD\tOPCODE\tOPERANDS")
	for _, ins := range instructions {
		var operands []string
		for i, v := range ins.Operands {
			operands = append(operands, FormatOperand(v, ins.Modes[i]))
		}
		name := code(ins.Name)
		if ins.Data {
			name = data(ins.Name)
		}
		fmt.Fprintf(tw, "%d\t%d\t%s\t%s\n", ins.Offset, ins.Word, name, strings.Join(operands, " "))
	}
	return tw.Flush()
}
