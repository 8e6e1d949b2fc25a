package dis

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/deepnoodle-ai/intcode/op"
)

func TestDisassembleQuine(t *testing.T) {
	image := []int64{109, 1, 204, -1, 1001, 100, 1, 100, 1008, 100, 16, 101, 1006, 101, 0, 99}
	instructions := Disassemble(image)

	var listing []string
	var offsets []int
	for _, ins := range instructions {
		listing = append(listing, ins.String())
		offsets = append(offsets, ins.Offset)
	}
	require.Equal(t, []string{
		"ARB 1",
		"OUT [rb-1]",
		"ADD [100] 1 [100]",
		"EQ [100] 16 [101]",
		"JF [101] 0",
		"HALT",
	}, listing)
	require.Equal(t, []int{0, 2, 4, 8, 12, 15}, offsets)
	require.Equal(t, op.JumpIfFalse, instructions[4].Opcode)
	require.Equal(t, 3, instructions[4].Size())
}

func TestDisassembleData(t *testing.T) {
	instructions := Disassemble([]int64{1002, 4, 3, 4, 33})
	require.Len(t, instructions, 2)
	require.False(t, instructions[0].Data)
	require.Equal(t, "MUL [4] 3 [4]", instructions[0].String())
	require.True(t, instructions[1].Data)
	require.Equal(t, "DATA 33", instructions[1].String())
	require.Equal(t, 1, instructions[1].Size())
}

func TestDisassembleTruncated(t *testing.T) {
	instructions := Disassemble([]int64{1101, 1})
	require.Len(t, instructions, 2)
	for _, ins := range instructions {
		require.True(t, ins.Data)
	}
	require.Empty(t, Disassemble(nil))
}

func TestFormatOperand(t *testing.T) {
	require.Equal(t, "[7]", FormatOperand(7, op.Position))
	require.Equal(t, "-7", FormatOperand(-7, op.Immediate))
	require.Equal(t, "[rb+7]", FormatOperand(7, op.Relative))
	require.Equal(t, "[rb-7]", FormatOperand(-7, op.Relative))
}

func TestPrint(t *testing.T) {
	// Disable colors for consistent test output
	color.NoColor = true
	defer func() { color.NoColor = false }()

	var buf bytes.Buffer
	require.NoError(t, Print(Disassemble([]int64{1002, 4, 3, 4, 33}), &buf))

	var lines []string
	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		lines = append(lines, strings.TrimRight(line, " "))
	}
	require.Equal(t, []string{
		"OFFSET  WORD  OPCODE  OPERANDS",
		"0       1002  MUL     [4] 3 [4]",
		"4       33    DATA",
	}, lines)
}
