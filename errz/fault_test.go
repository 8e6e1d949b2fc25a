package errz

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKindCodes(t *testing.T) {
	tests := []struct {
		kind Kind
		code Code
		name string
	}{
		{Internal, "E1000", "internal fault"},
		{InvalidOpcode, "E1001", "invalid opcode"},
		{NegativeAddress, "E1002", "negative address"},
		{BadParameterMode, "E1003", "bad parameter mode"},
		{MissingOutput, "E2001", "missing output"},
		{BadTurn, "E2002", "bad turn code"},
		{OutOfBounds, "E2003", "out of bounds"},
		{MemoryLimit, "E1004", "memory limit exceeded"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.code, tt.kind.Code())
			require.Equal(t, tt.name, tt.kind.String())
		})
	}
	require.Equal(t, Code("E0000"), Kind(99).Code())
	require.Equal(t, "fault", Kind(99).String())
}

func TestFaultError(t *testing.T) {
	f := At(InvalidOpcode, 4, 77, "opcode %d", 77)
	require.Equal(t, "invalid opcode: opcode 77 (ip=4 word=77)", f.Error())

	g := New(BadTurn, "turn code %d", 7)
	require.Equal(t, "bad turn code: turn code 7", g.Error())
}

func TestFaultMatching(t *testing.T) {
	f := At(NegativeAddress, 0, 1, "address %d", -3).WithAddr(-3)
	wrapped := fmt.Errorf("stage 2: %w", f)

	require.True(t, Is(wrapped, NegativeAddress))
	require.False(t, Is(wrapped, InvalidOpcode))
	require.False(t, Is(fmt.Errorf("plain"), NegativeAddress))

	got, ok := As(wrapped)
	require.True(t, ok)
	require.Equal(t, int64(-3), got.Addr)

	_, ok = As(fmt.Errorf("plain"))
	require.False(t, ok)
}

func TestFaultDetail(t *testing.T) {
	cause := fmt.Errorf("boom")
	f := At(NegativeAddress, 2, 1101, "write to %d", -1).WithAddr(-1).WithCause(cause)
	require.Equal(t, cause, f.Unwrap())
	expected := "[E1002] negative address: write to -1\n" +
		" | ip:   2\n" +
		" | word: 1101\n" +
		" | addr: -1\n" +
		" | cause: boom\n"
	require.Equal(t, expected, f.Detail())
}
