package program

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseString(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		expected []int64
	}{
		{"single", "99", []int64{99}},
		{"echo", "3,0,4,0,99", []int64{3, 0, 4, 0, 99}},
		{"negative", "1101,100,-1,4,0", []int64{1101, 100, -1, 4, 0}},
		{"trailing newline", "1,0,0,0,99\n", []int64{1, 0, 0, 0, 99}},
		{"spaces", " 104 , 1125899906842624 ,99 ", []int64{104, 1125899906842624, 99}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			image, err := ParseString(tt.src)
			require.NoError(t, err)
			require.Equal(t, tt.expected, image)
		})
	}
}

func TestParseStringErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		msg  string
	}{
		{"empty", "  \n", "empty program"},
		{"empty field", "1,,2", "field 1: empty value"},
		{"trailing comma", "1,2,", "field 2: empty value"},
		{"not a number", "1,x,2", "field 1"},
		{"overflow", "99999999999999999999", "field 0"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(tt.src)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.msg)
		})
	}
}

func TestParse(t *testing.T) {
	image, err := Parse(strings.NewReader("1,9,10,3,2,3,11,0,99,30,40,50\n"))
	require.NoError(t, err)
	require.Len(t, image, 12)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "prog.txt")
	require.NoError(t, os.WriteFile(path, []byte("3,0,4,0,99\n"), 0o644))

	image, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []int64{3, 0, 4, 0, 99}, image)

	bad := filepath.Join(dir, "bad.txt")
	require.NoError(t, os.WriteFile(bad, []byte("3,,4"), 0o644))
	_, err = Load(bad)
	require.ErrorContains(t, err, "bad.txt: field 1")

	_, err = Load(filepath.Join(dir, "missing.txt"))
	require.Error(t, err)
}

func TestFormat(t *testing.T) {
	require.Equal(t, "3,0,4,0,99", Format([]int64{3, 0, 4, 0, 99}))
	require.Equal(t, "", Format(nil))
	image := []int64{109, -1, 204, 1125899906842624}
	parsed, err := ParseString(Format(image))
	require.NoError(t, err)
	require.Equal(t, image, parsed)
}
