package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/require"

	"github.com/deepnoodle-ai/intcode/errz"
	"github.com/deepnoodle-ai/intcode/vm"
)

type result struct {
	stdout string
	stderr string
	err    error
}

func execute(t *testing.T, stdin string, args ...string) result {
	t.Helper()
	oldNoColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = oldNoColor }()

	cmd := newRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeProgram(t *testing.T, src string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prog.txt")
	require.NoError(t, os.WriteFile(path, []byte(src+"\n"), 0o644))
	return path
}

const (
	chainA = "3,15,3,16,1002,16,10,16,1,16,15,15,4,15,99,0,0"
	loopA  = "3,26,1001,26,-4,26,3,27,1002,27,2,27,1,27,26,27,4,27,1001,28,-1,28,1005,28,6,99,0,0,5"
)

func TestRunCode(t *testing.T) {
	res := execute(t, "", "run", "--code", "3,0,4,0,99", "-i", "42")
	require.NoError(t, res.err)
	require.Equal(t, "42\n", res.stdout)
}

func TestRunFileWithPatch(t *testing.T) {
	path := writeProgram(t, "1,0,0,0,99,7,8")
	res := execute(t, "", "run", path, "--patch", "1=5", "--patch", "2=6", "--memory")
	require.NoError(t, res.err)
	require.Equal(t, "15,5,6,0,99,7,8\n", res.stdout)
}

func TestRunStdin(t *testing.T) {
	res := execute(t, "104,7,99\n", "run", "-")
	require.NoError(t, res.err)
	require.Equal(t, "7\n", res.stdout)
}

func TestRunJSON(t *testing.T) {
	res := execute(t, "", "run", "-c", "3,0,4,0,99", "-i", "42", "-o", "json")
	require.NoError(t, res.err)
	var got runResult
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &got))
	require.Equal(t, runResult{Output: []int64{42}, State: "halted", Steps: 3}, got)
}

func TestRunCBOR(t *testing.T) {
	res := execute(t, "", "run", "-c", "104,-5,99", "-o", "cbor")
	require.NoError(t, res.err)
	var got runResult
	require.NoError(t, cbor.Unmarshal([]byte(res.stdout), &got))
	require.Equal(t, []int64{-5}, got.Output)
	require.Equal(t, "halted", got.State)
}

func TestRunOutputFromEnv(t *testing.T) {
	t.Setenv("INTCODE_OUTPUT", "json")
	res := execute(t, "", "run", "-c", "104,1,99")
	require.NoError(t, res.err)
	require.Contains(t, res.stdout, `"output"`)
}

func TestRunConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: json\n"), 0o644))
	res := execute(t, "", "--config", path, "run", "-c", "104,1,99")
	require.NoError(t, res.err)
	require.Contains(t, res.stdout, `"state": "halted"`)
}

func TestRunWaitingForInput(t *testing.T) {
	res := execute(t, "", "run", "-c", "104,1,3,0,99")
	require.NoError(t, res.err)
	require.Equal(t, "1\n", res.stdout)
	require.Contains(t, res.stderr, "waiting for input")
}

func TestRunDefaultMemoryLimit(t *testing.T) {
	res := execute(t, "", "run", "-c", "1101,1,1,1099511627776,99")
	require.True(t, errz.Is(res.err, errz.MemoryLimit), "got %v", res.err)

	res = execute(t, "", "run", "-c", "1101,1,1,1000,4,1000,99", "--memory-limit", "0")
	require.NoError(t, res.err)
	require.Equal(t, "2\n", res.stdout)
}

func TestRunMaxSteps(t *testing.T) {
	res := execute(t, "", "run", "-c", "1105,1,0", "--max-steps", "10")
	require.ErrorIs(t, res.err, vm.ErrStopped)
}

func TestRunTrace(t *testing.T) {
	res := execute(t, "", "run", "-c", "104,1,99", "--trace")
	require.NoError(t, res.err)
	require.Contains(t, res.stderr, "OUT")
	require.Contains(t, res.stderr, "HALT")
}

func TestRunErrors(t *testing.T) {
	res := execute(t, "", "run")
	require.EqualError(t, res.err, "no program provided")

	res = execute(t, "", "run", "file.txt", "-c", "99")
	require.EqualError(t, res.err, "multiple input sources specified")

	res = execute(t, "", "run", "-c", "99", "-o", "xml")
	require.EqualError(t, res.err, "unknown output format: xml")

	res = execute(t, "", "run", "-c", "99", "--patch", "nope")
	require.Error(t, res.err)
	require.Contains(t, res.err.Error(), "expected addr=value")

	res = execute(t, "", "run", "-c", "99", "--log-level", "loud")
	require.Error(t, res.err)
}

func TestAmpPhases(t *testing.T) {
	res := execute(t, "", "amp", writeProgram(t, chainA), "--phases", "4,3,2,1,0")
	require.NoError(t, res.err)
	require.Equal(t, "43210 (phases 4,3,2,1,0)\n", res.stdout)
}

func TestAmpSearch(t *testing.T) {
	res := execute(t, "", "amp", "-c", loopA, "--search", "5-9")
	require.NoError(t, res.err)
	require.Equal(t, "139629729 (phases 9,8,7,6,5)\n", res.stdout)
}

func TestAmpErrors(t *testing.T) {
	res := execute(t, "", "amp", "-c", chainA)
	require.EqualError(t, res.err, "one of --phases or --search is required")

	res = execute(t, "", "amp", "-c", chainA, "--phases", "0", "--search", "0-4")
	require.Error(t, res.err)

	res = execute(t, "", "amp", "-c", chainA, "--search", "9-5")
	require.Error(t, res.err)
}

func TestPaint(t *testing.T) {
	res := execute(t, "", "paint", "-c", "3,100,104,1,104,0,99", "--width", "3", "--height", "3")
	require.NoError(t, res.err)
	require.Equal(t, "...\n.#.\n...\npainted 1\n", res.stdout)
}

func TestPaintJSON(t *testing.T) {
	res := execute(t, "", "paint", "-c", "3,100,104,1,104,0,99", "--width", "3", "--height", "1", "-o", "json")
	require.NoError(t, res.err)
	var got paintResult
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &got))
	require.Equal(t, paintResult{Painted: 1, Grid: []string{".#."}}, got)
}

func TestSearch(t *testing.T) {
	res := execute(t, "", "search", "-c", "1101,0,0,0,99", "--target", "150")
	require.NoError(t, res.err)
	require.Equal(t, "noun=51 verb=99 answer=5199\n", res.stdout)
}

func TestDis(t *testing.T) {
	res := execute(t, "", "dis", "-c", "1002,4,3,4,33")
	require.NoError(t, res.err)
	lines := strings.Split(strings.TrimSpace(res.stdout), "\n")
	require.Len(t, lines, 3)
	require.Contains(t, lines[0], "OPCODE")
	require.Contains(t, lines[1], "MUL")
	require.Contains(t, lines[2], "DATA")
}

func TestVersion(t *testing.T) {
	res := execute(t, "", "version")
	require.NoError(t, res.err)
	require.Equal(t, "dev\n", res.stdout)
}

func TestParsePatch(t *testing.T) {
	addr, value, err := parsePatch(" 1 = -7")
	require.NoError(t, err)
	require.Equal(t, int64(1), addr)
	require.Equal(t, int64(-7), value)

	_, _, err = parsePatch("x=1")
	require.Error(t, err)
}

func TestParseRange(t *testing.T) {
	got, err := parseRange("5-9")
	require.NoError(t, err)
	require.Equal(t, []int64{5, 6, 7, 8, 9}, got)

	got, err = parseRange("0,2,4")
	require.NoError(t, err)
	require.Equal(t, []int64{0, 2, 4}, got)

	_, err = parseRange("0-20")
	require.Error(t, err)
}
