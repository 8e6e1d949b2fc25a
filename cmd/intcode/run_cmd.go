package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/intcode/program"
	"github.com/deepnoodle-ai/intcode/vm"
)

type runResult struct {
	Output []int64 `json:"output" cbor:"output"`
	State  string  `json:"state" cbor:"state"`
	Steps  int64   `json:"steps" cbor:"steps"`
	// Memory holds the final memory when requested.
	Memory []int64 `json:"memory,omitempty" cbor:"memory,omitempty"`
}

func newRunCmd(a *app) *cobra.Command {
	var (
		inputs  []int64
		patches []string
		dump    bool
	)
	cmd := &cobra.Command{
		Use:   "run FILE",
		Short: "Run a program until it halts or needs more input",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := a.loadImage(cmd, args)
			if err != nil {
				return err
			}
			m := vm.New(image, append(a.vmOptions(cmd), vm.WithInput(inputs...))...)
			for _, p := range patches {
				addr, value, err := parsePatch(p)
				if err != nil {
					return err
				}
				if err := m.Poke(addr, value); err != nil {
					return err
				}
			}
			if err := m.Run(); err != nil {
				return err
			}
			if m.State() == vm.Interrupted {
				a.log.Warn().Int64("ip", m.IP()).Msg("program is waiting for input")
			}
			result := runResult{
				Output: m.Output(),
				State:  m.State().String(),
				Steps:  m.Steps(),
			}
			text := program.Format(result.Output)
			if dump {
				result.Memory = m.Memory().Snapshot()
				text = strings.TrimLeft(text+"\n"+program.Format(result.Memory), "\n")
			}
			return a.writeResult(cmd, result, text)
		},
	}
	cmd.Flags().Int64SliceVarP(&inputs, "input", "i", nil, "input values, in order")
	cmd.Flags().StringArrayVarP(&patches, "patch", "p", nil, "store value at addr before running (addr=value)")
	cmd.Flags().BoolVar(&dump, "memory", false, "also print the final memory")
	return cmd
}

// parsePatch parses an "addr=value" pair.
func parsePatch(s string) (int64, int64, error) {
	addrText, valueText, ok := strings.Cut(s, "=")
	if !ok {
		return 0, 0, fmt.Errorf("invalid patch %q: expected addr=value", s)
	}
	addr, err := strconv.ParseInt(strings.TrimSpace(addrText), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid patch %q: %w", s, err)
	}
	value, err := strconv.ParseInt(strings.TrimSpace(valueText), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid patch %q: %w", s, err)
	}
	return addr, value, nil
}
