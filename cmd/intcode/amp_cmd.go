package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/intcode/pipeline"
	"github.com/deepnoodle-ai/intcode/program"
)

type ampResult struct {
	Signal int64   `json:"signal" cbor:"signal"`
	Phases []int64 `json:"phases" cbor:"phases"`
}

func newAmpCmd(a *app) *cobra.Command {
	var (
		phases []int64
		signal int64
		search string
	)
	cmd := &cobra.Command{
		Use:   "amp FILE",
		Short: "Run a chain of amplifiers or search for the best phase settings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := a.loadImage(cmd, args)
			if err != nil {
				return err
			}
			opts := []pipeline.Option{
				pipeline.WithLogger(a.log),
				pipeline.WithVMOptions(a.vmOptions(cmd)...),
				pipeline.WithLivenessCheck(!a.cfg.GetBool("no-liveness")),
			}

			var result ampResult
			switch {
			case search != "" && len(phases) > 0:
				return errors.New("--phases and --search are mutually exclusive")
			case search != "":
				set, err := parseRange(search)
				if err != nil {
					return err
				}
				result.Signal, result.Phases, err = pipeline.MaxSignal(image, set, opts...)
				if err != nil {
					return err
				}
			case len(phases) > 0:
				result.Phases = phases
				result.Signal, err = pipeline.New(image, phases, opts...).Run(signal)
				if err != nil {
					return err
				}
			default:
				return errors.New("one of --phases or --search is required")
			}
			text := fmt.Sprintf("%d (phases %s)", result.Signal, program.Format(result.Phases))
			return a.writeResult(cmd, result, text)
		},
	}
	cmd.Flags().Int64SliceVar(&phases, "phases", nil, "phase setting of each amplifier")
	cmd.Flags().Int64Var(&signal, "signal", 0, "initial input signal")
	cmd.Flags().StringVar(&search, "search", "", "search all orderings of a phase range, e.g. 5-9")
	cmd.Flags().Bool("no-liveness", false, "forward the previous signal when an amplifier yields without output")
	a.cfg.BindPFlag("no-liveness", cmd.Flags().Lookup("no-liveness"))
	return cmd
}

// parseRange parses an inclusive range "lo-hi" or a comma-separated list.
func parseRange(s string) ([]int64, error) {
	if lo, hi, ok := strings.Cut(s, "-"); ok && lo != "" {
		from, err := strconv.ParseInt(strings.TrimSpace(lo), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid range %q: %w", s, err)
		}
		to, err := strconv.ParseInt(strings.TrimSpace(hi), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid range %q: %w", s, err)
		}
		if to < from || to-from >= 10 {
			return nil, fmt.Errorf("invalid range %q: expected 1 to 10 values", s)
		}
		var out []int64
		for v := from; v <= to; v++ {
			out = append(out, v)
		}
		return out, nil
	}
	return program.ParseString(s)
}
