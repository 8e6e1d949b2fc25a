package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/intcode"
	"github.com/deepnoodle-ai/intcode/vm"
)

type searchResult struct {
	Noun   int64 `json:"noun" cbor:"noun"`
	Verb   int64 `json:"verb" cbor:"verb"`
	Answer int64 `json:"answer" cbor:"answer"`
}

func newSearchCmd(a *app) *cobra.Command {
	var target int64
	cmd := &cobra.Command{
		Use:   "search FILE",
		Short: "Find the noun and verb that leave a target value at address 0",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := a.loadImage(cmd, args)
			if err != nil {
				return err
			}
			opts := []intcode.Option{
				intcode.WithLogger(a.log),
				intcode.WithWordSize(a.cfg.GetInt("word-size")),
				intcode.WithMemoryLimit(a.cfg.GetInt64("memory-limit")),
			}
			if n := a.cfg.GetInt64("max-steps"); n > 0 {
				opts = append(opts, intcode.WithObserver(vm.StepLimit(n)))
			}
			noun, verb, err := intcode.SearchNounVerb(cmd.Context(), image, target, opts...)
			if err != nil {
				return err
			}
			result := searchResult{Noun: noun, Verb: verb, Answer: 100*noun + verb}
			text := fmt.Sprintf("noun=%d verb=%d answer=%d", noun, verb, result.Answer)
			return a.writeResult(cmd, result, text)
		},
	}
	cmd.Flags().Int64Var(&target, "target", 19690720, "value expected at address 0")
	return cmd
}
