package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/intcode/dis"
)

func newDisCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dis FILE",
		Short: "Disassemble a program",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := a.loadImage(cmd, args)
			if err != nil {
				return err
			}
			instructions := dis.Disassemble(image)
			switch strings.ToLower(a.cfg.GetString("output")) {
			case "", "text":
				return dis.Print(instructions, cmd.OutOrStdout())
			default:
				return a.writeResult(cmd, instructions, "")
			}
		},
	}
}
