package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/deepnoodle-ai/intcode/controller"
	"github.com/deepnoodle-ai/intcode/vm"
)

type paintResult struct {
	Painted int      `json:"painted" cbor:"painted"`
	Grid    []string `json:"grid" cbor:"grid"`
}

func newPaintCmd(a *app) *cobra.Command {
	var (
		width, height int
		start         int64
	)
	cmd := &cobra.Command{
		Use:   "paint FILE",
		Short: "Run a painting robot program on a grid",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			image, err := a.loadImage(cmd, args)
			if err != nil {
				return err
			}
			grid := controller.NewGrid(width, height)
			if err := grid.Set(grid.Center(), start); err != nil {
				return err
			}
			c := controller.New(vm.New(image, a.vmOptions(cmd)...), grid,
				controller.WithLogger(a.log))
			if err := c.Run(); err != nil {
				return err
			}
			result := paintResult{
				Painted: c.PaintedCount(),
				Grid:    grid.Lines(),
			}
			text := fmt.Sprintf("%s\npainted %d", strings.Join(result.Grid, "\n"), result.Painted)
			return a.writeResult(cmd, result, text)
		},
	}
	cmd.Flags().IntVar(&width, "width", 128, "grid width")
	cmd.Flags().IntVar(&height, "height", 128, "grid height")
	cmd.Flags().Int64Var(&start, "start", 0, "initial value of the starting cell")
	return cmd
}
