// Package controller drives a two-dimensional grid from an Intcode machine,
// the way a hull painting robot is driven by its program.
//
// The machine asks for input when it wants to read the cell under the robot,
// and answers with pairs of outputs: the value to paint and a turn code.
// After each pair the robot turns and moves one cell forward.
package controller

import (
	"cmp"
	"slices"

	"github.com/rs/zerolog"

	"github.com/deepnoodle-ai/intcode/errz"
	"github.com/deepnoodle-ai/intcode/vm"
)

// Controller couples a machine to a grid.
type Controller struct {
	m       *vm.Machine
	grid    *Grid
	pos     Point
	facing  Direction
	painted map[Point]struct{}
	onPaint func(Point, int64)
	log     zerolog.Logger
}

// Option is a configuration function for a Controller.
type Option func(*Controller)

// WithStart sets the starting position and direction.
func WithStart(p Point, d Direction) Option {
	return func(c *Controller) {
		c.pos = p
		c.facing = d
	}
}

// WithPaintHandler registers a function called after every paint, with the
// painted point and value.
func WithPaintHandler(fn func(Point, int64)) Option {
	return func(c *Controller) {
		c.onPaint = fn
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Controller) {
		c.log = logger
	}
}

// New returns a controller starting at the center of g, facing Up.
func New(m *vm.Machine, g *Grid, options ...Option) *Controller {
	c := &Controller{
		m:       m,
		grid:    g,
		pos:     g.Center(),
		facing:  Up,
		painted: map[Point]struct{}{},
		log:     zerolog.Nop(),
	}
	for _, opt := range options {
		opt(c)
	}
	return c
}

// Step executes one machine instruction and reacts to the resulting state.
// It returns true once the machine has halted.
func (c *Controller) Step() (bool, error) {
	if c.m.State() == vm.Halted {
		return true, nil
	}
	if err := c.m.Step(); err != nil {
		return false, err
	}
	switch c.m.State() {
	case vm.Halted:
		return true, nil
	case vm.Running:
		return false, errz.New(errz.Internal, "machine still running after a step")
	case vm.Interrupted:
		v, err := c.grid.At(c.pos)
		if err != nil {
			return false, err
		}
		c.m.PushInput(v)
	}
	if c.m.PendingOutput() >= 2 {
		pending := c.m.Output()
		if err := c.paint(pending[0], pending[1]); err != nil {
			return false, err
		}
		c.m.PopOutput()
		c.m.PopOutput()
	}
	return false, nil
}

// paint applies one (value, turn) pair. Nothing changes if the turn code is
// invalid or the move would leave the grid; the pair then stays queued on
// the machine.
func (c *Controller) paint(value, turn int64) error {
	facing, err := Turn(c.facing, turn)
	if err != nil {
		return err
	}
	next := c.pos.Add(Point(facing))
	if !c.grid.Contains(next) {
		return errz.New(errz.OutOfBounds, "move %s from %s leaves the %dx%d grid",
			facing, c.pos, c.grid.Width(), c.grid.Height())
	}
	if err := c.grid.Set(c.pos, value); err != nil {
		return err
	}
	painted := c.pos
	c.painted[painted] = struct{}{}
	c.facing = facing
	c.pos = next

	c.log.Trace().
		Str("at", painted.String()).
		Int64("value", value).
		Str("facing", facing.String()).
		Msg("paint")

	if c.onPaint != nil {
		c.onPaint(painted, value)
	}
	return nil
}

// Run steps until the machine halts.
func (c *Controller) Run() error {
	for {
		done, err := c.Step()
		if err != nil {
			return err
		}
		if done {
			c.log.Debug().Int("painted", len(c.painted)).Msg("halted")
			return nil
		}
	}
}

// RunSteps executes at most n machine steps. It returns early without error
// when the machine halts.
func (c *Controller) RunSteps(n int) error {
	for i := 0; i < n; i++ {
		done, err := c.Step()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
	return nil
}

// Position returns the current position.
func (c *Controller) Position() Point {
	return c.pos
}

// Facing returns the current direction.
func (c *Controller) Facing() Direction {
	return c.facing
}

// Grid returns the grid being painted.
func (c *Controller) Grid() *Grid {
	return c.grid
}

// Machine returns the controlling machine.
func (c *Controller) Machine() *vm.Machine {
	return c.m
}

// PaintedCount returns the number of distinct cells painted at least once.
func (c *Controller) PaintedCount() int {
	return len(c.painted)
}

// Painted returns the distinct cells painted at least once, ordered by row
// and then column.
func (c *Controller) Painted() []Point {
	points := make([]Point, 0, len(c.painted))
	for p := range c.painted {
		points = append(points, p)
	}
	slices.SortFunc(points, func(a, b Point) int {
		if a.Y != b.Y {
			return cmp.Compare(a.Y, b.Y)
		}
		return cmp.Compare(a.X, b.X)
	})
	return points
}
