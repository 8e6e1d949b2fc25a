package controller

import "github.com/deepnoodle-ai/intcode/errz"

// Direction is a unit step on the grid.
type Direction Point

var (
	Up    = Direction{X: 0, Y: 1}
	Right = Direction{X: 1, Y: 0}
	Down  = Direction{X: 0, Y: -1}
	Left  = Direction{X: -1, Y: 0}
)

// Turn codes emitted by the controlling program.
const (
	TurnLeft  int64 = 0
	TurnRight int64 = 1
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return Point(d).String()
	}
}

// Turn rotates d by 90 degrees: counter-clockwise for TurnLeft and
// clockwise for TurnRight. Any other code is a BadTurn fault.
func Turn(d Direction, code int64) (Direction, error) {
	switch code {
	case TurnLeft:
		return Direction{X: -d.Y, Y: d.X}, nil
	case TurnRight:
		return Direction{X: d.Y, Y: -d.X}, nil
	default:
		return d, errz.New(errz.BadTurn, "turn code %d", code)
	}
}
