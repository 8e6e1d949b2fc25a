package controller

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/deepnoodle-ai/intcode/errz"
)

// Point is a cell coordinate. The origin is the bottom-left cell and y grows
// upwards.
type Point struct {
	X, Y int
}

// Add returns the sum of two points.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Grid is a fixed-size rectangle of integer cells, initially all zero.
type Grid struct {
	width  int
	height int
	cells  []int64
}

// NewGrid returns a width by height grid. Non-positive sizes produce an
// empty grid that contains no points.
func NewGrid(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]int64, width*height),
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows.
func (g *Grid) Height() int {
	return g.height
}

// Center returns the middle cell, rounding down.
func (g *Grid) Center() Point {
	return Point{X: g.width / 2, Y: g.height / 2}
}

// Contains reports whether p lies on the grid.
func (g *Grid) Contains(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.width && p.Y < g.height
}

// At returns the value of the cell at p.
func (g *Grid) At(p Point) (int64, error) {
	if !g.Contains(p) {
		return 0, g.outside(p)
	}
	return g.cells[p.Y*g.width+p.X], nil
}

// Set stores v in the cell at p.
func (g *Grid) Set(p Point, v int64) error {
	if !g.Contains(p) {
		return g.outside(p)
	}
	g.cells[p.Y*g.width+p.X] = v
	return nil
}

func (g *Grid) outside(p Point) error {
	return errz.New(errz.OutOfBounds, "point %s is outside the %dx%d grid", p, g.width, g.height)
}

// Lines returns one string per row, top row first. Cells holding 0 are
// drawn as '.', 1 as '#' and anything else as '?'.
func (g *Grid) Lines() []string {
	lines := make([]string, 0, g.height)
	var sb strings.Builder
	for y := g.height - 1; y >= 0; y-- {
		sb.Reset()
		for _, v := range g.cells[y*g.width : (y+1)*g.width] {
			switch v {
			case 0:
				sb.WriteByte('.')
			case 1:
				sb.WriteByte('#')
			default:
				sb.WriteByte('?')
			}
		}
		lines = append(lines, sb.String())
	}
	return lines
}

// Render writes the grid to w, one line per row, top row first.
func (g *Grid) Render(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, line := range g.Lines() {
		bw.WriteString(line)
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func (g *Grid) String() string {
	var sb strings.Builder
	g.Render(&sb)
	return sb.String()
}
