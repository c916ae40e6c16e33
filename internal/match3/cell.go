// Package match3 implements the rules of a match-3 gem board: match
// detection, gravity refill, move validation, shuffling and the session
// state machine that ties them together.
//
// The package is UI-agnostic and deterministic for a given random source.
// X grows to the right and Y grows upward: row 0 is the bottom of the
// board and gravity pulls gems toward it.
package match3

import "fmt"

// Cell is a logical grid address.
type Cell struct {
	X int
	Y int
}

// C is a convenience constructor for Cell.
func C(x, y int) Cell {
	return Cell{X: x, Y: y}
}

// String returns a string representation of the cell.
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Cell offset by (dx, dy).
func (c Cell) Add(dx, dy int) Cell {
	return Cell{X: c.X + dx, Y: c.Y + dy}
}

// Manhattan returns the Manhattan distance to another cell.
func (c Cell) Manhattan(other Cell) int {
	dx := c.X - other.X
	dy := c.Y - other.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Adjacent reports whether two cells share an edge.
func (c Cell) Adjacent(other Cell) bool {
	return c.Manhattan(other) == 1
}

// less orders cells bottom row first, then left to right.
func (c Cell) less(other Cell) bool {
	if c.Y != other.Y {
		return c.Y < other.Y
	}
	return c.X < other.X
}

// GemType identifies one configured gem kind. The zero value is None.
type GemType uint8

// None marks an empty cell. It only exists mid-resolution.
const None GemType = 0

// IsNone reports whether the value is the empty marker.
func (t GemType) IsNone() bool {
	return t == None
}

// Move is a swap of two adjacent cells.
type Move struct {
	A Cell
	B Cell
}

// String returns a string representation of the move.
func (m Move) String() string {
	return fmt.Sprintf("%v<->%v", m.A, m.B)
}
