package game

import "fmt"

// Board dimensions. The simulator stores cells in fixed-size arrays of this shape.
const (
	Rows = 7
	Cols = 5
)

// Position is a cell coordinate on the board.
type Position struct {
	R int
	C int
}

// MoveOffsets are the four orthogonal steps a soldier may take in a move.
var MoveOffsets = [4]Position{{-1, 0}, {0, 1}, {0, -1}, {1, 0}}

func (p Position) Add(o Position) Position {
	return Position{R: p.R + o.R, C: p.C + o.C}
}

func (p Position) Sub(o Position) Position {
	return Position{R: p.R - o.R, C: p.C - o.C}
}

// Valid reports whether the position lies on the board.
func (p Position) Valid() bool {
	return p.R >= 0 && p.R < Rows && p.C >= 0 && p.C < Cols
}

// Mirror reflects the position through the board centre, mapping one side's
// view of the board onto the other's.
func (p Position) Mirror() Position {
	return Position{R: Rows - 1 - p.R, C: Cols - 1 - p.C}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.R, p.C)
}

// IsNeighbor reports whether o is one orthogonal step away from p.
func (p Position) IsNeighbor(o Position) bool {
	d := o.Sub(p)
	for _, offset := range MoveOffsets {
		if d == offset {
			return true
		}
	}
	return false
}

func mustValid(p Position) {
	if !p.Valid() {
		panic(fmt.Sprintf("position %v out of bounds", p))
	}
}
