package battleship

import "strings"

const (
	PositionStateEmpty uint8 = iota
	PositionStateOccupied
)

// Grid is the expanded, row-major [y][x] view of a mask. It is built cell
// by cell and is meant for rendering and reference checks, never for the
// protocol path.
type Grid [][]uint8

// Creates a new default grid
// All indexes are zero/PositionStateEmpty
func NewGrid() Grid {
	grid := make(Grid, GridSize)

	for i := 0; i < GridSize; i++ {
		grid[i] = make([]uint8, GridSize)
	}
	return grid
}

func (m Mask) Grid() Grid {
	grid := NewGrid()
	for y := uint8(0); y < GridSize; y++ {
		for x := uint8(0); x < GridSize; x++ {
			if m.Has(NewPosition(x, y)) {
				grid[y][x] = PositionStateOccupied
			}
		}
	}
	return grid
}

// Mask folds the grid back into a bitboard. Cells outside 10x10 are ignored.
func (g Grid) Mask() Mask {
	var m Mask
	for y := 0; y < len(g) && y < GridSize; y++ {
		for x := 0; x < len(g[y]) && x < GridSize; x++ {
			if g[y][x] != PositionStateEmpty {
				m, _ = m.With(NewPosition(uint8(x), uint8(y)))
			}
		}
	}
	return m
}

func (g Grid) String() string {
	var sb strings.Builder
	sb.WriteString("   0 1 2 3 4 5 6 7 8 9\n")
	for y, row := range g {
		sb.WriteByte(byte('0' + y))
		sb.WriteString(" ")
		for _, cell := range row {
			if cell == PositionStateEmpty {
				sb.WriteString(" .")
			} else {
				sb.WriteString(" #")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
