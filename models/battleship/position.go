package battleship

import (
	"errors"
	"fmt"

	cerr "github.com/saeidalz13/zk-battleship/internal/error"
)

var errMaskOverflow = errors.New("value does not fit in a 256-bit mask")

// Position is a grid coordinate. It may hold out of range values, e.g. an
// attacker's malformed target; Encode is where the range is enforced.
type Position struct {
	X uint8 `json:"x"`
	Y uint8 `json:"y"`
}

func NewPosition(x, y uint8) Position {
	return Position{X: x, Y: y}
}

func (p Position) IsValid() bool {
	return p.X <= MaxCoordinate && p.Y <= MaxCoordinate
}

// Index is the bit index of the cell, y*10+x.
func (p Position) Index() uint {
	return uint(p.Y)*GridSize + uint(p.X)
}

// Encode returns the single-bit mask of the cell.
func (p Position) Encode() (Mask, error) {
	if !p.IsValid() {
		return Mask{}, cerr.ErrCoordinateOutOfGrid(p.X, p.Y)
	}
	return NewMask(1).Lsh(p.Index()), nil
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Encode is the position codec: (x, y) -> 1 << (y*10+x).
func Encode(x, y uint8) (Mask, error) {
	return NewPosition(x, y).Encode()
}
