package battleship

import (
	"math/big"
	"math/bits"

	"github.com/holiman/uint256"
)

const (
	GridSize  = 10
	GridCells = GridSize * GridSize

	// Highest valid x or y
	MaxCoordinate uint8 = GridSize - 1
)

// Mask is a bitboard of the 10x10 grid. Cell (x, y) lives at bit y*10+x.
// Every operation on it is a single wide-integer instruction so overlap,
// occupancy and placement never loop over cells.
type Mask struct {
	n uint256.Int
}

func NewMask(v uint64) Mask {
	var m Mask
	m.n.SetUint64(v)
	return m
}

// MaskFromBig fails if v does not fit in 256 bits.
func MaskFromBig(v *big.Int) (Mask, error) {
	var m Mask
	n, overflow := uint256.FromBig(v)
	if overflow {
		return Mask{}, errMaskOverflow
	}
	m.n = *n
	return m, nil
}

func (m Mask) And(o Mask) Mask {
	var r Mask
	r.n.And(&m.n, &o.n)
	return r
}

func (m Mask) Or(o Mask) Mask {
	var r Mask
	r.n.Or(&m.n, &o.n)
	return r
}

func (m Mask) Mul(o Mask) Mask {
	var r Mask
	r.n.Mul(&m.n, &o.n)
	return r
}

func (m Mask) Lsh(n uint) Mask {
	var r Mask
	r.n.Lsh(&m.n, n)
	return r
}

func (m Mask) IsZero() bool {
	return m.n.IsZero()
}

func (m Mask) Equal(o Mask) bool {
	return m.n.Eq(&o.n)
}

// Overlaps reports whether m and o share at least one cell.
func (m Mask) Overlaps(o Mask) bool {
	return !m.And(o).IsZero()
}

// Has reports whether the cell p is set. Malformed positions are never set.
func (m Mask) Has(p Position) bool {
	cell, err := p.Encode()
	if err != nil {
		return false
	}
	return m.Overlaps(cell)
}

// With returns m with the cell p set. This is how an attacker folds a
// queried target into its previous hits.
func (m Mask) With(p Position) (Mask, error) {
	cell, err := p.Encode()
	if err != nil {
		return m, err
	}
	return m.Or(cell), nil
}

func (m Mask) PopCount() int {
	c := 0
	for _, w := range m.n {
		c += bits.OnesCount64(w)
	}
	return c
}

// InGrid reports whether no bit above the last grid cell is set.
func (m Mask) InGrid() bool {
	return m.n.BitLen() <= GridCells
}

func (m Mask) Big() *big.Int {
	return m.n.ToBig()
}

// Bytes32 is the big-endian 32-byte form of the mask.
func (m Mask) Bytes32() [32]byte {
	return m.n.Bytes32()
}

func (m Mask) Hex() string {
	return m.n.Hex()
}

func (m Mask) String() string {
	return m.Hex()
}

func (m Mask) MarshalText() ([]byte, error) {
	return []byte(m.n.Hex()), nil
}

func (m *Mask) UnmarshalText(text []byte) error {
	n, err := uint256.FromHex(string(text))
	if err != nil {
		return err
	}
	m.n = *n
	return nil
}
