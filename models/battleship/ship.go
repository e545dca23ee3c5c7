package battleship

import (
	"encoding/json"
	"fmt"

	cerr "github.com/saeidalz13/zk-battleship/internal/error"
)

type ShipType uint8

// The order is also the slot order of a Board.
const (
	Carrier ShipType = iota
	Battleship
	Cruiser
	Submarine
	Destroyer

	NumShipTypes = 5
)

type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
)

// shipGeometry holds the fixed patterns of a ship type anchored at (0,0).
// The horizontal pattern is `length` contiguous low bits, the vertical one
// is `length` bits spaced one row (10 bits) apart.
type shipGeometry struct {
	name       string
	length     uint8
	horPattern Mask
	verPattern Mask
}

var geometries = [NumShipTypes]shipGeometry{
	Carrier:    newShipGeometry("carrier", 5),
	Battleship: newShipGeometry("battleship", 4),
	Cruiser:    newShipGeometry("cruiser", 3),
	Submarine:  newShipGeometry("submarine", 3),
	Destroyer:  newShipGeometry("destroyer", 2),
}

func newShipGeometry(name string, length uint8) shipGeometry {
	var hor, ver Mask
	for i := uint(0); i < uint(length); i++ {
		hor = hor.Or(NewMask(1).Lsh(i))
		ver = ver.Or(NewMask(1).Lsh(i * GridSize))
	}
	return shipGeometry{name: name, length: length, horPattern: hor, verPattern: ver}
}

// Total number of cells of a full fleet
var FleetCells = func() int {
	total := 0
	for _, g := range geometries {
		total += int(g.length)
	}
	return total
}()

func ShipTypes() []ShipType {
	return []ShipType{Carrier, Battleship, Cruiser, Submarine, Destroyer}
}

func (t ShipType) IsValid() bool {
	return t < NumShipTypes
}

func (t ShipType) Length() uint8 {
	if !t.IsValid() {
		return 0
	}
	return geometries[t].length
}

func (t ShipType) String() string {
	if !t.IsValid() {
		return fmt.Sprintf("ship(%d)", uint8(t))
	}
	return geometries[t].name
}

// Pattern is the ship's occupancy when anchored at (0,0).
func (t ShipType) Pattern(o Orientation) Mask {
	if !t.IsValid() {
		return Mask{}
	}
	if o == Vertical {
		return geometries[t].verPattern
	}
	return geometries[t].horPattern
}

func (t ShipType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *ShipType) UnmarshalText(text []byte) error {
	for _, st := range ShipTypes() {
		if st.String() == string(text) {
			*t = st
			return nil
		}
	}
	return fmt.Errorf("unknown ship type: %s", text)
}

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

func (o Orientation) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

func (o *Orientation) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "horizontal":
		*o = Horizontal
	case "vertical":
		*o = Vertical
	default:
		return fmt.Errorf("unknown orientation: %s", s)
	}
	return nil
}

// Ship is one placement attempt. It is anchored by its start: the lowest x
// of a horizontal ship or the lowest y of a vertical one.
type Ship struct {
	Type        ShipType    `json:"type"`
	Orientation Orientation `json:"orientation"`
	Anchor      Position    `json:"anchor"`
}

func NewShip(t ShipType, anchor Position, o Orientation) Ship {
	return Ship{Type: t, Orientation: o, Anchor: anchor}
}

func NewCarrier(anchor Position, o Orientation) Ship {
	return NewShip(Carrier, anchor, o)
}

func NewBattleship(anchor Position, o Orientation) Ship {
	return NewShip(Battleship, anchor, o)
}

func NewCruiser(anchor Position, o Orientation) Ship {
	return NewShip(Cruiser, anchor, o)
}

func NewSubmarine(anchor Position, o Orientation) Ship {
	return NewShip(Submarine, anchor, o)
}

func NewDestroyer(anchor Position, o Orientation) Ship {
	return NewShip(Destroyer, anchor, o)
}

func (s Ship) Length() uint8 {
	return s.Type.Length()
}

// End is the far cell of the ship along its movement axis.
func (s Ship) End() Position {
	end := s.Anchor
	span := s.Length() - 1
	if s.Orientation == Vertical {
		end.Y += span
	} else {
		end.X += span
	}
	return end
}

// ValidateBounds checks the anchor is a grid cell and the far end does not
// run past coordinate 9. A ship is never clipped or wrapped.
func (s Ship) ValidateBounds() error {
	if !s.Type.IsValid() {
		return cerr.ErrShipTypeUnknown(uint8(s.Type))
	}
	if !s.Anchor.IsValid() {
		return cerr.ErrCoordinateOutOfGrid(s.Anchor.X, s.Anchor.Y)
	}

	end := s.End()
	if s.Orientation == Vertical {
		if end.Y > MaxCoordinate {
			return cerr.ErrShipOutOfBounds(s.Type.String(), end.Y)
		}
		return nil
	}
	if end.X > MaxCoordinate {
		return cerr.ErrShipOutOfBounds(s.Type.String(), end.X)
	}
	return nil
}

// Mask is the ship's occupancy: its pattern times the anchor's single bit,
// i.e. the pattern shifted to the anchor in one multiply. Only meaningful
// for ships that pass ValidateBounds.
func (s Ship) Mask() Mask {
	anchor, err := s.Anchor.Encode()
	if err != nil {
		return Mask{}
	}
	return s.Type.Pattern(s.Orientation).Mul(anchor)
}

// Cells lists the positions covered by the ship.
func (s Ship) Cells() []Position {
	cells := make([]Position, 0, s.Length())
	for i := uint8(0); i < s.Length(); i++ {
		p := s.Anchor
		if s.Orientation == Vertical {
			p.Y += i
		} else {
			p.X += i
		}
		cells = append(cells, p)
	}
	return cells
}

func (s Ship) String() string {
	return fmt.Sprintf("%s %s at %s", s.Type, s.Orientation, s.Anchor)
}
