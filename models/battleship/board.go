package battleship

import (
	cerr "github.com/saeidalz13/zk-battleship/internal/error"
)

type BoardState uint8

const (
	BoardStatePlacing BoardState = iota
	BoardStateFinalized
)

func (s BoardState) String() string {
	if s == BoardStateFinalized {
		return "finalized"
	}
	return "placing"
}

// Slot is either Empty or holds the one placed ship of its type.
type Slot struct {
	ship   Ship
	placed bool
}

func (s Slot) Placed() bool {
	return s.placed
}

func (s Slot) Ship() (Ship, bool) {
	return s.ship, s.placed
}

// Board keeps one slot per ship type. Masks of placed ships never overlap
// and every placed ship is inside the grid; both hold after every AddShip.
// The occupancy must stay on its owner's side: only Commit crosses over.
type Board struct {
	slots     [NumShipTypes]Slot
	occupancy Mask
}

func NewBoard() *Board {
	return &Board{}
}

// AddShip places the ship into the slot of its type. The slot is set once.
func (b *Board) AddShip(ship Ship) error {
	if err := ship.ValidateBounds(); err != nil {
		return err
	}

	if b.slots[ship.Type].placed {
		return cerr.ErrShipAlreadyPlaced(ship.Type.String())
	}

	mask := ship.Mask()
	if b.occupancy.Overlaps(mask) {
		return cerr.ErrShipOverlapping(ship.Type.String())
	}

	b.slots[ship.Type] = Slot{ship: ship, placed: true}
	b.occupancy = b.recomputeOccupancy()
	return nil
}

func (b *Board) AddCarrier(anchor Position, o Orientation) error {
	return b.AddShip(NewCarrier(anchor, o))
}

func (b *Board) AddBattleship(anchor Position, o Orientation) error {
	return b.AddShip(NewBattleship(anchor, o))
}

func (b *Board) AddCruiser(anchor Position, o Orientation) error {
	return b.AddShip(NewCruiser(anchor, o))
}

func (b *Board) AddSubmarine(anchor Position, o Orientation) error {
	return b.AddShip(NewSubmarine(anchor, o))
}

func (b *Board) AddDestroyer(anchor Position, o Orientation) error {
	return b.AddShip(NewDestroyer(anchor, o))
}

func (b *Board) recomputeOccupancy() Mask {
	var occ Mask
	for _, slot := range b.slots {
		if slot.placed {
			occ = occ.Or(slot.ship.Mask())
		}
	}
	return occ
}

// Occupancy is the OR of every placed ship mask. Empty slots add nothing.
func (b *Board) Occupancy() Mask {
	return b.occupancy
}

// IsOccupied reports whether a ship covers the target cell.
func (b *Board) IsOccupied(target Mask) bool {
	return b.occupancy.Overlaps(target)
}

func (b *Board) Slot(t ShipType) Slot {
	if !t.IsValid() {
		return Slot{}
	}
	return b.slots[t]
}

// Ships returns the placed ships in slot order.
func (b *Board) Ships() []Ship {
	ships := make([]Ship, 0, NumShipTypes)
	for _, slot := range b.slots {
		if slot.placed {
			ships = append(ships, slot.ship)
		}
	}
	return ships
}

func (b *Board) MissingShips() []ShipType {
	var missing []ShipType
	for t, slot := range b.slots {
		if !slot.placed {
			missing = append(missing, ShipType(t))
		}
	}
	return missing
}

func (b *Board) IsComplete() bool {
	return len(b.MissingShips()) == 0
}

// ValidateComplete fails with NullShipPresent unless all five slots are
// placed. Overlap and bounds were already enforced by AddShip.
func (b *Board) ValidateComplete() error {
	missing := b.MissingShips()
	if len(missing) == 0 {
		return nil
	}

	names := make([]string, 0, len(missing))
	for _, t := range missing {
		names = append(names, t.String())
	}
	return cerr.ErrShipsMissing(names)
}

func (b *Board) State() BoardState {
	if b.IsComplete() {
		return BoardStateFinalized
	}
	return BoardStatePlacing
}

// Commit is defined for complete boards only.
func (b *Board) Commit() (Commitment, error) {
	if err := b.ValidateComplete(); err != nil {
		return Commitment{}, err
	}
	return Commit(b.occupancy), nil
}

func (b *Board) String() string {
	return b.occupancy.Grid().String()
}
