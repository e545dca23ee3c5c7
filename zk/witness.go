package zk

import (
	mb "github.com/saeidalz13/zk-battleship/models/battleship"
)

var nullSlot = SlotWitness{X: mb.MaxCoordinate, Y: mb.MaxCoordinate}

// WitnessFromBoard flattens a board for the proof backend. This is the only
// place an empty slot is turned into the null-ship sentinel.
func WitnessFromBoard(board *mb.Board) Witness {
	w := Witness{Occupancy: board.Occupancy()}
	for _, t := range mb.ShipTypes() {
		ship, placed := board.Slot(t).Ship()
		if !placed {
			w.Slots[t] = nullSlot
			continue
		}
		w.Slots[t] = SlotWitness{
			X:        ship.Anchor.X,
			Y:        ship.Anchor.Y,
			Vertical: ship.Orientation == mb.Vertical,
			Placed:   true,
		}
	}
	return w
}

// Ships turns the placed slots back into ships, in slot order.
func (w Witness) Ships() []mb.Ship {
	ships := make([]mb.Ship, 0, mb.NumShipTypes)
	for i, slot := range w.Slots {
		if !slot.Placed {
			continue
		}
		o := mb.Horizontal
		if slot.Vertical {
			o = mb.Vertical
		}
		ships = append(ships, mb.NewShip(mb.ShipType(i), mb.NewPosition(slot.X, slot.Y), o))
	}
	return ships
}
