package zk

import (
	cerr "github.com/saeidalz13/zk-battleship/internal/error"
	mb "github.com/saeidalz13/zk-battleship/models/battleship"
)

// replayBoard rebuilds a board from its ships, running every placement
// rule, and requires it to be complete.
func replayBoard(ships []mb.Ship) (*mb.Board, error) {
	board := mb.NewBoard()
	for _, ship := range ships {
		if err := board.AddShip(ship); err != nil {
			return nil, err
		}
	}
	if err := board.ValidateComplete(); err != nil {
		return nil, err
	}
	return board, nil
}

// checkTurn enforces the hit-or-miss preconditions in order and returns
// whether the target is a hit:
//  1. the occupancy hashes to the published commitment
//  2. the target was not queried before
//  3. the target is a grid cell
//
// previous hits past cell 99 cannot be decomposed by the turn circuit, so
// they are rejected as malformed before the replay check.
func checkTurn(in TurnInput, occupancy mb.Mask) (bool, error) {
	if mb.Commit(occupancy) != in.BoardCommitment {
		return false, cerr.ErrCommitmentMismatch
	}
	if !in.PreviousHits.InGrid() {
		return false, cerr.ErrPreviousHitsMalformed(in.PreviousHits.Hex())
	}

	// a malformed target encodes to zero and falls through to check 3
	target, encodeErr := in.Target.Encode()
	if in.PreviousHits.Overlaps(target) {
		return false, cerr.ErrTargetReplayed(in.Target.X, in.Target.Y)
	}

	if encodeErr != nil {
		return false, cerr.ErrTargetMalformed(in.Target.X, in.Target.Y)
	}

	return occupancy.Overlaps(target), nil
}

// Evaluate checks that the witness satisfies the relation of the
// statement's circuit. It is the native counterpart of the constraint
// systems in zk/snark.
func Evaluate(st Statement, w Witness) error {
	switch st.Circuit {
	case CircuitValidateBoard:
		for i, slot := range w.Slots {
			if !slot.Placed {
				return cerr.ErrShipsMissing([]string{mb.ShipType(i).String()})
			}
		}
		board, err := replayBoard(w.Ships())
		if err != nil {
			return err
		}
		if mb.Commit(board.Occupancy()) != st.Commitment {
			return cerr.ErrCommitmentMismatch
		}
		return nil

	case CircuitHitOrMiss:
		hit, err := checkTurn(st.TurnInput(), w.Occupancy)
		if err != nil {
			return err
		}
		if hit != st.Hit {
			return errHitMismatch
		}
		return nil

	default:
		return cerr.ErrUnknownCircuit(string(st.Circuit))
	}
}
