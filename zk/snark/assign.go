package snark

import (
	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/witness"
	"github.com/consensys/gnark/frontend"

	cerr "github.com/saeidalz13/zk-battleship/internal/error"
	"github.com/saeidalz13/zk-battleship/zk"
)

const curve = ecc.BN254

func newCircuit(circuit zk.CircuitID) (frontend.Circuit, error) {
	switch circuit {
	case zk.CircuitValidateBoard:
		return &BoardCircuit{}, nil
	case zk.CircuitHitOrMiss:
		return &TurnCircuit{}, nil
	default:
		return nil, cerr.ErrUnknownCircuit(string(circuit))
	}
}

// assignment fills the public part from the statement and, when w is not
// nil, the secret part from the witness.
func assignment(st zk.Statement, w *zk.Witness) (frontend.Circuit, error) {
	switch st.Circuit {
	case zk.CircuitValidateBoard:
		a := &BoardCircuit{Commitment: st.Commitment.Big()}
		if w != nil {
			for i, slot := range w.Slots {
				a.Slots[i] = ShipSlot{
					X:        int(slot.X),
					Y:        int(slot.Y),
					Vertical: boolVar(slot.Vertical),
					Placed:   boolVar(slot.Placed),
				}
			}
		}
		return a, nil

	case zk.CircuitHitOrMiss:
		a := &TurnCircuit{
			TargetX:      int(st.Target.X),
			TargetY:      int(st.Target.Y),
			PreviousHits: st.PreviousHits.Big(),
			Commitment:   st.Commitment.Big(),
			Hit:          boolVar(st.Hit),
		}
		if w != nil {
			a.Occupancy = w.Occupancy.Big()
		}
		return a, nil

	default:
		return nil, cerr.ErrUnknownCircuit(string(st.Circuit))
	}
}

func fullWitness(st zk.Statement, w zk.Witness) (witness.Witness, error) {
	a, err := assignment(st, &w)
	if err != nil {
		return nil, err
	}
	return frontend.NewWitness(a, curve.ScalarField())
}

func publicWitness(st zk.Statement) (witness.Witness, error) {
	a, err := assignment(st, nil)
	if err != nil {
		return nil, err
	}
	return frontend.NewWitness(a, curve.ScalarField(), frontend.PublicOnly())
}

func boolVar(b bool) int {
	if b {
		return 1
	}
	return 0
}
