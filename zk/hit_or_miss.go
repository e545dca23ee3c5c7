package zk

import (
	"fmt"

	mb "github.com/saeidalz13/zk-battleship/models/battleship"
)

// TurnProof is the defender's answer to one query.
type TurnProof struct {
	Hit   bool  `json:"hit"`
	Proof Proof `json:"proof"`
}

type HitOrMissProtocol struct {
	oracle ProofOracle
}

func NewHitOrMissProtocol(oracle ProofOracle) *HitOrMissProtocol {
	return &HitOrMissProtocol{oracle: oracle}
}

// Run answers a query against the defender's private board. The board
// must be finalized; then the commitment, replay and target checks run in
// that order and the first failure aborts before anything is proven.
func (p *HitOrMissProtocol) Run(in TurnInput, board *mb.Board) (TurnProof, error) {
	if err := board.ValidateComplete(); err != nil {
		recordViolation(CircuitHitOrMiss, err)
		return TurnProof{}, err
	}

	hit, err := checkTurn(in, board.Occupancy())
	if err != nil {
		recordViolation(CircuitHitOrMiss, err)
		return TurnProof{}, err
	}

	proof, err := prove(p.oracle, TurnStatement(in, hit), Witness{Occupancy: board.Occupancy()})
	if err != nil {
		return TurnProof{}, err
	}

	return TurnProof{Hit: hit, Proof: proof}, nil
}

// Verify is the attacker's side. The proof must attest exactly the query
// that was sent and check against the key; it then yields hit or miss.
func (p *HitOrMissProtocol) Verify(proof Proof, vk VerificationKey, expected TurnInput) (bool, error) {
	st := proof.Statement
	if st.Circuit != CircuitHitOrMiss {
		return false, verificationFailed(CircuitHitOrMiss, fmt.Errorf("proof is for circuit %s", st.Circuit))
	}
	if st.TurnInput() != expected {
		return false, verificationFailed(CircuitHitOrMiss, fmt.Errorf("proof answers target %s, asked %s", st.Target, expected.Target))
	}
	if err := verify(p.oracle, proof, vk); err != nil {
		return false, err
	}
	return st.Hit, nil
}
