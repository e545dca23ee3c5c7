// Package zk runs the two board protocols, placement validation and
// hit-or-miss, on top of a pluggable proof backend.
package zk

import (
	"encoding/binary"
	"encoding/json"

	mb "github.com/saeidalz13/zk-battleship/models/battleship"
)

type CircuitID string

const (
	CircuitValidateBoard CircuitID = "validateBoard"
	CircuitHitOrMiss     CircuitID = "hitOrMiss"
)

// Bumped whenever a circuit changes; keys of another version never verify.
const CircuitVersion uint32 = 1

func Circuits() []CircuitID {
	return []CircuitID{CircuitValidateBoard, CircuitHitOrMiss}
}

func (c CircuitID) IsValid() bool {
	return c == CircuitValidateBoard || c == CircuitHitOrMiss
}

// TurnInput is the public input of a hit-or-miss query.
type TurnInput struct {
	Target          mb.Position   `json:"target"`
	PreviousHits    mb.Mask       `json:"previous_hits"`
	BoardCommitment mb.Commitment `json:"board_commitment"`
}

// Statement is everything a proof makes public: the declared input and the
// output bound to it.
type Statement struct {
	Circuit CircuitID `json:"circuit"`

	// validateBoard output, hitOrMiss input
	Commitment mb.Commitment `json:"commitment"`

	// hitOrMiss only
	Target       mb.Position `json:"target"`
	PreviousHits mb.Mask     `json:"previous_hits"`
	Hit          bool        `json:"hit"`
}

func BoardStatement(commitment mb.Commitment) Statement {
	return Statement{Circuit: CircuitValidateBoard, Commitment: commitment}
}

func TurnStatement(in TurnInput, hit bool) Statement {
	return Statement{
		Circuit:      CircuitHitOrMiss,
		Commitment:   in.BoardCommitment,
		Target:       in.Target,
		PreviousHits: in.PreviousHits,
		Hit:          hit,
	}
}

func (s Statement) TurnInput() TurnInput {
	return TurnInput{Target: s.Target, PreviousHits: s.PreviousHits, BoardCommitment: s.Commitment}
}

// Bytes is the canonical encoding backends bind proofs to.
func (s Statement) Bytes() []byte {
	buf := make([]byte, 0, 128)
	buf = binary.BigEndian.AppendUint32(buf, uint32(len(s.Circuit)))
	buf = append(buf, string(s.Circuit)...)
	buf = append(buf, s.Commitment[:]...)
	buf = append(buf, s.Target.X, s.Target.Y)
	prev := s.PreviousHits.Bytes32()
	buf = append(buf, prev[:]...)
	if s.Hit {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	return buf
}

func (s Statement) JSON() ([]byte, error) {
	return json.Marshal(s)
}

// SlotWitness is one ship slot flattened to the fixed shape circuits need.
// An empty slot becomes the sentinel {X: 9, Y: 9, Placed: false}.
type SlotWitness struct {
	X        uint8
	Y        uint8
	Vertical bool
	Placed   bool
}

// Witness is the private input. Slots are used by validateBoard, Occupancy
// by hitOrMiss.
type Witness struct {
	Slots     [mb.NumShipTypes]SlotWitness
	Occupancy mb.Mask
}

type VerificationKey struct {
	Circuit CircuitID `json:"circuit"`
	Version uint32    `json:"version"`
	Data    []byte    `json:"data"`
}

// Proof is an attestation of a Statement. Blob is opaque to everything but
// the backend that produced it.
type Proof struct {
	ID        string    `json:"id"`
	Statement Statement `json:"statement"`
	Blob      []byte    `json:"blob"`
}

// ProofOracle is the succinct-proof backend. Prove and Verify are pure
// functions of their arguments and safe to call from several goroutines.
// Compile is idempotent.
type ProofOracle interface {
	Compile(circuit CircuitID) (VerificationKey, error)
	Prove(st Statement, w Witness) (Proof, error)
	Verify(proof Proof, vk VerificationKey) (bool, error)
}

// CompileAll compiles every circuit and returns the keys by circuit.
func CompileAll(oracle ProofOracle) (map[CircuitID]VerificationKey, error) {
	keys := make(map[CircuitID]VerificationKey, len(Circuits()))
	for _, c := range Circuits() {
		vk, err := oracle.Compile(c)
		if err != nil {
			return nil, err
		}
		keys[c] = vk
	}
	return keys, nil
}
