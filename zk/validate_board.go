package zk

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	cerr "github.com/saeidalz13/zk-battleship/internal/error"
	"github.com/saeidalz13/zk-battleship/internal/metrics"
	mb "github.com/saeidalz13/zk-battleship/models/battleship"
)

var errHitMismatch = errors.New("declared hit does not match the board")

// BoardProof is what a player publishes after placing its fleet.
type BoardProof struct {
	Commitment mb.Commitment `json:"commitment"`
	Proof      Proof         `json:"proof"`
}

type ValidateBoardProtocol struct {
	oracle ProofOracle
}

func NewValidateBoardProtocol(oracle ProofOracle) *ValidateBoardProtocol {
	return &ValidateBoardProtocol{oracle: oracle}
}

// Run replays the placements into a fresh board, which re-runs every
// placement rule, and proves the board's commitment. The first violated
// rule aborts the run.
func (p *ValidateBoardProtocol) Run(ships []mb.Ship) (BoardProof, error) {
	board, err := replayBoard(ships)
	if err != nil {
		recordViolation(CircuitValidateBoard, err)
		return BoardProof{}, err
	}

	commitment, err := board.Commit()
	if err != nil {
		return BoardProof{}, err
	}

	proof, err := prove(p.oracle, BoardStatement(commitment), WitnessFromBoard(board))
	if err != nil {
		return BoardProof{}, err
	}

	return BoardProof{Commitment: commitment, Proof: proof}, nil
}

// Verify returns the commitment the proof attests to. Any failure is
// ErrVerificationFailed.
func (p *ValidateBoardProtocol) Verify(proof Proof, vk VerificationKey) (mb.Commitment, error) {
	if proof.Statement.Circuit != CircuitValidateBoard {
		return mb.Commitment{}, verificationFailed(CircuitValidateBoard, fmt.Errorf("proof is for circuit %s", proof.Statement.Circuit))
	}
	if err := verify(p.oracle, proof, vk); err != nil {
		return mb.Commitment{}, err
	}
	return proof.Statement.Commitment, nil
}

func prove(oracle ProofOracle, st Statement, w Witness) (Proof, error) {
	proof, err := oracle.Prove(st, w)
	if err != nil {
		if re, ok := cerr.AsRuleErr(err); ok {
			recordViolation(st.Circuit, re)
			return Proof{}, err
		}
		return Proof{}, fmt.Errorf("prove %s: %w", st.Circuit, err)
	}

	if proof.ID == "" {
		proof.ID = uuid.NewString()
	}
	metrics.ProofsGenerated.WithLabelValues(string(st.Circuit)).Inc()
	return proof, nil
}

func verify(oracle ProofOracle, proof Proof, vk VerificationKey) error {
	if vk.Circuit != proof.Statement.Circuit {
		return verificationFailed(proof.Statement.Circuit, fmt.Errorf("key is for circuit %s", vk.Circuit))
	}

	ok, err := oracle.Verify(proof, vk)
	if err != nil {
		return verificationFailed(proof.Statement.Circuit, err)
	}
	if !ok {
		return verificationFailed(proof.Statement.Circuit, nil)
	}
	return nil
}

func verificationFailed(circuit CircuitID, cause error) error {
	metrics.VerificationFailures.WithLabelValues(string(circuit)).Inc()
	if cause == nil {
		return fmt.Errorf("%s: %w", circuit, cerr.ErrVerificationFailed)
	}
	return fmt.Errorf("%s: %w: %v", circuit, cerr.ErrVerificationFailed, cause)
}

func recordViolation(circuit CircuitID, err error) {
	if re, ok := cerr.AsRuleErr(err); ok {
		metrics.RuleViolations.WithLabelValues(string(circuit), re.RuleName()).Inc()
	}
}
