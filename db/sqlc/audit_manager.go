package sqlc

import (
	"context"

	"github.com/google/uuid"
	"github.com/sqlc-dev/pqtype"

	mb "github.com/saeidalz13/zk-battleship/models/battleship"
	"github.com/saeidalz13/zk-battleship/zk"
)

// AuditManager stores the public side of every proof: ids, the statement
// and the commitment. Witnesses never reach the database.
type AuditManager struct {
	queries Querier
}

func NewAuditManager(queries Querier) *AuditManager {
	return &AuditManager{queries: queries}
}

func (a *AuditManager) RecordBoardProof(ctx context.Context, gameUuid, playerUuid string, proof zk.BoardProof) error {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	return a.queries.InsertBoardProof(ctx, InsertBoardProofParams{
		ID:         proofID(proof.Proof),
		GameUuid:   gameUuid,
		PlayerUuid: playerUuid,
		Commitment: proof.Commitment[:],
		Statement:  statement(proof.Proof),
	})
}

func (a *AuditManager) RecordTurnProof(ctx context.Context, gameUuid, attackerUuid, defenderUuid string, proof zk.TurnProof) error {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	target := proof.Proof.Statement.Target
	return a.queries.InsertTurnProof(ctx, InsertTurnProofParams{
		ID:           proofID(proof.Proof),
		GameUuid:     gameUuid,
		AttackerUuid: attackerUuid,
		DefenderUuid: defenderUuid,
		TargetX:      int16(target.X),
		TargetY:      int16(target.Y),
		Hit:          proof.Hit,
		Statement:    statement(proof.Proof),
	})
}

func (a *AuditManager) GetBoardCommitment(ctx context.Context, gameUuid, playerUuid string) (mb.Commitment, error) {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	raw, err := a.queries.GetBoardCommitment(ctx, GetBoardCommitmentParams{GameUuid: gameUuid, PlayerUuid: playerUuid})
	if err != nil {
		return mb.Commitment{}, err
	}

	var c mb.Commitment
	copy(c[:], raw)
	return c, nil
}

func (a *AuditManager) CountTurnProofs(ctx context.Context, gameUuid string) (int64, error) {
	ctx, cancel := withQueryTimeout(ctx)
	defer cancel()
	return a.queries.CountTurnProofs(ctx, gameUuid)
}

// proofs made outside the protocols may lack an id
func proofID(p zk.Proof) uuid.UUID {
	id, err := uuid.Parse(p.ID)
	if err != nil {
		return uuid.New()
	}
	return id
}

// statement is stored as NULL when it cannot be encoded.
func statement(p zk.Proof) pqtype.NullRawMessage {
	b, err := p.Statement.JSON()
	if err != nil {
		return pqtype.NullRawMessage{}
	}
	return pqtype.NullRawMessage{RawMessage: b, Valid: true}
}
