package sqlc

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	mb "github.com/saeidalz13/zk-battleship/models/battleship"
	"github.com/saeidalz13/zk-battleship/zk"
)

func newMockManager(t *testing.T) (*AuditManager, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewDbManager(db).Audit, mock
}

func TestRecordBoardProof(t *testing.T) {
	am, mock := newMockManager(t)

	commitment := mb.Commit(mb.NewMask(7))
	proofID := uuid.NewString()
	bp := zk.BoardProof{
		Commitment: commitment,
		Proof:      zk.Proof{ID: proofID, Statement: zk.BoardStatement(commitment)},
	}

	mock.ExpectExec("INSERT INTO board_proofs").
		WithArgs(uuid.MustParse(proofID), "game", "player", commitment[:], sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, am.RecordBoardProof(context.Background(), "game", "player", bp))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordTurnProof(t *testing.T) {
	am, mock := newMockManager(t)

	in := zk.TurnInput{Target: mb.NewPosition(8, 4), BoardCommitment: mb.Commit(mb.NewMask(7))}
	tp := zk.TurnProof{Hit: true, Proof: zk.Proof{Statement: zk.TurnStatement(in, true)}}

	mock.ExpectExec("INSERT INTO turn_proofs").
		WithArgs(sqlmock.AnyArg(), "game", "attacker", "defender", int16(8), int16(4), true, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, am.RecordTurnProof(context.Background(), "game", "attacker", "defender", tp))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBoardCommitment(t *testing.T) {
	am, mock := newMockManager(t)
	commitment := mb.Commit(mb.NewMask(42))

	rows := sqlmock.NewRows([]string{"commitment"}).AddRow(commitment[:])
	mock.ExpectQuery("SELECT commitment FROM board_proofs").
		WithArgs("game", "player").
		WillReturnRows(rows)

	got, err := am.GetBoardCommitment(context.Background(), "game", "player")
	require.NoError(t, err)
	require.Equal(t, commitment, got)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCountTurnProofs(t *testing.T) {
	am, mock := newMockManager(t)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("game").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	n, err := am.CountTurnProofs(context.Background(), "game")
	require.NoError(t, err)
	require.Equal(t, int64(3), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatementJSON(t *testing.T) {
	in := zk.TurnInput{Target: mb.NewPosition(8, 4), BoardCommitment: mb.Commit(mb.NewMask(7))}
	st := statement(zk.Proof{Statement: zk.TurnStatement(in, true)})

	require.True(t, st.Valid)
	require.Contains(t, string(st.RawMessage), `"circuit":"hitOrMiss"`)
	require.Contains(t, string(st.RawMessage), `"hit":true`)

	var decoded zk.Statement
	require.NoError(t, json.Unmarshal(st.RawMessage, &decoded))
	require.Equal(t, in, decoded.TurnInput())
}

type deadlineQuerier struct {
	Querier
	deadline time.Time
}

func (q *deadlineQuerier) CountTurnProofs(ctx context.Context, _ string) (int64, error) {
	q.deadline, _ = ctx.Deadline()
	return 0, nil
}

func TestQueryTimeout(t *testing.T) {
	q := &deadlineQuerier{}
	start := time.Now()

	_, err := NewAuditManager(q).CountTurnProofs(context.Background(), "game")
	require.NoError(t, err)
	require.WithinDuration(t, start.Add(QuerierCtxTimeout), q.deadline, time.Second)
}

func TestDbManagerQueriesInTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT").
		WithArgs("game").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectCommit()

	tx, err := db.Begin()
	require.NoError(t, err)
	n, err := NewDbManager(db).Queries().WithTx(tx).CountTurnProofs(context.Background(), "game")
	require.NoError(t, err)
	require.Zero(t, n)
	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}
