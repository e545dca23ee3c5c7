package zk_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	cerr "github.com/saeidalz13/zk-battleship/internal/error"
	"github.com/saeidalz13/zk-battleship/internal/metrics"
	mb "github.com/saeidalz13/zk-battleship/models/battleship"
	"github.com/saeidalz13/zk-battleship/zk"
	"github.com/saeidalz13/zk-battleship/zk/local"
)

//	   0 1 2 3 4 5 6 7 8 9
//	0            # # # #
//	1      #
//	2      #           #
//	3      #           #
//	4      #           #
//	5      #
//	6
//	7      # # #
//	8                #
//	9                #
func sampleShips() []mb.Ship {
	return []mb.Ship{
		mb.NewCarrier(mb.NewPosition(2, 1), mb.Vertical),
		mb.NewBattleship(mb.NewPosition(5, 0), mb.Horizontal),
		mb.NewCruiser(mb.NewPosition(2, 7), mb.Horizontal),
		mb.NewSubmarine(mb.NewPosition(8, 2), mb.Vertical),
		mb.NewDestroyer(mb.NewPosition(7, 8), mb.Vertical),
	}
}

type fixture struct {
	oracle     *local.Oracle
	keys       map[zk.CircuitID]zk.VerificationKey
	validate   *zk.ValidateBoardProtocol
	hitOrMiss  *zk.HitOrMissProtocol
	board      *mb.Board
	commitment mb.Commitment
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	o := local.New()
	keys, err := zk.CompileAll(o)
	require.NoError(t, err)

	board := mb.NewBoard()
	for _, s := range sampleShips() {
		require.NoError(t, board.AddShip(s))
	}
	commitment, err := board.Commit()
	require.NoError(t, err)

	return fixture{
		oracle:     o,
		keys:       keys,
		validate:   zk.NewValidateBoardProtocol(o),
		hitOrMiss:  zk.NewHitOrMissProtocol(o),
		board:      board,
		commitment: commitment,
	}
}

func TestValidateBoard(t *testing.T) {
	f := newFixture(t)

	before := testutil.ToFloat64(metrics.ProofsGenerated.WithLabelValues(string(zk.CircuitValidateBoard)))
	bp, err := f.validate.Run(sampleShips())
	require.NoError(t, err)
	require.Equal(t, f.commitment, bp.Commitment)
	require.Equal(t, f.commitment, bp.Proof.Statement.Commitment)
	require.NotEmpty(t, bp.Proof.ID)
	require.Equal(t, before+1, testutil.ToFloat64(metrics.ProofsGenerated.WithLabelValues(string(zk.CircuitValidateBoard))))

	commitment, err := f.validate.Verify(bp.Proof, f.keys[zk.CircuitValidateBoard])
	require.NoError(t, err)
	require.Equal(t, f.commitment, commitment)

	// the turn key does not verify a board proof
	_, err = f.validate.Verify(bp.Proof, f.keys[zk.CircuitHitOrMiss])
	require.ErrorIs(t, err, cerr.ErrVerificationFailed)

	tampered := bp.Proof
	tampered.Statement.Commitment[0] ^= 1
	_, err = f.validate.Verify(tampered, f.keys[zk.CircuitValidateBoard])
	require.ErrorIs(t, err, cerr.ErrVerificationFailed)
}

func TestValidateBoardRejects(t *testing.T) {
	ships := sampleShips()

	tests := []struct {
		name        string
		ships       []mb.Ship
		expectedErr error
	}{
		{name: "missing destroyer", ships: ships[:4], expectedErr: cerr.ErrNullShipPresent},
		{name: "no ships", ships: nil, expectedErr: cerr.ErrNullShipPresent},
		{
			name:        "two carriers",
			ships:       append(append([]mb.Ship{}, ships...), mb.NewCarrier(mb.NewPosition(0, 9), mb.Horizontal)),
			expectedErr: cerr.ErrAlreadyPlaced,
		},
		{
			name: "overlapping battleship",
			ships: []mb.Ship{
				ships[0],
				mb.NewBattleship(mb.NewPosition(2, 1), mb.Horizontal),
				ships[2], ships[3], ships[4],
			},
			expectedErr: cerr.ErrOverlap,
		},
		{
			name: "carrier out of bounds",
			ships: []mb.Ship{
				mb.NewCarrier(mb.NewPosition(6, 1), mb.Horizontal),
				ships[1], ships[2], ships[3], ships[4],
			},
			expectedErr: cerr.ErrOutOfBounds,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			f := newFixture(t)
			re, _ := cerr.AsRuleErr(test.expectedErr)
			before := testutil.ToFloat64(metrics.RuleViolations.WithLabelValues(string(zk.CircuitValidateBoard), re.RuleName()))

			_, err := f.validate.Run(test.ships)
			require.ErrorIs(t, err, test.expectedErr)
			require.Equal(t, before+1, testutil.ToFloat64(metrics.RuleViolations.WithLabelValues(string(zk.CircuitValidateBoard), re.RuleName())))
		})
	}
}

func TestHitOrMiss(t *testing.T) {
	f := newFixture(t)
	vk := f.keys[zk.CircuitHitOrMiss]

	tests := []struct {
		name   string
		target mb.Position
		hit    bool
	}{
		{name: "submarine hit", target: mb.NewPosition(8, 4), hit: true},
		{name: "below submarine miss", target: mb.NewPosition(8, 5), hit: false},
		{name: "carrier hit", target: mb.NewPosition(2, 3), hit: true},
		{name: "next to carrier miss", target: mb.NewPosition(3, 3), hit: false},
		{name: "corner miss", target: mb.NewPosition(0, 0), hit: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			in := zk.TurnInput{Target: test.target, BoardCommitment: f.commitment}
			tp, err := f.hitOrMiss.Run(in, f.board)
			require.NoError(t, err)
			require.Equal(t, test.hit, tp.Hit)

			hit, err := f.hitOrMiss.Verify(tp.Proof, vk, in)
			require.NoError(t, err)
			require.Equal(t, test.hit, hit)
		})
	}
}

func TestHitOrMissPreconditions(t *testing.T) {
	f := newFixture(t)
	target := mb.NewPosition(5, 5)
	cell, err := target.Encode()
	require.NoError(t, err)

	incomplete := mb.NewBoard()
	require.NoError(t, incomplete.AddCarrier(mb.NewPosition(0, 0), mb.Horizontal))

	tests := []struct {
		name        string
		in          zk.TurnInput
		board       *mb.Board
		expectedErr error
	}{
		{
			name:        "commitment of another board",
			in:          zk.TurnInput{Target: target, BoardCommitment: mb.Commitment{}},
			board:       f.board,
			expectedErr: cerr.ErrCommitmentMismatch,
		},
		{
			name:        "mismatch is reported before replay",
			in:          zk.TurnInput{Target: target, PreviousHits: cell, BoardCommitment: mb.Commit(mb.NewMask(1))},
			board:       f.board,
			expectedErr: cerr.ErrCommitmentMismatch,
		},
		{
			name:        "target among previous hits",
			in:          zk.TurnInput{Target: target, PreviousHits: cell, BoardCommitment: f.commitment},
			board:       f.board,
			expectedErr: cerr.ErrReplayedTarget,
		},
		{
			name:        "x past 9",
			in:          zk.TurnInput{Target: mb.NewPosition(10, 0), BoardCommitment: f.commitment},
			board:       f.board,
			expectedErr: cerr.ErrMalformedTarget,
		},
		{
			name:        "y past 9",
			in:          zk.TurnInput{Target: mb.NewPosition(0, 10), PreviousHits: cell, BoardCommitment: f.commitment},
			board:       f.board,
			expectedErr: cerr.ErrMalformedTarget,
		},
		{
			name:        "previous hits past the last cell",
			in:          zk.TurnInput{Target: mb.NewPosition(8, 4), PreviousHits: mb.NewMask(1).Lsh(150), BoardCommitment: f.commitment},
			board:       f.board,
			expectedErr: cerr.ErrMalformedTarget,
		},
		{
			name:        "previous hits with bit 100 set",
			in:          zk.TurnInput{Target: mb.NewPosition(8, 4), PreviousHits: mb.NewMask(1).Lsh(mb.GridCells), BoardCommitment: f.commitment},
			board:       f.board,
			expectedErr: cerr.ErrMalformedTarget,
		},
		{
			name:        "board still placing",
			in:          zk.TurnInput{Target: target, BoardCommitment: mb.Commit(incomplete.Occupancy())},
			board:       incomplete,
			expectedErr: cerr.ErrNullShipPresent,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := f.hitOrMiss.Run(test.in, test.board)
			require.ErrorIs(t, err, test.expectedErr)
		})
	}
}

func TestHitOrMissReplayAfterFold(t *testing.T) {
	f := newFixture(t)
	vk := f.keys[zk.CircuitHitOrMiss]

	var previousHits mb.Mask
	target := mb.NewPosition(8, 4)

	in := zk.TurnInput{Target: target, PreviousHits: previousHits, BoardCommitment: f.commitment}
	tp, err := f.hitOrMiss.Run(in, f.board)
	require.NoError(t, err)
	hit, err := f.hitOrMiss.Verify(tp.Proof, vk, in)
	require.NoError(t, err)
	require.True(t, hit)

	previousHits, err = previousHits.With(target)
	require.NoError(t, err)

	again := zk.TurnInput{Target: target, PreviousHits: previousHits, BoardCommitment: f.commitment}
	_, err = f.hitOrMiss.Run(again, f.board)
	require.ErrorIs(t, err, cerr.ErrReplayedTarget)

	// the next target still goes through with the folded history
	next := zk.TurnInput{Target: mb.NewPosition(8, 5), PreviousHits: previousHits, BoardCommitment: f.commitment}
	tp, err = f.hitOrMiss.Run(next, f.board)
	require.NoError(t, err)
	require.False(t, tp.Hit)
}

func TestHitOrMissVerifyRejects(t *testing.T) {
	f := newFixture(t)
	vk := f.keys[zk.CircuitHitOrMiss]

	in := zk.TurnInput{Target: mb.NewPosition(8, 4), BoardCommitment: f.commitment}
	tp, err := f.hitOrMiss.Run(in, f.board)
	require.NoError(t, err)

	before := testutil.ToFloat64(metrics.VerificationFailures.WithLabelValues(string(zk.CircuitHitOrMiss)))

	// answer to a different question
	asked := in
	asked.Target = mb.NewPosition(8, 5)
	_, err = f.hitOrMiss.Verify(tp.Proof, vk, asked)
	require.ErrorIs(t, err, cerr.ErrVerificationFailed)

	// flipped output
	flipped := tp.Proof
	flipped.Statement.Hit = !flipped.Statement.Hit
	_, err = f.hitOrMiss.Verify(flipped, vk, in)
	require.ErrorIs(t, err, cerr.ErrVerificationFailed)

	// corrupted blob
	corrupted := tp.Proof
	corrupted.Blob = append([]byte(nil), tp.Proof.Blob...)
	corrupted.Blob[0] ^= 0xff
	_, err = f.hitOrMiss.Verify(corrupted, vk, in)
	require.ErrorIs(t, err, cerr.ErrVerificationFailed)

	require.Equal(t, before+3, testutil.ToFloat64(metrics.VerificationFailures.WithLabelValues(string(zk.CircuitHitOrMiss))))
}

func TestWitnessFromBoardSentinel(t *testing.T) {
	b := mb.NewBoard()
	require.NoError(t, b.AddCruiser(mb.NewPosition(1, 2), mb.Vertical))

	w := zk.WitnessFromBoard(b)
	require.Equal(t, zk.SlotWitness{X: 1, Y: 2, Vertical: true, Placed: true}, w.Slots[mb.Cruiser])
	require.Equal(t, zk.SlotWitness{X: 9, Y: 9}, w.Slots[mb.Carrier])
	require.Len(t, w.Ships(), 1)
	require.True(t, w.Occupancy.Equal(b.Occupancy()))

	err := zk.Evaluate(zk.BoardStatement(mb.Commit(b.Occupancy())), w)
	require.ErrorIs(t, err, cerr.ErrNullShipPresent)
}
