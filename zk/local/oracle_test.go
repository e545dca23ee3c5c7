package local

import (
	"testing"

	"github.com/stretchr/testify/require"

	mb "github.com/saeidalz13/zk-battleship/models/battleship"
	"github.com/saeidalz13/zk-battleship/zk"
)

func TestCompileIsIdempotent(t *testing.T) {
	o := NewWithSecret([]byte("secret"))

	vk1, err := o.Compile(zk.CircuitHitOrMiss)
	require.NoError(t, err)
	vk2, err := o.Compile(zk.CircuitHitOrMiss)
	require.NoError(t, err)
	require.Equal(t, vk1, vk2)

	other, err := o.Compile(zk.CircuitValidateBoard)
	require.NoError(t, err)
	require.NotEqual(t, vk1.Data, other.Data)

	_, err = o.Compile("nope")
	require.Error(t, err)
}

func TestProveRequiresCompile(t *testing.T) {
	o := New()
	_, err := o.Prove(zk.BoardStatement(mb.Commitment{}), zk.Witness{})
	require.Error(t, err)
}

func TestProveAndVerify(t *testing.T) {
	o := New()
	vk, err := o.Compile(zk.CircuitHitOrMiss)
	require.NoError(t, err)

	b := mb.NewBoard()
	require.NoError(t, b.AddDestroyer(mb.NewPosition(0, 0), mb.Horizontal))
	in := zk.TurnInput{Target: mb.NewPosition(1, 0), BoardCommitment: mb.Commit(b.Occupancy())}

	proof, err := o.Prove(zk.TurnStatement(in, true), zk.Witness{Occupancy: b.Occupancy()})
	require.NoError(t, err)

	ok, err := o.Verify(proof, vk)
	require.NoError(t, err)
	require.True(t, ok)

	// a lie about the output does not satisfy the relation
	_, err = o.Prove(zk.TurnStatement(in, false), zk.Witness{Occupancy: b.Occupancy()})
	require.Error(t, err)

	// a statement edited after proving no longer checks
	forged := proof
	forged.Statement.Hit = false
	ok, err = o.Verify(forged, vk)
	require.NoError(t, err)
	require.False(t, ok)

	// another instance's key does not check either
	otherVk, err := New().Compile(zk.CircuitHitOrMiss)
	require.NoError(t, err)
	ok, err = o.Verify(proof, otherVk)
	require.NoError(t, err)
	require.False(t, ok)
}
