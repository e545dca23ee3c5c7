// Package snark proves the board protocols with groth16 over BN254.
package snark

import (
	"math/big"

	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/mimc"
	"github.com/consensys/gnark/std/math/bits"

	mb "github.com/saeidalz13/zk-battleship/models/battleship"
)

const maxCoordinate = int(mb.MaxCoordinate)

// ShipSlot is one flattened fleet slot. An empty slot is the sentinel
// X=9, Y=9, Placed=0.
type ShipSlot struct {
	X        frontend.Variable
	Y        frontend.Variable
	Vertical frontend.Variable
	Placed   frontend.Variable
}

// BoardCircuit proves that five secret placements form a legal fleet whose
// occupancy hashes to Commitment.
type BoardCircuit struct {
	Slots      [mb.NumShipTypes]ShipSlot
	Commitment frontend.Variable `gnark:",public"`
}

func (c *BoardCircuit) Define(api frontend.API) error {
	cells := make([]frontend.Variable, mb.GridCells)
	for i := range cells {
		cells[i] = 0
	}
	var occupancy frontend.Variable = 0

	for i, slot := range c.Slots {
		t := mb.ShipType(i)

		// no null ship
		api.AssertIsEqual(slot.Placed, 1)
		api.AssertIsBoolean(slot.Vertical)

		api.AssertIsLessOrEqual(slot.X, maxCoordinate)
		api.AssertIsLessOrEqual(slot.Y, maxCoordinate)

		// far end along the movement axis stays on the grid
		start := api.Select(slot.Vertical, slot.Y, slot.X)
		span := api.Mul(slot.Placed, int(t.Length())-1)
		api.AssertIsLessOrEqual(api.Add(start, span), maxCoordinate)

		pattern := api.Select(slot.Vertical, t.Pattern(mb.Vertical).Big(), t.Pattern(mb.Horizontal).Big())
		mask := api.Mul(slot.Placed, pattern, cellBit(api, slot.X, slot.Y))

		maskBits := bits.ToBinary(api, mask, bits.WithNbDigits(mb.GridCells))
		for j := range cells {
			cells[j] = api.Add(cells[j], maskBits[j])
		}
		occupancy = api.Add(occupancy, mask)
	}

	// a cell covered twice sums to 2
	for _, covered := range cells {
		api.AssertIsBoolean(covered)
	}

	return assertCommitment(api, occupancy, c.Commitment)
}

// TurnCircuit proves Hit is the bit of the committed occupancy at the
// target, and that the target is not among PreviousHits.
type TurnCircuit struct {
	Occupancy frontend.Variable

	TargetX      frontend.Variable `gnark:",public"`
	TargetY      frontend.Variable `gnark:",public"`
	PreviousHits frontend.Variable `gnark:",public"`
	Commitment   frontend.Variable `gnark:",public"`
	Hit          frontend.Variable `gnark:",public"`
}

func (c *TurnCircuit) Define(api frontend.API) error {
	if err := assertCommitment(api, c.Occupancy, c.Commitment); err != nil {
		return err
	}

	api.AssertIsLessOrEqual(c.TargetX, maxCoordinate)
	api.AssertIsLessOrEqual(c.TargetY, maxCoordinate)

	occupancyBits := bits.ToBinary(api, c.Occupancy, bits.WithNbDigits(mb.GridCells))
	previousBits := bits.ToBinary(api, c.PreviousHits, bits.WithNbDigits(mb.GridCells))

	idx := api.Add(api.Mul(c.TargetY, mb.GridSize), c.TargetX)
	var hit, replayed frontend.Variable = 0, 0
	for i := 0; i < mb.GridCells; i++ {
		selected := api.IsZero(api.Sub(idx, i))
		hit = api.Add(hit, api.Mul(selected, occupancyBits[i]))
		replayed = api.Add(replayed, api.Mul(selected, previousBits[i]))
	}

	api.AssertIsEqual(replayed, 0)
	api.AssertIsEqual(c.Hit, hit)
	return nil
}

// cellBit is 2^(10y+x) for x, y already bounded to [0,9].
func cellBit(api frontend.API, x, y frontend.Variable) frontend.Variable {
	idx := api.Add(api.Mul(y, mb.GridSize), x)

	var bit frontend.Variable = 0
	for i := 0; i < mb.GridCells; i++ {
		weight := new(big.Int).Lsh(big.NewInt(1), uint(i))
		bit = api.Add(bit, api.Mul(api.IsZero(api.Sub(idx, i)), weight))
	}
	return bit
}

// Same MiMC as battleship.Commit.
func assertCommitment(api frontend.API, occupancy, commitment frontend.Variable) error {
	h, err := mimc.NewMiMC(api)
	if err != nil {
		return err
	}
	h.Write(occupancy)
	api.AssertIsEqual(h.Sum(), commitment)
	return nil
}
