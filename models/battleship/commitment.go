package battleship

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
)

// Commitment is MiMC over BN254 of the occupancy mask read as one scalar.
// The same hash is recomputed inside the turn circuit.
type Commitment [32]byte

// Commit hashes an occupancy mask. Only the mask goes in, so any two
// placement orders reaching the same occupancy commit identically.
func Commit(occupancy Mask) Commitment {
	h := mimc.NewMiMC()
	block := occupancy.Bytes32()
	// occupancy < 2^256 but grid masks are < 2^100, always a canonical scalar
	if _, err := h.Write(block[:]); err != nil {
		panic(fmt.Sprintf("mimc: occupancy is not a field element: %v", err))
	}

	var c Commitment
	copy(c[:], h.Sum(nil))
	return c
}

func (c Commitment) Big() *big.Int {
	return new(big.Int).SetBytes(c[:])
}

func (c Commitment) IsZero() bool {
	return c == Commitment{}
}

func (c Commitment) Hex() string {
	return "0x" + hex.EncodeToString(c[:])
}

func (c Commitment) String() string {
	return c.Hex()
}

func (c Commitment) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

func (c *Commitment) UnmarshalText(text []byte) error {
	s := string(text)
	if len(s) >= 2 && s[:2] == "0x" {
		s = s[2:]
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	if len(b) != len(c) {
		return fmt.Errorf("commitment must be %d bytes, got %d", len(c), len(b))
	}
	copy(c[:], b)
	return nil
}
