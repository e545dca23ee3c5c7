// Package local is an in-process stand-in for a succinct-proof backend.
// It checks the relation natively and attests the statement with a keyed
// sha3 digest. It hides nothing from whoever holds the key and anyone with
// the key can attest, so it only fits development and tests.
package local

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/binary"
	"sync"

	"golang.org/x/crypto/sha3"

	cerr "github.com/saeidalz13/zk-battleship/internal/error"
	"github.com/saeidalz13/zk-battleship/zk"
)

type Oracle struct {
	secret []byte

	mu   sync.RWMutex
	keys map[zk.CircuitID]zk.VerificationKey
}

var _ zk.ProofOracle = (*Oracle)(nil)

// New returns an oracle with a random instance secret. Keys of one
// instance never verify proofs of another.
func New() *Oracle {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		panic(err)
	}
	return NewWithSecret(secret)
}

// NewWithSecret gives deterministic keys, for reproducible tests.
func NewWithSecret(secret []byte) *Oracle {
	return &Oracle{
		secret: append([]byte(nil), secret...),
		keys:   make(map[zk.CircuitID]zk.VerificationKey, 2),
	}
}

func (o *Oracle) Compile(circuit zk.CircuitID) (zk.VerificationKey, error) {
	if !circuit.IsValid() {
		return zk.VerificationKey{}, cerr.ErrUnknownCircuit(string(circuit))
	}

	o.mu.RLock()
	vk, prs := o.keys[circuit]
	o.mu.RUnlock()
	if prs {
		return vk, nil
	}

	h := sha3.New256()
	h.Write([]byte(circuit))
	h.Write(binary.BigEndian.AppendUint32(nil, zk.CircuitVersion))
	h.Write(o.secret)
	vk = zk.VerificationKey{Circuit: circuit, Version: zk.CircuitVersion, Data: h.Sum(nil)}

	o.mu.Lock()
	o.keys[circuit] = vk
	o.mu.Unlock()
	return vk, nil
}

func (o *Oracle) Prove(st zk.Statement, w zk.Witness) (zk.Proof, error) {
	vk, err := o.key(st.Circuit)
	if err != nil {
		return zk.Proof{}, err
	}

	if err := zk.Evaluate(st, w); err != nil {
		return zk.Proof{}, err
	}

	return zk.Proof{Statement: st, Blob: attest(vk, st)}, nil
}

func (o *Oracle) Verify(proof zk.Proof, vk zk.VerificationKey) (bool, error) {
	if vk.Version != zk.CircuitVersion || vk.Circuit != proof.Statement.Circuit {
		return false, nil
	}
	expected := attest(vk, proof.Statement)
	return subtle.ConstantTimeCompare(expected, proof.Blob) == 1, nil
}

func (o *Oracle) key(circuit zk.CircuitID) (zk.VerificationKey, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	vk, prs := o.keys[circuit]
	if !prs {
		return zk.VerificationKey{}, cerr.ErrCircuitNotCompiled(string(circuit))
	}
	return vk, nil
}

// sha3 has no length-extension weakness, so H(key || msg) is a MAC.
func attest(vk zk.VerificationKey, st zk.Statement) []byte {
	h := sha3.New256()
	h.Write(vk.Data)
	h.Write(st.Bytes())
	return h.Sum(nil)
}
