package snark

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"sync"

	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"

	cerr "github.com/saeidalz13/zk-battleship/internal/error"
	"github.com/saeidalz13/zk-battleship/zk"
)

// Oracle is a groth16 ProofOracle. Compiled circuits are shared by every
// game using the oracle.
type Oracle struct {
	store *KeyStore

	mu       sync.RWMutex
	compiled map[zk.CircuitID]*compiledCircuit
}

var _ zk.ProofOracle = (*Oracle)(nil)

// New caches keys in store; a nil store keeps them in memory only.
func New(store *KeyStore) *Oracle {
	return &Oracle{
		store:    store,
		compiled: make(map[zk.CircuitID]*compiledCircuit, 2),
	}
}

// Compile loads the circuit from the key store or, failing that, compiles
// it and runs the groth16 setup. The setup here is a single-party one: fine
// for development, not for players that distrust the operator.
func (o *Oracle) Compile(circuit zk.CircuitID) (zk.VerificationKey, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	cc, prs := o.compiled[circuit]
	if !prs {
		var err error
		cc, err = o.loadOrSetup(circuit)
		if err != nil {
			return zk.VerificationKey{}, err
		}
		o.compiled[circuit] = cc
	}

	var buf bytes.Buffer
	if _, err := cc.vk.WriteTo(&buf); err != nil {
		return zk.VerificationKey{}, err
	}
	return zk.VerificationKey{Circuit: circuit, Version: zk.CircuitVersion, Data: buf.Bytes()}, nil
}

func (o *Oracle) loadOrSetup(circuit zk.CircuitID) (*compiledCircuit, error) {
	if o.store != nil {
		cc, err := o.store.Load(circuit)
		if err == nil {
			log.Printf("loaded %s keys from %s\n", circuit, o.store.Dir())
			return cc, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	c, err := newCircuit(circuit)
	if err != nil {
		return nil, err
	}

	ccs, err := frontend.Compile(curve.ScalarField(), r1cs.NewBuilder, c)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", circuit, err)
	}
	log.Printf("compiled %s: %d constraints\n", circuit, ccs.GetNbConstraints())

	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		return nil, fmt.Errorf("setup %s: %w", circuit, err)
	}

	cc := &compiledCircuit{ccs: ccs, pk: pk, vk: vk}
	if o.store != nil {
		if err := o.store.Save(circuit, cc); err != nil {
			return nil, err
		}
	}
	return cc, nil
}

func (o *Oracle) get(circuit zk.CircuitID) (*compiledCircuit, error) {
	o.mu.RLock()
	defer o.mu.RUnlock()

	cc, prs := o.compiled[circuit]
	if !prs {
		return nil, cerr.ErrCircuitNotCompiled(string(circuit))
	}
	return cc, nil
}

// Prove checks the relation natively first so a bad witness reports the
// rule it breaks instead of an unsatisfied constraint index.
func (o *Oracle) Prove(st zk.Statement, w zk.Witness) (zk.Proof, error) {
	cc, err := o.get(st.Circuit)
	if err != nil {
		return zk.Proof{}, err
	}

	if err := zk.Evaluate(st, w); err != nil {
		return zk.Proof{}, err
	}

	full, err := fullWitness(st, w)
	if err != nil {
		return zk.Proof{}, err
	}

	proof, err := groth16.Prove(cc.ccs, cc.pk, full)
	if err != nil {
		return zk.Proof{}, err
	}

	var buf bytes.Buffer
	if _, err := proof.WriteTo(&buf); err != nil {
		return zk.Proof{}, err
	}
	return zk.Proof{Statement: st, Blob: buf.Bytes()}, nil
}

// Verify only needs the verification key, so the party checking a proof
// does not have to compile anything.
func (o *Oracle) Verify(proof zk.Proof, vk zk.VerificationKey) (bool, error) {
	if vk.Version != zk.CircuitVersion || vk.Circuit != proof.Statement.Circuit {
		return false, nil
	}

	gvk := groth16.NewVerifyingKey(curve)
	if _, err := gvk.ReadFrom(bytes.NewReader(vk.Data)); err != nil {
		return false, fmt.Errorf("read verification key: %w", err)
	}

	gproof := groth16.NewProof(curve)
	if _, err := gproof.ReadFrom(bytes.NewReader(proof.Blob)); err != nil {
		return false, fmt.Errorf("read proof: %w", err)
	}

	public, err := publicWitness(proof.Statement)
	if err != nil {
		return false, err
	}

	if err := groth16.Verify(gproof, gvk, public); err != nil {
		return false, nil
	}
	return true, nil
}
