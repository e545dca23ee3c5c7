package snark

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"

	"github.com/saeidalz13/zk-battleship/zk"
)

// compiledCircuit is the output of the one-time setup of a circuit.
type compiledCircuit struct {
	ccs constraint.ConstraintSystem
	pk  groth16.ProvingKey
	vk  groth16.VerifyingKey
}

// KeyStore caches compiled circuits and their keys under a directory so
// setup runs once per circuit version, not once per process.
type KeyStore struct {
	dir string
}

func NewKeyStore(dir string) *KeyStore {
	return &KeyStore{dir: dir}
}

func (ks *KeyStore) Dir() string {
	return ks.dir
}

func (ks *KeyStore) path(circuit zk.CircuitID, ext string) string {
	return filepath.Join(ks.dir, fmt.Sprintf("%s.v%d.%s", circuit, zk.CircuitVersion, ext))
}

// Load returns an error matching os.ErrNotExist when nothing is cached.
func (ks *KeyStore) Load(circuit zk.CircuitID) (*compiledCircuit, error) {
	cc := &compiledCircuit{
		ccs: groth16.NewCS(curve),
		pk:  groth16.NewProvingKey(curve),
		vk:  groth16.NewVerifyingKey(curve),
	}

	if err := readFile(ks.path(circuit, "ccs"), cc.ccs); err != nil {
		return nil, err
	}
	if err := readFile(ks.path(circuit, "pk"), cc.pk); err != nil {
		return nil, err
	}
	if err := readFile(ks.path(circuit, "vk"), cc.vk); err != nil {
		return nil, err
	}
	return cc, nil
}

func (ks *KeyStore) Save(circuit zk.CircuitID, cc *compiledCircuit) error {
	if err := os.MkdirAll(ks.dir, 0o755); err != nil {
		return err
	}

	if err := writeFile(ks.path(circuit, "ccs"), cc.ccs); err != nil {
		return err
	}
	if err := writeFile(ks.path(circuit, "pk"), cc.pk); err != nil {
		return err
	}
	return writeFile(ks.path(circuit, "vk"), cc.vk)
}

func readFile(path string, r io.ReaderFrom) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := r.ReadFrom(f); err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	return nil
}

// writeFile only renames complete files into place.
func writeFile(path string, w io.WriterTo) error {
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if _, err := w.WriteTo(f); err != nil {
		f.Close()
		return errors.Join(fmt.Errorf("write %s: %w", path, err), os.Remove(tmp))
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
