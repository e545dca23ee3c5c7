package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

const (
	StageDev  = "dev"
	StageProd = "prod"

	BackendLocal = "local"
	BackendSnark = "snark"
)

type Config struct {
	Stage        string
	ProofBackend string
	KeysDir      string

	// empty disables the proof audit store
	DatabaseURL  string
	MigrationURL string
}

// Load reads the environment. Outside prod a .env file is loaded first;
// it is fine for it to be missing.
func Load() (*Config, error) {
	if os.Getenv("STAGE") != StageProd {
		_ = godotenv.Load(".env")
	}

	stage := os.Getenv("STAGE")
	if stage == "" {
		stage = StageDev
	}
	if stage != StageDev && stage != StageProd {
		return nil, fmt.Errorf("stage must be either %s or %s, got %q", StageDev, StageProd, stage)
	}

	backend := os.Getenv("PROOF_BACKEND")
	if backend == "" {
		backend = BackendSnark
		if stage == StageDev {
			backend = BackendLocal
		}
	}
	if backend != BackendLocal && backend != BackendSnark {
		return nil, fmt.Errorf("proof backend must be either %s or %s, got %q", BackendLocal, BackendSnark, backend)
	}
	if stage == StageProd && backend == BackendLocal {
		return nil, fmt.Errorf("the %s proof backend is not allowed in %s", BackendLocal, StageProd)
	}

	keysDir := os.Getenv("KEYS_DIR")
	if keysDir == "" {
		keysDir = "keys"
	}

	migrationURL := os.Getenv("MIGRATION_DIR")
	if migrationURL == "" {
		migrationURL = "file://db/migration"
	}

	return &Config{
		Stage:        stage,
		ProofBackend: backend,
		KeysDir:      keysDir,
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		MigrationURL: migrationURL,
	}, nil
}
