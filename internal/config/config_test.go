package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func setEnv(t *testing.T, env map[string]string) {
	t.Helper()
	for _, k := range []string{"STAGE", "PROOF_BACKEND", "KEYS_DIR", "DATABASE_URL", "MIGRATION_DIR"} {
		t.Setenv(k, env[k])
	}
}

func TestLoadDefaults(t *testing.T) {
	setEnv(t, nil)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, StageDev, cfg.Stage)
	require.Equal(t, BackendLocal, cfg.ProofBackend)
	require.Equal(t, "keys", cfg.KeysDir)
	require.Equal(t, "file://db/migration", cfg.MigrationURL)
	require.Empty(t, cfg.DatabaseURL)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		backend string
		wantErr bool
	}{
		{name: "prod defaults to snark", env: map[string]string{"STAGE": "prod"}, backend: BackendSnark},
		{name: "dev with snark", env: map[string]string{"PROOF_BACKEND": "snark"}, backend: BackendSnark},
		{name: "unknown stage", env: map[string]string{"STAGE": "staging"}, wantErr: true},
		{name: "unknown backend", env: map[string]string{"PROOF_BACKEND": "plonk"}, wantErr: true},
		{name: "local in prod", env: map[string]string{"STAGE": "prod", "PROOF_BACKEND": "local"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnv(t, tt.env)

			cfg, err := Load()
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.backend, cfg.ProofBackend)
		})
	}
}
