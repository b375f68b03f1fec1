package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "mint.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 20, cfg.ShareCount)
	assert.Equal(t, logrus.InfoLevel, cfg.Level())
}

func TestLoad_Overrides(t *testing.T) {
	path := writeConfig(t, `
share_count = 8
bank_key_file = "bank.pem"
log_level = "debug"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.ShareCount)
	assert.Equal(t, "bank.pem", cfg.BankKeyFile)
	assert.Equal(t, logrus.DebugLevel, cfg.Level())

	// Unset fields keep their defaults
	assert.Equal(t, 2048, cfg.KeyBits)
	assert.Empty(t, cfg.BankPublicKeyFile)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	tests := []struct {
		name    string
		content string
	}{
		{"syntax", `share_count = `},
		{"zero shares", `share_count = 0`},
		{"small key", `key_bits = 512`},
		{"bad level", `log_level = "loud"`},
		{"wrong type", `share_count = "twenty"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}
