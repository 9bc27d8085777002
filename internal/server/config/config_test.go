package config

import (
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, ":8080", cfg.EndpointAddr)
	assert.NotEmpty(t, cfg.DatabaseDSN)
	assert.True(t, cfg.StartingBalance.Equal(decimal.NewFromInt(1000)))
	assert.True(t, cfg.TransferCap.Equal(decimal.NewFromInt(1000)))
}

func TestLoadConfig_FlagsOverrideDefaults(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"walletd", "-a", ":9090", "-d", "postgres://x", "-b", "500", "-m", "250.50"}

	cfg := LoadConfig()

	assert.Equal(t, ":9090", cfg.EndpointAddr)
	assert.Equal(t, "postgres://x", cfg.DatabaseDSN)
	assert.True(t, cfg.StartingBalance.Equal(decimal.NewFromInt(500)))
	assert.True(t, cfg.TransferCap.Equal(decimal.RequireFromString("250.50")))
}

func TestLoadConfig_IgnoresForeignFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"walletd", "-unknown", "x", "-a", ":7070"}

	cfg := LoadConfig()

	assert.Equal(t, ":7070", cfg.EndpointAddr)
}

func TestParseFlags_BadDecimalPanics(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"walletd", "-b", "not-a-number"}

	cfg := &Config{}
	cfg.LoadDefaults()

	require.Panics(t, func() { parseFlags(cfg) })
}
