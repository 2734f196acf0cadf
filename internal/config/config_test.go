package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://api.sleeper.app/v1", cfg.SleeperBaseURL)
	assert.Equal(t, 4, cfg.FetchConcurrency)
	assert.True(t, cfg.CacheEnabled)
	assert.Empty(t, cfg.Aliases)
}

func TestLoad_InlineAliases(t *testing.T) {
	t.Setenv("MANAGER_ALIASES", `{"Smith":"u1","Jones":"u2"}`)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "u1", cfg.Aliases["Smith"])
	assert.Equal(t, "u2", cfg.Aliases["Jones"])
}

func TestLoad_MalformedAliasesRejected(t *testing.T) {
	t.Setenv("MANAGER_ALIASES", `{"Smith":`)

	_, err := Load()
	assert.Error(t, err)
}
