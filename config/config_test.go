package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigWritesDefault(t *testing.T) {
	t.Setenv("FROGLIGHT_ACCESS_TOKEN", "")
	path := filepath.Join(t.TempDir(), "froglight.yml")

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), config)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "protocol: 769")
	assert.Contains(t, string(data), "username: Froglight")

	again, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config, again)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("FROGLIGHT_ACCESS_TOKEN", "")
	path := filepath.Join(t.TempDir(), "froglight.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
server: mc.example.com:25566
account:
  username: Alex
network:
  timeout: 5s
client:
  main_hand: left
blocks: reports/blocks.json
debug: true
`), 0o644))

	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "mc.example.com:25566", config.Server)
	assert.Equal(t, "Alex", config.Account.Username)
	assert.Equal(t, 5*time.Second, config.Network.Timeout)
	assert.Equal(t, "left", config.Client.MainHand)
	assert.Equal(t, "reports/blocks.json", config.Blocks)
	assert.True(t, config.Debug)
	// untouched keys keep their defaults
	assert.Equal(t, 769, config.Protocol)
	assert.Equal(t, 256, config.Network.InboundQueue)
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "froglight.yml")
	require.NoError(t, os.WriteFile(path, []byte("client:\n  main_hand: middle\n"), 0o644))
	_, err := LoadConfig(path)
	assert.ErrorContains(t, err, "main_hand")

	require.NoError(t, os.WriteFile(path, []byte("server: [\n"), 0o644))
	_, err = LoadConfig(path)
	assert.ErrorContains(t, err, "decode")
}

func TestAccessTokenFromEnv(t *testing.T) {
	t.Setenv("FROGLIGHT_ACCESS_TOKEN", "secret")
	path := filepath.Join(t.TempDir(), "froglight.yml")
	require.NoError(t, Default().Save(path))
	config, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "secret", config.Account.AccessToken)
}
