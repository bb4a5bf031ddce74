package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvDefaults(t *testing.T) {
	for _, key := range []string{"HOST_IP", "PORT", "MAX_PLAYERS", "SPAWN_INTERVAL_MS", "COLLECTIBLE_VALUE", "MAX_SPEED", "DEFAULT_CODEC", "REDIS_ADDR", "REDIS_CHANNEL", "IP_COOLDOWN_SEC"} {
		t.Setenv(key, "")
	}

	env, _, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, env.Port)
	assert.Equal(t, ":3000", env.Addr())
	assert.Equal(t, CodecJSON, env.DefaultCodec)
	assert.Equal(t, DefaultMaxPlayers, env.MaxPlayers)
	assert.Zero(t, env.IPCooldown)
	assert.Empty(t, env.RedisAddr)
	assert.Equal(t, DefaultRedisChannel, env.RedisChannel)
	assert.Equal(t, DefaultSettings(), env.Game)
	assert.Equal(t, 5*time.Second, env.Game.SpawnInterval)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HOST_IP", "127.0.0.1")
	t.Setenv("PORT", "8080")
	t.Setenv("SPAWN_INTERVAL_MS", "250")
	t.Setenv("COLLECTIBLE_VALUE", "25")
	t.Setenv("MAX_SPEED", "12.5")
	t.Setenv("DEFAULT_CODEC", "msgpack")
	t.Setenv("IP_COOLDOWN_SEC", "3")

	env, _, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:8080", env.Addr())
	assert.Equal(t, 250*time.Millisecond, env.Game.SpawnInterval)
	assert.Equal(t, int64(250), env.Game.DTO().CollectibleSpawnInterval)
	assert.Equal(t, 25, env.Game.CollectibleValue)
	assert.Equal(t, 12.5, env.Game.MaxSpeed)
	assert.Equal(t, CodecMsgpack, env.DefaultCodec)
	assert.Equal(t, 3*time.Second, env.IPCooldown)
}

func TestLoadEnvRejectsBadValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"PORT", "eighty"},
		{"SPAWN_INTERVAL_MS", "0"},
		{"SPAWN_INTERVAL_MS", "-5"},
		{"COLLECTIBLE_VALUE", "0"},
		{"MAX_SPEED", "-1"},
		{"MAX_SPEED", "NaN"},
		{"MAX_SPEED", "fast"},
		{"DEFAULT_CODEC", "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, _, err := LoadEnv()
			assert.Error(t, err)
		})
	}
}
