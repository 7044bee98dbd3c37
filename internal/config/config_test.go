package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, StorageDriverFile, cfg.Storage.Driver)
	assert.Equal(t, "portfolio_cms_data_v3", cfg.Storage.Key)
	assert.Equal(t, int32(4), cfg.DB.MaxConns)
	assert.Equal(t, 12*time.Hour, cfg.Auth.TokenLifespan)
	assert.InDelta(t, 0.7, cfg.LLM.Temperature, 0.0001)
	assert.False(t, cfg.KafkaEnabled())
	assert.False(t, cfg.CloudinaryEnabled())
}

func TestLoadConfig_YAMLAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("app:\n  port: \"9090\"\nstorage:\n  driver: redis\nllm:\n  model: llama3\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o600))

	t.Setenv("LLM_MODEL", "gemma2")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, StorageDriverRedis, cfg.Storage.Driver)
	assert.Equal(t, "gemma2", cfg.LLM.Model)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	assert.True(t, cfg.KafkaEnabled())
}
