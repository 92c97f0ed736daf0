package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))

	require.NoError(t, err)
	assert.Equal(t, "8080", config.HTTPPort)
	assert.Equal(t, 2*time.Second, config.QueueLockTimeout)
	assert.Equal(t, 3, config.QueueMaxAttempts)
	assert.Equal(t, "0 * * * * *", config.QueueAuditSchedule)
	assert.Empty(t, config.KafkaBrokers())
	assert.Equal(t, slog.LevelInfo, config.SlogLevel())
}

func TestLoadConfig_EnvironmentAndFile(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("DB_NAME=from_file\nQUEUE_MAX_ATTEMPTS=7\n"), 0o600))
	t.Setenv("DB_NAME", "from_env")
	t.Setenv("QUEUE_LOCK_TIMEOUT", "750ms")
	t.Setenv("KAFKA_HOST", "kafka-1:9092, kafka-2:9092")
	t.Setenv("LOG_LEVEL", "debug")
	t.Cleanup(func() { _ = os.Unsetenv("QUEUE_MAX_ATTEMPTS") })

	config, err := LoadConfig(envFile)

	require.NoError(t, err)
	assert.Equal(t, "from_env", config.DBName)
	assert.Equal(t, 7, config.QueueMaxAttempts)
	assert.Equal(t, 750*time.Millisecond, config.QueueLockTimeout)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, config.KafkaBrokers())
	assert.Equal(t, slog.LevelDebug, config.SlogLevel())
	assert.Contains(t, config.DSN(), "dbname=from_env")
}

func TestLoadConfig_RejectsZeroAttempts(t *testing.T) {
	t.Setenv("QUEUE_MAX_ATTEMPTS", "0")

	_, err := LoadConfig("")

	require.Error(t, err)
}
