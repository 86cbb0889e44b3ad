package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "mock", cfg.AIProvider)
	assert.Equal(t, time.Second, cfg.ChatReplyDelay)
	assert.Equal(t, 1500*time.Millisecond, cfg.TranslateDelay)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "translation_jobs", cfg.RabbitQueue)
	assert.Equal(t, 2, cfg.WorkerConcurrency)
	assert.Empty(t, cfg.RedisAddr)
	assert.Empty(t, cfg.RabbitURL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DB_DRIVER", " MySQL ")
	t.Setenv("CHAT_REPLY_DELAY", "250ms")
	t.Setenv("WORKER_CONCURRENCY", "500")
	t.Setenv("AI_PROVIDER", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mysql", cfg.DBDriver)
	assert.Equal(t, 250*time.Millisecond, cfg.ChatReplyDelay)
	assert.Equal(t, 50, cfg.WorkerConcurrency)
	assert.Equal(t, "mock", cfg.AIProvider)
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("RABBIT_QUEUE=from_dotenv\nSESSION_TTL=5m\n"), 0o600))
	chdir(t, dir)
	// godotenv writes into the process env
	t.Cleanup(func() { _ = os.Unsetenv("RABBIT_QUEUE") })
	// and does not override variables that are already set
	t.Setenv("SESSION_TTL", "2m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "from_dotenv", cfg.RabbitQueue)
	assert.Equal(t, 2*time.Minute, cfg.SessionTTL)
}

func TestLoad_BadDuration(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TRANSLATE_DELAY", "soon")

	_, err := Load()
	require.Error(t, err)
}

// chdir switches the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
