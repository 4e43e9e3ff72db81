package config

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/errors"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SESSION_SECRET", "SESSION_STORE", "SESSION_TTL", "DATABASE_URL",
		"DB_HOST", "DB_PORT", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_SSLMODE",
		"HTTP_PORT", "NOTIFY_INTERVAL", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID",
		"DB_MAX_OPEN_CONNS", "REQUEST_TIMEOUT", "BCRYPT_COST", "LOG_DIR", "LOG_LEVEL",
		"TRUST_PROXY_HEADERS",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadAppConfig_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_SECRET", testSecret)

	cfg, err := LoadAppConfig()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.HTTPPort)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 5*time.Minute, cfg.NotifyInterval)
	assert.Equal(t, 25, cfg.DBMaxOpenConns)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, SessionStorePostgres, cfg.SessionStore)
	assert.Equal(t, "postgres://postgres:@localhost:5432/todolist?sslmode=disable", cfg.DatabaseURL)
	assert.False(t, cfg.NotifierEnabled())
	assert.False(t, cfg.TrustProxyHeaders)
	assert.Empty(t, cfg.LogDir)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadAppConfig_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_SECRET", testSecret)
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("TRUST_PROXY_HEADERS", "true")
	t.Setenv("LOG_DIR", "/var/log/todo")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadAppConfig()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, cfg.SessionTTL)
	assert.True(t, cfg.TrustProxyHeaders)
	assert.Equal(t, "/var/log/todo", cfg.LogDir)
	assert.Equal(t, "debug", cfg.LogLevel)

	t.Setenv("TRUST_PROXY_HEADERS", "maybe")
	cfg, err = LoadAppConfig()
	require.NoError(t, err)
	assert.False(t, cfg.TrustProxyHeaders)
}

func TestLoadAppConfig_MissingSecret(t *testing.T) {
	clearEnv(t)

	_, err := LoadAppConfig()
	require.Error(t, err)
	assert.True(t, errors.Is(err, commonerrors.ErrMissingRequiredEnv))
	assert.True(t, strings.Contains(err.Error(), "SESSION_SECRET"))
}

func TestLoadAppConfig_ShortSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_SECRET", "your_secret_key")

	_, err := LoadAppConfig()
	assert.True(t, errors.Is(err, commonerrors.ErrInvalidSessionSecret))
}

func TestLoadAppConfig_DatabaseFromParts(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_SECRET", testSecret)
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_USER", "root")
	t.Setenv("DB_PASSWORD", "p@ss word")
	t.Setenv("DB_NAME", "todos")

	cfg, err := LoadAppConfig()
	require.NoError(t, err)
	assert.Equal(t, "postgres://root:p%40ss%20word@db:5432/todos?sslmode=disable", cfg.DatabaseURL)
}

func TestLoadAppConfig_DatabaseURLOverridesParts(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_SECRET", testSecret)
	t.Setenv("DB_HOST", "ignored")
	t.Setenv("DATABASE_URL", "postgres://u:p@example:6543/x")

	cfg, err := LoadAppConfig()
	require.NoError(t, err)
	assert.Equal(t, "postgres://u:p@example:6543/x", cfg.DatabaseURL)
}

func TestLoadAppConfig_TelegramAndDurations(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_SECRET", testSecret)
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-100500")
	t.Setenv("NOTIFY_INTERVAL", "30s")
	t.Setenv("REQUEST_TIMEOUT", "not-a-duration")
	t.Setenv("SESSION_STORE", "Memory")

	cfg, err := LoadAppConfig()
	require.NoError(t, err)
	assert.True(t, cfg.NotifierEnabled())
	assert.Equal(t, "-100500", cfg.TelegramDefaultChatID)
	assert.Equal(t, 30*time.Second, cfg.NotifyInterval)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, SessionStoreMemory, cfg.SessionStore)
}

func TestLoadAppConfig_UnknownSessionStore(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_SECRET", testSecret)
	t.Setenv("SESSION_STORE", "redis")

	_, err := LoadAppConfig()
	assert.True(t, errors.Is(err, commonerrors.ErrInvalidConfig))
}
