package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/constants"
	commonerrors "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/errors"
)

const (
	SessionStorePostgres = "postgres"
	SessionStoreMemory   = "memory"
)

type AppConfig struct {
	HTTPPort       string
	DatabaseURL    string
	DBMaxOpenConns int
	RequestTimeout time.Duration
	BcryptCost     int

	// TrustProxyHeaders takes client addresses from X-Real-IP and X-Forwarded-For.
	TrustProxyHeaders bool

	SessionSecret string
	SessionTTL    time.Duration
	SessionStore  string

	TelegramBotToken      string
	TelegramDefaultChatID string
	NotifyInterval        time.Duration

	LogDir   string
	LogLevel string
}

func (c AppConfig) NotifierEnabled() bool {
	return c.TelegramBotToken != ""
}

func LoadAppConfig() (AppConfig, error) {
	sessionSecret, err := mustEnv("SESSION_SECRET")
	if err != nil {
		return AppConfig{}, err
	}

	if err := validateSessionSecret(sessionSecret); err != nil {
		return AppConfig{}, err
	}

	store := strings.ToLower(getEnv("SESSION_STORE", SessionStorePostgres))
	if store != SessionStorePostgres && store != SessionStoreMemory {
		return AppConfig{}, commonerrors.ErrInvalidConfig.WithMessage(
			fmt.Sprintf("SESSION_STORE must be %q or %q, got %q", SessionStorePostgres, SessionStoreMemory, store),
		)
	}

	return AppConfig{
		HTTPPort:       getEnv("HTTP_PORT", constants.DefaultHTTPPort),
		DatabaseURL:    databaseURL(),
		DBMaxOpenConns: getIntEnv("DB_MAX_OPEN_CONNS", constants.DBPoolMaxOpenConns),
		RequestTimeout: getDurationEnv("REQUEST_TIMEOUT", constants.DefaultRequestTimeout),
		BcryptCost:     getIntEnv("BCRYPT_COST", constants.DefaultBcryptCost),

		TrustProxyHeaders: getBoolEnv("TRUST_PROXY_HEADERS", false),

		SessionSecret: sessionSecret,
		SessionTTL:    getDurationEnv("SESSION_TTL", constants.DefaultSessionTTL),
		SessionStore:  store,

		TelegramBotToken:      getEnv("TELEGRAM_BOT_TOKEN", ""),
		TelegramDefaultChatID: getEnv("TELEGRAM_CHAT_ID", ""),
		NotifyInterval:        getDurationEnv("NOTIFY_INTERVAL", constants.DefaultNotifyInterval),

		LogDir:   getEnv("LOG_DIR", ""),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}, nil
}

// databaseURL prefers DATABASE_URL and otherwise assembles one from the DB_* parts.
func databaseURL() string {
	if v := strings.TrimSpace(os.Getenv("DATABASE_URL")); v != "" {
		return v
	}

	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(getEnv("DB_USER", "postgres"), getEnv("DB_PASSWORD", "")),
		Host:   getEnv("DB_HOST", "localhost") + ":" + getEnv("DB_PORT", "5432"),
		Path:   "/" + getEnv("DB_NAME", "todolist"),
	}
	q := url.Values{}
	q.Set("sslmode", getEnv("DB_SSLMODE", "disable"))
	u.RawQuery = q.Encode()

	return u.String()
}

func validateSessionSecret(secret string) error {
	if len(secret) < constants.SessionSecretMinLength {
		return commonerrors.ErrInvalidSessionSecret.WithCause(fmt.Errorf("got %d bytes", len(secret)))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", commonerrors.ErrMissingRequiredEnv.WithCause(fmt.Errorf("%s is not set", key))
	}
	return v, nil
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func getIntEnv(key string, fallback int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	i, err := strconv.Atoi(v)
	if err != nil || i <= 0 {
		return fallback
	}
	return i
}

func getBoolEnv(key string, fallback bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return b
}
