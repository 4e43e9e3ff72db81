package constants

import "time"

const (
	UsernameMaxLength = 50
	PasswordMinLength = 6
	PasswordMaxLength = 72
	ChatIDMaxLength   = 64

	SessionSecretMinLength = 32
	SessionCookieName      = "todo_session"
	DefaultSessionTTL      = 24 * time.Hour

	DefaultMaxRequestSize = 1 << 20
	DefaultBcryptCost     = 10

	DefaultNotifyInterval   = 5 * time.Minute
	NotifierSendTimeout     = 10 * time.Second
	NotifierTimestampLayout = "2006-01-02 15:04:05"

	SessionCleanupInterval = time.Hour

	DBPoolMaxOpenConns    = 25
	DBPoolMaxIdleConns    = 5
	DBPoolConnMaxLifetime = time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Minute
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = 1 * time.Second
	DBPoolMetricsInterval = 30 * time.Second
	DBMigrationTimeout    = time.Minute

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second
	ServerMaxHeaderBytes    = 16 << 10

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	DefaultHTTPPort       = "3000"
	DefaultRequestTimeout = 5 * time.Second

	RateLimitLoginRequestsPerSecond    = 1.0
	RateLimitLoginBurst                = 5
	RateLimitRegisterRequestsPerSecond = 0.2
	RateLimitRegisterBurst             = 3
	RateLimitCleanupInterval           = 10 * time.Minute

	LoggerMaxSize    = 100
	LoggerMaxBackups = 3
	LoggerMaxAge     = 28
)

type TraceIDKeyType string

const TraceIDKey TraceIDKeyType = "trace_id"
