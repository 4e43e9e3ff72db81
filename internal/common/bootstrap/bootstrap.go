package bootstrap

import (
	"database/sql"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhttp "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/auth/http"
	authservice "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/auth/service"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/auth/session"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/clock"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/config"
	commoncrypto "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/crypto"
	commonhttp "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/http"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/logger"
	subhttp "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/subscription/http"
	subrepo "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/subscription/repository"
	subservice "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/subscription/service"
	todohttp "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/todo/http"
	todorepo "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/todo/repository"
	todoservice "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/todo/service"
	userrepo "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/user/repository"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/web"
)

type Stores struct {
	Users         userrepo.Repository
	Items         todorepo.Repository
	Subscriptions subrepo.Repository
	Sessions      session.Store
}

// PgStores backs every store with the shared pool; the session store follows SESSION_STORE.
func PgStores(pool *sql.DB, cfg config.AppConfig, clk clock.Clock) Stores {
	var sessions session.Store = session.NewPgStore(pool)
	if cfg.SessionStore == config.SessionStoreMemory {
		sessions = session.NewMemoryStore(clk)
	}

	return Stores{
		Users:         userrepo.NewPgRepository(pool),
		Items:         todorepo.NewPgRepository(pool),
		Subscriptions: subrepo.NewPgRepository(pool),
		Sessions:      sessions,
	}
}

type App struct {
	Log           *logger.Logger
	Stores        Stores
	Sessions      *session.Manager
	Auth          *authservice.AuthService
	Items         *todoservice.Service
	Subscriptions *subservice.Service
	Limits        *commonhttp.CredentialRateLimiter
	Handler       http.Handler
}

func NewApp(cfg config.AppConfig, stores Stores, clk clock.Clock, log *logger.Logger) (*App, error) {
	pages, err := web.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	sessions := session.NewManager(
		stores.Sessions,
		session.NewCodec(cfg.SessionSecret, clk),
		commoncrypto.NewTokenGenerator(),
		clk,
		cfg.SessionTTL,
		log,
	)

	app := &App{
		Log:           log,
		Stores:        stores,
		Sessions:      sessions,
		Auth:          authservice.NewAuthService(stores.Users, sessions, commoncrypto.NewBcryptHasher(cfg.BcryptCost), log),
		Items:         todoservice.NewService(stores.Items, log),
		Subscriptions: subservice.NewService(stores.Subscriptions, log),
		Limits:        commonhttp.NewCredentialRateLimiter(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", commonhttp.HealthHandler)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("GET /static/", web.StaticHandler())

	authhttp.NewHandler(app.Auth, sessions, pages, app.Limits, cfg.RequestTimeout, log).Routes(mux)
	todohttp.NewHandler(app.Items, app.Subscriptions, sessions, pages, cfg.RequestTimeout, log).Routes(mux)
	subhttp.NewHandler(app.Subscriptions, sessions, cfg.RequestTimeout, log).Routes(mux)

	app.Handler = commonhttp.BuildBaseHandler(log, cfg.TrustProxyHeaders, mux)
	return app, nil
}
