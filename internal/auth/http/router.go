package http

import (
	"context"
	"net/http"
	"time"

	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/auth/service"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/auth/session"
	commonerrors "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/errors"
	commonhttp "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/http"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/logger"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/web"
)

type Authenticator interface {
	Register(ctx context.Context, input service.RegisterInput) error
	Login(ctx context.Context, input service.LoginInput) (session.Session, string, error)
	Logout(ctx context.Context, cookieValue string) error
}

type Handler struct {
	auth     Authenticator
	sessions *session.Manager
	pages    *web.Renderer
	limits   *commonhttp.CredentialRateLimiter
	timeout  time.Duration
	log      *logger.Logger
}

func NewHandler(
	auth Authenticator,
	sessions *session.Manager,
	pages *web.Renderer,
	limits *commonhttp.CredentialRateLimiter,
	timeout time.Duration,
	log *logger.Logger,
) *Handler {
	return &Handler{
		auth:     auth,
		sessions: sessions,
		pages:    pages,
		limits:   limits,
		timeout:  timeout,
		log:      log,
	}
}

func (h *Handler) Routes(mux *http.ServeMux) {
	withTimeout := commonhttp.WithTimeout(h.timeout)

	mux.HandleFunc("GET /login", h.loginPage)
	mux.Handle("POST /login", h.limits.Login.Middleware("login")(withTimeout(http.HandlerFunc(h.login))))
	mux.HandleFunc("GET /register", h.registerPage)
	mux.Handle("POST /register", h.limits.Register.Middleware("register")(withTimeout(http.HandlerFunc(h.register))))
	mux.Handle("GET /logout", h.sessions.RequirePage(withTimeout(http.HandlerFunc(h.logout))))
}

func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.sessions.Current(r); ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	page := web.AuthPage{}
	if r.URL.Query().Get("registered") == "1" {
		page.Notice = "Registration complete, please log in"
	}
	h.render(w, r, http.StatusOK, web.PageLogin, page)
}

func (h *Handler) registerPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.sessions.Current(r); ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	h.render(w, r, http.StatusOK, web.PageRegister, web.AuthPage{})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	if err := commonhttp.ParseForm(r); err != nil {
		h.formError(w, r, web.PageLogin, "", err)
		return
	}

	username := r.PostFormValue("username")
	sess, cookie, err := h.auth.Login(r.Context(), service.LoginInput{
		Username: username,
		Password: r.PostFormValue("password"),
	})
	if err != nil {
		h.formError(w, r, web.PageLogin, username, err)
		return
	}

	session.SetCookie(w, r, cookie, sess.ExpiresAt)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	if err := commonhttp.ParseForm(r); err != nil {
		h.formError(w, r, web.PageRegister, "", err)
		return
	}

	username := r.PostFormValue("username")
	err := h.auth.Register(r.Context(), service.RegisterInput{
		Username: username,
		Password: r.PostFormValue("password"),
	})
	if err != nil {
		h.formError(w, r, web.PageRegister, username, err)
		return
	}

	http.Redirect(w, r, "/login?registered=1", http.StatusFound)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context(), session.ReadCookie(r)); err != nil {
		http.Error(w, "Logout failed", http.StatusInternalServerError)
		return
	}

	session.ClearCookie(w, r)
	http.Redirect(w, r, "/login", http.StatusFound)
}

// formError re-renders the form with the error's status and message.
// Errors outside the domain taxonomy never show their detail.
func (h *Handler) formError(w http.ResponseWriter, r *http.Request, page, username string, err error) {
	status := http.StatusInternalServerError
	message := "Server error"
	if de, ok := commonerrors.AsDomainError(err); ok && de.HTTPStatus() < http.StatusInternalServerError {
		status = de.HTTPStatus()
		message = de.Message()
	}

	h.render(w, r, status, page, web.AuthPage{Error: message, Username: username})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page string, data web.AuthPage) {
	if err := h.pages.Render(w, status, page, data); err != nil {
		h.log.WithFields(r.Context(), logger.Fields{"page": page}).Errorf("render failed: %v", err)
		http.Error(w, "Error loading page", http.StatusInternalServerError)
	}
}
