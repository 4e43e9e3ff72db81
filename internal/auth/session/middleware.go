package session

import (
	"errors"
	"net/http"

	commonerrors "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/errors"
	commonhttp "github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/http"
	"github.com/Ayanami-Ley/vibe2025-Palnov3333/internal/common/logger"
)

// Current resolves the request's session without gating.
func (m *Manager) Current(r *http.Request) (Session, bool) {
	s, err := m.Resolve(r.Context(), ReadCookie(r))
	if err != nil {
		return Session{}, false
	}
	return s, true
}

// RequirePage gates HTML routes: no session means a redirect to /login.
func (m *Manager) RequirePage(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, err := m.Resolve(r.Context(), ReadCookie(r))
		if err != nil {
			if !errors.Is(err, commonerrors.ErrSessionNotFound) {
				m.log.WithFields(r.Context(), logger.Fields{"path": r.URL.Path}).Errorf("session lookup failed: %v", err)
				http.Error(w, "Server error", http.StatusInternalServerError)
				return
			}
			ClearCookie(w, r)
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
	})
}

// RequireAPI gates JSON routes: no session means a 401 JSON body.
func (m *Manager) RequireAPI(next http.Handler) http.Handler {
	errHandler := commonhttp.NewErrorHandler(m.log)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, err := m.Resolve(r.Context(), ReadCookie(r))
		if err != nil {
			if errors.Is(err, commonerrors.ErrSessionNotFound) {
				err = commonerrors.ErrUnauthorized
			}
			errHandler.HandleError(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
	})
}
