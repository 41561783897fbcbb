package middleware

import (
	"log/slog"
	"net/http"

	h "deptevents/internal/delivery/http/helpers"
	"deptevents/internal/domain"
)

// RequireSession returns a wrapper that resolves the request token (Bearer header or
// session cookie) to the current department session and stores it in the request context.
// Without one it responds with 401 and does not call next.
func RequireSession(auth domain.AuthService, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token := h.TokenFromRequest(r)
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing token")
				return
			}
			session, err := auth.CurrentSession(r.Context(), token)
			if err != nil {
				logger.DebugContext(r.Context(), "session rejected", "path", r.URL.Path, "err", err)
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired session")
				return
			}
			next(w, r.WithContext(domain.WithSession(r.Context(), session)))
		}
	}
}

// RequirePageSession is RequireSession for browser pages: unauthenticated
// requests are redirected to the login page at "/".
func RequirePageSession(auth domain.AuthService, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			session, err := auth.CurrentSession(r.Context(), h.TokenFromRequest(r))
			if err != nil {
				logger.DebugContext(r.Context(), "page session rejected", "path", r.URL.Path, "err", err)
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
			next(w, r.WithContext(domain.WithSession(r.Context(), session)))
		}
	}
}
