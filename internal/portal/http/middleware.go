package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/parkmoor/clubhouse/internal/portal/service"
	"github.com/parkmoor/clubhouse/internal/portal/session"
	"github.com/parkmoor/clubhouse/pkg/httpx"
)

// RequireSession gates handlers behind a live session. The cookie token
// only names a session id; the session itself must still exist
// server-side. Requests without one are redirected to the login form
// before any store reads happen on the wrapped handler's behalf.
func RequireSession(tokens *session.TokenManager, sessions *service.SessionService, logger *slog.Logger) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := session.ReadCookie(r)
			if !ok {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}

			sid, err := tokens.Verify(raw)
			if err != nil {
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}

			sess, err := sessions.Get(r.Context(), sid)
			switch {
			case errors.Is(err, session.ErrNotFound):
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			case errors.Is(err, service.ErrStoreUnavailable):
				logger.Error("session lookup failed", "err", err)
				http.Error(w, "service unavailable", http.StatusServiceUnavailable)
				return
			case err != nil:
				logger.Error("session lookup failed", "err", err)
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}

			ctx := httpx.WithIdentity(r.Context(), sess.UserID, sess.Username, sess.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
