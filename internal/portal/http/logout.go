package http

import (
	"log/slog"
	"net/http"

	"github.com/parkmoor/clubhouse/internal/portal/service"
	"github.com/parkmoor/clubhouse/internal/portal/session"
)

// LogoutHandler destroys the server-side session and clears the
// cookie. It is deliberately not gated behind RequireSession: logging
// out with a dead or missing session still lands on the welcome page.
type LogoutHandler struct {
	SessionService *service.SessionService
	Tokens         *session.TokenManager
	Cookies        session.CookieOptions
	Logger         *slog.Logger
}

func (h *LogoutHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if raw, ok := session.ReadCookie(r); ok {
		if sid, err := h.Tokens.Verify(raw); err == nil {
			if err := h.SessionService.Logout(r.Context(), sid); err != nil {
				// The cookie is cleared regardless; the orphaned
				// record expires on its own TTL.
				h.Logger.Error("session delete failed", "session_id", sid, "err", err)
			}
		}
	}

	session.ClearCookie(w, h.Cookies)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
